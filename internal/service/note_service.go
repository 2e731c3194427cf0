package service

import (
	"strings"

	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// NoteView selects which lifecycle slice of the owner's notes to list.
type NoteView string

const (
	ViewActive   NoteView = "ACTIVE"
	ViewArchived NoteView = "ARCHIVED"
	ViewTrashed  NoteView = "TRASHED"
)

const defaultNoteColor = "#ffffff"

type NoteRepository interface {
	FindOwned(ownerID, noteID int64) (*entity.Note, error)
	FindByOwner(ownerID int64, archived, trashed bool, search string) ([]*entity.Note, error)
	Save(note *entity.Note) error
	Delete(note *entity.Note) error
	DeleteTrashedByOwner(ownerID int64) (int64, error)
}

type DefaultNoteService struct {
	NoteRepo NoteRepository
	Validate *validator.Validate
}

func NewNoteService(noteRepo NoteRepository, validate *validator.Validate) *DefaultNoteService {
	return &DefaultNoteService{
		NoteRepo: noteRepo,
		Validate: validate,
	}
}

// ListNotes returns the actor's notes for the given view, newest-updated
// first. A non-blank search narrows the result to notes whose title or
// content contains the query, case-insensitively.
func (n *DefaultNoteService) ListNotes(actor *entity.User, view NoteView, search string) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	archived := view == ViewArchived
	trashed := view == ViewTrashed

	notes, err := n.NoteRepo.FindByOwner(actor.ID, archived, trashed, strings.TrimSpace(search))
	if err != nil {
		log.Errorf("failed to fetch notes: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp, nil
}

func (n *DefaultNoteService) GetNote(actor *entity.User, noteId int64) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, apierr := n.fetchOwned(actor, noteId)
	if apierr != nil {
		return nil, apierr
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) CreateNote(actor *entity.User, req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	color := req.Color
	if color == "" {
		color = defaultNoteColor
	}

	now := utils.NowUTC()
	note := &entity.Note{
		OwnerID:   actor.ID,
		Title:     req.Title,
		Content:   *req.Content,
		Color:     color,
		Pinned:    req.Pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to save note: %v", err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note), nil
}

// UpdateNote replaces the provided fields and refreshes the update timestamp.
// The lifecycle flags are untouched: editing never moves a note between
// active, archived and trashed.
func (n *DefaultNoteService) UpdateNote(actor *entity.User, noteId int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note, apierr := n.fetchOwned(actor, noteId)
	if apierr != nil {
		return nil, apierr
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Color != nil {
		note.Color = *req.Color
	}
	if req.Pinned != nil {
		note.Pinned = *req.Pinned
	}

	return n.saveMutation(note)
}

// ArchiveNote moves an active note to the archive. Archiving an already
// archived note is a no-op that still succeeds.
func (n *DefaultNoteService) ArchiveNote(actor *entity.User, noteId int64) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, apierr := n.fetchOwned(actor, noteId)
	if apierr != nil {
		return nil, apierr
	}

	note.Archived = true
	return n.saveMutation(note)
}

func (n *DefaultNoteService) UnarchiveNote(actor *entity.User, noteId int64) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, apierr := n.fetchOwned(actor, noteId)
	if apierr != nil {
		return nil, apierr
	}

	note.Archived = false
	return n.saveMutation(note)
}

// TrashNote always clears the archived flag: a note is never archived and
// trashed at the same time.
func (n *DefaultNoteService) TrashNote(actor *entity.User, noteId int64) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, apierr := n.fetchOwned(actor, noteId)
	if apierr != nil {
		return nil, apierr
	}

	note.Trashed = true
	note.Archived = false
	return n.saveMutation(note)
}

func (n *DefaultNoteService) RestoreNote(actor *entity.User, noteId int64) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, apierr := n.fetchOwned(actor, noteId)
	if apierr != nil {
		return nil, apierr
	}

	note.Trashed = false
	return n.saveMutation(note)
}

// DeleteNoteForever hard-deletes by id and owner. It deliberately does not
// require the note to be trashed first; ownership is the only gate.
func (n *DefaultNoteService) DeleteNoteForever(actor *entity.User, noteId int64) apierror.ErrorResponse {
	note, apierr := n.fetchOwned(actor, noteId)
	if apierr != nil {
		return apierr
	}

	if err := n.NoteRepo.Delete(note); err != nil {
		log.Errorf("failed to delete note %d: %v", note.ID, err)
		return apierror.InternalServerError
	}
	return nil
}

// EmptyTrash permanently deletes all of the actor's trashed notes and reports
// how many rows went away.
func (n *DefaultNoteService) EmptyTrash(actor *entity.User) (int64, apierror.ErrorResponse) {
	count, err := n.NoteRepo.DeleteTrashedByOwner(actor.ID)
	if err != nil {
		log.Errorf("failed to empty trash for user %d: %v", actor.ID, err)
		return 0, apierror.InternalServerError
	}
	return count, nil
}

// fetchOwned resolves a note the actor is allowed to touch. Someone else's
// note and a nonexistent one produce the same not-found answer.
func (n *DefaultNoteService) fetchOwned(actor *entity.User, noteId int64) (*entity.Note, apierror.ErrorResponse) {
	note, err := n.NoteRepo.FindOwned(actor.ID, noteId)
	if err != nil {
		log.Errorf("failed to fetch note: %v", err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NotFoundError
	}
	return note, nil
}

func (n *DefaultNoteService) saveMutation(note *entity.Note) (*contract.NoteResponse, apierror.ErrorResponse) {
	note.UpdatedAt = utils.NowUTC()
	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to update note %d: %v", note.ID, err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note), nil
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	return &contract.NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Color:     note.Color,
		Pinned:    note.Pinned,
		Archived:  note.Archived,
		Trashed:   note.Trashed,
		OwnerID:   note.OwnerID,
		CreatedAt: utils.FormatEpoch(note.CreatedAt),
		UpdatedAt: utils.FormatEpoch(note.UpdatedAt),
	}
}
