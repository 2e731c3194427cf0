package handler

import (
	"net/http"
	"strconv"

	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/service"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type NoteService interface {
	ListNotes(actor *entity.User, view service.NoteView, search string) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetNote(actor *entity.User, noteId int64) (*contract.NoteResponse, apierror.ErrorResponse)
	CreateNote(actor *entity.User, req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	UpdateNote(actor *entity.User, noteId int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	ArchiveNote(actor *entity.User, noteId int64) (*contract.NoteResponse, apierror.ErrorResponse)
	UnarchiveNote(actor *entity.User, noteId int64) (*contract.NoteResponse, apierror.ErrorResponse)
	TrashNote(actor *entity.User, noteId int64) (*contract.NoteResponse, apierror.ErrorResponse)
	RestoreNote(actor *entity.User, noteId int64) (*contract.NoteResponse, apierror.ErrorResponse)
	DeleteNoteForever(actor *entity.User, noteId int64) apierror.ErrorResponse
	EmptyTrash(actor *entity.User) (int64, apierror.ErrorResponse)
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

// GetNotes is the default listing: active notes only, searchable via ?q=.
func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	return n.listNotes(c, service.ViewActive)
}

func (n *DefaultNoteRoute) GetArchivedNotes(c echo.Context) error {
	return n.listNotes(c, service.ViewArchived)
}

func (n *DefaultNoteRoute) GetTrashedNotes(c echo.Context) error {
	return n.listNotes(c, service.ViewTrashed)
}

func (n *DefaultNoteRoute) GetNote(c echo.Context) error {
	return n.withNoteID(c, n.NoteService.GetNote)
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	note, apierr := n.NoteService.CreateNote(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, note)
}

func (n *DefaultNoteRoute) UpdateNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := parseNoteID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	note, apierr := n.NoteService.UpdateNote(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) ArchiveNote(c echo.Context) error {
	return n.withNoteID(c, n.NoteService.ArchiveNote)
}

func (n *DefaultNoteRoute) UnarchiveNote(c echo.Context) error {
	return n.withNoteID(c, n.NoteService.UnarchiveNote)
}

func (n *DefaultNoteRoute) TrashNote(c echo.Context) error {
	return n.withNoteID(c, n.NoteService.TrashNote)
}

func (n *DefaultNoteRoute) RestoreNote(c echo.Context) error {
	return n.withNoteID(c, n.NoteService.RestoreNote)
}

func (n *DefaultNoteRoute) DeleteNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := parseNoteID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if serr := n.NoteService.DeleteNoteForever(user, id); serr != nil {
		return c.JSON(serr.Code(), serr)
	}
	return c.NoContent(http.StatusOK)
}

func (n *DefaultNoteRoute) EmptyTrash(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	count, apierr := n.NoteService.EmptyTrash(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"deleted": count}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) listNotes(c echo.Context, view service.NoteView) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	notes, apierr := n.NoteService.ListNotes(user, view, c.QueryParam("q"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"notes": notes}
	return c.JSON(http.StatusOK, &resp)
}

// withNoteID runs the id-taking service operations that all answer with the
// updated note.
func (n *DefaultNoteRoute) withNoteID(c echo.Context, op func(*entity.User, int64) (*contract.NoteResponse, apierror.ErrorResponse)) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := parseNoteID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	note, apierr := op(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func parseNoteID(c echo.Context) (int64, apierror.ErrorResponse) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError("id", "int64")
	}
	return id, nil
}
