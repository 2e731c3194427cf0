package repository

import (
	"errors"
	"strings"

	"keepnotes/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

// FindOwned looks a note up by id and owner in a single query. A note that
// exists but belongs to someone else is indistinguishable from a missing one:
// both return (nil, nil).
func (d *DefaultNoteRepository) FindOwned(ownerID, noteID int64) (*entity.Note, error) {
	var note entity.Note
	err := d.db.Where("owner_id = ?", ownerID).First(&note, noteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

// FindByOwner returns the owner's notes matching the exact lifecycle flags,
// optionally narrowed by a case-insensitive substring search over title and
// content. Most recently updated first; insertion order breaks ties.
func (d *DefaultNoteRepository) FindByOwner(ownerID int64, archived, trashed bool, search string) ([]*entity.Note, error) {
	tx := d.db.Where("owner_id = ? AND archived = ? AND trashed = ?", ownerID, archived, trashed)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("(LOWER(title) LIKE ? OR LOWER(content) LIKE ?)", like, like)
	}

	var notes []*entity.Note
	err := tx.Order("updated_at DESC, id ASC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) Save(note *entity.Note) error {
	return d.db.Save(note).Error
}

func (d *DefaultNoteRepository) Delete(note *entity.Note) error {
	return d.db.Delete(note).Error
}

// DeleteTrashedByOwner removes every trashed note of the owner in a single
// statement, so concurrent readers never observe a half-emptied trash.
func (d *DefaultNoteRepository) DeleteTrashedByOwner(ownerID int64) (int64, error) {
	res := d.db.Where("owner_id = ? AND trashed = ?", ownerID, true).Delete(&entity.Note{})
	return res.RowsAffected, res.Error
}
