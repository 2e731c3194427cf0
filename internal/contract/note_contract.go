package contract

type NoteResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Color     string `json:"color"`
	Pinned    bool   `json:"pinned"`
	Archived  bool   `json:"archived"`
	Trashed   bool   `json:"trashed"`
	OwnerID   int64  `json:"owner_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateNoteRequest carries Content as a pointer on purpose: the field must be
// present in the payload, but the empty string is a legal note body.
type CreateNoteRequest struct {
	Title   string  `json:"title" validate:"max=200"`
	Content *string `json:"content" validate:"required"`
	Color   string  `json:"color" validate:"omitempty,hexcolor"`
	Pinned  bool    `json:"pinned"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content"`
	Color   *string `json:"color" validate:"omitempty,hexcolor"`
	Pinned  *bool   `json:"pinned"`
}
