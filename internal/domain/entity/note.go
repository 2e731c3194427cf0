package entity

// Note lifecycle is tracked by two independent flags. Trashing always clears
// Archived, so both are never true on the same row.
//
// Pinned is persisted and returned to clients but takes no part in filtering
// or ordering.
type Note struct {
	ID        int64  `gorm:"primaryKey"`
	OwnerID   int64  `gorm:"not null;index"` // References: users(id), immutable
	Title     string
	Content   string `gorm:"not null"`
	Color     string `gorm:"not null"`
	Pinned    bool   `gorm:"not null;default:false"`
	Archived  bool   `gorm:"not null;default:false"`
	Trashed   bool   `gorm:"not null;default:false"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID;references:ID"`
}
