package entity

// Profile is the one-to-one companion row of a User. ImageKey points into the
// blob store; an empty key means no picture has been stored yet.
type Profile struct {
	ID        int64 `gorm:"primaryKey"`
	UserID    int64 `gorm:"not null;uniqueIndex"` // References: users(id)
	ImageKey  string
	ImageName string
	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:false"`

	// Relations
	User User `gorm:"foreignKey:UserID;references:ID"`
}
