package entity

// User is an account holder. Only the bcrypt hash of the password is stored,
// never the password itself.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"not null;uniqueIndex"`
	FirstName    string
	LastName     string
	PasswordHash string `gorm:"not null"`
	CreatedAt    int64  `gorm:"not null"`
	UpdatedAt    int64  `gorm:"not null;autoUpdateTime:false"`
}
