package sqlite

import (
	"time"

	"keepnotes/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Init opens (or creates) the SQLite database at the given path and runs the
// schema migration. Tests pass ":memory:".
func Init(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&entity.User{}, &entity.Note{}, &entity.Profile{})
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
