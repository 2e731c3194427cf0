package repository

import (
	"errors"

	"keepnotes/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (d *DefaultUserRepository) FindByID(id int64) (*entity.User, error) {
	var user entity.User
	err := d.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DefaultUserRepository) FindByUsername(username string) (*entity.User, error) {
	var user entity.User
	err := d.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DefaultUserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := d.db.Model(&entity.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *DefaultUserRepository) Save(user *entity.User) error {
	return d.db.Save(user).Error
}
