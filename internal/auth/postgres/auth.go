package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hrkit/hr-management/internal/auth"
	"github.com/hrkit/hr-management/internal/user"
)

// Repository is the credential store. Unlike the profile repositories it
// never filters by lifecycle status: login and registration must see
// soft-deleted accounts too.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.UserRepository {
	return &Repository{db: db}
}

func (r *Repository) FindByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByID(id string) (*user.User, error) {
	var u user.User
	err := r.db.Where("id_user = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *Repository) UpdatePassword(id, passwordHash string) error {
	return r.db.Model(&user.User{}).
		Where("id_user = ?", id).
		Update("password", passwordHash).Error
}
