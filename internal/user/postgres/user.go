package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hrkit/hr-management/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) user.Repository {
	return &Repository{db: db}
}

func scopeNotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("users.status IN ?", []string{user.StatusActive, user.StatusInactive})
}

func (r *Repository) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *Repository) GetByID(id string) (*user.User, error) {
	var u user.User
	err := r.db.Scopes(scopeNotDeleted).
		Where("id_user = ?", id).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail has no lifecycle scope: a soft-deleted account still occupies
// its email address.
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

func (r *Repository) Update(u *user.User) error {
	return r.db.Model(&user.User{}).
		Where("id_user = ?", u.ID).
		Updates(map[string]interface{}{
			"name":        u.Name,
			"email":       u.Email,
			"password":    u.Password,
			"role":        u.Role,
			"id_position": u.PositionID,
			"status":      u.Status,
		}).Error
}

func (r *Repository) SoftDelete(id string) error {
	return r.db.Model(&user.User{}).
		Where("id_user = ?", id).
		Update("status", user.StatusDeleted).Error
}

func (r *Repository) GetAll(limit, offset int) ([]*user.User, int64, error) {
	return r.list(r.db.Scopes(scopeNotDeleted), limit, offset)
}

func (r *Repository) GetByRole(role string, limit, offset int) ([]*user.User, int64, error) {
	return r.list(r.db.Scopes(scopeNotDeleted).Where("role = ?", role), limit, offset)
}

func (r *Repository) Search(query string, limit, offset int) ([]*user.User, int64, error) {
	pattern := "%" + query + "%"
	q := r.db.Scopes(scopeNotDeleted).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	return r.list(q, limit, offset)
}

func (r *Repository) list(q *gorm.DB, limit, offset int) ([]*user.User, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Model(&user.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*user.User
	err := q.Session(&gorm.Session{}).Model(&user.User{}).
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *Repository) PositionExists(positionID string) (bool, error) {
	var count int64
	err := r.db.Table("positions").
		Where("id_position = ? AND status IN ?", positionID,
			[]string{user.StatusActive, user.StatusInactive}).
		Count(&count).Error
	return count > 0, err
}
