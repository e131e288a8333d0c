package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hrkit/hr-management/internal/position"
	"github.com/hrkit/hr-management/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) position.Repository {
	return &Repository{db: db}
}

func scopeNotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("positions.status IN ?", []string{position.StatusActive, position.StatusInactive})
}

func (r *Repository) Create(pos *position.Position) error {
	return r.db.Create(pos).Error
}

func (r *Repository) GetByID(id string) (*position.Position, error) {
	var pos position.Position
	err := r.db.Scopes(scopeNotDeleted).
		Where("id_position = ?", id).
		First(&pos).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.attachDepartments([]*position.Position{&pos}); err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *Repository) Update(pos *position.Position) error {
	return r.db.Model(&position.Position{}).
		Where("id_position = ?", pos.ID).
		Updates(map[string]interface{}{
			"name":          pos.Name,
			"description":   pos.Description,
			"id_department": pos.DepartmentID,
			"base_salary":   pos.BaseSalary,
			"status":        pos.Status,
		}).Error
}

func (r *Repository) SoftDelete(id string) error {
	return r.db.Model(&position.Position{}).
		Where("id_position = ?", id).
		Update("status", position.StatusDeleted).Error
}

func (r *Repository) GetAll(limit, offset int) ([]*position.Position, int64, error) {
	return r.list(r.db.Scopes(scopeNotDeleted), limit, offset)
}

func (r *Repository) GetByDepartment(departmentID string, limit, offset int) ([]*position.Position, int64, error) {
	return r.list(r.db.Scopes(scopeNotDeleted).Where("id_department = ?", departmentID), limit, offset)
}

// Search matches the position's own fields or the owning department's name in
// one joined query, so pagination counts stay consistent.
func (r *Repository) Search(query string, limit, offset int) ([]*position.Position, int64, error) {
	pattern := "%" + query + "%"
	q := r.db.Scopes(scopeNotDeleted).
		Joins("JOIN departments ON departments.id_department = positions.id_department").
		Where(`LOWER(positions.name) LIKE LOWER(?)
			OR LOWER(positions.description) LIKE LOWER(?)
			OR LOWER(departments.name) LIKE LOWER(?)`, pattern, pattern, pattern)
	return r.list(q, limit, offset)
}

func (r *Repository) list(q *gorm.DB, limit, offset int) ([]*position.Position, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Model(&position.Position{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var positions []*position.Position
	err := q.Session(&gorm.Session{}).Model(&position.Position{}).
		Order("positions.name ASC").
		Limit(limit).Offset(offset).
		Find(&positions).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachDepartments(positions); err != nil {
		return nil, 0, err
	}
	return positions, total, nil
}

func (r *Repository) attachDepartments(positions []*position.Position) error {
	if len(positions) == 0 {
		return nil
	}

	ids := make([]string, 0, len(positions))
	seen := make(map[string]bool, len(positions))
	for _, pos := range positions {
		if !seen[pos.DepartmentID] {
			seen[pos.DepartmentID] = true
			ids = append(ids, pos.DepartmentID)
		}
	}

	var refs []position.DepartmentRef
	err := r.db.Table("departments").
		Select("id_department", "name").
		Where("id_department IN ?", ids).
		Find(&refs).Error
	if err != nil {
		return err
	}

	byID := make(map[string]*position.DepartmentRef, len(refs))
	for i := range refs {
		byID[refs[i].ID] = &refs[i]
	}
	for _, pos := range positions {
		pos.Department = byID[pos.DepartmentID]
	}
	return nil
}

func (r *Repository) FindDepartment(departmentID string) (*position.DepartmentRef, error) {
	var ref position.DepartmentRef
	err := r.db.Table("departments").
		Select("id_department", "name").
		Where("id_department = ? AND status IN ?", departmentID,
			[]string{position.StatusActive, position.StatusInactive}).
		First(&ref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ref, nil
}

func (r *Repository) CountDependentUsers(positionID string) (int64, error) {
	var count int64
	err := r.db.Model(&user.User{}).
		Where("id_position = ? AND status IN ?", positionID,
			[]string{user.StatusActive, user.StatusInactive}).
		Count(&count).Error
	return count, err
}

func (r *Repository) GetEmployees(positionID string, limit, offset int) ([]*user.User, int64, error) {
	q := r.db.Model(&user.User{}).
		Where("id_position = ? AND status IN ?", positionID,
			[]string{user.StatusActive, user.StatusInactive})

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*user.User
	err := q.Session(&gorm.Session{}).
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
