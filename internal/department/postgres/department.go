package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hrkit/hr-management/internal/department"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) department.Repository {
	return &Repository{db: db}
}

func scopeNotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("departments.status IN ?", []string{department.StatusActive, department.StatusInactive})
}

func (r *Repository) Create(dept *department.Department) error {
	return r.db.Create(dept).Error
}

func (r *Repository) GetByID(id string) (*department.Department, error) {
	var dept department.Department
	err := r.db.Scopes(scopeNotDeleted).
		Where("id_department = ?", id).
		First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

// FindByName matches case-insensitively. withDeleted widens the scope to
// tombstoned rows for the uniqueness pre-check.
func (r *Repository) FindByName(name string, withDeleted bool) (*department.Department, error) {
	q := r.db.Where("LOWER(name) = LOWER(?)", name)
	if !withDeleted {
		q = q.Scopes(scopeNotDeleted)
	}

	var dept department.Department
	err := q.First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *Repository) Update(dept *department.Department) error {
	return r.db.Model(&department.Department{}).
		Where("id_department = ?", dept.ID).
		Updates(map[string]interface{}{
			"name":        dept.Name,
			"description": dept.Description,
			"status":      dept.Status,
		}).Error
}

func (r *Repository) SoftDelete(id string) error {
	return r.db.Model(&department.Department{}).
		Where("id_department = ?", id).
		Update("status", department.StatusDeleted).Error
}

func (r *Repository) GetAll(limit, offset int) ([]*department.Department, int64, error) {
	return r.list(r.db.Scopes(scopeNotDeleted), limit, offset)
}

func (r *Repository) Search(query string, limit, offset int) ([]*department.Department, int64, error) {
	pattern := "%" + query + "%"
	q := r.db.Scopes(scopeNotDeleted).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	return r.list(q, limit, offset)
}

func (r *Repository) list(q *gorm.DB, limit, offset int) ([]*department.Department, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Model(&department.Department{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var depts []*department.Department
	err := q.Session(&gorm.Session{}).Model(&department.Department{}).
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&depts).Error
	if err != nil {
		return nil, 0, err
	}
	return depts, total, nil
}

// CountDependentPositions queries the positions table directly; the position
// domain owns its model but the delete guard only needs a count.
func (r *Repository) CountDependentPositions(departmentID string) (int64, error) {
	var count int64
	err := r.db.Table("positions").
		Where("id_department = ? AND status IN ?", departmentID,
			[]string{department.StatusActive, department.StatusInactive}).
		Count(&count).Error
	return count, err
}

func (r *Repository) Stats() (*department.Stats, error) {
	var stats department.Stats

	type statusCounts struct {
		Total    int64 `gorm:"column:total"`
		Active   int64 `gorm:"column:active"`
		Inactive int64 `gorm:"column:inactive"`
	}
	var counts statusCounts
	err := r.db.Model(&department.Department{}).
		Scopes(scopeNotDeleted).
		Select(
			"COUNT(*) AS total",
			"COUNT(CASE WHEN status = 'active' THEN 1 END) AS active",
			"COUNT(CASE WHEN status = 'inactive' THEN 1 END) AS inactive",
		).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	stats.Total = counts.Total
	stats.Active = counts.Active
	stats.Inactive = counts.Inactive

	err = r.db.Model(&department.Department{}).
		Scopes(scopeNotDeleted).
		Select(
			"departments.id_department",
			"departments.name",
			"COUNT(positions.id_position) AS positions",
		).
		Joins("LEFT JOIN positions ON positions.id_department = departments.id_department AND positions.status IN ?",
			[]string{department.StatusActive, department.StatusInactive}).
		Group("departments.id_department, departments.name").
		Order("departments.name ASC").
		Scan(&stats.PositionsPerDept).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
