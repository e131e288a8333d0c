package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hrkit/hr-management/internal/camp"
	"github.com/hrkit/hr-management/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) camp.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(c *camp.Camp) error {
	return r.db.Create(c).Error
}

func (r *Repository) GetByID(id string) (*camp.Camp, error) {
	var c camp.Camp
	err := r.db.Where("id_camp = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.attachEmployees([]*camp.Camp{&c}); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) FindByName(name string) (*camp.Camp, error) {
	var c camp.Camp
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Update(c *camp.Camp) error {
	return r.db.Model(&camp.Camp{}).
		Where("id_camp = ?", c.ID).
		Updates(map[string]interface{}{
			"name":        c.Name,
			"description": c.Description,
			"id_employee": c.EmployeeID,
			"status":      c.Status,
		}).Error
}

func (r *Repository) Delete(id string) error {
	return r.db.Where("id_camp = ?", id).Delete(&camp.Camp{}).Error
}

func (r *Repository) GetAll(limit, offset int) ([]*camp.Camp, int64, error) {
	return r.list(r.db, limit, offset)
}

func (r *Repository) GetByEmployee(employeeID string, limit, offset int) ([]*camp.Camp, int64, error) {
	return r.list(r.db.Where("id_employee = ?", employeeID), limit, offset)
}

func (r *Repository) GetByStatus(status string, limit, offset int) ([]*camp.Camp, int64, error) {
	return r.list(r.db.Where("camps.status = ?", status), limit, offset)
}

// Search matches the camp's own fields or the assigned employee's name in one
// left-joined query, so unstaffed camps still match on their own fields and
// the count agrees with the page.
func (r *Repository) Search(query string, limit, offset int) ([]*camp.Camp, int64, error) {
	pattern := "%" + query + "%"
	q := r.db.
		Joins("LEFT JOIN users ON users.id_user = camps.id_employee").
		Where(`LOWER(camps.name) LIKE LOWER(?)
			OR LOWER(camps.description) LIKE LOWER(?)
			OR LOWER(users.name) LIKE LOWER(?)`, pattern, pattern, pattern)
	return r.list(q, limit, offset)
}

func (r *Repository) list(q *gorm.DB, limit, offset int) ([]*camp.Camp, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Model(&camp.Camp{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var camps []*camp.Camp
	err := q.Session(&gorm.Session{}).Model(&camp.Camp{}).
		Order("camps.name ASC").
		Limit(limit).Offset(offset).
		Find(&camps).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachEmployees(camps); err != nil {
		return nil, 0, err
	}
	return camps, total, nil
}

func (r *Repository) attachEmployees(camps []*camp.Camp) error {
	ids := make([]string, 0, len(camps))
	seen := make(map[string]bool, len(camps))
	for _, c := range camps {
		if c.EmployeeID != nil && !seen[*c.EmployeeID] {
			seen[*c.EmployeeID] = true
			ids = append(ids, *c.EmployeeID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var summaries []user.Summary
	err := r.db.Model(&user.User{}).
		Select("id_user", "name", "email", "role").
		Where("id_user IN ?", ids).
		Find(&summaries).Error
	if err != nil {
		return err
	}

	byID := make(map[string]*user.Summary, len(summaries))
	for i := range summaries {
		byID[summaries[i].ID] = &summaries[i]
	}
	for _, c := range camps {
		if c.EmployeeID != nil {
			c.Employee = byID[*c.EmployeeID]
		}
	}
	return nil
}

func (r *Repository) FindAssignableEmployee(employeeID string) (*user.Summary, error) {
	var summary user.Summary
	err := r.db.Model(&user.User{}).
		Select("id_user", "name", "email", "role").
		Where("id_user = ? AND role = ? AND status = ?",
			employeeID, user.RoleEmployee, user.StatusActive).
		First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (r *Repository) Stats() (*camp.Stats, error) {
	var stats camp.Stats
	err := r.db.Model(&camp.Camp{}).
		Select(
			"COUNT(*) AS total",
			"COUNT(CASE WHEN status = 'active' THEN 1 END) AS active",
			"COUNT(CASE WHEN status = 'inactive' THEN 1 END) AS inactive",
			"COUNT(CASE WHEN id_employee IS NOT NULL THEN 1 END) AS with_employee",
			"COUNT(CASE WHEN id_employee IS NULL THEN 1 END) AS without_employee",
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
