package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hrkit/hr-management/internal/attendance"
	"github.com/hrkit/hr-management/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) attendance.Repository {
	return &Repository{db: db}
}

// scopeNotDeleted keeps soft-deleted rows out of every read path.
func scopeNotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("attendances.record_status IN ?", []string{attendance.RecordActive, attendance.RecordInactive})
}

func (r *Repository) Create(record *attendance.Attendance) error {
	return r.db.Create(record).Error
}

func (r *Repository) GetByID(id string) (*attendance.Attendance, error) {
	var record attendance.Attendance
	err := r.db.Scopes(scopeNotDeleted).
		Where("id_attendance = ?", id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.attachEmployees([]*attendance.Attendance{&record}); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) FindByEmployeeAndDate(employeeID, date string) (*attendance.Attendance, error) {
	var record attendance.Attendance
	err := r.db.Scopes(scopeNotDeleted).
		Where("id_employee = ? AND date = ?", employeeID, date).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *Repository) Update(record *attendance.Attendance) error {
	return r.db.Model(&attendance.Attendance{}).
		Where("id_attendance = ?", record.ID).
		Updates(map[string]interface{}{
			"date":         record.Date,
			"entry_time":   record.EntryTime,
			"exit_time":    record.ExitTime,
			"status":       record.Status,
			"observations": record.Observations,
		}).Error
}

func (r *Repository) SoftDelete(id string) error {
	return r.db.Model(&attendance.Attendance{}).
		Where("id_attendance = ?", id).
		Update("record_status", attendance.RecordDeleted).Error
}

// byDateDesc is the default ordering for list reads; created_at breaks ties
// within a day.
const byDateDesc = "date DESC, attendances.created_at DESC"

func (r *Repository) GetAll(limit, offset int) ([]*attendance.Attendance, int64, error) {
	return r.list(r.db.Scopes(scopeNotDeleted), byDateDesc, limit, offset)
}

func (r *Repository) GetByEmployee(employeeID string, limit, offset int) ([]*attendance.Attendance, int64, error) {
	return r.list(r.db.Scopes(scopeNotDeleted).Where("id_employee = ?", employeeID), byDateDesc, limit, offset)
}

// GetByDate lists one day's records ordered by the employee's name, so the
// daily roster reads alphabetically.
func (r *Repository) GetByDate(date string, limit, offset int) ([]*attendance.Attendance, int64, error) {
	q := r.db.Model(&attendance.Attendance{}).
		Select("attendances.*").
		Scopes(scopeNotDeleted).
		Joins("JOIN users ON users.id_user = attendances.id_employee").
		Where("date = ?", date)
	return r.list(q, "users.name ASC", limit, offset)
}

func (r *Repository) GetByDateRange(startDate, endDate string, limit, offset int) ([]*attendance.Attendance, int64, error) {
	return r.list(r.db.Scopes(scopeNotDeleted).Where("date BETWEEN ? AND ?", startDate, endDate), byDateDesc, limit, offset)
}

func (r *Repository) GetByStatus(status string, limit, offset int) ([]*attendance.Attendance, int64, error) {
	return r.list(r.db.Scopes(scopeNotDeleted).Where("attendances.status = ?", status), byDateDesc, limit, offset)
}

// SearchByEmployeeName matches the employee's name case-insensitively through
// a single join, so the count and the page come from the same result set.
func (r *Repository) SearchByEmployeeName(query string, limit, offset int) ([]*attendance.Attendance, int64, error) {
	q := r.db.Model(&attendance.Attendance{}).
		Select("attendances.*").
		Scopes(scopeNotDeleted).
		Joins("JOIN users ON users.id_user = attendances.id_employee").
		Where("LOWER(users.name) LIKE LOWER(?)", "%"+query+"%")
	return r.list(q, byDateDesc, limit, offset)
}

func (r *Repository) list(q *gorm.DB, order string, limit, offset int) ([]*attendance.Attendance, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Model(&attendance.Attendance{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []*attendance.Attendance
	err := q.Session(&gorm.Session{}).Model(&attendance.Attendance{}).
		Order(order).
		Limit(limit).Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachEmployees(records); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// attachEmployees resolves the joined employee summaries in one query.
func (r *Repository) attachEmployees(records []*attendance.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]string, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, record := range records {
		if !seen[record.EmployeeID] {
			seen[record.EmployeeID] = true
			ids = append(ids, record.EmployeeID)
		}
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
	for _, record := range records {
		record.Employee = byID[record.EmployeeID]
	}
	return nil
}

func (r *Repository) FindEmployee(employeeID string) (*user.Summary, error) {
	var summary user.Summary
	err := r.db.Model(&user.User{}).
		Select("id_user", "name", "email", "role").
		Where("id_user = ? AND status <> ?", employeeID, user.StatusDeleted).
		First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (r *Repository) GeneralStats() (*attendance.GeneralStats, error) {
	var stats attendance.GeneralStats
	err := r.db.Model(&attendance.Attendance{}).
		Scopes(scopeNotDeleted).
		Select(
			"COUNT(*) AS total_records",
			"COUNT(CASE WHEN status = 'present' THEN 1 END) AS present",
			"COUNT(CASE WHEN status = 'absent' THEN 1 END) AS absent",
			"COUNT(CASE WHEN status = 'late' THEN 1 END) AS late",
			"COUNT(CASE WHEN status = 'justified' THEN 1 END) AS justified",
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *Repository) EmployeeStats(employeeID string) (*attendance.EmployeeStats, error) {
	var stats attendance.EmployeeStats
	err := r.db.Model(&attendance.Attendance{}).
		Scopes(scopeNotDeleted).
		Where("id_employee = ?", employeeID).
		Select(
			"COUNT(*) AS total_days",
			"COUNT(CASE WHEN status = 'present' THEN 1 END) AS days_present",
			"COUNT(CASE WHEN status = 'absent' THEN 1 END) AS days_absent",
			"COUNT(CASE WHEN status = 'late' THEN 1 END) AS days_late",
			"COUNT(CASE WHEN status = 'justified' THEN 1 END) AS days_justified",
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *Repository) DateRangeStats(startDate, endDate string) ([]attendance.DateStats, error) {
	var stats []attendance.DateStats
	err := r.db.Model(&attendance.Attendance{}).
		Scopes(scopeNotDeleted).
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Select(
			"date",
			"COUNT(*) AS total_records",
			"COUNT(CASE WHEN status = 'present' THEN 1 END) AS present",
			"COUNT(CASE WHEN status = 'absent' THEN 1 END) AS absent",
			"COUNT(CASE WHEN status = 'late' THEN 1 END) AS late",
			"COUNT(CASE WHEN status = 'justified' THEN 1 END) AS justified",
		).
		Group("date").
		Order("date DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
