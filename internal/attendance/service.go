package attendance

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/transport"
	"github.com/hrkit/hr-management/internal/user"
	"github.com/hrkit/hr-management/internal/validation"
)

// Repository is the ledger's persistence port. Every read scopes to
// non-deleted record statuses unless noted otherwise.
type Repository interface {
	Create(record *Attendance) error
	GetByID(id string) (*Attendance, error)
	// FindByEmployeeAndDate looks for the non-deleted row occupying the
	// (employee, date) slot; nil when the slot is free.
	FindByEmployeeAndDate(employeeID, date string) (*Attendance, error)
	Update(record *Attendance) error
	SoftDelete(id string) error

	GetAll(limit, offset int) ([]*Attendance, int64, error)
	GetByEmployee(employeeID string, limit, offset int) ([]*Attendance, int64, error)
	GetByDate(date string, limit, offset int) ([]*Attendance, int64, error)
	GetByDateRange(startDate, endDate string, limit, offset int) ([]*Attendance, int64, error)
	GetByStatus(status string, limit, offset int) ([]*Attendance, int64, error)
	SearchByEmployeeName(query string, limit, offset int) ([]*Attendance, int64, error)

	GeneralStats() (*GeneralStats, error)
	EmployeeStats(employeeID string) (*EmployeeStats, error)
	DateRangeStats(startDate, endDate string) ([]DateStats, error)

	FindEmployee(employeeID string) (*user.Summary, error)
}

type Service struct {
	repo               Repository
	logger             *slog.Logger
	allowExitOverwrite bool
	now                func() time.Time
}

func NewService(repo Repository, logger *slog.Logger, allowExitOverwrite bool) *Service {
	return &Service{
		repo:               repo,
		logger:             logger,
		allowExitOverwrite: allowExitOverwrite,
		now:                time.Now,
	}
}

func (s *Service) resolveEmployee(employeeID string) (*user.Summary, error) {
	emp, err := s.repo.FindEmployee(employeeID)
	if err != nil {
		s.logger.Error("attendance: employee lookup failed", "error", err, "id_employee", employeeID)
		return nil, err
	}
	if emp == nil {
		return nil, internal.NewNotFoundError("Employee not found", internal.ErrCodeEmployeeNotFound)
	}
	return emp, nil
}

// Create registers a full attendance record. The (employee, date) slot must
// be free among non-deleted records; the database enforces the same rule, so
// concurrent creates lose there rather than here.
func (s *Service) Create(dto CreateAttendanceDTO) (*Attendance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.resolveEmployee(dto.EmployeeID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmployeeAndDate(dto.EmployeeID, dto.Date)
	if err != nil {
		s.logger.Error("attendance: duplicate check failed", "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError(
			"An attendance record already exists for this employee on this date",
			internal.ErrCodeAttendanceExists)
	}

	record := &Attendance{
		ID:           uuid.NewString(),
		EmployeeID:   dto.EmployeeID,
		Date:         dto.Date,
		EntryTime:    dto.EntryTime,
		ExitTime:     dto.ExitTime,
		Status:       dto.Status,
		Observations: dto.Observations,
		RecordStatus: RecordActive,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("attendance: create failed", "error", err, "id_employee", dto.EmployeeID, "date", dto.Date)
		return nil, err
	}

	s.logger.Info("attendance created", "id_attendance", record.ID, "id_employee", record.EmployeeID, "date", record.Date)

	record.Employee = emp
	record.AttachWorkedHours()
	return record, nil
}

// RegisterEntry clocks an employee in for the day. Date defaults to today,
// status to present.
func (s *Service) RegisterEntry(dto RegisterEntryDTO) (*Attendance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	date := s.now().Format("2006-01-02")
	if dto.Date != nil && *dto.Date != "" {
		date = *dto.Date
	}

	status := StatusPresent
	if dto.Status != nil && *dto.Status != "" {
		status = *dto.Status
	}

	entry := dto.EntryTime
	return s.Create(CreateAttendanceDTO{
		EmployeeID: dto.EmployeeID,
		Date:       date,
		EntryTime:  &entry,
		Status:     status,
	})
}

// RegisterExit stamps the exit time on an open record. The exit time is
// write-once through this operation.
func (s *Service) RegisterExit(id string, dto RegisterExitDTO) (*Attendance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}

	if record.HasExit() {
		return nil, internal.NewConflictError(
			"Exit time has already been registered for this record",
			internal.ErrCodeExitAlreadySet)
	}

	exit := dto.ExitTime
	record.ExitTime = &exit

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("attendance: register exit failed", "error", err, "id_attendance", id)
		return nil, err
	}

	s.logger.Info("attendance exit registered", "id_attendance", id, "exit_time", exit)

	record.AttachWorkedHours()
	return record, nil
}

// Update applies a partial edit. Moving the record to another date re-checks
// the slot. Overwriting an already-set exit time is allowed only when the
// service was configured for it.
func (s *Service) Update(id string, dto UpdateAttendanceDTO) (*Attendance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}

	if dto.ExitTime != nil && record.HasExit() && !s.allowExitOverwrite {
		return nil, internal.NewConflictError(
			"Exit time has already been registered for this record",
			internal.ErrCodeExitAlreadySet)
	}

	if dto.Date != nil && *dto.Date != record.Date {
		occupied, err := s.repo.FindByEmployeeAndDate(record.EmployeeID, *dto.Date)
		if err != nil {
			s.logger.Error("attendance: duplicate check failed", "error", err)
			return nil, err
		}
		if occupied != nil && occupied.ID != record.ID {
			return nil, internal.NewConflictError(
				"An attendance record already exists for this employee on this date",
				internal.ErrCodeAttendanceExists)
		}
		record.Date = *dto.Date
	}

	if dto.EntryTime != nil {
		record.EntryTime = dto.EntryTime
	}
	if dto.ExitTime != nil {
		record.ExitTime = dto.ExitTime
	}
	if dto.Status != nil {
		record.Status = *dto.Status
	}
	if dto.Observations != nil {
		record.Observations = dto.Observations
	}

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("attendance: update failed", "error", err, "id_attendance", id)
		return nil, err
	}

	s.logger.Info("attendance updated", "id_attendance", id)

	record.AttachWorkedHours()
	return record, nil
}

// Delete retires the record. The row stays; its (employee, date) slot frees
// up for a future record.
func (s *Service) Delete(id string) error {
	if _, err := s.getOwned(id); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(id); err != nil {
		s.logger.Error("attendance: delete failed", "error", err, "id_attendance", id)
		return err
	}

	s.logger.Info("attendance deleted", "id_attendance", id)
	return nil
}

func (s *Service) GetByID(id string) (*Attendance, error) {
	record, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}
	record.AttachWorkedHours()
	return record, nil
}

func (s *Service) getOwned(id string) (*Attendance, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("attendance: lookup failed", "error", err, "id_attendance", id)
		return nil, err
	}
	if record == nil {
		return nil, internal.NewNotFoundError("Attendance record not found", internal.ErrCodeAttendanceNotFound)
	}
	return record, nil
}

func (s *Service) List(params transport.PageParams) ([]*Attendance, *transport.Pagination, error) {
	records, total, err := s.repo.GetAll(params.Limit, params.Offset())
	return s.page(records, total, params, err)
}

func (s *Service) ListByEmployee(employeeID string, params transport.PageParams) ([]*Attendance, *transport.Pagination, error) {
	if _, err := s.resolveEmployee(employeeID); err != nil {
		return nil, nil, err
	}
	records, total, err := s.repo.GetByEmployee(employeeID, params.Limit, params.Offset())
	return s.page(records, total, params, err)
}

func (s *Service) ListByDate(date string, params transport.PageParams) ([]*Attendance, *transport.Pagination, error) {
	v := validation.NewValidator()
	v.Field("date", date).Required().DateFormat()
	if err := v.Validate(); err != nil {
		return nil, nil, err
	}
	records, total, err := s.repo.GetByDate(date, params.Limit, params.Offset())
	return s.page(records, total, params, err)
}

func (s *Service) ListByDateRange(dto DateRangeDTO, params transport.PageParams) ([]*Attendance, *transport.Pagination, error) {
	if err := dto.Validate(); err != nil {
		return nil, nil, err
	}
	records, total, err := s.repo.GetByDateRange(dto.StartDate, dto.EndDate, params.Limit, params.Offset())
	return s.page(records, total, params, err)
}

func (s *Service) ListByStatus(status string, params transport.PageParams) ([]*Attendance, *transport.Pagination, error) {
	if !ValidStatus(status) {
		return nil, nil, internal.NewValidationError(
			fmt.Sprintf("Invalid status: %s", status), internal.ErrCodeInvalidStatus)
	}
	records, total, err := s.repo.GetByStatus(status, params.Limit, params.Offset())
	return s.page(records, total, params, err)
}

func (s *Service) Search(query string, params transport.PageParams) ([]*Attendance, *transport.Pagination, error) {
	records, total, err := s.repo.SearchByEmployeeName(query, params.Limit, params.Offset())
	return s.page(records, total, params, err)
}

func (s *Service) page(records []*Attendance, total int64, params transport.PageParams, err error) ([]*Attendance, *transport.Pagination, error) {
	if err != nil {
		s.logger.Error("attendance: list query failed", "error", err)
		return nil, nil, err
	}
	for _, record := range records {
		record.AttachWorkedHours()
	}
	return records, transport.NewPagination(total, params.Page, params.Limit), nil
}

func (s *Service) GeneralStatistics() (*GeneralStats, error) {
	stats, err := s.repo.GeneralStats()
	if err != nil {
		s.logger.Error("attendance: general stats failed", "error", err)
		return nil, err
	}
	return stats, nil
}

// EmployeeStatistics summarizes one employee's history. The percentage is
// only computed when there is at least one record.
func (s *Service) EmployeeStatistics(employeeID string) (*EmployeeStats, error) {
	if _, err := s.resolveEmployee(employeeID); err != nil {
		return nil, err
	}

	stats, err := s.repo.EmployeeStats(employeeID)
	if err != nil {
		s.logger.Error("attendance: employee stats failed", "error", err, "id_employee", employeeID)
		return nil, err
	}

	if stats.TotalDays > 0 {
		stats.AttendancePercentage = fmt.Sprintf("%.2f",
			float64(stats.DaysPresent)/float64(stats.TotalDays)*100)
	}

	return stats, nil
}

func (s *Service) DateRangeStatistics(dto DateRangeDTO) ([]DateStats, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	stats, err := s.repo.DateRangeStats(dto.StartDate, dto.EndDate)
	if err != nil {
		s.logger.Error("attendance: date range stats failed", "error", err)
		return nil, err
	}
	return stats, nil
}
