package position

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/transport"
	"github.com/hrkit/hr-management/internal/user"
)

// Repository is the position persistence port. Reads exclude soft-deleted
// rows and resolve the owning department reference.
type Repository interface {
	Create(pos *Position) error
	GetByID(id string) (*Position, error)
	Update(pos *Position) error
	SoftDelete(id string) error
	GetAll(limit, offset int) ([]*Position, int64, error)
	GetByDepartment(departmentID string, limit, offset int) ([]*Position, int64, error)
	// Search matches the position's own name or description, or the owning
	// department's name, in a single joined query.
	Search(query string, limit, offset int) ([]*Position, int64, error)
	// FindDepartment resolves a non-deleted department reference; nil when
	// absent.
	FindDepartment(departmentID string) (*DepartmentRef, error)
	// CountDependentUsers counts non-deleted users holding the position; the
	// delete guard refuses while it is nonzero.
	CountDependentUsers(positionID string) (int64, error)
	GetEmployees(positionID string, limit, offset int) ([]*user.User, int64, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) resolveDepartment(departmentID string) (*DepartmentRef, error) {
	dept, err := s.repo.FindDepartment(departmentID)
	if err != nil {
		s.logger.Error("position: department lookup failed", "error", err, "id_department", departmentID)
		return nil, err
	}
	if dept == nil {
		return nil, internal.NewNotFoundError("Department not found", internal.ErrCodeDepartmentNotFound)
	}
	return dept, nil
}

func (s *Service) Create(dto CreatePositionDTO) (*Position, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dept, err := s.resolveDepartment(dto.DepartmentID)
	if err != nil {
		return nil, err
	}

	pos := &Position{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(dto.Name),
		Description:  dto.Description,
		DepartmentID: dto.DepartmentID,
		Status:       StatusActive,
	}
	if dto.BaseSalary != nil {
		pos.BaseSalary = *dto.BaseSalary
	}

	if err := s.repo.Create(pos); err != nil {
		s.logger.Error("position: create failed", "error", err, "name", pos.Name)
		return nil, err
	}

	s.logger.Info("position created", "id_position", pos.ID, "name", pos.Name)

	pos.Department = dept
	return pos, nil
}

func (s *Service) GetByID(id string) (*Position, error) {
	pos, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("position: lookup failed", "error", err, "id_position", id)
		return nil, err
	}
	if pos == nil {
		return nil, internal.NewNotFoundError("Position not found", internal.ErrCodePositionNotFound)
	}
	return pos, nil
}

func (s *Service) Update(id string, dto UpdatePositionDTO) (*Position, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	pos, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.DepartmentID != nil && *dto.DepartmentID != pos.DepartmentID {
		dept, err := s.resolveDepartment(*dto.DepartmentID)
		if err != nil {
			return nil, err
		}
		pos.DepartmentID = *dto.DepartmentID
		pos.Department = dept
	}

	if dto.Name != nil {
		pos.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Description != nil {
		pos.Description = dto.Description
	}
	if dto.BaseSalary != nil {
		pos.BaseSalary = *dto.BaseSalary
	}
	if dto.Status != nil {
		pos.Status = *dto.Status
	}

	if err := s.repo.Update(pos); err != nil {
		s.logger.Error("position: update failed", "error", err, "id_position", id)
		return nil, err
	}

	s.logger.Info("position updated", "id_position", id)
	return pos, nil
}

// Delete soft-deletes the position; it refuses while any non-deleted user
// still holds it.
func (s *Service) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	dependents, err := s.repo.CountDependentUsers(id)
	if err != nil {
		s.logger.Error("position: dependents check failed", "error", err, "id_position", id)
		return err
	}
	if dependents > 0 {
		return internal.NewConflictError(
			"Cannot delete position: it has associated employees",
			internal.ErrCodePositionInUse)
	}

	if err := s.repo.SoftDelete(id); err != nil {
		s.logger.Error("position: delete failed", "error", err, "id_position", id)
		return err
	}

	s.logger.Info("position deleted", "id_position", id)
	return nil
}

func (s *Service) List(params transport.PageParams) ([]*Position, *transport.Pagination, error) {
	positions, total, err := s.repo.GetAll(params.Limit, params.Offset())
	if err != nil {
		s.logger.Error("position: list failed", "error", err)
		return nil, nil, err
	}
	return positions, transport.NewPagination(total, params.Page, params.Limit), nil
}

// ListByDepartment requires the department to exist, distinguishing an
// unknown department (404) from one with no positions (empty page).
func (s *Service) ListByDepartment(departmentID string, params transport.PageParams) ([]*Position, *transport.Pagination, error) {
	if _, err := s.resolveDepartment(departmentID); err != nil {
		return nil, nil, err
	}

	positions, total, err := s.repo.GetByDepartment(departmentID, params.Limit, params.Offset())
	if err != nil {
		s.logger.Error("position: list by department failed", "error", err)
		return nil, nil, err
	}
	return positions, transport.NewPagination(total, params.Page, params.Limit), nil
}

func (s *Service) Search(query string, params transport.PageParams) ([]*Position, *transport.Pagination, error) {
	positions, total, err := s.repo.Search(query, params.Limit, params.Offset())
	if err != nil {
		s.logger.Error("position: search failed", "error", err)
		return nil, nil, err
	}
	return positions, transport.NewPagination(total, params.Page, params.Limit), nil
}

// Employees lists the users holding the position as public projections.
func (s *Service) Employees(positionID string, params transport.PageParams) ([]user.PublicUser, *transport.Pagination, error) {
	if _, err := s.GetByID(positionID); err != nil {
		return nil, nil, err
	}

	users, total, err := s.repo.GetEmployees(positionID, params.Limit, params.Offset())
	if err != nil {
		s.logger.Error("position: employees query failed", "error", err, "id_position", positionID)
		return nil, nil, err
	}
	return user.PublicSlice(users), transport.NewPagination(total, params.Page, params.Limit), nil
}
