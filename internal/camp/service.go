package camp

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/transport"
	"github.com/hrkit/hr-management/internal/user"
)

// Repository is the camp persistence port. Camps have no tombstone, so there
// is no lifecycle scoping here; Delete removes the row.
type Repository interface {
	Create(c *Camp) error
	GetByID(id string) (*Camp, error)
	FindByName(name string) (*Camp, error)
	Update(c *Camp) error
	Delete(id string) error
	GetAll(limit, offset int) ([]*Camp, int64, error)
	GetByEmployee(employeeID string, limit, offset int) ([]*Camp, int64, error)
	GetByStatus(status string, limit, offset int) ([]*Camp, int64, error)
	// Search matches the camp's own name or description, or the assigned
	// employee's name, in a single joined query.
	Search(query string, limit, offset int) ([]*Camp, int64, error)
	// FindAssignableEmployee resolves a user only when role=employee and
	// status=active; nil otherwise.
	FindAssignableEmployee(employeeID string) (*user.Summary, error)
	Stats() (*Stats, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) checkNameFree(name, excludeID string) error {
	existing, err := s.repo.FindByName(name)
	if err != nil {
		s.logger.Error("camp: name check failed", "error", err)
		return err
	}
	if existing != nil && existing.ID != excludeID {
		return internal.NewConflictError("A camp with this name already exists", internal.ErrCodeNameTaken)
	}
	return nil
}

// resolveAssignable enforces the staffing rule: only active users with the
// employee role can hold a camp.
func (s *Service) resolveAssignable(employeeID string) (*user.Summary, error) {
	emp, err := s.repo.FindAssignableEmployee(employeeID)
	if err != nil {
		s.logger.Error("camp: employee lookup failed", "error", err, "id_employee", employeeID)
		return nil, err
	}
	if emp == nil {
		return nil, internal.NewNotFoundError(
			"Employee not found or not assignable", internal.ErrCodeEmployeeNotFound)
	}
	return emp, nil
}

func (s *Service) Create(dto CreateCampDTO) (*Camp, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	if err := s.checkNameFree(name, ""); err != nil {
		return nil, err
	}

	c := &Camp{
		ID:          uuid.NewString(),
		Name:        name,
		Description: dto.Description,
		Status:      StatusActive,
	}

	if dto.EmployeeID != nil && *dto.EmployeeID != "" {
		emp, err := s.resolveAssignable(*dto.EmployeeID)
		if err != nil {
			return nil, err
		}
		c.EmployeeID = dto.EmployeeID
		c.Employee = emp
	}

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("camp: create failed", "error", err, "name", name)
		return nil, err
	}

	s.logger.Info("camp created", "id_camp", c.ID, "name", c.Name)
	return c, nil
}

func (s *Service) GetByID(id string) (*Camp, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("camp: lookup failed", "error", err, "id_camp", id)
		return nil, err
	}
	if c == nil {
		return nil, internal.NewNotFoundError("Camp not found", internal.ErrCodeCampNotFound)
	}
	return c, nil
}

func (s *Service) Update(id string, dto UpdateCampDTO) (*Camp, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name != c.Name {
			if err := s.checkNameFree(name, c.ID); err != nil {
				return nil, err
			}
		}
		c.Name = name
	}
	if dto.Description != nil {
		c.Description = dto.Description
	}
	if dto.EmployeeID != nil {
		if *dto.EmployeeID == "" {
			c.EmployeeID = nil
			c.Employee = nil
		} else {
			emp, err := s.resolveAssignable(*dto.EmployeeID)
			if err != nil {
				return nil, err
			}
			c.EmployeeID = dto.EmployeeID
			c.Employee = emp
		}
	}
	if dto.Status != nil {
		c.Status = *dto.Status
	}

	if err := s.repo.Update(c); err != nil {
		s.logger.Error("camp: update failed", "error", err, "id_camp", id)
		return nil, err
	}

	s.logger.Info("camp updated", "id_camp", id)
	return c, nil
}

// Delete removes the camp permanently.
func (s *Service) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("camp: delete failed", "error", err, "id_camp", id)
		return err
	}

	s.logger.Info("camp deleted", "id_camp", id)
	return nil
}

func (s *Service) AssignEmployee(id string, dto AssignEmployeeDTO) (*Camp, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	emp, err := s.resolveAssignable(dto.EmployeeID)
	if err != nil {
		return nil, err
	}

	c.EmployeeID = &dto.EmployeeID
	c.Employee = emp

	if err := s.repo.Update(c); err != nil {
		s.logger.Error("camp: assign failed", "error", err, "id_camp", id)
		return nil, err
	}

	s.logger.Info("camp employee assigned", "id_camp", id, "id_employee", dto.EmployeeID)
	return c, nil
}

func (s *Service) RemoveEmployee(id string) (*Camp, error) {
	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	c.EmployeeID = nil
	c.Employee = nil

	if err := s.repo.Update(c); err != nil {
		s.logger.Error("camp: remove employee failed", "error", err, "id_camp", id)
		return nil, err
	}

	s.logger.Info("camp employee removed", "id_camp", id)
	return c, nil
}

func (s *Service) List(params transport.PageParams) ([]*Camp, *transport.Pagination, error) {
	camps, total, err := s.repo.GetAll(params.Limit, params.Offset())
	return s.page(camps, total, params, err)
}

func (s *Service) ListByEmployee(employeeID string, params transport.PageParams) ([]*Camp, *transport.Pagination, error) {
	camps, total, err := s.repo.GetByEmployee(employeeID, params.Limit, params.Offset())
	return s.page(camps, total, params, err)
}

func (s *Service) ListByStatus(status string, params transport.PageParams) ([]*Camp, *transport.Pagination, error) {
	if !ValidStatus(status) {
		return nil, nil, internal.NewValidationError(
			"Status must be one of: active, inactive", internal.ErrCodeInvalidStatus)
	}
	camps, total, err := s.repo.GetByStatus(status, params.Limit, params.Offset())
	return s.page(camps, total, params, err)
}

func (s *Service) Search(query string, params transport.PageParams) ([]*Camp, *transport.Pagination, error) {
	camps, total, err := s.repo.Search(query, params.Limit, params.Offset())
	return s.page(camps, total, params, err)
}

func (s *Service) page(camps []*Camp, total int64, params transport.PageParams, err error) ([]*Camp, *transport.Pagination, error) {
	if err != nil {
		s.logger.Error("camp: list query failed", "error", err)
		return nil, nil, err
	}
	return camps, transport.NewPagination(total, params.Page, params.Limit), nil
}

func (s *Service) Statistics() (*Stats, error) {
	stats, err := s.repo.Stats()
	if err != nil {
		s.logger.Error("camp: stats failed", "error", err)
		return nil, err
	}
	return stats, nil
}
