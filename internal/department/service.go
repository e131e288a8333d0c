package department

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/transport"
)

// Repository is the department persistence port. Reads exclude soft-deleted
// rows except FindByName's withDeleted mode, which the uniqueness check uses
// so a retired department still blocks its name.
type Repository interface {
	Create(dept *Department) error
	GetByID(id string) (*Department, error)
	FindByName(name string, withDeleted bool) (*Department, error)
	Update(dept *Department) error
	SoftDelete(id string) error
	GetAll(limit, offset int) ([]*Department, int64, error)
	Search(query string, limit, offset int) ([]*Department, int64, error)
	// CountDependentPositions counts non-deleted positions referencing the
	// department; the delete guard refuses while it is nonzero.
	CountDependentPositions(departmentID string) (int64, error)
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
	existing, err := s.repo.FindByName(name, true)
	if err != nil {
		s.logger.Error("department: name check failed", "error", err)
		return err
	}
	if existing != nil && existing.ID != excludeID {
		return internal.NewConflictError("A department with this name already exists", internal.ErrCodeNameTaken)
	}
	return nil
}

func (s *Service) Create(dto CreateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	if err := s.checkNameFree(name, ""); err != nil {
		return nil, err
	}

	dept := &Department{
		ID:          uuid.NewString(),
		Name:        name,
		Description: dto.Description,
		Status:      StatusActive,
	}

	if err := s.repo.Create(dept); err != nil {
		s.logger.Error("department: create failed", "error", err, "name", name)
		return nil, err
	}

	s.logger.Info("department created", "id_department", dept.ID, "name", dept.Name)
	return dept, nil
}

func (s *Service) GetByID(id string) (*Department, error) {
	dept, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("department: lookup failed", "error", err, "id_department", id)
		return nil, err
	}
	if dept == nil {
		return nil, internal.NewNotFoundError("Department not found", internal.ErrCodeDepartmentNotFound)
	}
	return dept, nil
}

func (s *Service) Update(id string, dto UpdateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dept, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name != dept.Name {
			if err := s.checkNameFree(name, dept.ID); err != nil {
				return nil, err
			}
		}
		dept.Name = name
	}
	if dto.Description != nil {
		dept.Description = dto.Description
	}
	if dto.Status != nil {
		dept.Status = *dto.Status
	}

	if err := s.repo.Update(dept); err != nil {
		s.logger.Error("department: update failed", "error", err, "id_department", id)
		return nil, err
	}

	s.logger.Info("department updated", "id_department", id)
	return dept, nil
}

// Delete soft-deletes the department; it refuses while any non-deleted
// position still points at it.
func (s *Service) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	dependents, err := s.repo.CountDependentPositions(id)
	if err != nil {
		s.logger.Error("department: dependents check failed", "error", err, "id_department", id)
		return err
	}
	if dependents > 0 {
		return internal.NewConflictError(
			"Cannot delete department: it has associated positions",
			internal.ErrCodeDepartmentInUse)
	}

	if err := s.repo.SoftDelete(id); err != nil {
		s.logger.Error("department: delete failed", "error", err, "id_department", id)
		return err
	}

	s.logger.Info("department deleted", "id_department", id)
	return nil
}

func (s *Service) List(params transport.PageParams) ([]*Department, *transport.Pagination, error) {
	depts, total, err := s.repo.GetAll(params.Limit, params.Offset())
	if err != nil {
		s.logger.Error("department: list failed", "error", err)
		return nil, nil, err
	}
	return depts, transport.NewPagination(total, params.Page, params.Limit), nil
}

func (s *Service) Search(query string, params transport.PageParams) ([]*Department, *transport.Pagination, error) {
	depts, total, err := s.repo.Search(query, params.Limit, params.Offset())
	if err != nil {
		s.logger.Error("department: search failed", "error", err)
		return nil, nil, err
	}
	return depts, transport.NewPagination(total, params.Page, params.Limit), nil
}

func (s *Service) Statistics() (*Stats, error) {
	stats, err := s.repo.Stats()
	if err != nil {
		s.logger.Error("department: stats failed", "error", err)
		return nil, err
	}
	return stats, nil
}
