package user

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/transport"
)

// Repository is the user-profile persistence port. GetByID and the list reads
// exclude soft-deleted rows; FindByEmail sees every lifecycle status because
// email uniqueness is global.
type Repository interface {
	Create(u *User) error
	GetByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	Update(u *User) error
	SoftDelete(id string) error
	GetAll(limit, offset int) ([]*User, int64, error)
	GetByRole(role string, limit, offset int) ([]*User, int64, error)
	Search(query string, limit, offset int) ([]*User, int64, error)
	// PositionExists reports whether a non-deleted position holds the id.
	PositionExists(positionID string) (bool, error)
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{repo: repo, bcryptCost: bcryptCost, logger: logger}
}

func (s *Service) checkEmailFree(email, excludeID string) error {
	existing, err := s.repo.FindByEmail(email)
	if err != nil {
		s.logger.Error("user: email check failed", "error", err)
		return err
	}
	if existing != nil && existing.ID != excludeID {
		return internal.NewConflictError("Email already registered", internal.ErrCodeEmailTaken)
	}
	return nil
}

func (s *Service) checkPosition(positionID string) error {
	exists, err := s.repo.PositionExists(positionID)
	if err != nil {
		s.logger.Error("user: position check failed", "error", err, "id_position", positionID)
		return err
	}
	if !exists {
		return internal.NewNotFoundError("Position not found", internal.ErrCodePositionNotFound)
	}
	return nil
}

// Create is the administrative account creation path; it follows the same
// rules as self-registration plus the optional position reference.
func (s *Service) Create(dto CreateUserDTO) (*PublicUser, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := NormalizeEmail(dto.Email)
	if err := s.checkEmailFree(email, ""); err != nil {
		return nil, err
	}

	if dto.PositionID != nil && *dto.PositionID != "" {
		if err := s.checkPosition(*dto.PositionID); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("user: hashing failed", "error", err)
		return nil, internal.NewInternalError("Error creating user", err)
	}

	role := dto.Role
	if role == "" {
		role = RoleClient
	}

	u := &User{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(dto.Name),
		Email:      email,
		Password:   string(hash),
		Role:       role,
		PositionID: dto.PositionID,
		Status:     StatusActive,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("user: create failed", "error", err, "email", email)
		return nil, err
	}

	s.logger.Info("user created", "id_user", u.ID, "role", u.Role)

	pub := u.Public()
	return &pub, nil
}

func (s *Service) GetByID(id string) (*PublicUser, error) {
	u, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

func (s *Service) getOwned(id string) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("user: lookup failed", "error", err, "id_user", id)
		return nil, err
	}
	if u == nil {
		return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}
	return u, nil
}

func (s *Service) Update(id string, dto UpdateUserDTO) (*PublicUser, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}

	if dto.Email != nil {
		email := NormalizeEmail(*dto.Email)
		if email != u.Email {
			if err := s.checkEmailFree(email, u.ID); err != nil {
				return nil, err
			}
		}
		u.Email = email
	}

	if dto.PositionID != nil {
		if *dto.PositionID == "" {
			u.PositionID = nil
		} else {
			if err := s.checkPosition(*dto.PositionID); err != nil {
				return nil, err
			}
			u.PositionID = dto.PositionID
		}
	}

	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), s.bcryptCost)
		if err != nil {
			s.logger.Error("user: hashing failed", "error", err)
			return nil, internal.NewInternalError("Error updating user", err)
		}
		u.Password = string(hash)
	}

	if dto.Name != nil {
		u.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}
	if dto.Status != nil {
		u.Status = *dto.Status
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("user: update failed", "error", err, "id_user", id)
		return nil, err
	}

	s.logger.Info("user updated", "id_user", id)

	pub := u.Public()
	return &pub, nil
}

// UpdateProfile is the self-service path; only name and email are editable.
func (s *Service) UpdateProfile(id string, dto UpdateProfileDTO) (*PublicUser, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	return s.Update(id, UpdateUserDTO{Name: dto.Name, Email: dto.Email})
}

func (s *Service) Delete(id string) error {
	if _, err := s.getOwned(id); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(id); err != nil {
		s.logger.Error("user: delete failed", "error", err, "id_user", id)
		return err
	}

	s.logger.Info("user deleted", "id_user", id)
	return nil
}

func (s *Service) List(params transport.PageParams) ([]PublicUser, *transport.Pagination, error) {
	users, total, err := s.repo.GetAll(params.Limit, params.Offset())
	return s.page(users, total, params, err)
}

func (s *Service) ListByRole(role string, params transport.PageParams) ([]PublicUser, *transport.Pagination, error) {
	if !ValidRole(role) {
		return nil, nil, internal.NewValidationError(
			"Role must be one of: employee, admin, client", internal.ErrCodeValidationFailed)
	}
	users, total, err := s.repo.GetByRole(role, params.Limit, params.Offset())
	return s.page(users, total, params, err)
}

func (s *Service) Search(query string, params transport.PageParams) ([]PublicUser, *transport.Pagination, error) {
	users, total, err := s.repo.Search(query, params.Limit, params.Offset())
	return s.page(users, total, params, err)
}

func (s *Service) page(users []*User, total int64, params transport.PageParams, err error) ([]PublicUser, *transport.Pagination, error) {
	if err != nil {
		s.logger.Error("user: list query failed", "error", err)
		return nil, nil, err
	}
	return PublicSlice(users), transport.NewPagination(total, params.Page, params.Limit), nil
}
