package auth

import (
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/user"
)

// Service owns credential operations: login, registration, password change,
// token verification. Token issuing is delegated to the TokenGenerator.
type Service struct {
	repo       UserRepository
	tokens     TokenGenerator
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo UserRepository, tokens TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Login verifies credentials and issues a session token. A missing user, a
// non-active account and a wrong password all collapse into the same
// invalid-credentials rejection so callers cannot probe which emails exist.
func (s *Service) Login(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	found, err := s.repo.FindByEmail(user.NormalizeEmail(dto.Email))
	if err != nil {
		s.logger.Error("login: lookup failed", "error", err)
		return nil, err
	}
	if found == nil {
		return nil, internal.ErrInvalidCredentials
	}

	if !found.IsActiveUser() {
		s.logger.Warn("login rejected: inactive user", "user_id", found.ID)
		return nil, internal.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(found.ID, found.Email, found.Role)
	if err != nil {
		s.logger.Error("login: token generation failed", "error", err, "user_id", found.ID)
		return nil, internal.NewInternalError("Server error", err)
	}

	s.logger.Info("login successful", "user_id", found.ID, "role", found.Role)

	return &LoginResult{User: found.Public(), Token: token}, nil
}

// Register creates an account. Email uniqueness is global: a soft-deleted
// user still occupies its address.
func (s *Service) Register(dto RegisterDTO) (*user.PublicUser, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := user.NormalizeEmail(dto.Email)

	existing, err := s.repo.FindByEmail(email)
	if err != nil {
		s.logger.Error("register: lookup failed", "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError("Email already registered", internal.ErrCodeEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("register: hashing failed", "error", err)
		return nil, internal.NewInternalError("Error creating user", err)
	}

	role := dto.Role
	if role == "" {
		role = user.RoleClient
	}

	newUser := &user.User{
		ID:       uuid.NewString(),
		Name:     dto.Name,
		Email:    email,
		Password: string(hash),
		Role:     role,
		Status:   user.StatusActive,
	}

	if err := s.repo.Create(newUser); err != nil {
		s.logger.Error("register: create failed", "error", err, "email", email)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", newUser.ID, "role", newUser.Role)

	pub := newUser.Public()
	return &pub, nil
}

// ChangePassword re-verifies the current secret before accepting the new one.
func (s *Service) ChangePassword(userID string, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	found, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("change password: lookup failed", "error", err, "user_id", userID)
		return err
	}
	if found == nil {
		return internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(dto.CurrentPassword)); err != nil {
		return internal.NewUnauthorizedError("Current password incorrect", internal.ErrCodeInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), s.bcryptCost)
	if err != nil {
		s.logger.Error("change password: hashing failed", "error", err)
		return internal.NewInternalError("Error changing password", err)
	}

	if err := s.repo.UpdatePassword(userID, string(hash)); err != nil {
		s.logger.Error("change password: update failed", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}

// VerifyToken validates a raw token and resolves it to its live account,
// rejecting tokens whose user has since gone missing or inactive.
func (s *Service) VerifyToken(token string) (*user.PublicUser, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	found, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		s.logger.Error("verify token: lookup failed", "error", err, "user_id", claims.UserID)
		return nil, err
	}
	if found == nil {
		return nil, internal.NewUnauthorizedError("User not found", internal.ErrCodeUserNotFound)
	}

	if !found.IsActiveUser() {
		return nil, internal.ErrUserInactive
	}

	pub := found.Public()
	return &pub, nil
}

// ValidateToken exposes bare claim verification for the auth middleware.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return s.tokens.Validate(token)
}

// Profile returns the redacted record for the authenticated caller.
func (s *Service) Profile(userID string) (*user.PublicUser, error) {
	found, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("profile: lookup failed", "error", err, "user_id", userID)
		return nil, err
	}
	if found == nil {
		return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}

	pub := found.Public()
	return &pub, nil
}
