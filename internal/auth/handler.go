package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/transport"
	"github.com/hrkit/hr-management/internal/user"
	"github.com/hrkit/hr-management/pkg/logger"
)

type ServiceAPI interface {
	Login(dto LoginDTO) (*LoginResult, error)
	Register(dto RegisterDTO) (*user.PublicUser, error)
	ChangePassword(userID string, dto ChangePasswordDTO) error
	VerifyToken(token string) (*user.PublicUser, error)
	ValidateToken(token string) (*Claims, error)
	Profile(userID string) (*user.PublicUser, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	security internal.SecurityConfig
}

func NewHandler(svc ServiceAPI, security internal.SecurityConfig) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		security:    security,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Login(dto)
	if err != nil {
		h.WriteAppError(w, err, "Server error")
		return
	}

	h.SetTokenCookie(w, result.Token, h.security.CookieSecure, h.security.TokenDuration)
	h.WriteSuccess(w, http.StatusOK, "Login successful", result)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Register(dto)
	if err != nil {
		h.WriteAppError(w, err, "Error creating user")
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "User registered successfully", created)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.ClearTokenCookie(w, h.security.CookieSecure)
	h.WriteSuccess(w, http.StatusOK, "Session closed successfully", nil)
}

// VerifyToken is a public endpoint: the token may arrive in the body or the
// cookie, and a valid token still fails for missing or inactive users.
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var dto VerifyTokenDTO
	_ = json.NewDecoder(r.Body).Decode(&dto)

	token := dto.Token
	if token == "" {
		token = h.ExtractToken(r)
	}
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "Token not provided")
		return
	}

	verified, err := h.Service.VerifyToken(token)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeForbidden {
			// verify reports bad tokens as 401 regardless of guard semantics
			h.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		h.WriteAppError(w, err, "Error verifying token")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Valid token", verified)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNotAuthenticated, "Authorization failed")
		return
	}

	profile, err := h.Service.Profile(identity.UserID)
	if err != nil {
		h.WriteAppError(w, err, "Error getting profile")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNotAuthenticated, "Authorization failed")
		return
	}

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(identity.UserID, dto); err != nil {
		h.WriteAppError(w, err, "Error changing password")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Password updated successfully", nil)
}

// AuthMiddleware is the request gate. No token at all is a 401; a token that
// fails verification is a 403. The two cases are deliberately distinct
// signals. On success the resolved identity rides the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractToken(r)
		if token == "" {
			h.WriteAppError(w, internal.ErrMissingToken, "Authorization failed")
			return
		}

		claims, err := h.Service.ValidateToken(token)
		if err != nil {
			h.Logger.Warn("auth middleware: token rejected", "error", err)
			h.WriteAppError(w, internal.ErrInvalidToken, "Authorization failed")
			return
		}

		identity := &internal.Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}

		ctx := internal.ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route group to the given roles. It assumes the auth
// middleware already ran; without an identity it rejects as unauthenticated.
func (h *Handler) RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := internal.IdentityFromContext(r.Context())
			if !ok {
				h.WriteAppError(w, internal.ErrNotAuthenticated, "Authorization failed")
				return
			}

			if !allowed[identity.Role] {
				h.WriteAppError(w, internal.ErrForbiddenRole, "Authorization failed")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
