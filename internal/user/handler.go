package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/transport"
	"github.com/hrkit/hr-management/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateUserDTO) (*PublicUser, error)
	GetByID(id string) (*PublicUser, error)
	Update(id string, dto UpdateUserDTO) (*PublicUser, error)
	UpdateProfile(id string, dto UpdateProfileDTO) (*PublicUser, error)
	Delete(id string) error
	List(params transport.PageParams) ([]PublicUser, *transport.Pagination, error)
	ListByRole(role string, params transport.PageParams) ([]PublicUser, *transport.Pagination, error)
	Search(query string, params transport.PageParams) ([]PublicUser, *transport.Pagination, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     svc,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(dto)
	if err != nil {
		h.WriteAppError(w, err, "Error creating user")
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "User created successfully", created)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, err, "Error getting user")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "User retrieved successfully", u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.WriteAppError(w, err, "Error updating user")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "User updated successfully", updated)
}

// UpdateProfile edits the authenticated caller's own record.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateProfile(identity.UserID, dto)
	if err != nil {
		h.WriteAppError(w, err, "Error updating profile")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Profile updated successfully", updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.WriteAppError(w, err, "Error deleting user")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "User deleted successfully", nil)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePageParams(r)
	users, pagination, err := h.Service.List(params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing users")
		return
	}

	h.WritePaginated(w, "Users retrieved successfully", users, pagination)
}

func (h *Handler) ListByRole(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePageParams(r)
	users, pagination, err := h.Service.ListByRole(chi.URLParam(r, "role"), params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing users")
		return
	}

	h.WritePaginated(w, "Users retrieved successfully", users, pagination)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("name")
	if query == "" {
		h.WriteError(w, http.StatusBadRequest, "Search term is required")
		return
	}

	params := h.ParsePageParams(r)
	users, pagination, err := h.Service.Search(query, params)
	if err != nil {
		h.WriteAppError(w, err, "Error searching users")
		return
	}

	h.WritePaginated(w, "Users retrieved successfully", users, pagination)
}
