package position

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrkit/hr-management/internal/transport"
	"github.com/hrkit/hr-management/internal/user"
	"github.com/hrkit/hr-management/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreatePositionDTO) (*Position, error)
	GetByID(id string) (*Position, error)
	Update(id string, dto UpdatePositionDTO) (*Position, error)
	Delete(id string) error
	List(params transport.PageParams) ([]*Position, *transport.Pagination, error)
	ListByDepartment(departmentID string, params transport.PageParams) ([]*Position, *transport.Pagination, error)
	Search(query string, params transport.PageParams) ([]*Position, *transport.Pagination, error)
	Employees(positionID string, params transport.PageParams) ([]user.PublicUser, *transport.Pagination, error)
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
	var dto CreatePositionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(dto)
	if err != nil {
		h.WriteAppError(w, err, "Error creating position")
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "Position created successfully", created)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	pos, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, err, "Error getting position")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Position retrieved successfully", pos)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdatePositionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.WriteAppError(w, err, "Error updating position")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Position updated successfully", updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.WriteAppError(w, err, "Error deleting position")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Position deleted successfully", nil)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePageParams(r)
	positions, pagination, err := h.Service.List(params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing positions")
		return
	}

	h.WritePaginated(w, "Positions retrieved successfully", positions, pagination)
}

func (h *Handler) ListByDepartment(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePageParams(r)
	positions, pagination, err := h.Service.ListByDepartment(chi.URLParam(r, "departmentID"), params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing positions")
		return
	}

	h.WritePaginated(w, "Positions retrieved successfully", positions, pagination)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("name")
	if query == "" {
		h.WriteError(w, http.StatusBadRequest, "Search term is required")
		return
	}

	params := h.ParsePageParams(r)
	positions, pagination, err := h.Service.Search(query, params)
	if err != nil {
		h.WriteAppError(w, err, "Error searching positions")
		return
	}

	h.WritePaginated(w, "Positions retrieved successfully", positions, pagination)
}

func (h *Handler) Employees(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePageParams(r)
	employees, pagination, err := h.Service.Employees(chi.URLParam(r, "id"), params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing employees")
		return
	}

	h.WritePaginated(w, "Employees retrieved successfully", employees, pagination)
}
