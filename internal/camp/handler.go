package camp

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrkit/hr-management/internal/transport"
	"github.com/hrkit/hr-management/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateCampDTO) (*Camp, error)
	GetByID(id string) (*Camp, error)
	Update(id string, dto UpdateCampDTO) (*Camp, error)
	Delete(id string) error
	AssignEmployee(id string, dto AssignEmployeeDTO) (*Camp, error)
	RemoveEmployee(id string) (*Camp, error)
	List(params transport.PageParams) ([]*Camp, *transport.Pagination, error)
	ListByEmployee(employeeID string, params transport.PageParams) ([]*Camp, *transport.Pagination, error)
	ListByStatus(status string, params transport.PageParams) ([]*Camp, *transport.Pagination, error)
	Search(query string, params transport.PageParams) ([]*Camp, *transport.Pagination, error)
	Statistics() (*Stats, error)
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
	var dto CreateCampDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(dto)
	if err != nil {
		h.WriteAppError(w, err, "Error creating camp")
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "Camp created successfully", created)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, err, "Error getting camp")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Camp retrieved successfully", c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateCampDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.WriteAppError(w, err, "Error updating camp")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Camp updated successfully", updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.WriteAppError(w, err, "Error deleting camp")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Camp deleted successfully", nil)
}

func (h *Handler) AssignEmployee(w http.ResponseWriter, r *http.Request) {
	var dto AssignEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.AssignEmployee(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.WriteAppError(w, err, "Error assigning employee")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Employee assigned successfully", updated)
}

func (h *Handler) RemoveEmployee(w http.ResponseWriter, r *http.Request) {
	updated, err := h.Service.RemoveEmployee(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, err, "Error removing employee")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Employee removed successfully", updated)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePageParams(r)
	camps, pagination, err := h.Service.List(params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing camps")
		return
	}

	h.WritePaginated(w, "Camps retrieved successfully", camps, pagination)
}

func (h *Handler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePageParams(r)
	camps, pagination, err := h.Service.ListByEmployee(chi.URLParam(r, "employeeID"), params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing camps")
		return
	}

	h.WritePaginated(w, "Camps retrieved successfully", camps, pagination)
}

func (h *Handler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePageParams(r)
	camps, pagination, err := h.Service.ListByStatus(chi.URLParam(r, "status"), params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing camps")
		return
	}

	h.WritePaginated(w, "Camps retrieved successfully", camps, pagination)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("name")
	if query == "" {
		h.WriteError(w, http.StatusBadRequest, "Search term is required")
		return
	}

	params := h.ParsePageParams(r)
	camps, pagination, err := h.Service.Search(query, params)
	if err != nil {
		h.WriteAppError(w, err, "Error searching camps")
		return
	}

	h.WritePaginated(w, "Camps retrieved successfully", camps, pagination)
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Statistics()
	if err != nil {
		h.WriteAppError(w, err, "Error getting statistics")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Statistics retrieved successfully", stats)
}
