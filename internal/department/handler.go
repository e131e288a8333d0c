package department

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrkit/hr-management/internal/transport"
	"github.com/hrkit/hr-management/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateDepartmentDTO) (*Department, error)
	GetByID(id string) (*Department, error)
	Update(id string, dto UpdateDepartmentDTO) (*Department, error)
	Delete(id string) error
	List(params transport.PageParams) ([]*Department, *transport.Pagination, error)
	Search(query string, params transport.PageParams) ([]*Department, *transport.Pagination, error)
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
	var dto CreateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(dto)
	if err != nil {
		h.WriteAppError(w, err, "Error creating department")
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "Department created successfully", created)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	dept, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, err, "Error getting department")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Department retrieved successfully", dept)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.WriteAppError(w, err, "Error updating department")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Department updated successfully", updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.WriteAppError(w, err, "Error deleting department")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Department deleted successfully", nil)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePageParams(r)
	depts, pagination, err := h.Service.List(params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing departments")
		return
	}

	h.WritePaginated(w, "Departments retrieved successfully", depts, pagination)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("name")
	if query == "" {
		h.WriteError(w, http.StatusBadRequest, "Search term is required")
		return
	}

	params := h.ParsePageParams(r)
	depts, pagination, err := h.Service.Search(query, params)
	if err != nil {
		h.WriteAppError(w, err, "Error searching departments")
		return
	}

	h.WritePaginated(w, "Departments retrieved successfully", depts, pagination)
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Statistics()
	if err != nil {
		h.WriteAppError(w, err, "Error getting statistics")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Statistics retrieved successfully", stats)
}
