package attendance

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrkit/hr-management/internal/transport"
	"github.com/hrkit/hr-management/pkg/logger"
)

type ServiceAPI interface {
	Create(dto CreateAttendanceDTO) (*Attendance, error)
	RegisterEntry(dto RegisterEntryDTO) (*Attendance, error)
	RegisterExit(id string, dto RegisterExitDTO) (*Attendance, error)
	Update(id string, dto UpdateAttendanceDTO) (*Attendance, error)
	Delete(id string) error
	GetByID(id string) (*Attendance, error)
	List(params transport.PageParams) ([]*Attendance, *transport.Pagination, error)
	ListByEmployee(employeeID string, params transport.PageParams) ([]*Attendance, *transport.Pagination, error)
	ListByDate(date string, params transport.PageParams) ([]*Attendance, *transport.Pagination, error)
	ListByDateRange(dto DateRangeDTO, params transport.PageParams) ([]*Attendance, *transport.Pagination, error)
	ListByStatus(status string, params transport.PageParams) ([]*Attendance, *transport.Pagination, error)
	Search(query string, params transport.PageParams) ([]*Attendance, *transport.Pagination, error)
	GeneralStatistics() (*GeneralStats, error)
	EmployeeStatistics(employeeID string) (*EmployeeStats, error)
	DateRangeStatistics(dto DateRangeDTO) ([]DateStats, error)
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
	var dto CreateAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(dto)
	if err != nil {
		h.WriteAppError(w, err, "Error creating attendance record")
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "Attendance record created successfully", created)
}

func (h *Handler) RegisterEntry(w http.ResponseWriter, r *http.Request) {
	var dto RegisterEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.RegisterEntry(dto)
	if err != nil {
		h.WriteAppError(w, err, "Error registering entry")
		return
	}

	h.WriteSuccess(w, http.StatusCreated, "Entry registered successfully", created)
}

func (h *Handler) RegisterExit(w http.ResponseWriter, r *http.Request) {
	var dto RegisterExitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.RegisterExit(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.WriteAppError(w, err, "Error registering exit")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Exit registered successfully", updated)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	record, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, err, "Error getting attendance record")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Attendance record retrieved successfully", record)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.WriteAppError(w, err, "Error updating attendance record")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Attendance record updated successfully", updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.WriteAppError(w, err, "Error deleting attendance record")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Attendance record deleted successfully", nil)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePageParams(r)
	records, pagination, err := h.Service.List(params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing attendance records")
		return
	}

	h.WritePaginated(w, "Attendance records retrieved successfully", records, pagination)
}

func (h *Handler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePageParams(r)
	records, pagination, err := h.Service.ListByEmployee(chi.URLParam(r, "employeeID"), params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing attendance records")
		return
	}

	h.WritePaginated(w, "Attendance records retrieved successfully", records, pagination)
}

func (h *Handler) ListByDate(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePageParams(r)
	records, pagination, err := h.Service.ListByDate(chi.URLParam(r, "date"), params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing attendance records")
		return
	}

	h.WritePaginated(w, "Attendance records retrieved successfully", records, pagination)
}

func (h *Handler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	dto := DateRangeDTO{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	params := h.ParsePageParams(r)
	records, pagination, err := h.Service.ListByDateRange(dto, params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing attendance records")
		return
	}

	h.WritePaginated(w, "Attendance records retrieved successfully", records, pagination)
}

func (h *Handler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePageParams(r)
	records, pagination, err := h.Service.ListByStatus(chi.URLParam(r, "status"), params)
	if err != nil {
		h.WriteAppError(w, err, "Error listing attendance records")
		return
	}

	h.WritePaginated(w, "Attendance records retrieved successfully", records, pagination)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("name")
	if query == "" {
		h.WriteError(w, http.StatusBadRequest, "Search term is required")
		return
	}

	params := h.ParsePageParams(r)
	records, pagination, err := h.Service.Search(query, params)
	if err != nil {
		h.WriteAppError(w, err, "Error searching attendance records")
		return
	}

	h.WritePaginated(w, "Attendance records retrieved successfully", records, pagination)
}

func (h *Handler) GeneralStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GeneralStatistics()
	if err != nil {
		h.WriteAppError(w, err, "Error getting statistics")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Statistics retrieved successfully", stats)
}

func (h *Handler) EmployeeStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.EmployeeStatistics(chi.URLParam(r, "employeeID"))
	if err != nil {
		h.WriteAppError(w, err, "Error getting statistics")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Statistics retrieved successfully", stats)
}

func (h *Handler) DateRangeStatistics(w http.ResponseWriter, r *http.Request) {
	dto := DateRangeDTO{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	stats, err := h.Service.DateRangeStatistics(dto)
	if err != nil {
		h.WriteAppError(w, err, "Error getting statistics")
		return
	}

	h.WriteSuccess(w, http.StatusOK, "Statistics retrieved successfully", stats)
}
