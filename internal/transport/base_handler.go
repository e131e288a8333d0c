package transport

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/pkg/logger"
)

const (
	TokenCookieName = "token"

	DefaultPage  = 1
	DefaultLimit = 10
)

// Envelope is the uniform response shape shared by every endpoint.
type Envelope struct {
	Success    bool                       `json:"success"`
	Message    string                     `json:"message"`
	Data       interface{}                `json:"data,omitempty"`
	Pagination *Pagination                `json:"pagination,omitempty"`
	Errors     []internal.ValidationError `json:"errors,omitempty"`
	Error      string                     `json:"error,omitempty"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(total int64, page, limit int) *Pagination {
	return &Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// PageParams carries the page/limit pair parsed from query parameters.
type PageParams struct {
	Page  int
	Limit int
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

func (h *BaseHandler) writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteSuccess writes a success envelope with optional data.
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	h.writeEnvelope(w, status, Envelope{Success: true, Message: message, Data: data})
}

// WritePaginated writes a success envelope carrying a page of items.
func (h *BaseHandler) WritePaginated(w http.ResponseWriter, message string, data interface{}, p *Pagination) {
	h.writeEnvelope(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, Pagination: p})
}

// WriteError writes a failure envelope with the given status and message.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.writeEnvelope(w, status, Envelope{Success: false, Message: message})
}

// WriteAppError maps service errors to the envelope. AppError carries its own
// status; anything else is an unhandled failure reported as 500 with the raw
// error text in the envelope's error field.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err error, fallbackMessage string) {
	if appErr, ok := internal.IsAppError(err); ok {
		env := Envelope{Success: false, Message: appErr.Message}
		if details, ok := appErr.Details.(internal.ValidationErrors); ok {
			env.Errors = details.Errors
		}
		h.Logger.Warn("request failed", "status", appErr.StatusCode, "code", appErr.Code, "message", appErr.Message)
		h.writeEnvelope(w, appErr.StatusCode, env)
		return
	}

	h.Logger.Error(fallbackMessage, "error", err)
	h.writeEnvelope(w, http.StatusInternalServerError, Envelope{
		Success: false,
		Message: fallbackMessage,
		Error:   err.Error(),
	})
}

// ExtractToken locates the session token: the token cookie wins, the
// Authorization bearer header is the fallback.
func (h *BaseHandler) ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// SetTokenCookie installs the session cookie for browser clients.
func (h *BaseHandler) SetTokenCookie(w http.ResponseWriter, token string, secure bool, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   int(maxAge.Seconds()),
	})
}

// ClearTokenCookie expires the session cookie immediately.
func (h *BaseHandler) ClearTokenCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteNoneMode,
		Expires:  time.Unix(0, 0),
	})
}

// ParsePageParams reads page and limit query parameters, coercing bad or
// missing values to the defaults.
func (h *BaseHandler) ParsePageParams(r *http.Request) PageParams {
	params := PageParams{Page: DefaultPage, Limit: DefaultLimit}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			params.Page = p
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			params.Limit = l
		}
	}

	return params
}
