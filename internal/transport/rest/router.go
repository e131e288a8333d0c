package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/attendance"
	"github.com/hrkit/hr-management/internal/auth"
	"github.com/hrkit/hr-management/internal/camp"
	"github.com/hrkit/hr-management/internal/department"
	"github.com/hrkit/hr-management/internal/position"
	"github.com/hrkit/hr-management/internal/transport/middleware"
	"github.com/hrkit/hr-management/internal/transport/swagger"
	"github.com/hrkit/hr-management/internal/user"
)

type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Attendance *attendance.Handler
	Department *department.Handler
	Position   *position.Handler
	Camp       *camp.Handler
}

// RegisterAllRoutes wires the full API surface. Everything except login,
// register, verify-token and the health endpoints sits behind the auth guard.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, cfg internal.ServerConfig, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/register", h.Auth.Register)
			sr.Post("/logout", h.Auth.Logout)
			sr.Post("/verify-token", h.Auth.VerifyToken)

			sr.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)
				pr.Get("/profile", h.Auth.Profile)
				pr.Put("/change-password", h.Auth.ChangePassword)
			})
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			adminOnly := h.Auth.RequireRole(user.RoleAdmin)

			pr.Route("/users", func(ur chi.Router) {
				ur.Put("/profile", h.User.UpdateProfile)

				ur.Group(func(ar chi.Router) {
					ar.Use(adminOnly)
					ar.Post("/", h.User.Create)
					ar.Get("/", h.User.List)
					ar.Get("/search", h.User.Search)
					ar.Get("/role/{role}", h.User.ListByRole)
					ar.Get("/{id}", h.User.GetByID)
					ar.Put("/{id}", h.User.Update)
					ar.Delete("/{id}", h.User.Delete)
				})
			})

			pr.Route("/attendances", func(ar chi.Router) {
				ar.Post("/", h.Attendance.Create)
				ar.Get("/", h.Attendance.List)
				ar.Post("/entry", h.Attendance.RegisterEntry)
				ar.Get("/search", h.Attendance.Search)
				ar.Get("/date-range", h.Attendance.ListByDateRange)
				ar.Get("/statistics/general", h.Attendance.GeneralStatistics)
				ar.Get("/statistics/date-range", h.Attendance.DateRangeStatistics)
				ar.Get("/statistics/employee/{employeeID}", h.Attendance.EmployeeStatistics)
				ar.Get("/employee/{employeeID}", h.Attendance.ListByEmployee)
				ar.Get("/date/{date}", h.Attendance.ListByDate)
				ar.Get("/status/{status}", h.Attendance.ListByStatus)
				ar.Get("/{id}", h.Attendance.GetByID)
				ar.Put("/{id}", h.Attendance.Update)
				ar.Put("/{id}/exit", h.Attendance.RegisterExit)
				ar.Delete("/{id}", h.Attendance.Delete)
			})

			pr.Route("/departments", func(dr chi.Router) {
				dr.Post("/", h.Department.Create)
				dr.Get("/", h.Department.List)
				dr.Get("/search", h.Department.Search)
				dr.Get("/statistics", h.Department.Statistics)
				dr.Get("/{departmentID}/positions", h.Position.ListByDepartment)
				dr.Get("/{id}", h.Department.GetByID)
				dr.Put("/{id}", h.Department.Update)
				dr.Delete("/{id}", h.Department.Delete)
			})

			pr.Route("/positions", func(por chi.Router) {
				por.Post("/", h.Position.Create)
				por.Get("/", h.Position.List)
				por.Get("/search", h.Position.Search)
				por.Get("/department/{departmentID}", h.Position.ListByDepartment)
				por.Get("/{id}/employees", h.Position.Employees)
				por.Get("/{id}", h.Position.GetByID)
				por.Put("/{id}", h.Position.Update)
				por.Delete("/{id}", h.Position.Delete)
			})

			pr.Route("/camps", func(cr chi.Router) {
				cr.Post("/", h.Camp.Create)
				cr.Get("/", h.Camp.List)
				cr.Get("/search", h.Camp.Search)
				cr.Get("/statistics", h.Camp.Statistics)
				cr.Get("/employee/{employeeID}", h.Camp.ListByEmployee)
				cr.Get("/status/{status}", h.Camp.ListByStatus)
				cr.Get("/{id}", h.Camp.GetByID)
				cr.Put("/{id}", h.Camp.Update)
				cr.Put("/{id}/assign-employee", h.Camp.AssignEmployee)
				cr.Put("/{id}/remove-employee", h.Camp.RemoveEmployee)
				cr.Delete("/{id}", h.Camp.Delete)
			})
		})
	})
}
