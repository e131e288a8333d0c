package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/attendance"
	attendancerepo "github.com/hrkit/hr-management/internal/attendance/postgres"
	"github.com/hrkit/hr-management/internal/auth"
	authrepo "github.com/hrkit/hr-management/internal/auth/postgres"
	"github.com/hrkit/hr-management/internal/camp"
	camprepo "github.com/hrkit/hr-management/internal/camp/postgres"
	"github.com/hrkit/hr-management/internal/department"
	departmentrepo "github.com/hrkit/hr-management/internal/department/postgres"
	"github.com/hrkit/hr-management/internal/position"
	positionrepo "github.com/hrkit/hr-management/internal/position/postgres"
	"github.com/hrkit/hr-management/internal/transport/rest"
	"github.com/hrkit/hr-management/internal/user"
	userrepo "github.com/hrkit/hr-management/internal/user/postgres"
	"github.com/hrkit/hr-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	security := deps.Config.Security

	tokens := auth.NewJWTTokenGenerator(security.JWTSecret, security.TokenDuration)

	authService := auth.NewService(authrepo.NewRepository(deps.Gorm), tokens, security.BCryptCost, deps.Logger)
	authHandler := auth.NewHandler(authService, security)

	userService := user.NewService(userrepo.NewRepository(deps.Gorm), security.BCryptCost, deps.Logger)
	attendanceService := attendance.NewService(
		attendancerepo.NewRepository(deps.Gorm), deps.Logger, security.AllowExitOverwriteViaUpdate)
	departmentService := department.NewService(departmentrepo.NewRepository(deps.Gorm), deps.Logger)
	positionService := position.NewService(positionrepo.NewRepository(deps.Gorm), deps.Logger)
	campService := camp.NewService(camprepo.NewRepository(deps.Gorm), deps.Logger)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, rest.Handlers{
		Auth:       authHandler,
		User:       user.NewHandler(userService),
		Attendance: attendance.NewHandler(attendanceService),
		Department: department.NewHandler(departmentService),
		Position:   position.NewHandler(positionService),
		Camp:       camp.NewHandler(campService),
	}, deps.Config.Server, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-open pgx connection pool so both
// views share one pool and one lifecycle.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
}
