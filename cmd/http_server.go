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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/unilanding/cms-backend/internal"
	"github.com/unilanding/cms-backend/internal/accessrights"
	accessrightsRepo "github.com/unilanding/cms-backend/internal/accessrights/postgres"
	"github.com/unilanding/cms-backend/internal/auth"
	authRepo "github.com/unilanding/cms-backend/internal/auth/postgres"
	"github.com/unilanding/cms-backend/internal/blog"
	blogRepo "github.com/unilanding/cms-backend/internal/blog/postgres"
	"github.com/unilanding/cms-backend/internal/catalog"
	catalogRepo "github.com/unilanding/cms-backend/internal/catalog/postgres"
	"github.com/unilanding/cms-backend/internal/pagebuilder"
	pagebuilderRepo "github.com/unilanding/cms-backend/internal/pagebuilder/postgres"
	"github.com/unilanding/cms-backend/internal/seed"
	"github.com/unilanding/cms-backend/internal/transport"
	"github.com/unilanding/cms-backend/internal/transport/rest"
	"github.com/unilanding/cms-backend/pkg/logger"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
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
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

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
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	router := chi.NewRouter()
	handlers, gate, _ := buildHandlers(config, gormDB, lg)
	rest.RegisterAllRoutes(router, db.DB, handlers, gate, lg)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

// buildHandlers wires repositories, services and handlers. The auth and
// access-rights services reference each other (grant provisioning one way,
// the active-account check the other), so the checker is late-bound through
// a closure.
func buildHandlers(config *internal.Config, gormDB *gorm.DB, lg *slog.Logger) (rest.Handlers, *accessrights.Gate, *seed.Service) {
	userRepository := authRepo.NewUserRepository(gormDB)
	accessRightRepository := accessrightsRepo.NewAccessRightRepository(gormDB)
	catalogRepository := catalogRepo.NewModuleRepository(gormDB)
	blogRepository := blogRepo.NewBlogComponentRepository(gormDB)
	puckRepository := pagebuilderRepo.NewPuckComponentRepository(gormDB)

	catalogService := catalog.NewService(catalogRepository, lg)

	var authService *auth.Service
	activeChecker := accessrights.ActiveCheckerFunc(func(idOrCode string) error {
		return authService.CheckActive(idOrCode)
	})

	accessRightService := accessrights.NewService(
		accessRightRepository, catalogService, userRepository, activeChecker, lg)

	tokenGenerator := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService = auth.NewService(userRepository, tokenGenerator, accessRightService, lg, config.Security.BCryptCost)

	blogService := blog.NewService(blogRepository, lg)
	pagebuilderService := pagebuilder.NewService(puckRepository, lg)

	seedService := seed.NewService(config.Seed.Secret, seed.Admin{
		Email:    config.Seed.AdminEmail,
		Password: config.Seed.AdminPassword,
		FullName: config.Seed.AdminName,
		Code:     config.Seed.AdminCode,
	}, catalogService, authService, lg)

	baseHandler := transport.NewBaseHandler(lg)
	gate := accessrights.NewGate(accessRightService, lg)

	return rest.Handlers{
		Auth:        auth.NewHandler(baseHandler, authService),
		AccessRight: accessrights.NewHandler(baseHandler, accessRightService),
		Catalog:     catalog.NewHandler(baseHandler, catalogService),
		Blog:        blog.NewHandler(baseHandler, blogService),
		PageBuilder: pagebuilder.NewHandler(baseHandler, pagebuilderService),
		Seed:        seed.NewHandler(baseHandler, seedService),
	}, gate, seedService
}

// initDB initializes the database connection pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-configured pool so both share
// one set of connections.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}
