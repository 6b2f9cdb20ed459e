package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/planfuse/planfuse/internal/planfuse/http"
	"github.com/planfuse/planfuse/internal/planfuse/lockout"
	"github.com/planfuse/planfuse/internal/planfuse/service"
	"github.com/planfuse/planfuse/internal/planfuse/store"
	"github.com/planfuse/planfuse/internal/planfuse/store/drivers/postgres"
	"github.com/planfuse/planfuse/internal/planfuse/store/drivers/sqlite"
	"github.com/planfuse/planfuse/pkg/cryptox"
	"github.com/planfuse/planfuse/pkg/jwtx"
	"github.com/planfuse/planfuse/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier
	sealer   *cryptox.Sealer

	// Services
	authService         *service.AuthService
	sessionService      *service.SessionService
	userService         *service.UserService
	planService         *service.PlanService
	mfaService          *service.MFAService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "planfuse",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}

	signer, verifier, err := initSigningKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.signer = signer
	app.verifier = verifier

	sealer, err := initSealer(cfg)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.sealer = sealer

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("planfuse starting",
		"addr", app.cfg.HTTPAddr, "driver", app.cfg.StoreDriver, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down planfuse...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("planfuse stopped")
	return nil
}

// initStore opens the configured store driver and applies migrations.
func (app *Application) initStore() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.StoreDriver {
	case "postgres":
		db, err = postgres.NewStore(app.cfg.StoreDSN)
	default:
		db, err = sqlite.NewStore(sqlite.DSN(app.cfg.StoreDSN))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app.logger.Info("store migrations applied", "driver", app.cfg.StoreDriver)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Store:    app.db,
		Signer:   app.signer,
		Verifier: app.verifier,
		TTL:      app.cfg.SessionTTL,
	}

	app.authService = &service.AuthService{
		Store:    app.db,
		Hasher:   cryptox.Argon2Hasher{},
		Sealer:   app.sealer,
		Sessions: app.sessionService,
		Policy:   lockout.NewPolicy(app.cfg.LockoutThreshold),
		Signer:   app.signer,
		Verifier: app.verifier,
	}

	app.userService = &service.UserService{
		Store:  app.db,
		Hasher: cryptox.Argon2Hasher{},
	}

	app.planService = &service.PlanService{Store: app.db}

	app.mfaService = &service.MFAService{
		Store:  app.db,
		Sealer: app.sealer,
		Issuer: app.cfg.Issuer,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.SweepInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.AuthService = app.authService
	router.SessionService = app.sessionService
	router.UserService = app.userService
	router.PlanService = app.planService
	router.MFAService = app.mfaService

	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:    app.cfg.HTTPAddr,
		Handler: router,
	}
}
