package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/clockin/internal/clockin/http"
	"github.com/aussiebroadwan/clockin/internal/clockin/mailer"
	"github.com/aussiebroadwan/clockin/internal/clockin/metrics"
	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	"github.com/aussiebroadwan/clockin/internal/clockin/store/drivers/redis"
	"github.com/aussiebroadwan/clockin/internal/clockin/store/drivers/sqlite"
	"github.com/aussiebroadwan/clockin/pkg/cryptox"
	"github.com/aussiebroadwan/clockin/pkg/jwtx"
	"github.com/aussiebroadwan/clockin/pkg/slogx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/resend/resend-go/v2"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the clockin service with all its dependencies
type Application struct {
	cfg      Config
	logger   *slog.Logger
	location *time.Location

	// Core dependencies
	db         store.Store
	links      store.LinkStore
	rdb        *goredis.Client // nil unless REDIS_ADDR is set
	mail       mailer.Mailer
	keyManager *jwtx.KeyManager
	metrics    *metrics.Metrics

	// Services
	linkIssuer             *service.LinkIssuer
	tokenService           *service.TokenService
	activityService        *service.ActivityService
	loginService           *service.LoginService
	profileService         *service.ProfileService
	attendanceService      *service.AttendanceService
	staffService           *service.StaffService
	departmentService      *service.DepartmentService
	passwordRequestService *service.PasswordRequestService
	bootstrapService       *service.BootstrapService
	housekeepingService    *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "clockin",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	app.location = loc

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initLinkStore(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initMailer()

	keyManager, err := InitKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keyManager = keyManager

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("clockin service starting", "port", app.cfg.Port, "version", BuildVersion)
	if app.bootstrapService.Enabled() {
		app.logger.Info("bootstrap endpoint enabled")
	}

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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down clockin service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Waits for a running cleanup so it never sees a closed database
	app.housekeepingService.Stop()

	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("clockin service stopped")
	return nil
}

// initDatabase opens the SQLite database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initLinkStore picks where one-time login links live. Redis is used when
// configured so several instances can share them.
func (app *Application) initLinkStore() error {
	if app.cfg.RedisAddr == "" {
		app.links = app.db.LoginLinks()
		return nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("failed to connect to redis at %s: %w", app.cfg.RedisAddr, err)
	}

	app.rdb = rdb
	app.links = redis.NewLinkStore(rdb)
	app.logger.Info("login links stored in redis", "addr", app.cfg.RedisAddr)
	return nil
}

func (app *Application) initMailer() {
	if app.cfg.ResendAPIKey == "" {
		app.mail = mailer.Log{Dev: app.cfg.Env == "dev"}
		if app.cfg.Env == "dev" {
			app.logger.Warn("RESEND_API_KEY not set, password reset links will be logged")
		} else {
			app.logger.Warn("RESEND_API_KEY not set, password reset approvals will fail", "env", app.cfg.Env)
		}
		return
	}
	app.mail = mailer.NewResend(resend.NewClient(app.cfg.ResendAPIKey), app.cfg.MailFrom)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.linkIssuer = &service.LinkIssuer{
		Links:       app.links,
		TTL:         app.cfg.LinkTTL,
		RecoveryTTL: app.cfg.RecoveryTTL,
		Metrics:     app.metrics,
	}
	app.tokenService = &service.TokenService{
		KeyManager: app.keyManager,
		Store:      app.db,
		Issuer:     app.cfg.Issuer,
		Audience:   []string{Audience},
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}
	app.activityService = &service.ActivityService{Store: app.db}
	app.loginService = &service.LoginService{
		Store:    app.db,
		Links:    app.linkIssuer,
		Tokens:   app.tokenService,
		Activity: app.activityService,
		Metrics:  app.metrics,
	}
	app.profileService = &service.ProfileService{Store: app.db}
	app.attendanceService = &service.AttendanceService{Store: app.db, Location: app.location}
	app.staffService = &service.StaffService{Store: app.db, Clock: app.attendanceService}
	app.departmentService = &service.DepartmentService{Store: app.db}
	app.passwordRequestService = &service.PasswordRequestService{
		Store:     app.db,
		Links:     app.linkIssuer,
		Mailer:    app.mail,
		PublicURL: app.cfg.PublicURL,
		Metrics:   app.metrics,
	}
	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Token: app.cfg.BootstrapToken,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.links,
		app.logger,
		app.metrics,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.metrics,
		app.cfg.CORSOrigin,
	)

	router.Location = app.location
	router.LoginService = app.loginService
	router.TokenService = app.tokenService
	router.ProfileService = app.profileService
	router.StaffService = app.staffService
	router.DepartmentService = app.departmentService
	router.AttendanceService = app.attendanceService
	router.PasswordRequestService = app.passwordRequestService
	router.ActivityService = app.activityService
	router.BootstrapService = app.bootstrapService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
