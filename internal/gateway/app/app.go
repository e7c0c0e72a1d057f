package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/roamlabs/tripgate/internal/gateway/http"
	"github.com/roamlabs/tripgate/internal/gateway/location"
	"github.com/roamlabs/tripgate/internal/gateway/provider/dining"
	"github.com/roamlabs/tripgate/internal/gateway/provider/events"
	"github.com/roamlabs/tripgate/internal/gateway/provider/geoip"
	"github.com/roamlabs/tripgate/internal/gateway/provider/lodging"
	"github.com/roamlabs/tripgate/internal/gateway/provider/weather"
	"github.com/roamlabs/tripgate/internal/gateway/service"
	"github.com/roamlabs/tripgate/internal/gateway/store"
	"github.com/roamlabs/tripgate/internal/gateway/store/drivers/sqlite"
	"github.com/roamlabs/tripgate/pkg/cryptox"
	"github.com/roamlabs/tripgate/pkg/jwtx"
	"github.com/roamlabs/tripgate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the gateway with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	tokenService *service.TokenService
	userService  *service.UserService
	tripService  *service.TripService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "trip-gateway",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)
	if err := cryptox.ReloadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load password pepper: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("trip gateway starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down trip gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("trip gateway stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services and upstream adapters.
func (app *Application) initServices() error {
	signer, err := jwtx.NewSignerHS256([]byte(app.cfg.JWTSecret))
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}

	app.tokenService = &service.TokenService{
		Signer:     signer,
		Verifier:   jwtx.NewVerifierHS256([]byte(app.cfg.JWTSecret), app.cfg.Issuer),
		Store:      app.db,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTokenTTL,
		RefreshTTL: app.cfg.RefreshTokenTTL,
	}

	app.userService = &service.UserService{Store: app.db}

	timeout := app.cfg.UpstreamTimeout
	app.tripService = &service.TripService{
		Resolver: location.NewResolver(geoip.New(app.cfg.GeoIPBaseURL, timeout)),
		Weather:  weather.New(app.cfg.WeatherBaseURL, app.cfg.OpenWeatherKey, timeout),
		Dining:   dining.New(app.cfg.DiningBaseURL, app.cfg.ZomatoKey, timeout),
		Events:   events.New(app.cfg.EventsBaseURL, app.cfg.TicketmasterKey, timeout),
		Lodging:  lodging.New(app.cfg.LodgingBaseURL, app.cfg.OpenTripMapKey, timeout),
	}

	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(BuildVersion, app.db, app.logger)
	app.router.TokenService = app.tokenService
	app.router.UserService = app.userService
	app.router.TripService = app.tripService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
