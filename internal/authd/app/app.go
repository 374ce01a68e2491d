package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wattleworks/authd/internal/authd/domain"
	httpapi "github.com/wattleworks/authd/internal/authd/http"
	"github.com/wattleworks/authd/internal/authd/service"
	"github.com/wattleworks/authd/internal/authd/store"
	"github.com/wattleworks/authd/internal/authd/store/drivers/redis"
	"github.com/wattleworks/authd/internal/authd/store/drivers/sqlite"
	"github.com/wattleworks/authd/internal/authd/store/memory"
	"github.com/wattleworks/authd/pkg/cryptox"
	"github.com/wattleworks/authd/pkg/jwtx"
	"github.com/wattleworks/authd/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier

	authService  *service.AuthService
	tokenService *service.TokenService

	server *http.Server
	router *httpapi.Router
}

// Router exposes the configured router, mainly for tests.
func (app *Application) Router() *httpapi.Router { return app.router }

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "authd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}

	if err := app.initTokenCodec(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.seedUsers(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to seed credential store: %w", err)
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("authd starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	app.logger.Info("shutting down authd...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing credential store", "error", err)
		return err
	}

	app.logger.Info("authd stopped")
	return nil
}

// initStore initializes the configured credential store backend.
func (app *Application) initStore() error {
	switch app.cfg.StoreBackend {
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to open sqlite store: %w", err)
		}
		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		app.logger.Info("sqlite credential store ready", "file", app.cfg.DatabaseFile)
		app.db = db

	case "redis":
		db, err := redis.NewStore(app.cfg.RedisAddr, app.cfg.RedisPassword)
		if err != nil {
			return fmt.Errorf("failed to connect to redis store: %w", err)
		}
		app.logger.Info("redis credential store ready", "addr", app.cfg.RedisAddr)
		app.db = db

	default:
		app.logger.Info("using in-memory credential store")
		app.db = memory.NewStore()
	}

	return nil
}

// initTokenCodec builds the HS256 signer/verifier pair from the configured
// secret. When no secret is configured a random one is generated, which means
// tokens do not survive a restart.
func (app *Application) initTokenCodec() error {
	secret := []byte(app.cfg.SigningSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return err
		}
		app.logger.Warn("AUTHD_SIGNING_SECRET not set, generated an ephemeral key; tokens will not survive restarts",
			"key_fingerprint", base64.RawURLEncoding.EncodeToString(secret[:6]))
	}

	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return fmt.Errorf("failed to build signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256(secret, app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to build verifier: %w", err)
	}

	app.signer = signer
	app.verifier = verifier
	return nil
}

// seedUsers provisions the bootstrap user when the store is empty.
func (app *Application) seedUsers(ctx context.Context) error {
	empty, err := app.db.Users().IsEmpty(ctx)
	if err != nil || !empty {
		return err
	}

	hash, err := cryptox.HashPassword(app.cfg.SeedPassword)
	if err != nil {
		return err
	}

	user := domain.User{
		Username:     app.cfg.SeedUsername,
		Email:        app.cfg.SeedEmail,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := app.db.Users().Create(ctx, user); err != nil {
		return err
	}

	app.logger.Info("seeded bootstrap user", "username", app.cfg.SeedUsername)
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{Store: app.db}
	app.tokenService = &service.TokenService{
		Signer:     app.signer,
		Verifier:   app.verifier,
		Store:      app.db,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.cfg.RefreshTTL,
		app.db,
		app.logger,
	)
	router.AuthService = app.authService
	router.TokenService = app.tokenService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
