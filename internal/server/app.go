// Package server initializes and runs the course-work backend: it opens
// the database, runs migrations, builds the auth core and services, and
// serves the HTTP API with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/courseboard/server/internal/logging"
	"github.com/courseboard/server/internal/server/auth"
	"github.com/courseboard/server/internal/server/config"
	sh "github.com/courseboard/server/internal/server/http"
	"github.com/courseboard/server/internal/server/repositories/repomanager"
	"github.com/courseboard/server/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	server      *sh.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	verifier, err := auth.NewVerifier(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	us := services.NewUserService(db, rm, issuer, cfg.BcryptCost)
	ws := services.NewWorkService(db, rm)
	fs := services.NewFileService(db, rm, cfg)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repomanager: rm,
		server:      sh.NewServer(us, ws, fs, verifier, cfg, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:    app.config.HTTPAddr,
		Handler: app.server.Router(),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "error shutting down http server", "error", err)
		}
	}()

	app.logger.Info(ctx, "starting http server", "addr", app.config.HTTPAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "http server error", "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err)
	}

	app.logger.Info(ctx, "app stopped")
	return nil
}
