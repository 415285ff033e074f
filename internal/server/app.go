// Package server initializes and runs the admin API server: configuration,
// database and object store wiring, schema migrations, signal handling and
// graceful HTTP shutdown.
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
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/chati-cms/chati/internal/logging"
	"github.com/chati-cms/chati/internal/server/config"
	"github.com/chati-cms/chati/internal/server/httpapi"
	"github.com/chati-cms/chati/internal/server/repositories/repomanager"
	"github.com/chati-cms/chati/internal/server/services"
	"github.com/chati-cms/chati/internal/server/storage"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	api := httpapi.NewServer(cfg, logger,
		services.NewUserService(db, rm, cfg),
		services.NewPageService(db, rm),
		services.NewPostService(db, rm),
		services.NewTaxonomyService(db, rm),
		services.NewMediaService(db, rm, store, cfg),
		services.NewSiteService(db, rm),
	)

	return &App{config: cfg, logger: logger, db: db, api: api}, nil
}

// Run serves the API until ctx is canceled or a termination signal arrives,
// then shuts the HTTP server down gracefully and closes the database.
func (app *App) Run(ctx context.Context) error {

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.api.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	return nil
}
