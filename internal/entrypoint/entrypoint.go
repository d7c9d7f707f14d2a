package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/analytics"
	"github.com/mrlokans/catalog/internal/database/authors"
	"github.com/mrlokans/catalog/internal/database/books"
	http_controllers "github.com/mrlokans/catalog/internal/http"
	"github.com/mrlokans/catalog/internal/logger"
)

// ShutdownFunc is called after in-flight requests have drained to clean up
// resources they may use.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests for up to the configured shutdown timeout.
func Serve(ctx context.Context, router *gin.Engine, cfg *config.Config, log *logger.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server", "timeout", timeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	shutdownErr := srv.Shutdown(shutdownCtx)

	if onShutdown != nil {
		onShutdown(shutdownCtx)
	}

	if shutdownErr != nil {
		return fmt.Errorf("server shutdown: %w", shutdownErr)
	}

	log.Info("server exiting")
	return nil
}

// NewRouter wires the repositories over db into the HTTP router.
func NewRouter(db *database.Database, cfg *config.Config, log *logger.Logger, version string) *gin.Engine {
	return http_controllers.NewRouter(http_controllers.RouterConfig{
		AuthorStore: authors.NewRepository(db.DB),
		BookStore:   books.NewRepository(db.DB, log),
		Analytics:   analytics.NewRepository(db.DB),
		Database:    db,
		Pagination: http_controllers.Pagination{
			DefaultLimit: cfg.API.DefaultLimit,
			MaxLimit:     cfg.API.MaxLimit,
		},
		Logger:  log.With("component", "http"),
		Version: version,
	})
}

// Run starts the catalog service and blocks until SIGINT or SIGTERM.
// The database is closed only after the server has stopped serving.
func Run(cfg *config.Config, version string) error {
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting catalog", "version", version, "driver", string(cfg.Database.Driver))

	if cfg.Log.Mode == "prod" || cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDatabase(cfg.Database, log.With("component", "database"))
	if err != nil {
		log.Error("failed to initialize database", "error", err)
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", "error", err)
		}
	}()

	router := NewRouter(db, cfg, log, version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Serve(ctx, router, cfg, log, nil); err != nil {
		log.Error("server stopped", "error", err)
		return err
	}
	return nil
}
