package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	eduride "github.com/eduride/eduride-ui"
	"github.com/eduride/eduride-ui/config"
	httpx "github.com/eduride/eduride-ui/internal/http"
)

const (
	readTimeout     = 30 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the router with templates and static assets.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS, staticFS, err := assetFilesystems(cfg.Config.IsDev)
	if err != nil {
		return nil, err
	}

	renderer, err := httpx.NewTemplateRenderer(httpx.TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build template renderer: %w", err)
	}

	return httpx.NewRouter(httpx.RouterServices{
		Renderer: renderer,
		Auth:     cfg.Services.Auth,
		Backend:  cfg.Services.Backend,
		Status:   cfg.Services.Status,
		Payments: cfg.Services.Payments,
		Static:   staticFS,
		Logger:   logger,
	})
}

// assetFilesystems picks embedded or on-disk assets. Dev mode reads from
// disk so template edits show up without a rebuild.
func assetFilesystems(isDev bool) (templates fs.FS, static fs.FS, err error) {
	if isDev {
		return os.DirFS("frontend/templates"), os.DirFS("frontend/static"), nil
	}

	templates, err = fs.Sub(eduride.TemplateFS, "frontend/templates")
	if err != nil {
		return nil, nil, fmt.Errorf("embedded templates: %w", err)
	}
	static, err = fs.Sub(eduride.StaticFS, "frontend/static")
	if err != nil {
		return nil, nil, fmt.Errorf("embedded static assets: %w", err)
	}
	return templates, static, nil
}

// RunHTTPServer starts the server and blocks until a shutdown signal or a
// listener error. Shutdown drains in-flight requests with a timeout; open
// SSE streams are cut by the drain deadline.
func RunHTTPServer(ctx context.Context, cfg *HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler, err := BuildHTTPHandler(cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:        cfg.Config.HTTP.Addr,
		Handler:     handler,
		ReadTimeout: readTimeout,
		IdleTimeout: idleTimeout,
	}

	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(signalCtx)

	group.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			return fmt.Errorf("shutdown http server: %w", shutdownErr)
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	return group.Wait()
}
