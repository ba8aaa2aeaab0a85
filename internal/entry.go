// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/catenary/site/internal/api"
	"github.com/catenary/site/internal/compose"
	"github.com/catenary/site/internal/content"
	"github.com/catenary/site/internal/export"
	"github.com/catenary/site/internal/mcpserver"
	"github.com/catenary/site/internal/metrics"
	"github.com/catenary/site/internal/render"
	"github.com/catenary/site/internal/seo"
	"github.com/catenary/site/internal/siteservice"
	"github.com/catenary/site/internal/sse"
	"github.com/catenary/site/internal/storage"
	"github.com/catenary/site/internal/watch"
)

const eventsPath = "/events"

func newApplication(opts []Option) (*application, error) {
	app := &application{version: "dev"}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// logger installs the structured JSON logger as the default.
func (a *application) logger(fallback io.Writer) *slog.Logger {
	w := a.logOutput
	if w == nil {
		w = fallback
	}
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// contentFS is the configured content directory, or the embedded content.
func (a *application) contentFS() fs.FS {
	if a.config.Content.Path == "" {
		return content.Default()
	}
	return os.DirFS(a.config.Content.Path)
}

// service builds the site service and loads the content once.
func (a *application) service(ctx context.Context, renderer *render.Pages, opts ...siteservice.Option) (*siteservice.Service, error) {
	site, err := seo.NewSite(a.config.Site)
	if err != nil {
		return nil, fmt.Errorf("init site: %w", err)
	}
	composer, err := compose.New(site)
	if err != nil {
		return nil, fmt.Errorf("init composer: %w", err)
	}
	opts = append([]siteservice.Option{siteservice.WithVariant(a.config.Content.Variant)}, opts...)
	svc := siteservice.New(composer, renderer, opts...)
	if err := svc.Load(ctx, a.contentFS()); err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return svc, nil
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.logger(os.Stdout)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_path", cfg.Content.Path),
		slog.Bool("watch", cfg.Content.Watch),
		slog.Bool("dev", cfg.App.Dev),
		slog.String("log_level", cfg.App.LogLevel.String()))

	m := metrics.New()

	// Live reload is only useful when pages can change under the browser.
	var broker *sse.Broker
	var pageOpts []render.PagesOption
	svcOpts := []siteservice.Option{siteservice.WithMetrics(m), siteservice.WithLogger(logger)}
	if cfg.App.Dev && cfg.Content.Watch {
		broker = sse.NewBroker()
		defer broker.Close()
		pageOpts = append(pageOpts, render.WithLiveReload(eventsPath))
		svcOpts = append(svcOpts, siteservice.WithReloadHook(broker.PublishReload))
	}

	svc, err := app.service(ctx, render.NewPages(nil, pageOpts...), svcOpts...)
	if err != nil {
		return err
	}

	routerOpts := api.Options{
		Metrics:    m,
		PublicDir:  cfg.Assets.Path,
		RequestLog: cfg.App.Dev,
	}
	if broker != nil {
		routerOpts.Events = broker
	}
	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           api.NewRouter(svc, routerOpts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Reload content on change.
	if cfg.Content.Watch {
		fsys := app.contentFS()
		g.Go(func() error {
			return watch.Watch(gCtx, cfg.Content.Path, cfg.Content.Debounce, logger, func(ctx context.Context) error {
				return svc.Load(ctx, fsys)
			})
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		// Event streams never finish on their own.
		if broker != nil {
			broker.Close()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher stops with the server.
var errShutdown = errors.New("shutdown")

// Export renders every page into the configured export directory.
func Export(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.logger(os.Stdout)

	svc, err := app.service(ctx, render.NewPages(nil, export.PagesOption()), siteservice.WithLogger(logger))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Export.Dir)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	start := time.Now()
	res, err := export.Write(ctx, svc, store, cfg.Export.Concurrency, logger)
	if err != nil {
		return err
	}
	logger.Info("Export finished",
		slog.String("dir", filepath.Clean(cfg.Export.Dir)),
		slog.Int("files", len(res.Files)),
		slog.Int("written", res.Written),
		slog.Int("removed", len(res.Removed)),
		slog.String("version", svc.Snapshot().Version),
		slog.Duration("took", time.Since(start)))
	return nil
}

// ServeMCP serves the site content over the MCP stdio transport.
func ServeMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := app.logger(os.Stderr)

	svc, err := app.service(ctx, render.NewPages(nil), siteservice.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("Starting MCP server", slog.String("version", app.version))
	return mcpserver.New(svc, app.version).ServeStdio()
}
