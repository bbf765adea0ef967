// Command editor is the desktop area editor.
//
// Keys: 1-4 pick the structure, floor, element and inspect tools, Q/E cycle
// the tool's entry, PageUp/PageDown switch areas, Ctrl+N adds an area,
// Ctrl+Z/Ctrl+Y undo and redo, Ctrl+S saves, Ctrl+C copies the inspected
// tile and F3 toggles the connection overlay. The right mouse button erases
// structures.
//
// With the inspect tool, Up/Down select a descriptor of the inspected tile.
// Left/Right, -/+ or Space change it: attributes step by one, states cycle
// through their values and qualifiers toggle.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/vitreous/internal/config"
	"github.com/udisondev/vitreous/internal/content"
	"github.com/udisondev/vitreous/internal/editor"
	"github.com/udisondev/vitreous/internal/metrics"
	"github.com/udisondev/vitreous/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.Path()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.Info("vitreous editor starting", "config", cfgPath, "log_level", cfg.LogLevel)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	catalog, rep, err := content.Bootstrap(ctx, cfg.Spatial.Options(), content.Modules(cfg.Content), m)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	slog.Info("content loaded", "modules", rep.Modules)

	docs, err := store.Open(ctx, cfg.Editor.Store)
	if err != nil {
		return fmt.Errorf("opening editor store: %w", err)
	}
	defer func() {
		if err := docs.Close(); err != nil {
			slog.Error("closing editor store", "err", err)
		}
	}()

	data, err := editor.LoadData(ctx, docs, catalog)
	if err != nil {
		return fmt.Errorf("loading editor data: %w", err)
	}
	data.SetObserver(m)
	slog.Info("editor data loaded", "areas", len(data.Areas), "sectors", len(data.Sectors))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if addr := cfg.Metrics.Address; addr != "" {
		srv := &http.Server{
			Addr:              addr,
			Handler:           metrics.Handler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			slog.Info("metrics listening", "address", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			return srv.Shutdown(shutdownCtx)
		})
	}

	ed, err := newGame(gctx, catalog, data, m, cfg.Window.Width, cfg.Window.Height, cfg.DebugOverlay)
	if err != nil {
		return fmt.Errorf("creating editor: %w", err)
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizable(true)

	// ebiten owns the main goroutine until the window closes
	runErr := ebiten.RunGame(ed)
	cancel()
	if err := g.Wait(); err != nil {
		return err
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		return fmt.Errorf("running editor: %w", runErr)
	}
	slog.Info("editor stopped")
	return nil
}
