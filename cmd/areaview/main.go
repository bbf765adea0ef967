// Command areaview previews areas in the terminal. Structures are drawn
// with box glyphs following their connections and floors as dots. Editor
// areas come first, followed by registered areas they do not shadow.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/udisondev/vitreous/internal/config"
	"github.com/udisondev/vitreous/internal/content"
	"github.com/udisondev/vitreous/internal/editor"
	"github.com/udisondev/vitreous/internal/spatial"
	"github.com/udisondev/vitreous/internal/store"
)

var errNoAreas = errors.New("no areas to show")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	// the screen owns stdout once initialised
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	catalog, _, err := content.Bootstrap(ctx, cfg.Spatial.Options(), content.Modules(cfg.Content), nil)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	docs, err := store.Open(ctx, cfg.Editor.Store)
	if err != nil {
		return fmt.Errorf("opening editor store: %w", err)
	}
	defer docs.Close()

	data, err := editor.LoadData(ctx, docs, catalog)
	if err != nil {
		return fmt.Errorf("loading editor data: %w", err)
	}

	areas := collectAreas(data, catalog)
	if len(areas) == 0 {
		return errNoAreas
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()

	v := &viewer{screen: screen, areas: areas}
	v.run(ctx)
	return nil
}

// collectAreas lists editor areas, then registered areas with other ids.
func collectAreas(d *editor.Data, c *spatial.Catalog) []*spatial.Area {
	areas := append([]*spatial.Area(nil), d.Areas...)
	for a := range c.Areas.Entries() {
		if _, ok := d.Area(a.ID); !ok {
			areas = append(areas, a)
		}
	}
	return areas
}
