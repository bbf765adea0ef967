// Package content builds the content catalog from an ordered list of content
// modules.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/udisondev/vitreous/internal/config"
	"github.com/udisondev/vitreous/internal/registry"
	"github.com/udisondev/vitreous/internal/spatial"
)

// ErrNoModules is returned when bootstrap is given nothing to load.
var ErrNoModules = errors.New("no content modules")

// Module is a named directory of content; registry folders live under Root.
type Module struct {
	Name string
	Root string
}

// Modules converts the configured module list.
func Modules(cfg config.ContentConfig) []Module {
	out := make([]Module, 0, len(cfg.Modules))
	for _, m := range cfg.Modules {
		out = append(out, Module{Name: m.Name, Root: m.Root})
	}
	return out
}

// Count is the number of entries a registry holds after bootstrap.
type Count struct {
	Registry string
	Entries  int
}

// Report summarises a bootstrap run.
type Report struct {
	Modules []string
	Counts  []Count
}

// Entries returns the count for registry key, or zero.
func (r Report) Entries(key string) int {
	for _, c := range r.Counts {
		if c.Registry == key {
			return c.Entries
		}
	}
	return 0
}

// Bootstrap creates a catalog and imports every module into it.
func Bootstrap(ctx context.Context, opts spatial.Options, modules []Module, obs registry.Observer) (*spatial.Catalog, Report, error) {
	c := spatial.NewCatalog(opts)
	rep, err := Load(ctx, c, modules, obs)
	if err != nil {
		return nil, Report{}, err
	}
	return c, rep, nil
}

// Load imports modules into c. Registries are filled one at a time in
// dependency order; within a registry modules are read in the given order, so
// a later module overrides entries of an earlier one.
func Load(ctx context.Context, c *spatial.Catalog, modules []Module, obs registry.Observer) (Report, error) {
	if len(modules) == 0 {
		return Report{}, ErrNoModules
	}
	var rep Report
	for _, m := range modules {
		info, err := os.Stat(m.Root)
		if err != nil {
			return Report{}, fmt.Errorf("content module %s: %w", m.Name, err)
		}
		if !info.IsDir() {
			return Report{}, fmt.Errorf("content module %s: %s is not a directory", m.Name, m.Root)
		}
		rep.Modules = append(rep.Modules, m.Name)
	}

	for _, imp := range c.Importers() {
		if obs != nil {
			imp.SetObserver(obs)
		}
		for _, m := range modules {
			dir := filepath.Join(m.Root, imp.Folder())
			if err := imp.ImportDir(ctx, dir); err != nil {
				return Report{}, fmt.Errorf("importing %s from %s: %w", imp.Key(), m.Name, err)
			}
		}
		slog.Info("loaded registry", "registry", imp.Key(), "count", imp.Len())
		rep.Counts = append(rep.Counts, Count{Registry: imp.Key(), Entries: imp.Len()})
	}
	return rep, nil
}
