// Command contentcheck loads content modules and reports, per registry, how
// many entries were imported and how many entries or files were skipped.
//
// Usage:
//
//	contentcheck                      # modules from the config file
//	contentcheck content/base mods/x  # the given module roots, in order
//	contentcheck -strict ...          # exit 2 when anything was skipped
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"text/tabwriter"

	"github.com/udisondev/vitreous/internal/config"
	"github.com/udisondev/vitreous/internal/content"
)

// tally counts import outcomes per registry.
type tally struct {
	mu       sync.Mutex
	imported map[string]int
	skipped  map[string]int
	files    map[string]int
}

func newTally() *tally {
	return &tally{imported: map[string]int{}, skipped: map[string]int{}, files: map[string]int{}}
}

func (t *tally) EntryImported(r string) { t.add(t.imported, r) }
func (t *tally) EntrySkipped(r string)  { t.add(t.skipped, r) }
func (t *tally) FileSkipped(r string)   { t.add(t.files, r) }

func (t *tally) add(m map[string]int, r string) {
	t.mu.Lock()
	m[r]++
	t.mu.Unlock()
}

// problems is the number of skipped entries and files.
func (t *tally) problems() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, v := range t.skipped {
		n += v
	}
	for _, v := range t.files {
		n += v
	}
	return n
}

func report(w io.Writer, rep content.Report, t *tally) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REGISTRY\tENTRIES\tIMPORTED\tSKIPPED\tFILES SKIPPED")
	t.mu.Lock()
	for _, c := range rep.Counts {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", c.Registry, c.Entries, t.imported[c.Registry], t.skipped[c.Registry], t.files[c.Registry])
	}
	t.mu.Unlock()
	return tw.Flush()
}

// modulesFrom uses the given roots, named by their base directory, or the
// configured modules when there are none.
func modulesFrom(args []string, cfg config.ContentConfig) []content.Module {
	if len(args) == 0 {
		return content.Modules(cfg)
	}
	out := make([]content.Module, 0, len(args))
	for _, root := range args {
		out = append(out, content.Module{Name: filepath.Base(root), Root: root})
	}
	return out
}

func main() {
	strict := flag.Bool("strict", false, "exit with status 2 when entries or files were skipped")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	problems, err := run(ctx, flag.Args(), os.Stdout)
	if err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
	if *strict && problems > 0 {
		slog.Warn("content has problems", "skipped", problems)
		os.Exit(2)
	}
}

func run(ctx context.Context, args []string, out io.Writer) (int, error) {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return 0, fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	t := newTally()
	_, rep, err := content.Bootstrap(ctx, cfg.Spatial.Options(), modulesFrom(args, cfg.Content), t)
	if err != nil {
		return 0, fmt.Errorf("loading content: %w", err)
	}
	if err := report(out, rep, t); err != nil {
		return 0, err
	}
	return t.problems(), nil
}
