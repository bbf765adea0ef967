package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ImportFile imports a single registry file from disk.
func (r *Registry[V]) ImportFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return r.ImportJSON(data, Source{Path: path})
}

type parsedFile struct {
	path string
	env  envelope
	err  error
}

// ImportDir imports every *.json file under dir, recursively. A missing
// directory is not an error. Files are read and parsed in parallel, then
// imported sequentially in lexical path order so inheritance sees a stable
// registration order. Failing files are logged and skipped.
func (r *Registry[V]) ImportDir(ctx context.Context, dir string) error {
	paths, err := jsonFiles(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	files := make([]parsedFile, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			files[i].path = p
			data, err := os.ReadFile(p)
			if err != nil {
				files[i].err = err
				return nil
			}
			if err := json.Unmarshal(data, &files[i].env); err != nil {
				files[i].err = err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("importing %s: %w", r.key, err)
	}

	total := 0
	for _, f := range files {
		if f.err == nil {
			var n int
			n, f.err = r.importEnvelope(f.env, Source{Path: f.path})
			total += n
		}
		if f.err != nil {
			slog.Warn("skipping registry file",
				"registry", r.key,
				"path", f.path,
				"err", f.err)
			if r.observer != nil {
				r.observer.FileSkipped(r.key)
			}
		}
	}

	slog.Debug("registry imported",
		"registry", r.key,
		"dir", dir,
		"files", len(files),
		"entries", total)
	return nil
}

func jsonFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	slices.Sort(paths)
	return paths, nil
}
