package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/vitreous/internal/metrics"
	"github.com/udisondev/vitreous/internal/spatial"
	"github.com/udisondev/vitreous/internal/store"
)

// Document names.
const (
	AreasDocument   = "editor_areas.json"
	SectorsDocument = "editor_sectors.json"
)

// DefaultContent is written for a document that does not exist yet.
const DefaultContent = "{\n\t\"entries\": []\n}"

// SaveObserver is notified of every document save with one of the
// metrics.Save* results.
type SaveObserver interface {
	DocumentSaved(result string)
}

// Data is the editor workspace: areas and sectors kept outside the content
// registries.
type Data struct {
	Areas   []*spatial.Area
	Sectors []*spatial.Sector

	docs     store.Documents
	catalog  *spatial.Catalog
	observer SaveObserver
}

type document struct {
	Entries []json.RawMessage `json:"entries"`
}

// LoadData reads both editor documents, creating missing ones with
// DefaultContent. Entries that fail to decode are logged and skipped. Areas
// load before sectors.
func LoadData(ctx context.Context, docs store.Documents, c *spatial.Catalog) (*Data, error) {
	d := &Data{docs: docs, catalog: c}

	areas, err := d.load(ctx, AreasDocument)
	if err != nil {
		return nil, err
	}
	for _, raw := range areas {
		var ad spatial.AreaData
		if err := json.Unmarshal(raw, &ad); err != nil {
			slog.Warn("entry loading failed", "document", AreasDocument, "err", err)
			continue
		}
		a, err := c.DecodeArea(ad)
		if err != nil {
			slog.Warn("entry loading failed", "document", AreasDocument, "err", err)
			continue
		}
		d.Areas = append(d.Areas, a)
	}

	sectors, err := d.load(ctx, SectorsDocument)
	if err != nil {
		return nil, err
	}
	for _, raw := range sectors {
		var sd spatial.SectorData
		if err := json.Unmarshal(raw, &sd); err != nil {
			slog.Warn("entry loading failed", "document", SectorsDocument, "err", err)
			continue
		}
		s, err := c.DecodeSectorWith(sd, d.lookupArea)
		if err != nil {
			slog.Warn("entry loading failed", "document", SectorsDocument, "err", err)
			continue
		}
		d.Sectors = append(d.Sectors, s)
	}

	slog.Info("loaded editor data", "areas", len(d.Areas), "sectors", len(d.Sectors), "driver", docs.Driver())
	return d, nil
}

func (d *Data) load(ctx context.Context, name string) ([]json.RawMessage, error) {
	raw, err := d.docs.Load(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		if _, err := d.docs.Save(ctx, name, []byte(DefaultContent)); err != nil {
			return nil, fmt.Errorf("creating %s: %w", name, err)
		}
		raw = []byte(DefaultContent)
	} else if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return doc.Entries, nil
}

// lookupArea prefers workspace areas over registered ones.
func (d *Data) lookupArea(id string) (*spatial.Area, bool) {
	if a, ok := d.Area(id); ok {
		return a, true
	}
	return d.catalog.Areas.Get(id)
}

// SetObserver installs the save observer; nil disables it.
func (d *Data) SetObserver(o SaveObserver) { d.observer = o }

// Area returns the workspace area with the identifier.
func (d *Data) Area(id string) (*spatial.Area, bool) {
	i := slices.IndexFunc(d.Areas, func(a *spatial.Area) bool { return a.ID == id })
	if i < 0 {
		return nil, false
	}
	return d.Areas[i], true
}

// NewArea adds an empty area to the workspace.
func (d *Data) NewArea(id string) (*spatial.Area, error) {
	if _, ok := d.Area(id); ok {
		return nil, fmt.Errorf("area %q already exists", id)
	}
	a := d.catalog.NewArea(id)
	d.Areas = append(d.Areas, a)
	return a, nil
}

// Save writes both documents in slim form. A document whose content did not
// change is not rewritten.
func (d *Data) Save(ctx context.Context) error {
	sectors := make([]any, 0, len(d.Sectors))
	for _, s := range d.Sectors {
		sd, err := s.ExportSlim()
		if err != nil {
			return fmt.Errorf("exporting sector %s: %w", s.ID, err)
		}
		sectors = append(sectors, sd)
	}
	if err := d.save(ctx, SectorsDocument, sectors); err != nil {
		return err
	}

	areas := make([]any, 0, len(d.Areas))
	for _, a := range d.Areas {
		areas = append(areas, a.ExportSlim())
	}
	return d.save(ctx, AreasDocument, areas)
}

func (d *Data) save(ctx context.Context, name string, entries []any) error {
	data, err := json.MarshalIndent(struct {
		Entries []any `json:"entries"`
	}{entries}, "", "\t")
	if err != nil {
		d.observe(metrics.SaveFailed)
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	written, err := d.docs.Save(ctx, name, data)
	if err != nil {
		d.observe(metrics.SaveFailed)
		return fmt.Errorf("saving %s: %w", name, err)
	}
	if !written {
		d.observe(metrics.SaveUnchanged)
		slog.Debug("editor document unchanged", "document", name)
		return nil
	}
	d.observe(metrics.SaveWritten)
	slog.Info("saved editor entries", "document", name, "entries", len(entries))
	return nil
}

func (d *Data) observe(result string) {
	if d.observer != nil {
		d.observer.DocumentSaved(result)
	}
}
