// Package metrics exposes prometheus counters for content import, tile
// connection updates and editor saves.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vitreous"

// Save results.
const (
	SaveWritten   = "written"
	SaveUnchanged = "unchanged"
	SaveFailed    = "failed"
)

// Metrics holds every counter. It implements registry.Observer.
type Metrics struct {
	entriesImported *prometheus.CounterVec
	entriesSkipped  *prometheus.CounterVec
	filesSkipped    *prometheus.CounterVec
	tileUpdates     prometheus.Counter
	documentSaves   *prometheus.CounterVec
}

// New creates the counters and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		entriesImported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "entries_imported_total",
			Help:      "Registry entries imported from content files.",
		}, []string{"registry"}),
		entriesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "entries_skipped_total",
			Help:      "Registry entries skipped because they failed to decode.",
		}, []string{"registry"}),
		filesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "files_skipped_total",
			Help:      "Content files skipped as unreadable or mistyped.",
		}, []string{"registry"}),
		tileUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tile",
			Name:      "connection_updates_total",
			Help:      "Tiles whose connection caches were recomputed.",
		}),
		documentSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "document_saves_total",
			Help:      "Editor document saves by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.entriesImported, m.entriesSkipped, m.filesSkipped, m.tileUpdates, m.documentSaves)
	return m
}

func (m *Metrics) EntryImported(registry string) { m.entriesImported.WithLabelValues(registry).Inc() }
func (m *Metrics) EntrySkipped(registry string)  { m.entriesSkipped.WithLabelValues(registry).Inc() }
func (m *Metrics) FileSkipped(registry string)   { m.filesSkipped.WithLabelValues(registry).Inc() }

// TilesUpdated adds n recomputed tiles.
func (m *Metrics) TilesUpdated(n int) {
	if n > 0 {
		m.tileUpdates.Add(float64(n))
	}
}

// DocumentSaved records one save attempt.
func (m *Metrics) DocumentSaved(result string) { m.documentSaves.WithLabelValues(result).Inc() }

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
