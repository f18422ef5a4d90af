package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics shared across engine components.
// Storage failures are counted rather than surfaced because the adapter
// contract swallows them; the counter is the only place they remain visible.
type Metrics struct {
	StorageFailures  *prometheus.CounterVec
	OverlayApplies   prometheus.Counter
	OverlayCaptures  prometheus.Counter
	OverlayResets    prometheus.Counter
	RosterMigrations prometheus.Counter
	DraftSaves       prometheus.Counter
	RequestsRecorded *prometheus.CounterVec
	SubmitOutcomes   *prometheus.CounterVec
}

// New creates and registers all engine metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on a caller-supplied registry. Tests use
// this to avoid duplicate registration across cases.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StorageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "curator_storage_failures_total",
			Help: "Silent storage failures absorbed by the KV adapter",
		}, []string{"op"}),
		OverlayApplies: factory.NewCounter(prometheus.CounterOpts{
			Name: "curator_overlay_applies_total",
			Help: "Overlay maps applied to rendered pages",
		}),
		OverlayCaptures: factory.NewCounter(prometheus.CounterOpts{
			Name: "curator_overlay_captures_total",
			Help: "Overlay maps captured from rendered pages",
		}),
		OverlayResets: factory.NewCounter(prometheus.CounterOpts{
			Name: "curator_overlay_resets_total",
			Help: "Per-page overlay resets",
		}),
		RosterMigrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "curator_roster_migrations_total",
			Help: "Roster records run through schema migration on load",
		}),
		DraftSaves: factory.NewCounter(prometheus.CounterOpts{
			Name: "curator_draft_saves_total",
			Help: "Form draft snapshots persisted",
		}),
		RequestsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "curator_requests_recorded_total",
			Help: "Request audit records written, by kind",
		}, []string{"kind"}),
		SubmitOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "curator_submit_outcomes_total",
			Help: "Form submission outcomes, by mode (sent, copied, degraded)",
		}, []string{"mode"}),
	}
}
