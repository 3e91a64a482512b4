// Package metrics instruments the reconciler with Prometheus collectors.
//
// A [Recorder] registers its collectors on a caller-supplied registry so
// tests and embedders can keep them isolated from the global one. All
// methods are safe on a nil *Recorder, which records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "native"

// Edit operations counted by the sequence reconciler.
const (
	EditInsert  = "insert"
	EditRemove  = "remove"
	EditSwap    = "swap"
	EditReplace = "replace"
)

// Message outcomes.
const (
	MessageDelivered = "delivered"
	MessageDropped   = "dropped"
)

// Relayout request outcomes.
const (
	RelayoutPosted    = "posted"
	RelayoutCoalesced = "coalesced"
)

// Recorder holds the runtime's collectors.
type Recorder struct {
	// WidgetsCreated counts native widgets built, by kind.
	WidgetsCreated *prometheus.CounterVec
	// WidgetsDestroyed counts native widgets destroyed, by kind.
	WidgetsDestroyed *prometheus.CounterVec
	// Edits counts element list edits, by op.
	Edits *prometheus.CounterVec
	// LayoutPasses counts window layout passes.
	LayoutPasses prometheus.Counter
	// LayoutDuration observes the time spent computing layout.
	LayoutDuration prometheus.Histogram
	// Messages counts dispatched messages, by outcome.
	Messages *prometheus.CounterVec
	// Relayouts counts relayout requests, by outcome.
	Relayouts *prometheus.CounterVec
	// StaleReferences counts operations on removed layout nodes, by op.
	StaleReferences *prometheus.CounterVec
	// QueueDepth is the number of events waiting in the proxy.
	QueueDepth prometheus.Gauge
}

// New creates a Recorder registered on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		WidgetsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "widgets",
			Name:      "created_total",
			Help:      "Native widgets built, by kind.",
		}, []string{"kind"}),
		WidgetsDestroyed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "widgets",
			Name:      "destroyed_total",
			Help:      "Native widgets destroyed, by kind.",
		}, []string{"kind"}),
		Edits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconciler",
			Name:      "edits_total",
			Help:      "Element list edits, by operation.",
		}, []string{"op"}),
		LayoutPasses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "passes_total",
			Help:      "Window layout passes.",
		}),
		LayoutDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "duration_seconds",
			Help:      "Time spent computing a window layout.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		Messages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "proxy",
			Name:      "messages_total",
			Help:      "Messages dispatched, by outcome.",
		}, []string{"outcome"}),
		Relayouts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "relayout_requests_total",
			Help:      "Relayout requests, by outcome.",
		}, []string{"outcome"}),
		StaleReferences: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "stale_references_total",
			Help:      "Operations on removed layout nodes, by operation.",
		}, []string{"op"}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "proxy",
			Name:      "queue_depth",
			Help:      "Events waiting to be processed.",
		}),
	}
}

// WidgetCreated records a native widget of kind being built.
func (r *Recorder) WidgetCreated(kind string) {
	if r == nil {
		return
	}
	r.WidgetsCreated.WithLabelValues(kind).Inc()
}

// WidgetDestroyed records a native widget of kind being destroyed.
func (r *Recorder) WidgetDestroyed(kind string) {
	if r == nil {
		return
	}
	r.WidgetsDestroyed.WithLabelValues(kind).Inc()
}

// Edit records one element list edit.
func (r *Recorder) Edit(op string) {
	if r == nil {
		return
	}
	r.Edits.WithLabelValues(op).Inc()
}

// LayoutPass records a layout pass that took d.
func (r *Recorder) LayoutPass(d time.Duration) {
	if r == nil {
		return
	}
	r.LayoutPasses.Inc()
	r.LayoutDuration.Observe(d.Seconds())
}

// Message records a dispatched message.
func (r *Recorder) Message(outcome string) {
	if r == nil {
		return
	}
	r.Messages.WithLabelValues(outcome).Inc()
}

// Relayout records a relayout request.
func (r *Recorder) Relayout(outcome string) {
	if r == nil {
		return
	}
	r.Relayouts.WithLabelValues(outcome).Inc()
}

// Stale records an operation on a removed layout node.
func (r *Recorder) Stale(op string) {
	if r == nil {
		return
	}
	r.StaleReferences.WithLabelValues(op).Inc()
}

// SetQueueDepth records the number of pending events.
func (r *Recorder) SetQueueDepth(n int) {
	if r == nil {
		return
	}
	r.QueueDepth.Set(float64(n))
}
