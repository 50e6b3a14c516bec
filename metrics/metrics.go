package metrics

import "github.com/prometheus/client_golang/prometheus"

// SnapshotsProcessed counts update snapshots delivered to change registries.
var SnapshotsProcessed = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "attrwatch_snapshots_processed",
		Help: "Update snapshots processed by change registries.",
	})

// ChangesDetected counts attribute values that differed from the stored
// baseline, including changes suppressed by trigger gating.
var ChangesDetected = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "attrwatch_changes_detected",
		Help: "Attribute changes detected against the previous snapshot.",
	})

// CallbacksDispatched counts callbacks invoked after trigger gating.
var CallbacksDispatched = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "attrwatch_callbacks_dispatched",
		Help: "Change callbacks dispatched to hosts.",
	})

// RegisterAll registers all collectors with the provided registerer. The
// library serves no HTTP endpoint itself; hosts exposing /metrics call this
// with their own registry.
func RegisterAll(registerer prometheus.Registerer) {
	registerer.MustRegister(SnapshotsProcessed, ChangesDetected, CallbacksDispatched)
}
