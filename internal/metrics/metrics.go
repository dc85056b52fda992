// Package metrics exposes the Prometheus registry and the application's
// counters. Everything registers against a private registry so tests can
// scrape without fighting the global default.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventreg"

// Registry is the Prometheus registry for all application metrics.
var Registry = prometheus.NewRegistry()

// AppInfo exposes version information as labels; the value is always 1.
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always set to 1, version info in labels)",
	},
	[]string{"version", "commit", "build_date"},
)

// EventWritesTotal counts event create/update/delete attempts by outcome.
var EventWritesTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_writes_total",
		Help:      "Event write attempts by operation and result",
	},
	[]string{"operation", "result"}, // operation: create|update|delete, result: ok|overlap|duplicate|invalid|error
)

// RegistrationsTotal counts registration attempts by outcome.
var RegistrationsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Registration attempts by result",
	},
	[]string{"result"}, // result: ok|duplicate|full|not_found|error
)

// Init registers runtime collectors and records build information.
func Init(version, commit, buildDate string) {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	AppInfo.WithLabelValues(version, commit, buildDate).Set(1)
}
