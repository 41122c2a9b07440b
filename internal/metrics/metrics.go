package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ingestedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fleetgrid",
	Name:      "telemetry_ingested_total",
	Help:      "Total number of accepted telemetry readings.",
}, []string{"type"})

var rejectedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "fleetgrid",
	Name:      "telemetry_rejected_total",
	Help:      "Total number of rejected telemetry payloads.",
})

var performanceCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fleetgrid",
	Name:      "performance_queries_total",
	Help:      "Total number of vehicle performance queries by outcome.",
}, []string{"result"})

// CountIngested records an accepted reading of the given payload type.
func CountIngested(payloadType string) {
	if payloadType == "" {
		return
	}
	ingestedCounter.With(prometheus.Labels{"type": payloadType}).Inc()
}

// CountRejected records a telemetry payload refused by validation.
func CountRejected() {
	rejectedCounter.Inc()
}

// CountPerformanceQuery records a performance query outcome: ok, not_linked or error.
func CountPerformanceQuery(result string) {
	if result == "" {
		return
	}
	performanceCounter.With(prometheus.Labels{"result": result}).Inc()
}
