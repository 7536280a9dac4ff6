package textconv

import "github.com/hengadev/textconv/internal/monitoring"

// MetricsCollector receives counters and timings from a Registry.
type MetricsCollector = monitoring.MetricsCollector

// InMemoryMetricsCollector keeps metrics in memory, for tests and debugging.
type InMemoryMetricsCollector = monitoring.InMemoryMetricsCollector

// Metric names
const (
	MetricResolveHit        = monitoring.MetricResolveHit
	MetricResolveMiss       = monitoring.MetricResolveMiss
	MetricDiscoverySuccess  = monitoring.MetricDiscoverySuccess
	MetricDiscoveryFailure  = monitoring.MetricDiscoveryFailure
	MetricDiscoveryDuration = monitoring.MetricDiscoveryDuration
	MetricRegister          = monitoring.MetricRegister
)

// NewInMemoryMetricsCollector creates an empty in-memory collector.
func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return monitoring.NewInMemoryMetricsCollector()
}
