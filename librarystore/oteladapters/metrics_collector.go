package oteladapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// MetricsCollector implements both librarystore metrics interfaces against
// the OpenTelemetry metrics API. Durations become histograms, counters
// become monotonic counters, and values (such as rows read) become gauges.
// Instruments are created lazily on first use and cached by metric name; a
// creation error leaves the metric unrecorded rather than failing the store
// operation that triggered it.
type MetricsCollector struct {
	histograms instrumentCache[metric.Float64Histogram]
	counters   instrumentCache[metric.Int64Counter]
	gauges     instrumentCache[metric.Float64Gauge]
}

// NewMetricsCollector creates a collector that builds its instruments from
// the given meter, which should come from the application's MeterProvider.
func NewMetricsCollector(meter metric.Meter) *MetricsCollector {
	return &MetricsCollector{
		histograms: newInstrumentCache(func(name string) (metric.Float64Histogram, error) {
			return meter.Float64Histogram(
				name,
				metric.WithDescription("librarystore operation duration"),
				metric.WithUnit("s"),
			)
		}),
		counters: newInstrumentCache(func(name string) (metric.Int64Counter, error) {
			return meter.Int64Counter(
				name,
				metric.WithDescription("librarystore operation count"),
			)
		}),
		gauges: newInstrumentCache(func(name string) (metric.Float64Gauge, error) {
			return meter.Float64Gauge(
				name,
				metric.WithDescription("librarystore observed value"),
			)
		}),
	}
}

// RecordDuration records an operation duration on a histogram, in seconds.
// Without a context the record cannot correlate with a trace.
func (m *MetricsCollector) RecordDuration(metricName string, duration time.Duration, labels map[string]string) {
	m.RecordDurationContext(context.TODO(), metricName, duration, labels)
}

// RecordDurationContext records an operation duration with context, so the
// measurement correlates with an active trace.
func (m *MetricsCollector) RecordDurationContext(ctx context.Context, metricName string, duration time.Duration, labels map[string]string) {
	if histogram, ok := m.histograms.lookup(metricName); ok {
		histogram.Record(ctx, duration.Seconds(), metric.WithAttributes(toAttributes(labels)...))
	}
}

// IncrementCounter adds one to a monotonic counter, used for conflict,
// retry and error tallies.
func (m *MetricsCollector) IncrementCounter(metricName string, labels map[string]string) {
	m.IncrementCounterContext(context.TODO(), metricName, labels)
}

// IncrementCounterContext adds one to a monotonic counter with context.
func (m *MetricsCollector) IncrementCounterContext(ctx context.Context, metricName string, labels map[string]string) {
	if counter, ok := m.counters.lookup(metricName); ok {
		counter.Add(ctx, 1, metric.WithAttributes(toAttributes(labels)...))
	}
}

// RecordValue records a point-in-time value on a gauge, such as the number
// of rows a read returned.
func (m *MetricsCollector) RecordValue(metricName string, value float64, labels map[string]string) {
	m.RecordValueContext(context.TODO(), metricName, value, labels)
}

// RecordValueContext records a point-in-time value on a gauge with context.
func (m *MetricsCollector) RecordValueContext(ctx context.Context, metricName string, value float64, labels map[string]string) {
	if gauge, ok := m.gauges.lookup(metricName); ok {
		gauge.Record(ctx, value, metric.WithAttributes(toAttributes(labels)...))
	}
}

// instrumentCache creates instruments on demand and hands out the cached
// one on every later lookup for the same metric name.
type instrumentCache[I any] struct {
	build       func(name string) (I, error)
	instruments map[string]I
}

func newInstrumentCache[I any](build func(name string) (I, error)) instrumentCache[I] {
	return instrumentCache[I]{
		build:       build,
		instruments: make(map[string]I),
	}
}

func (c *instrumentCache[I]) lookup(name string) (I, bool) {
	if instrument, exists := c.instruments[name]; exists {
		return instrument, true
	}

	instrument, err := c.build(name)
	if err != nil {
		var zero I

		return zero, false
	}

	c.instruments[name] = instrument

	return instrument, true
}

// toAttributes converts a label map into OTel string attributes.
func toAttributes(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for key, value := range labels {
		attrs = append(attrs, attribute.String(key, value))
	}

	return attrs
}

var _ librarystore.MetricsCollector = (*MetricsCollector)(nil)
var _ librarystore.ContextualMetricsCollector = (*MetricsCollector)(nil)
