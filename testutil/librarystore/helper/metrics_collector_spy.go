package helper

import (
	"slices"
	"sync"
	"time"

	"github.com/BhuvanMohan2005/library-management-go/librarystore"
	"github.com/BhuvanMohan2005/library-management-go/shell"
)

// SpyDurationRecord is one captured duration metric.
type SpyDurationRecord struct {
	Metric   string
	Duration time.Duration
	Labels   map[string]string
}

// SpyCounterRecord is one captured counter increment.
type SpyCounterRecord struct {
	Metric string
	Labels map[string]string
}

// SpyValueRecord is one captured gauge value.
type SpyValueRecord struct {
	Metric string
	Value  float64
	Labels map[string]string
}

func (r SpyDurationRecord) metricName() string {
	return r.Metric
}

func (r SpyDurationRecord) metricLabels() map[string]string {
	return r.Labels
}

func (r SpyCounterRecord) metricName() string {
	return r.Metric
}

func (r SpyCounterRecord) metricLabels() map[string]string {
	return r.Labels
}

func (r SpyValueRecord) metricName() string {
	return r.Metric
}

func (r SpyValueRecord) metricLabels() map[string]string {
	return r.Labels
}

// MetricsCollectorSpy captures metric calls instead of exporting them, so
// tests can assert on what the instrumented code recorded. It implements
// only the plain MetricsCollector interface, which also makes it the tool
// for testing the non-contextual fallback paths.
type MetricsCollectorSpy struct {
	mu        sync.Mutex
	durations []SpyDurationRecord
	counters  []SpyCounterRecord
	values    []SpyValueRecord
	recording bool
}

// NewMetricsCollectorSpy creates a spy. With record set to false the spy
// swallows every call, which mimics a disabled collector.
func NewMetricsCollectorSpy(record bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{
		durations: make([]SpyDurationRecord, 0),
		counters:  make([]SpyCounterRecord, 0),
		values:    make([]SpyValueRecord, 0),
		recording: record,
	}
}

// RecordDuration implements librarystore.MetricsCollector.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	if !s.recording {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.durations = append(s.durations, SpyDurationRecord{
		Metric:   metric,
		Duration: duration,
		Labels:   copyLabels(labels),
	})
}

// IncrementCounter implements librarystore.MetricsCollector.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	if !s.recording {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters = append(s.counters, SpyCounterRecord{
		Metric: metric,
		Labels: copyLabels(labels),
	})
}

// RecordValue implements librarystore.MetricsCollector.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	if !s.recording {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = append(s.values, SpyValueRecord{
		Metric: metric,
		Value:  value,
		Labels: copyLabels(labels),
	})
}

// GetDurationRecordCount returns how many duration metrics were recorded.
func (s *MetricsCollectorSpy) GetDurationRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.durations)
}

// GetCounterRecordCount returns how many counter increments were recorded.
func (s *MetricsCollectorSpy) GetCounterRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.counters)
}

// GetValueRecordCount returns how many gauge values were recorded.
func (s *MetricsCollectorSpy) GetValueRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.values)
}

// GetDurationRecords returns a copy of all captured duration metrics.
func (s *MetricsCollectorSpy) GetDurationRecords() []SpyDurationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.durations)
}

// GetCounterRecords returns a copy of all captured counter increments.
func (s *MetricsCollectorSpy) GetCounterRecords() []SpyCounterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.counters)
}

// GetValueRecords returns a copy of all captured gauge values.
func (s *MetricsCollectorSpy) GetValueRecords() []SpyValueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.values)
}

// Reset discards all captured records.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durations = s.durations[:0]
	s.counters = s.counters[:0]
	s.values = s.values[:0]
}

// HasDurationRecord reports whether the metric was recorded at all.
func (s *MetricsCollectorSpy) HasDurationRecord(metric string) bool {
	return s.CountDurationRecordsForMetric(metric) > 0
}

// HasCounterRecord reports whether the counter was incremented at all.
func (s *MetricsCollectorSpy) HasCounterRecord(metric string) bool {
	return s.CountCounterRecordsForMetric(metric) > 0
}

// HasValueRecord reports whether the gauge was recorded at all.
func (s *MetricsCollectorSpy) HasValueRecord(metric string) bool {
	return s.CountValueRecordsForMetric(metric) > 0
}

// CountDurationRecordsForMetric counts the records for one duration metric.
func (s *MetricsCollectorSpy) CountDurationRecordsForMetric(metric string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return countRecordsForMetric(s.durations, metric)
}

// CountCounterRecordsForMetric counts the increments for one counter.
func (s *MetricsCollectorSpy) CountCounterRecordsForMetric(metric string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return countRecordsForMetric(s.counters, metric)
}

// CountValueRecordsForMetric counts the records for one gauge.
func (s *MetricsCollectorSpy) CountValueRecordsForMetric(metric string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return countRecordsForMetric(s.values, metric)
}

// HasDurationRecordForMetric starts a matcher chain on the first record for
// the given duration metric.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	return matcherForFirstRecord(s.durations, metric)
}

// HasCounterRecordForMetric starts a matcher chain on the first increment of
// the given counter.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	return matcherForFirstRecord(s.counters, metric)
}

// HasValueRecordForMetric starts a matcher chain on the first record for the
// given gauge.
func (s *MetricsCollectorSpy) HasValueRecordForMetric(metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	return matcherForFirstRecord(s.values, metric)
}

// SupportsContextual reports whether this spy implements the contextual
// metrics interface. The plain spy does not.
func (s *MetricsCollectorSpy) SupportsContextual() bool {
	return false
}

// MetricRecordMatcher narrows down on one captured record. Each With method
// adds a label condition, Assert reports whether all of them held.
type MetricRecordMatcher struct {
	labels map[string]string
	found  bool
}

// WithOperation requires the record's operation label.
func (m *MetricRecordMatcher) WithOperation(operation string) *MetricRecordMatcher {
	return m.WithLabel("operation", operation)
}

// WithStatus requires the record's status label.
func (m *MetricRecordMatcher) WithStatus(status string) *MetricRecordMatcher {
	return m.WithLabel("status", status)
}

// WithErrorType requires the record's error_type label.
func (m *MetricRecordMatcher) WithErrorType(errorType string) *MetricRecordMatcher {
	return m.WithLabel("error_type", errorType)
}

// WithConflictType requires the record's conflict_type label.
func (m *MetricRecordMatcher) WithConflictType(conflictType string) *MetricRecordMatcher {
	return m.WithLabel("conflict_type", conflictType)
}

// WithCommandType requires the record's command_type label.
func (m *MetricRecordMatcher) WithCommandType(commandType string) *MetricRecordMatcher {
	return m.WithLabel(shell.LogAttrCommandType, commandType)
}

// WithQueryType requires the record's query_type label.
func (m *MetricRecordMatcher) WithQueryType(queryType string) *MetricRecordMatcher {
	return m.WithLabel(shell.LogAttrQueryType, queryType)
}

// WithLabel requires an arbitrary label on the record.
func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	if !m.found {
		return m
	}

	got, ok := m.labels[key]
	if !ok || got != value {
		m.found = false
	}

	return m
}

// Assert reports whether a record was found and met every condition.
func (m *MetricRecordMatcher) Assert() bool {
	return m.found
}

// spyMetricRecord lets the search helpers below work across all three record
// kinds.
type spyMetricRecord interface {
	metricName() string
	metricLabels() map[string]string
}

func countRecordsForMetric[R spyMetricRecord](records []R, metric string) int {
	count := 0
	for _, record := range records {
		if record.metricName() == metric {
			count++
		}
	}

	return count
}

func matcherForFirstRecord[R spyMetricRecord](records []R, metric string) *MetricRecordMatcher {
	for _, record := range records {
		if record.metricName() == metric {
			return &MetricRecordMatcher{labels: record.metricLabels(), found: true}
		}
	}

	return &MetricRecordMatcher{found: false}
}

func copyLabels(labels map[string]string) map[string]string {
	copied := make(map[string]string, len(labels))
	for k, v := range labels {
		copied[k] = v
	}

	return copied
}

var _ librarystore.MetricsCollector = (*MetricsCollectorSpy)(nil)
