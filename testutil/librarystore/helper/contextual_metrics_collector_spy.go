package helper

import (
	"context"
	"sync"
	"time"

	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// ContextualMetricsCollectorSpy is a ContextualMetricsCollector implementation that captures
// metrics calls for testing. It embeds MetricsCollectorSpy so all matcher helpers work on it,
// and additionally records how often the context-aware methods were invoked, which lets tests
// verify that the store prefers the contextual code paths when they are available.
type ContextualMetricsCollectorSpy struct {
	*MetricsCollectorSpy
	contextualCalls int
	mu              sync.Mutex
}

// NewContextualMetricsCollectorSpy creates a new ContextualMetricsCollectorSpy for testing
// the context-aware metrics paths. Set recordCalls to true to capture all metrics calls.
func NewContextualMetricsCollectorSpy(recordCalls bool) *ContextualMetricsCollectorSpy {
	return &ContextualMetricsCollectorSpy{
		MetricsCollectorSpy: NewMetricsCollectorSpy(recordCalls),
	}
}

// RecordDurationContext implements the ContextualMetricsCollector interface.
func (s *ContextualMetricsCollectorSpy) RecordDurationContext(
	_ context.Context,
	metric string,
	duration time.Duration,
	labels map[string]string,
) {
	s.countContextualCall()
	s.RecordDuration(metric, duration, labels)
}

// IncrementCounterContext implements the ContextualMetricsCollector interface.
func (s *ContextualMetricsCollectorSpy) IncrementCounterContext(
	_ context.Context,
	metric string,
	labels map[string]string,
) {
	s.countContextualCall()
	s.IncrementCounter(metric, labels)
}

// RecordValueContext implements the ContextualMetricsCollector interface.
func (s *ContextualMetricsCollectorSpy) RecordValueContext(
	_ context.Context,
	metric string,
	value float64,
	labels map[string]string,
) {
	s.countContextualCall()
	s.RecordValue(metric, value, labels)
}

// SupportsContextual reports whether this spy implements the contextual metrics interface.
func (s *ContextualMetricsCollectorSpy) SupportsContextual() bool {
	return true
}

// GetContextualCallCount returns how many times any context-aware method was invoked.
func (s *ContextualMetricsCollectorSpy) GetContextualCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.contextualCalls
}

func (s *ContextualMetricsCollectorSpy) countContextualCall() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contextualCalls++
}

// Compile-time check to ensure ContextualMetricsCollectorSpy implements the ContextualMetricsCollector interface.
var _ librarystore.ContextualMetricsCollector = (*ContextualMetricsCollectorSpy)(nil)
