package helper

import (
	"context"
	"sync"

	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// SpySpanContext is the span handle the TracingCollectorSpy hands out. It
// remembers whatever status and attributes the instrumented code sets on it.
type SpySpanContext struct {
	mu         sync.Mutex
	status     string
	attributes map[string]string
}

// SetStatus implements librarystore.SpanContext.
func (c *SpySpanContext) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
}

// AddAttribute implements librarystore.SpanContext.
func (c *SpySpanContext) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attributes == nil {
		c.attributes = make(map[string]string)
	}
	c.attributes[key] = value
}

// GetStatus returns the status last set on the span.
func (c *SpySpanContext) GetStatus() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status
}

// GetAttributes returns a copy of the attributes set on the span.
func (c *SpySpanContext) GetAttributes() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return copyLabels(c.attributes)
}

// SpySpanRecord is one captured span: the name and attributes it started
// with, and the status and attributes it finished with.
type SpySpanRecord struct {
	Name            string
	StartAttributes map[string]string
	Status          string
	EndAttributes   map[string]string
	SpanContext     *SpySpanContext
}

// TracingCollectorSpy captures spans instead of exporting them, so tests can
// assert on what the instrumented code traced.
type TracingCollectorSpy struct {
	mu        sync.Mutex
	spans     []SpySpanRecord
	recording bool
}

// NewTracingCollectorSpy creates a spy. With record set to false the spy
// swallows every call, which mimics a disabled collector.
func NewTracingCollectorSpy(record bool) *TracingCollectorSpy {
	return &TracingCollectorSpy{
		spans:     make([]SpySpanRecord, 0),
		recording: record,
	}
}

// StartSpan implements librarystore.TracingCollector.
func (s *TracingCollectorSpy) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, librarystore.SpanContext) {
	if !s.recording {
		return ctx, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	spanCtx := &SpySpanContext{attributes: make(map[string]string)}
	s.spans = append(s.spans, SpySpanRecord{
		Name:            name,
		StartAttributes: copyLabels(attrs),
		SpanContext:     spanCtx,
	})

	return ctx, spanCtx
}

// FinishSpan implements librarystore.TracingCollector. It completes the
// record that StartSpan opened for this handle and ignores handles it did
// not create.
func (s *TracingCollectorSpy) FinishSpan(spanCtx librarystore.SpanContext, status string, attrs map[string]string) {
	if !s.recording || spanCtx == nil {
		return
	}

	ownCtx, ok := spanCtx.(*SpySpanContext)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.spans {
		if s.spans[i].SpanContext == ownCtx {
			s.spans[i].Status = status
			s.spans[i].EndAttributes = copyLabels(attrs)

			return
		}
	}
}

// GetSpanRecordCount returns how many spans were started.
func (s *TracingCollectorSpy) GetSpanRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.spans)
}

// GetSpanRecords returns a copy of all captured spans.
func (s *TracingCollectorSpy) GetSpanRecords() []SpySpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpySpanRecord, len(s.spans))
	copy(records, s.spans)

	return records
}

// Reset discards all captured spans.
func (s *TracingCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spans = s.spans[:0]
}

// HasSpanRecord reports whether any span with the given name was started.
func (s *TracingCollectorSpy) HasSpanRecord(name string) bool {
	return s.CountSpanRecordsForName(name) > 0
}

// CountSpanRecordsForName counts the spans started under the given name.
func (s *TracingCollectorSpy) CountSpanRecordsForName(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for i := range s.spans {
		if s.spans[i].Name == name {
			count++
		}
	}

	return count
}

// SpanRecordMatcher narrows down on the first span with a given name. Each
// With method adds a condition, Assert reports whether all of them held.
type SpanRecordMatcher struct {
	record *SpySpanRecord
	found  bool
}

// HasSpanRecordForName starts a matcher chain on the first span started
// under the given name.
func (s *TracingCollectorSpy) HasSpanRecordForName(name string) *SpanRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.spans {
		if s.spans[i].Name == name {
			record := s.spans[i]

			return &SpanRecordMatcher{record: &record, found: true}
		}
	}

	return &SpanRecordMatcher{found: false}
}

// WithStatus requires the span to have finished with the given status.
func (m *SpanRecordMatcher) WithStatus(status string) *SpanRecordMatcher {
	return m.require(func(record *SpySpanRecord) bool {
		return record.Status == status
	})
}

// WithStartAttribute requires an attribute the span was started with.
func (m *SpanRecordMatcher) WithStartAttribute(key, value string) *SpanRecordMatcher {
	return m.require(func(record *SpySpanRecord) bool {
		got, ok := record.StartAttributes[key]

		return ok && got == value
	})
}

// WithEndAttribute requires an attribute the span was finished with.
func (m *SpanRecordMatcher) WithEndAttribute(key, value string) *SpanRecordMatcher {
	return m.require(func(record *SpySpanRecord) bool {
		got, ok := record.EndAttributes[key]

		return ok && got == value
	})
}

// WithSpanAttribute requires an attribute set on the span handle itself.
func (m *SpanRecordMatcher) WithSpanAttribute(key, value string) *SpanRecordMatcher {
	return m.require(func(record *SpySpanRecord) bool {
		if record.SpanContext == nil {
			return false
		}

		got, ok := record.SpanContext.GetAttributes()[key]

		return ok && got == value
	})
}

// Assert reports whether a span was found and met every condition.
func (m *SpanRecordMatcher) Assert() bool {
	return m.found
}

func (m *SpanRecordMatcher) require(condition func(record *SpySpanRecord) bool) *SpanRecordMatcher {
	if m.found && m.record != nil && !condition(m.record) {
		m.found = false
	}

	return m
}

var _ librarystore.TracingCollector = (*TracingCollectorSpy)(nil)
