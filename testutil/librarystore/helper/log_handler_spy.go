package helper

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"sync"
)

// LogHandlerSpy is a slog.Handler that keeps every record it sees, so tests
// can assert on messages, levels, and attributes.
type LogHandlerSpy struct {
	mu      sync.Mutex
	records []slog.Record
	echo    slog.Handler
}

// NewLogHandlerSpy creates a spy. With logToStdOut set the spy additionally
// prints every record as JSON, which helps when a log assertion fails and
// you want to see what was actually emitted.
func NewLogHandlerSpy(logToStdOut bool) *LogHandlerSpy {
	spy := &LogHandlerSpy{records: make([]slog.Record, 0)}
	if logToStdOut {
		spy.echo = slog.NewJSONHandler(os.Stdout, nil)
	}

	return spy
}

// Handle implements slog.Handler.
func (s *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	s.mu.Lock()
	s.records = append(s.records, record)
	echo := s.echo
	s.mu.Unlock()

	if echo != nil {
		_ = echo.Handle(ctx, record)
	}

	return nil
}

// Enabled implements slog.Handler. The spy accepts every level.
func (s *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler. The spy ignores pre-bound attributes.
func (s *LogHandlerSpy) WithAttrs(_ []slog.Attr) slog.Handler {
	return s
}

// WithGroup implements slog.Handler. The spy ignores groups.
func (s *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	return s
}

// GetRecordCount returns how many records were captured.
func (s *LogHandlerSpy) GetRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// GetRecords returns a copy of all captured records.
func (s *LogHandlerSpy) GetRecords() []slog.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.records)
}

// Reset discards all captured records.
func (s *LogHandlerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// HasDebugLog reports whether a debug record with exactly this message was
// captured.
func (s *LogHandlerSpy) HasDebugLog(message string) bool {
	return s.hasLogWithMessage(slog.LevelDebug, message).Assert()
}

// HasDebugLogWithMessage starts a matcher chain on the first debug record
// with this message.
func (s *LogHandlerSpy) HasDebugLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.hasLogWithMessage(slog.LevelDebug, message)
}

// HasInfoLogWithMessage starts a matcher chain on the first info record with
// this message.
func (s *LogHandlerSpy) HasInfoLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.hasLogWithMessage(slog.LevelInfo, message)
}

// HasErrorLogWithMessage starts a matcher chain on the first error record
// with this message.
func (s *LogHandlerSpy) HasErrorLogWithMessage(message string) *SpyLogRecordMatcher {
	return s.hasLogWithMessage(slog.LevelError, message)
}

func (s *LogHandlerSpy) hasLogWithMessage(level slog.Level, message string) *SpyLogRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			return &SpyLogRecordMatcher{record: record, found: true}
		}
	}

	return &SpyLogRecordMatcher{found: false}
}

// SpyLogRecordMatcher narrows down on one captured record. Each With method
// adds a condition, Assert reports whether all of them held.
type SpyLogRecordMatcher struct {
	record slog.Record
	found  bool
}

// WithDurationMS requires a non-negative duration_ms attribute.
func (m *SpyLogRecordMatcher) WithDurationMS() *SpyLogRecordMatcher {
	return m.withNonNegativeNumber("duration_ms")
}

// WithRowCount requires a non-negative row_count attribute.
func (m *SpyLogRecordMatcher) WithRowCount() *SpyLogRecordMatcher {
	return m.withNonNegativeNumber("row_count")
}

// WithRowsAffected requires a non-negative rows_affected attribute.
func (m *SpyLogRecordMatcher) WithRowsAffected() *SpyLogRecordMatcher {
	return m.withNonNegativeNumber("rows_affected")
}

// WithAttr requires an attribute whose value renders to the given string.
func (m *SpyLogRecordMatcher) WithAttr(key, value string) *SpyLogRecordMatcher {
	return m.require(func(record slog.Record) bool {
		matched := false
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key == key && attr.Value.String() == value {
				matched = true
			}

			return !matched
		})

		return matched
	})
}

// Assert reports whether a record was found and met every condition.
func (m *SpyLogRecordMatcher) Assert() bool {
	return m.found
}

// withNonNegativeNumber accepts both integer and float attributes, matching
// the two shapes the store logs counts and durations in.
func (m *SpyLogRecordMatcher) withNonNegativeNumber(key string) *SpyLogRecordMatcher {
	return m.require(func(record slog.Record) bool {
		matched := false
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key != key {
				return true
			}

			switch attr.Value.Kind() {
			case slog.KindInt64:
				matched = attr.Value.Int64() >= 0
			case slog.KindFloat64:
				matched = attr.Value.Float64() >= 0
			default:
			}

			return !matched
		})

		return matched
	})
}

func (m *SpyLogRecordMatcher) require(condition func(record slog.Record) bool) *SpyLogRecordMatcher {
	if m.found && !condition(m.record) {
		m.found = false
	}

	return m
}
