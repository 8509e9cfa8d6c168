package helper

import (
	"context"
	"sync"

	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

const (
	spyLogLevelDebug = "debug"
	spyLogLevelInfo  = "info"
	spyLogLevelWarn  = "warn"
	spyLogLevelError = "error"
)

// ContextualLogRecord is one captured log call, including the context it was
// made with.
type ContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// ContextualLoggerSpy captures context-aware log calls, so tests can assert
// on what the instrumented code logged through the contextual interface.
type ContextualLoggerSpy struct {
	mu        sync.Mutex
	records   []ContextualLogRecord
	recording bool
}

// NewContextualLoggerSpy creates a spy. With record set to false the spy
// swallows every call, which mimics a disabled logger.
func NewContextualLoggerSpy(record bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{recording: record}
}

// DebugContext implements librarystore.ContextualLogger.
func (l *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	l.capture(ctx, spyLogLevelDebug, msg, args)
}

// InfoContext implements librarystore.ContextualLogger.
func (l *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	l.capture(ctx, spyLogLevelInfo, msg, args)
}

// WarnContext implements librarystore.ContextualLogger.
func (l *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	l.capture(ctx, spyLogLevelWarn, msg, args)
}

// ErrorContext implements librarystore.ContextualLogger.
func (l *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.capture(ctx, spyLogLevelError, msg, args)
}

// Reset discards all captured records.
func (l *ContextualLoggerSpy) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = l.records[:0]
}

// GetDebugRecords returns a copy of all captured debug records.
func (l *ContextualLoggerSpy) GetDebugRecords() []ContextualLogRecord {
	return l.recordsAtLevel(spyLogLevelDebug)
}

// GetInfoRecords returns a copy of all captured info records.
func (l *ContextualLoggerSpy) GetInfoRecords() []ContextualLogRecord {
	return l.recordsAtLevel(spyLogLevelInfo)
}

// GetWarnRecords returns a copy of all captured warn records.
func (l *ContextualLoggerSpy) GetWarnRecords() []ContextualLogRecord {
	return l.recordsAtLevel(spyLogLevelWarn)
}

// GetErrorRecords returns a copy of all captured error records.
func (l *ContextualLoggerSpy) GetErrorRecords() []ContextualLogRecord {
	return l.recordsAtLevel(spyLogLevelError)
}

// GetTotalRecordCount returns how many records were captured across all
// levels.
func (l *ContextualLoggerSpy) GetTotalRecordCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.records)
}

// HasDebugLog reports whether a debug record with exactly this message was
// captured.
func (l *ContextualLoggerSpy) HasDebugLog(message string) bool {
	return l.hasRecord(spyLogLevelDebug, message)
}

// HasInfoLog reports whether an info record with exactly this message was
// captured.
func (l *ContextualLoggerSpy) HasInfoLog(message string) bool {
	return l.hasRecord(spyLogLevelInfo, message)
}

// HasErrorLog reports whether an error record with exactly this message was
// captured.
func (l *ContextualLoggerSpy) HasErrorLog(message string) bool {
	return l.hasRecord(spyLogLevelError, message)
}

func (l *ContextualLoggerSpy) capture(ctx context.Context, level string, msg string, args []any) {
	if !l.recording {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, ContextualLogRecord{
		Level:   level,
		Message: msg,
		Args:    args,
		Context: ctx,
	})
}

func (l *ContextualLoggerSpy) recordsAtLevel(level string) []ContextualLogRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	matching := make([]ContextualLogRecord, 0)
	for _, record := range l.records {
		if record.Level == level {
			matching = append(matching, record)
		}
	}

	return matching
}

func (l *ContextualLoggerSpy) hasRecord(level, message string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, record := range l.records {
		if record.Level == level && record.Message == message {
			return true
		}
	}

	return false
}

var _ librarystore.ContextualLogger = (*ContextualLoggerSpy)(nil)
