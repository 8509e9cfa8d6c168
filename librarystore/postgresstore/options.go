package postgresstore

import (
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

// Option defines a functional option for configuring the Postgres library store.
type Option func(*LibraryStore) error

// WithTablePrefix sets a prefix for the books, members and loans table names.
// Useful for isolating multiple deployments or test runs in one database.
func WithTablePrefix(prefix string) Option {
	return func(ls *LibraryStore) error {
		if prefix == "" {
			return librarystore.ErrEmptyTablePrefix
		}

		ls.tablePrefix = prefix

		return nil
	}
}

// WithLogger sets a logger for the library store.
func WithLogger(logger librarystore.Logger) Option {
	return func(ls *LibraryStore) error {
		ls.logger = logger

		return nil
	}
}

// WithContextualLogger sets a context-aware logger for the library store.
func WithContextualLogger(logger librarystore.ContextualLogger) Option {
	return func(ls *LibraryStore) error {
		ls.contextualLogger = logger

		return nil
	}
}

// WithMetrics sets a metrics collector for the library store.
func WithMetrics(collector librarystore.MetricsCollector) Option {
	return func(ls *LibraryStore) error {
		ls.metricsCollector = collector

		return nil
	}
}

// WithTracing sets a tracing collector for the library store.
func WithTracing(collector librarystore.TracingCollector) Option {
	return func(ls *LibraryStore) error {
		ls.tracingCollector = collector

		return nil
	}
}
