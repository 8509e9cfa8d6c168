// Package librarystore defines the storage contracts shared by all library
// store engines: the sentinel errors, the read model row types, the
// consistency level context helpers, and the dependency-free observability
// interfaces (Logger, MetricsCollector, TracingCollector and their
// context-aware variants).
//
// The concrete PostgreSQL engine lives in the postgresstore subpackage;
// OpenTelemetry implementations of the observability interfaces live in the
// nested oteladapters module. Keeping the contracts here means neither the
// domain layer nor the feature handlers depend on a concrete database or
// telemetry stack.
package librarystore
