// Package shell provides the handler plumbing between the pure domain core
// and the library store: command and query contracts, retry with exponential
// backoff, handler results, and observability helpers.
//
// This package implements the "imperative shell" pattern: feature handlers
// load state, delegate every decision to the functional core, and apply the
// resulting state change through a guarded write. Soft business rejections
// and idempotent replays travel as first-class result fields, never as
// errors.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would
// be called the 'infrastructure' layer.
package shell
