// Package searchbooks implements the paged catalog search.
//
// The store does the matching and windowing in SQL; this package owns the
// page envelope so callers can render pagination without re-counting.
package searchbooks
