// Package core contains the pure domain model for the library lending system:
// books with their copy inventory, members with their borrowing standing,
// loans with their lifecycle, and the LoanPolicy that governs lending.
//
// Everything in this package is pure: no I/O, no clock access, no database.
// Every date-dependent operation takes an explicit as-of date, so callers
// control "now" and results are reproducible. State changes are modeled as
// value records (BookCheckedOut, BookReturned, ...) that decision functions
// produce and the storage layer applies.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
