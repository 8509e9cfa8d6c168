// Package addbook implements the command for adding a new title to the
// catalog.
//
// Validation happens at command construction: BuildCommand normalizes the
// ISBN and checks the catalog fields, so a malformed book never reaches the
// decision. The decision itself only arbitrates between the catalog facts, a
// duplicate id is absorbed as idempotent and an ISBN that already belongs to
// a different entry is rejected.
//
// The insert uses ON CONFLICT DO NOTHING, so a concurrent add of the same id
// or ISBN surfaces as a concurrency conflict, and the retry re-reads the
// catalog and converges on the idempotent or rejected outcome.
package addbook
