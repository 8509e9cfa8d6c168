// Package returnbook implements the Return Book use case.
//
// This feature closes an open loan, records the condition the copy came back
// in, and releases the copy back to the shelf. The fine owed on an overdue
// loan is computed as of the return date and frozen on the resulting change;
// amounts are never persisted, only the dates they derive from.
//
// Returning a loan twice is a hard error, not an idempotent no-op: the second
// return would carry its own date and condition, which must not silently
// overwrite the recorded ones. The guarded write closes the loan row and
// increments availability in a single statement, with the loan's open state
// as the serialization point.
//
// In a real application there should be a unit test for this business logic, unless coarse-grained
// feature tests are preferred. Complex business logic typically benefits from dedicated pure unit tests.
package returnbook
