// Package settlefine implements the Settle Fine use case.
//
// This feature marks the fine on a returned, overdue loan as paid. Only the
// payment fact is persisted; the amount is recomputed from the loan's dates
// and reported on the resulting change. Settling an open loan or a loan that
// owes nothing is a hard error, settling twice is an idempotent no-op.
//
// In a real application there should be a unit test for this business logic, unless coarse-grained
// feature tests are preferred. Complex business logic typically benefits from dedicated pure unit tests.
package settlefine
