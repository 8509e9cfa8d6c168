// Package checkoutbook implements the Check Out Book use case.
//
// This feature lends an available copy of a book to an active member.
// It follows the Load-Decide-Write pattern with proper separation between
// infrastructure concerns (CommandHandler) and pure business logic (Decide function).
//
// The business logic enforces the lending rules: the member account must be
// active, the member must be below their borrowing limit, and at least one
// copy must be available. Blocked checkouts are typed rejections, not errors.
// The guarded write claims the copy, records the loan and bumps the member's
// version token in a single statement, so racing checkouts of the last copy
// or racing decisions about the same member can never both apply.
//
// In a real application there should be a unit test for this business logic, unless coarse-grained
// feature tests are preferred. Complex business logic typically benefits from dedicated pure unit tests.
package checkoutbook
