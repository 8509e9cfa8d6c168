// Package registermember implements the command for registering a new
// borrower.
//
// Email addresses are normalized to lowercase and compared for uniqueness in
// that form. A duplicate member id is absorbed as idempotent, a duplicate
// email is rejected. The member's borrowing limit defaults from the lending
// policy when the command leaves it unset.
package registermember
