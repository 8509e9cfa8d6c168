package core

import "errors"

var (
	// ErrInvalidLoanState signals an operation on a loan whose lifecycle state
	// forbids it, such as returning a loan that was already returned or settling
	// a fine on a loan that is still open.
	ErrInvalidLoanState = errors.New("loan is not in a state that allows this operation")

	// ErrInventoryViolation signals that applying a change would corrupt the copy
	// inventory, such as releasing a copy when all copies are already on the shelf.
	ErrInventoryViolation = errors.New("operation would violate the copy inventory")

	// ErrInvalidISBN signals an ISBN that is not 10 or 13 characters after normalization.
	ErrInvalidISBN = errors.New("invalid ISBN")

	// ErrInvalidBookData signals book attributes that fail construction validation.
	ErrInvalidBookData = errors.New("invalid book data")

	// ErrInvalidMemberData signals member attributes that fail construction validation.
	ErrInvalidMemberData = errors.New("invalid member data")
)
