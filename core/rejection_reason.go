package core

// RejectionReason identifies the business rule that blocked a command.
// Rejections are first-class outcomes, not errors: they ride in
// DecisionResult and HandlerResult, and errors.Is never matches them.
type RejectionReason string

const (
	// RejectionNoCopiesAvailable - every copy of the book is currently checked out.
	RejectionNoCopiesAvailable RejectionReason = "NoCopiesAvailable"

	// RejectionLimitExceeded - the member already has as many open loans as their borrowing limit allows.
	RejectionLimitExceeded RejectionReason = "LimitExceeded"

	// RejectionMemberNotActive - the member account has been deactivated.
	RejectionMemberNotActive RejectionReason = "MemberNotActive"

	// RejectionEmailAlreadyRegistered - another member is registered with the same email address.
	RejectionEmailAlreadyRegistered RejectionReason = "EmailAlreadyRegistered"

	// RejectionMemberHasOpenLoans - the member still has open loans that must be returned first.
	RejectionMemberHasOpenLoans RejectionReason = "MemberHasOpenLoans"

	// RejectionBookHasOpenLoans - copies of the book are still checked out.
	RejectionBookHasOpenLoans RejectionReason = "BookHasOpenLoans"

	// RejectionBookHasLoanHistory - loans reference the book and loan records are never deleted.
	RejectionBookHasLoanHistory RejectionReason = "BookHasLoanHistory"

	// RejectionISBNAlreadyInCatalog - another book in the catalog carries the same ISBN.
	RejectionISBNAlreadyInCatalog RejectionReason = "ISBNAlreadyInCatalog"
)

// Description returns a human-readable explanation for the rejection.
func (r RejectionReason) Description() string {
	switch r {
	case RejectionNoCopiesAvailable:
		return "no copies of this book are currently available"
	case RejectionLimitExceeded:
		return "the member has reached their borrowing limit"
	case RejectionMemberNotActive:
		return "the member account is not active"
	case RejectionEmailAlreadyRegistered:
		return "another member is already registered with this email address"
	case RejectionMemberHasOpenLoans:
		return "the member still has open loans"
	case RejectionBookHasOpenLoans:
		return "copies of this book are still checked out"
	case RejectionBookHasLoanHistory:
		return "loan records reference this book"
	case RejectionISBNAlreadyInCatalog:
		return "another book with this ISBN is already in the catalog"
	default:
		return string(r)
	}
}
