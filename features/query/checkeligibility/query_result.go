package checkeligibility

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
)

// BlockingReason pairs a rejection code with its human-readable description.
type BlockingReason struct {
	Code        core.RejectionReason
	Description string
}

// EligibilityReport represents the query result: whether the member may check
// out the book right now, and every lending rule currently blocking it.
type EligibilityReport struct {
	MemberID core.MemberIDString
	BookID   core.BookIDString
	Allowed  bool
	Reasons  []BlockingReason
}
