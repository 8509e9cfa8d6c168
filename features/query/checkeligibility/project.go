package checkeligibility

import (
	"github.com/BhuvanMohan2005/library-management-go/core"
)

// ProjectEligibility implements the query logic to determine whether a member
// may borrow a book. This is a pure function with no side effects - it takes
// the member and book as currently stored and returns the projected report.
//
// Query Logic:
//
//	GIVEN: A member with their open loan count and a book with its availability
//	WHEN: CheckEligibility query is executed
//	THEN: EligibilityReport is returned with the verdict and every blocking rule
//	INCLUDES: All reasons at once, an inactive member at their limit reports both
//	DETAILS: Reasons are ordered by severity, the account state comes first
func ProjectEligibility(member core.Member, book core.Book, policy core.LoanPolicy) EligibilityReport {
	eligibility := policy.EvaluateEligibility(member, book)

	reasons := make([]BlockingReason, 0, len(eligibility.Reasons))
	for _, reason := range eligibility.Reasons {
		reasons = append(reasons, BlockingReason{
			Code:        reason,
			Description: reason.Description(),
		})
	}

	return EligibilityReport{
		MemberID: member.ID,
		BookID:   book.ID,
		Allowed:  eligibility.Allowed,
		Reasons:  reasons,
	}
}
