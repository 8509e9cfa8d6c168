package core

import (
	"errors"
	"iter"
	"time"
)

const (
	defaultLoanPeriodDays = 14
	defaultBorrowingLimit = 3
	defaultFinePerDayRate = Cents(50)
)

var (
	// ErrInvalidLoanPeriod is returned when the loan period is not at least one day.
	ErrInvalidLoanPeriod = errors.New("loan period must be at least one day")

	// ErrInvalidBorrowingLimit is returned when the borrowing limit is not positive.
	ErrInvalidBorrowingLimit = errors.New("borrowing limit must be positive")

	// ErrNegativeFineRate is returned when the daily fine rate is negative.
	ErrNegativeFineRate = errors.New("fine per day rate must not be negative")
)

// LoanPolicy bundles the lending rules: how long a loan runs, how many open
// loans a member may hold by default, and how fast fines accrue past due.
type LoanPolicy struct {
	LoanPeriodDays        int
	BorrowingLimitDefault int
	FinePerDayRate        Cents
}

// PolicyOption configures a LoanPolicy using the functional options pattern.
type PolicyOption func(*LoanPolicy) error

// BuildLoanPolicy creates a LoanPolicy with the library defaults
// (14 day loans, 3 open loans per member, 0.50 per day fine),
// adjusted by the given options.
func BuildLoanPolicy(opts ...PolicyOption) (LoanPolicy, error) {
	policy := LoanPolicy{
		LoanPeriodDays:        defaultLoanPeriodDays,
		BorrowingLimitDefault: defaultBorrowingLimit,
		FinePerDayRate:        defaultFinePerDayRate,
	}

	for _, opt := range opts {
		if err := opt(&policy); err != nil {
			return LoanPolicy{}, err
		}
	}

	return policy, nil
}

// WithLoanPeriodDays sets the loan period in days.
func WithLoanPeriodDays(days int) PolicyOption {
	return func(p *LoanPolicy) error {
		if days < 1 {
			return ErrInvalidLoanPeriod
		}

		p.LoanPeriodDays = days

		return nil
	}
}

// WithBorrowingLimit sets the default borrowing limit for new members.
func WithBorrowingLimit(limit int) PolicyOption {
	return func(p *LoanPolicy) error {
		if limit < 1 {
			return ErrInvalidBorrowingLimit
		}

		p.BorrowingLimitDefault = limit

		return nil
	}
}

// WithFinePerDayRate sets the daily fine rate in cents.
func WithFinePerDayRate(rate Cents) PolicyOption {
	return func(p *LoanPolicy) error {
		if rate < 0 {
			return ErrNegativeFineRate
		}

		p.FinePerDayRate = rate

		return nil
	}
}

// DueDateFor returns the due date for a loan checked out on the given date.
func (p LoanPolicy) DueDateFor(checkedOutOn time.Time) DateUTC {
	return AddDays(ToDate(checkedOutOn), p.LoanPeriodDays)
}

// EligibilityResult aggregates every lending rule that currently blocks a
// member from checking out a given book. Reasons accumulate: an inactive
// member at their limit reports both.
type EligibilityResult struct {
	Allowed bool
	Reasons []RejectionReason
}

// EvaluateEligibility applies every checkout rule to the member's current
// standing and the book's availability. It is the single source of the
// rules that checkout decisions enforce.
func (p LoanPolicy) EvaluateEligibility(member Member, book Book) EligibilityResult {
	var reasons []RejectionReason

	if !member.Active {
		reasons = append(reasons, RejectionMemberNotActive)
	}

	if member.HasReachedBorrowingLimit() {
		reasons = append(reasons, RejectionLimitExceeded)
	}

	if !book.CheckAvailability() {
		reasons = append(reasons, RejectionNoCopiesAvailable)
	}

	return EligibilityResult{
		Allowed: len(reasons) == 0,
		Reasons: reasons,
	}
}

// OverdueLoans returns a lazy sequence over the loans that are overdue as of
// the given date, each paired with the fine it has accrued at the policy
// rate. Nothing is precomputed or cached: the sequence can be ranged over
// multiple times, and each range walks the input afresh. Breaking out of the
// range early stops the walk.
func (p LoanPolicy) OverdueLoans(asOf time.Time, loans []Loan) iter.Seq2[Loan, Cents] {
	return func(yield func(Loan, Cents) bool) {
		for _, loan := range loans {
			if !loan.IsOverdue(asOf) {
				continue
			}

			if !yield(loan, loan.ComputeFine(asOf, p.FinePerDayRate)) {
				return
			}
		}
	}
}
