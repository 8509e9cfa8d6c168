package core

import (
	"time"
)

// LoanStatusString represents a derived loan lifecycle status
type LoanStatusString = string

const (
	// LoanStatusActive - the loan is open and not yet past its due date.
	LoanStatusActive LoanStatusString = "ACTIVE"

	// LoanStatusOverdue - the loan is open and past its due date.
	LoanStatusOverdue LoanStatusString = "OVERDUE"

	// LoanStatusReturned - the copy has been returned.
	LoanStatusReturned LoanStatusString = "RETURNED"
)

// ReturnConditionString represents the condition a copy was returned in
type ReturnConditionString = string

const (
	// ConditionGood - returned without noticeable wear.
	ConditionGood ReturnConditionString = "GOOD"

	// ConditionMinorDamage - returned with minor damage, still lendable.
	ConditionMinorDamage ReturnConditionString = "MINOR_DAMAGE"

	// ConditionDamaged - returned damaged, needs repair before relending.
	ConditionDamaged ReturnConditionString = "DAMAGED"

	// ConditionLost - reported lost, no physical copy came back.
	ConditionLost ReturnConditionString = "LOST"
)

// Loan represents a single checkout of one copy of a book by one member.
//
// Status is never stored anywhere: RETURNED follows from ReturnedOn being
// set, OVERDUE is derived from the due date and an as-of date. Fine amounts
// are likewise always recomputed from the dates and the policy rate; only
// the FinePaid payment fact is persisted.
type Loan struct {
	ID              LoanIDString
	BookID          BookIDString
	MemberID        MemberIDString
	CheckedOutOn    DateUTC
	DueOn           DateUTC
	ReturnedOn      DateUTC // zero while the loan is open
	ReturnCondition ReturnConditionString
	Notes           string
	FinePaid        bool
}

// IsReturned reports whether the copy has been returned.
func (l Loan) IsReturned() bool {
	return !l.ReturnedOn.IsZero()
}

// IsOverdue reports whether the loan is open and past its due date as of the
// given date. A loan is not overdue on its due date itself, and a returned
// loan is never overdue.
func (l Loan) IsOverdue(asOf time.Time) bool {
	if l.IsReturned() {
		return false
	}

	return ToDate(asOf).After(l.DueOn)
}

// DaysOverdue returns the number of whole days the loan is past due as of the
// given date, or 0 when it is not. For a returned loan the count is frozen at
// the return date.
func (l Loan) DaysOverdue(asOf time.Time) int {
	days := DaysBetween(l.DueOn, l.effectiveDate(asOf))
	if days < 0 {
		return 0
	}

	return days
}

// ComputeFine returns the fine accrued on this loan as of the given date at
// the given daily rate. An open loan accrues rate * DaysOverdue; once the
// copy is returned, the fine freezes at the amount accrued on the return
// date. A loan returned on or before its due date owes nothing.
func (l Loan) ComputeFine(asOf time.Time, dailyRate Cents) Cents {
	overdueDays := l.DaysOverdue(asOf)
	if overdueDays <= 0 {
		return 0
	}

	return dailyRate * Cents(overdueDays)
}

// Status derives the lifecycle status as of the given date.
func (l Loan) Status(asOf time.Time) LoanStatusString {
	if l.IsReturned() {
		return LoanStatusReturned
	}

	if l.IsOverdue(asOf) {
		return LoanStatusOverdue
	}

	return LoanStatusActive
}

// effectiveDate clamps the as-of date to the return date for returned loans,
// which is what freezes fines and overdue-day counts at return time.
func (l Loan) effectiveDate(asOf time.Time) DateUTC {
	effective := ToDate(asOf)
	if l.IsReturned() && l.ReturnedOn.Before(effective) {
		return l.ReturnedOn
	}

	return effective
}
