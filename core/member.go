package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MembershipTypeString represents a membership tier
type MembershipTypeString = string

const (
	// MembershipRegular is the default membership tier.
	MembershipRegular MembershipTypeString = "REGULAR"

	// MembershipPremium is the paid tier with a raised borrowing limit.
	MembershipPremium MembershipTypeString = "PREMIUM"

	// MembershipStudent is the discounted student tier.
	MembershipStudent MembershipTypeString = "STUDENT"

	// MembershipSenior is the discounted senior tier.
	MembershipSenior MembershipTypeString = "SENIOR"
)

// Member represents a registered borrower.
//
// ActiveLoanCount is derived state: it is computed from the open loans when
// the member is loaded and is never stored on the member row itself.
type Member struct {
	ID              MemberIDString
	Name            string
	Email           string
	Phone           string
	MembershipType  MembershipTypeString
	JoinedOn        DateUTC
	BorrowingLimit  int
	Active          bool
	ActiveLoanCount int
}

// NormalizeEmail lowercases and trims the given email address.
// The normalized form is what gets persisted and compared for uniqueness.
func NormalizeEmail(raw string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" || !strings.Contains(normalized, "@") {
		return "", errors.Join(ErrInvalidMemberData, errors.New("email address is not valid"))
	}

	return normalized, nil
}

// BuildMember creates a new, active Member.
// A borrowing limit below 1 is replaced with the given default from the policy.
func BuildMember(
	id uuid.UUID,
	name string,
	email string,
	phone string,
	membershipType MembershipTypeString,
	joinedOn time.Time,
	borrowingLimit int,
	defaultBorrowingLimit int,
) (Member, error) {
	if strings.TrimSpace(name) == "" {
		return Member{}, errors.Join(ErrInvalidMemberData, errors.New("name must not be empty"))
	}

	normalizedEmail, err := NormalizeEmail(email)
	if err != nil {
		return Member{}, err
	}

	if membershipType == "" {
		membershipType = MembershipRegular
	}

	if borrowingLimit < 1 {
		borrowingLimit = defaultBorrowingLimit
	}

	return Member{
		ID:             id.String(),
		Name:           strings.TrimSpace(name),
		Email:          normalizedEmail,
		Phone:          strings.TrimSpace(phone),
		MembershipType: membershipType,
		JoinedOn:       ToDate(joinedOn),
		BorrowingLimit: borrowingLimit,
		Active:         true,
	}, nil
}

// HasReachedBorrowingLimit reports whether the member's open loans have
// reached their borrowing limit.
func (m Member) HasReachedBorrowingLimit() bool {
	return m.ActiveLoanCount >= m.BorrowingLimit
}

// CanBorrow reports whether the member may check out another book:
// the account must be active and below its borrowing limit.
func (m Member) CanBorrow() bool {
	return m.Active && !m.HasReachedBorrowingLimit()
}
