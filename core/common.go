package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// BookIDString represents a book identifier
type BookIDString = string

// MemberIDString represents a member identifier
type MemberIDString = string

// LoanIDString represents a loan identifier
type LoanIDString = string

// ISBNString represents a normalized ISBN identifier
type ISBNString = string

// DateUTC represents a calendar date, normalized to UTC midnight
type DateUTC = time.Time

// ToDate normalizes a time to its calendar date at UTC midnight.
// All domain date arithmetic runs on these normalized values.
func ToDate(t time.Time) DateUTC {
	year, month, day := t.UTC().Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date the given number of days after d.
func AddDays(d DateUTC, days int) DateUTC {
	return ToDate(d).AddDate(0, 0, days)
}

// DaysBetween returns the number of whole days from one date to another.
// The result is negative when "to" lies before "from".
func DaysBetween(from, to DateUTC) int {
	return int(ToDate(to).Sub(ToDate(from)) / (24 * time.Hour))
}
