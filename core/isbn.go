package core

import (
	"errors"
	"strings"
)

// NormalizeISBN strips hyphens and spaces from the given ISBN and validates
// the remainder: 10 characters (digits, the last may be X) or 13 digits.
// The normalized form is what gets persisted and compared for uniqueness.
func NormalizeISBN(raw string) (ISBNString, error) {
	normalized := strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(raw))

	switch len(normalized) {
	case 10:
		for i, r := range normalized {
			if r >= '0' && r <= '9' {
				continue
			}
			if r == 'X' && i == 9 {
				continue
			}

			return "", errors.Join(ErrInvalidISBN, errors.New("ISBN-10 may only contain digits and a trailing X"))
		}
	case 13:
		for _, r := range normalized {
			if r < '0' || r > '9' {
				return "", errors.Join(ErrInvalidISBN, errors.New("ISBN-13 may only contain digits"))
			}
		}
	default:
		return "", errors.Join(ErrInvalidISBN, errors.New("ISBN must have 10 or 13 characters after normalization"))
	}

	return normalized, nil
}
