package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Book represents a catalog title together with its copy inventory.
// AvailableCopies counts copies on the shelf; it always stays within
// [0, TotalCopies].
type Book struct {
	ID              BookIDString
	Title           string
	Author          string
	ISBN            ISBNString
	Genre           string
	Publisher       string
	PublishedOn     DateUTC // zero when unknown
	Description     string
	TotalCopies     int
	AvailableCopies int
}

// BuildBook creates a new Book with every copy available.
// The ISBN is normalized, and the inventory invariant is established here:
// a fresh catalog entry starts with AvailableCopies == TotalCopies.
func BuildBook(
	id uuid.UUID,
	title string,
	author string,
	isbn string,
	genre string,
	publisher string,
	publishedOn time.Time,
	description string,
	totalCopies int,
) (Book, error) {
	normalizedISBN, err := NormalizeISBN(isbn)
	if err != nil {
		return Book{}, err
	}

	if strings.TrimSpace(title) == "" {
		return Book{}, errors.Join(ErrInvalidBookData, errors.New("title must not be empty"))
	}

	if strings.TrimSpace(author) == "" {
		return Book{}, errors.Join(ErrInvalidBookData, errors.New("author must not be empty"))
	}

	if totalCopies < 1 {
		return Book{}, errors.Join(ErrInvalidBookData, errors.New("total copies must be at least 1"))
	}

	book := Book{
		ID:              id.String(),
		Title:           strings.TrimSpace(title),
		Author:          strings.TrimSpace(author),
		ISBN:            normalizedISBN,
		Genre:           strings.TrimSpace(genre),
		Publisher:       strings.TrimSpace(publisher),
		Description:     description,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}

	if !publishedOn.IsZero() {
		book.PublishedOn = ToDate(publishedOn)
	}

	return book, nil
}

// CheckAvailability reports whether at least one copy is on the shelf.
func (b Book) CheckAvailability() bool {
	return b.AvailableCopies > 0
}

// AllCopiesOnShelf reports whether no copy is currently checked out.
func (b Book) AllCopiesOnShelf() bool {
	return b.AvailableCopies >= b.TotalCopies
}

// ReserveCopy returns the book with one fewer available copy.
// It fails when no copy is available, so availability can never drop below zero.
func (b Book) ReserveCopy() (Book, error) {
	if b.AvailableCopies <= 0 {
		return b, errors.Join(ErrInventoryViolation, errors.New("no copies available to reserve"))
	}

	b.AvailableCopies--

	return b, nil
}

// ReleaseCopy returns the book with one more available copy.
// It fails when every copy is already on the shelf, so availability can never
// exceed the total.
func (b Book) ReleaseCopy() (Book, error) {
	if b.AvailableCopies >= b.TotalCopies {
		return b, errors.Join(ErrInventoryViolation, errors.New("all copies are already on the shelf"))
	}

	b.AvailableCopies++

	return b, nil
}
