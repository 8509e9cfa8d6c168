package addbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/BhuvanMohan2005/library-management-go/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a new title to the catalog.
// The catalog entry is validated and normalized at construction time, so a
// Command always carries a well-formed book.
type Command struct {
	BookID     uuid.UUID
	Book       core.Book
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// It fails when the book data is invalid, for example a malformed ISBN,
// an empty title or author, or a non-positive copy count.
func BuildCommand(
	bookID uuid.UUID,
	title string,
	author string,
	isbn string,
	genre string,
	publisher string,
	publishedOn time.Time,
	description string,
	totalCopies int,
	occurredAt time.Time,
) (Command, error) {
	book, err := core.BuildBook(bookID, title, author, isbn, genre, publisher, publishedOn, description, totalCopies)
	if err != nil {
		return Command{}, err
	}

	return Command{
		BookID:     bookID,
		Book:       book,
		OccurredAt: occurredAt,
	}, nil
}
