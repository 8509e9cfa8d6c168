package addbook

import (
	"context"
	"errors"
	"fmt"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
	"github.com/BhuvanMohan2005/library-management-go/shell"
)

// LibraryStore defines the store operations needed by this command handler.
type LibraryStore interface {
	GetBookByID(ctx context.Context, bookID core.BookIDString) (core.Book, error)
	GetBookByISBN(ctx context.Context, isbn core.ISBNString) (core.Book, error)
	AddBook(ctx context.Context, book core.Book) error
}

// CommandHandler handles adding new titles to the catalog.
type CommandHandler struct {
	store        LibraryStore
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions configures retry behavior for concurrency conflicts.
func WithRetryOptions(retryOptions ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = retryOptions
	}
}

// NewCommandHandler creates a new command handler with the given store.
func NewCommandHandler(store LibraryStore, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}
	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry on concurrency conflicts and reports
// the outcome together with retry statistics.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var isIdempotent bool
	var rejectionReason core.RejectionReason

	retryMetrics, err := shell.RetryWithExponentialBackoff(
		ctx,
		func(retryCtx context.Context) error {
			idempotent, reason, execErr := h.executeCommand(retryCtx, command)
			isIdempotent = idempotent
			rejectionReason = reason

			return execErr
		},
		h.retryOptions...,
	)

	switch {
	case isIdempotent:
		return shell.NewIdempotentResult(retryMetrics), err
	case errors.Is(err, shell.ErrOperationRejected):
		return shell.NewRejectedResult(string(rejectionReason), retryMetrics), nil
	case err != nil:
		return shell.NewErrorResult(retryMetrics), err
	default:
		return shell.NewSuccessResult(retryMetrics), nil
	}
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, core.RejectionReason, error) {
	ctx = librarystore.WithStrongConsistency(ctx)

	current, err := h.loadState(ctx, command)
	if err != nil {
		return false, "", err
	}

	result := Decide(current, command)

	if result.IsRejected() {
		return false, result.Reason, shell.ErrOperationRejected
	}

	if decideErr := result.HasError(); decideErr != nil {
		return false, "", decideErr
	}

	if !result.HasChangeToApply() {
		return true, "", nil
	}

	added, ok := result.Change.(core.BookAddedToCatalog)
	if !ok {
		return false, "", fmt.Errorf("unexpected state change %q from add book decision", result.Change.ChangeType())
	}

	if writeErr := h.store.AddBook(ctx, added.Book); writeErr != nil {
		return false, "", writeErr
	}

	return false, "", nil
}

// loadState probes the catalog for the book's id and ISBN.
// A hit on the id short-circuits the ISBN probe, the decision is idempotent
// either way.
func (h CommandHandler) loadState(ctx context.Context, command Command) (State, error) {
	_, byIDErr := h.store.GetBookByID(ctx, command.BookID.String())

	switch {
	case byIDErr == nil:
		return State{BookAlreadyInCatalog: true}, nil
	case !errors.Is(byIDErr, librarystore.ErrBookNotFound):
		return State{}, byIDErr
	}

	_, byISBNErr := h.store.GetBookByISBN(ctx, command.Book.ISBN)

	switch {
	case byISBNErr == nil:
		return State{ISBNUsedByOtherBook: true}, nil
	case !errors.Is(byISBNErr, librarystore.ErrBookNotFound):
		return State{}, byISBNErr
	}

	return State{}, nil
}
