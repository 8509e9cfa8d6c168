package returnbook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
	"github.com/BhuvanMohan2005/library-management-go/shell"
)

// LibraryStore defines the interface needed by the CommandHandler for store operations.
type LibraryStore interface {
	GetLoanByID(ctx context.Context, loanID core.LoanIDString) (core.Loan, error)
	GetBookByID(ctx context.Context, bookID core.BookIDString) (core.Book, error)
	ReturnBook(
		ctx context.Context,
		loanID core.LoanIDString,
		returnedOn core.DateUTC,
		condition core.ReturnConditionString,
		notes string,
	) error
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core workflow: Load -> Decide -> Write.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store        LibraryStore
	policy       core.LoanPolicy
	retryOptions []shell.RetryOption
	timing       shell.TimingCollector
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithTimingCollector sets a timing collector that receives per-phase
// durations, used by benchmarks.
func WithTimingCollector(collector shell.TimingCollector) Option {
	return func(h *CommandHandler) {
		h.timing = collector
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store LibraryStore, policy core.LoanPolicy, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:  store,
		policy: policy,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
// It delegates business logic to executeCommand and handles retry with exponential backoff.
// Returns HandlerResult containing business outcomes and execution metadata for observability.
//
// Resilience: Implements exponential backoff retry logic for concurrency conflicts.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var isIdempotent bool
	var rejectionReason core.RejectionReason

	// Execute command with retry logic (no observability - that's in the wrapper)
	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, reason, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent
		rejectionReason = reason

		return execErr
	}, h.retryOptions...)

	// Build HandlerResult with business outcomes and retry metadata
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

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, core.RejectionReason, error) {
	ctx = librarystore.WithStrongConsistency(ctx)

	// Load phase
	loadStart := time.Now()
	current, loadErr := h.loadState(ctx, command)
	h.timing.RecordLoad(time.Since(loadStart))

	if loadErr != nil {
		return false, "", loadErr
	}

	// Business logic phase - delegate to pure core function
	decideStart := time.Now()
	result := Decide(current, command, h.policy)
	h.timing.RecordDecide(time.Since(decideStart))

	if result.IsRejected() {
		return false, result.Reason, shell.ErrOperationRejected
	}

	if decideErr := result.HasError(); decideErr != nil {
		return false, "", decideErr
	}

	if !result.HasChangeToApply() {
		return true, "", nil // Idempotent success - nothing to write
	}

	returned, ok := result.Change.(core.BookReturned)
	if !ok {
		return false, "", fmt.Errorf("unexpected state change %q from return decision", result.Change.ChangeType())
	}

	// Write phase - one guarded statement closes the loan and releases the copy
	writeStart := time.Now()
	writeErr := h.store.ReturnBook(ctx, returned.LoanID, returned.ReturnedOn, returned.Condition, returned.Notes)
	h.timing.RecordWrite(time.Since(writeStart))

	if writeErr != nil {
		return false, "", writeErr
	}

	return false, "", nil
}

// loadState reads the loan and the book it references.
func (h CommandHandler) loadState(ctx context.Context, command Command) (State, error) {
	loan, loanErr := h.store.GetLoanByID(ctx, command.LoanID.String())
	if loanErr != nil {
		return State{}, loanErr
	}

	book, bookErr := h.store.GetBookByID(ctx, loan.BookID)
	if bookErr != nil {
		return State{}, bookErr
	}

	return State{Loan: loan, Book: book}, nil
}
