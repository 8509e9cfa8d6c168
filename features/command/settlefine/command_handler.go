package settlefine

import (
	"context"
	"errors"
	"fmt"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
	"github.com/BhuvanMohan2005/library-management-go/shell"
)

// LibraryStore defines the interface needed by the CommandHandler for store operations.
type LibraryStore interface {
	GetLoanByID(ctx context.Context, loanID core.LoanIDString) (core.Loan, error)
	SettleFine(ctx context.Context, loanID core.LoanIDString) error
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core workflow: Load -> Decide -> Write.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store        LibraryStore
	policy       core.LoanPolicy
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
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
	loan, loadErr := h.store.GetLoanByID(ctx, command.LoanID.String())
	if loadErr != nil {
		return false, "", loadErr
	}

	// Business logic phase - delegate to pure core function
	result := Decide(State{Loan: loan}, command, h.policy)

	if result.IsRejected() {
		return false, result.Reason, shell.ErrOperationRejected
	}

	if decideErr := result.HasError(); decideErr != nil {
		return false, "", decideErr
	}

	if !result.HasChangeToApply() {
		return true, "", nil // Idempotent success - nothing to write
	}

	settled, ok := result.Change.(core.FineSettled)
	if !ok {
		return false, "", fmt.Errorf("unexpected state change %q from settlement decision", result.Change.ChangeType())
	}

	// Write phase - guarded by the loan being returned with the fine unpaid
	writeErr := h.store.SettleFine(ctx, settled.LoanID)
	if writeErr != nil {
		return false, "", writeErr
	}

	return false, "", nil
}
