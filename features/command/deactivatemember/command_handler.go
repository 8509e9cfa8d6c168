package deactivatemember

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
	GetMemberByID(ctx context.Context, memberID core.MemberIDString) (core.Member, librarystore.MemberVersionInt64, error)
	DeactivateMember(ctx context.Context, memberID core.MemberIDString, expectedVersion librarystore.MemberVersionInt64) error
}

// CommandHandler handles deactivating member accounts.
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

// executeCommand loads the member, decides, and applies the deactivation
// guarded by the member's version token. A checkout racing the deactivation
// bumps the version, the guarded update misses, and the retry re-reads the
// member and sees the open loan.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, core.RejectionReason, error) {
	ctx = librarystore.WithStrongConsistency(ctx)

	member, memberVersion, err := h.store.GetMemberByID(ctx, command.MemberID.String())
	if err != nil {
		return false, "", err
	}

	result := Decide(State{Member: member}, command)

	if result.IsRejected() {
		return false, result.Reason, shell.ErrOperationRejected
	}

	if decideErr := result.HasError(); decideErr != nil {
		return false, "", decideErr
	}

	if !result.HasChangeToApply() {
		return true, "", nil
	}

	if _, ok := result.Change.(core.MemberDeactivated); !ok {
		return false, "", fmt.Errorf("unexpected state change %q from deactivate member decision", result.Change.ChangeType())
	}

	if writeErr := h.store.DeactivateMember(ctx, command.MemberID.String(), memberVersion); writeErr != nil {
		return false, "", writeErr
	}

	return false, "", nil
}
