package registermember

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
	GetMemberByEmail(ctx context.Context, email string) (core.Member, librarystore.MemberVersionInt64, error)
	RegisterMember(ctx context.Context, member core.Member) error
}

// CommandHandler handles registering new borrowers.
type CommandHandler struct {
	store        LibraryStore
	policy       core.LoanPolicy
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

// NewCommandHandler creates a new command handler with the given store and
// lending policy.
func NewCommandHandler(store LibraryStore, policy core.LoanPolicy, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store, policy: policy}
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

	result := Decide(current, command, h.policy)

	if result.IsRejected() {
		return false, result.Reason, shell.ErrOperationRejected
	}

	if decideErr := result.HasError(); decideErr != nil {
		return false, "", decideErr
	}

	if !result.HasChangeToApply() {
		return true, "", nil
	}

	registered, ok := result.Change.(core.MemberRegistered)
	if !ok {
		return false, "", fmt.Errorf("unexpected state change %q from register member decision", result.Change.ChangeType())
	}

	if writeErr := h.store.RegisterMember(ctx, registered.Member); writeErr != nil {
		return false, "", writeErr
	}

	return false, "", nil
}

// loadState probes the member table for the command's id and email.
// A hit on the id short-circuits the email probe. An email that fails
// normalization is not probed at all, the decision surfaces the validation
// error.
func (h CommandHandler) loadState(ctx context.Context, command Command) (State, error) {
	_, _, byIDErr := h.store.GetMemberByID(ctx, command.MemberID.String())

	switch {
	case byIDErr == nil:
		return State{MemberAlreadyRegistered: true}, nil
	case !errors.Is(byIDErr, librarystore.ErrMemberNotFound):
		return State{}, byIDErr
	}

	email, normErr := core.NormalizeEmail(command.Email)
	if normErr != nil {
		return State{}, nil
	}

	_, _, byEmailErr := h.store.GetMemberByEmail(ctx, email)

	switch {
	case byEmailErr == nil:
		return State{EmailUsedByOtherMember: true}, nil
	case !errors.Is(byEmailErr, librarystore.ErrMemberNotFound):
		return State{}, byEmailErr
	}

	return State{}, nil
}
