package shell

import (
	"context"
)

// Query is implemented by every query type in the application. QueryType
// names the query for logs, metric labels and span attributes.
type Query interface {
	QueryType() string
}

// CoreQueryHandler loads rows from the store and projects them into the
// result type R. Implementations hold pure business logic; the observable
// wrappers add instrumentation around them.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Command is implemented by every command type in the application.
// CommandType names the command for logs, metric labels and span attributes.
type Command interface {
	CommandType() string
}

// CoreCommandHandler runs a command through load, decide and write. The
// HandlerResult reports the business outcome, idempotent and rejected
// included, next to the retry metadata. Implementations hold pure business
// logic; the observable wrappers add instrumentation around them.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// CommandHandler is the error-only view of a command handler, for callers
// that do not care about outcome metadata.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) error
}
