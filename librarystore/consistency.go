package librarystore

import "context"

// ConsistencyLevel states which database node may serve a store read.
type ConsistencyLevel int

const (
	// StrongConsistency pins reads to the primary. It is the default, so
	// command handlers that load state, decide and write in one pass always
	// see their own writes.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency permits reads from a replica. Reports and searches
	// can tolerate slightly stale rows in exchange for taking load off the
	// primary.
	EventualConsistency
)

// consistencyLevelKey is the context key for the consistency preference.
type consistencyLevelKey struct{}

// WithStrongConsistency marks the context so store reads go to the primary:
//
//	ctx = librarystore.WithStrongConsistency(ctx)
//	member, version, err := store.GetMemberByID(ctx, memberID)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyLevelKey{}, StrongConsistency)
}

// WithEventualConsistency marks the context so store reads may be served by
// a replica:
//
//	ctx = librarystore.WithEventualConsistency(ctx)
//	details, err := store.ActiveLoanDetails(ctx)
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyLevelKey{}, EventualConsistency)
}

// GetConsistencyLevel reads the preference from the context. A context
// without one defaults to StrongConsistency so that load-decide-write
// handlers never read stale state.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(consistencyLevelKey{}).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String renders the level for logs.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
