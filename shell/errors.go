package shell

import "errors"

var (
	// ErrOperationRejected is a sentinel error command handlers use internally to carry
	// a business rejection out of the retry loop without treating it as a failure.
	// It never escapes Handle: the handler translates it into a rejected HandlerResult.
	ErrOperationRejected = errors.New("operation rejected by business rules - no state change allowed")
)
