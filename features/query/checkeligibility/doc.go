// Package checkeligibility implements the query that reports whether a member
// may borrow a given book, together with every lending rule currently
// blocking it.
//
// The verdict applies the same rules a checkout enforces, so a caller can
// surface them to the member before attempting the checkout. Unlike the
// checkout decision, which reports only the most severe blocker, the report
// accumulates all of them.
package checkeligibility
