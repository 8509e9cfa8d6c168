// Package removebook implements the command for removing a title from the
// catalog.
//
// A book can only leave the catalog when nothing references it anymore: open
// loans block the removal, and so does any recorded loan history, because
// loan records are kept forever. Removing an absent book is idempotent.
//
// The delete statement carries the same no-loans guard, so a checkout racing
// the removal surfaces as a concurrency conflict and the retry converges on
// the rejection.
package removebook
