// Package deactivatemember implements the command for deactivating a member
// account.
//
// A member with open loans cannot be deactivated, the books have to come back
// first. Deactivating an already inactive account is idempotent, while an id
// that was never registered is an error. The update is guarded by the
// member's version token, so a concurrent checkout forces a re-read before
// the deactivation can land.
package deactivatemember
