// Package bookavailability implements the query that reports a catalog
// entry's copy counts and the open loans holding the missing copies.
package bookavailability
