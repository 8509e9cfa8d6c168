// Package memberloans implements the query that lists a member's loans, open
// and returned, with status and fine derived per loan as of the query date.
//
// Open loans lead the list so the current obligations are visible first. The
// outstanding total sums every fine not yet settled, whether still accruing
// on an open loan or frozen at a past return.
package memberloans
