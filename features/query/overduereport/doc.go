// Package overduereport implements the query that lists every overdue loan
// as of a given date, together with the fine each one has accrued so far.
//
// Overdueness and fines are never stored, they are derived from the loan
// dates and the policy rate at query time. The same loan therefore shows a
// growing fine on consecutive days until the copy comes back.
package overduereport
