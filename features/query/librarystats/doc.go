// Package librarystats implements the dashboard query aggregating the
// library's headline numbers: catalog size, copy counts, membership, open
// loans, and the overdue loans with their accruing fines.
//
// The two data sources differ on purpose: counts that live in the store come
// from a single aggregated read, while overdue numbers depend on the query
// date and the policy rate and are derived from the open loans.
package librarystats
