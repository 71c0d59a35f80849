package core

import "strings"

// DateOnly truncates a stored date to its calendar-date portion by
// keeping the prefix before the first whitespace. Dates without a
// time-of-day suffix are returned unchanged.
func DateOnly(date string) string {
	if i := strings.IndexByte(date, ' '); i >= 0 {
		return date[:i]
	}
	return date
}

// NormalizeDates returns a copy of the transaction list with every date
// truncated to YYYY-MM-DD. Pure and idempotent; the input is not mutated.
func NormalizeDates(txns []Transaction) []Transaction {
	out := make([]Transaction, len(txns))
	for i, tx := range txns {
		tx.Date = DateOnly(tx.Date)
		out[i] = tx
	}
	return out
}
