// Package matcher implements opposite-amount pairing over an ordered
// sequence of spreadsheet cells.
//
// The matcher consumes cells in row order and pairs each numeric value
// with the earliest still-unpaired value of equal magnitude and opposite
// sign. Every pair receives a shared positive identifier drawn from a
// single run-local counter. Blank and text cells pass through untouched,
// and a value of zero never pairs because it has no distinct opposite.
//
// Matching is a single left-to-right scan over the input:
//
//	cells := []matcher.Cell{matcher.Number(5), matcher.Number(-5)}
//	assignments := matcher.Match(cells, matcher.Options{})
//	// assignments[0].PairID == 1, assignments[1].PairID == 1
//
// The scan is deterministic: duplicates pair in first-in-first-out order,
// so re-running on the same input always yields identical identifiers.
package matcher
