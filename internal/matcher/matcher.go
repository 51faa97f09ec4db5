package matcher

import (
	"math"
)

// CellKind discriminates what a spreadsheet cell held.
type CellKind int

const (
	// KindBlank marks an empty cell.
	KindBlank CellKind = iota
	// KindNumber marks a cell holding a numeric value.
	KindNumber
	// KindText marks a cell holding non-numeric content.
	KindText
)

// Cell is one spreadsheet cell as seen by the matcher. Only KindNumber
// cells participate in pairing; the others pass through unmatched.
type Cell struct {
	Kind  CellKind
	Value float64 // set only when Kind == KindNumber
	Raw   string  // original cell text, kept for diagnostics
}

// Number returns a numeric cell.
func Number(v float64) Cell {
	return Cell{Kind: KindNumber, Value: v}
}

// Blank returns an empty cell.
func Blank() Cell {
	return Cell{Kind: KindBlank}
}

// Text returns a non-numeric cell carrying its original content.
func Text(raw string) Cell {
	return Cell{Kind: KindText, Raw: raw}
}

// Assignment is the matcher output for one input cell. PairID is zero
// for cells that found no opposite; assigned identifiers are positive
// and appear on exactly two assignments.
type Assignment struct {
	Index  int
	PairID int
}

// Paired reports whether the cell was matched with an opposite.
func (a Assignment) Paired() bool {
	return a.PairID > 0
}

// Options configures a matching run.
type Options struct {
	// Partitions optionally holds one key per input cell. When set,
	// values only pair within the same partition key. A shorter slice
	// leaves the remaining cells in the empty partition.
	Partitions []string
}

func (o Options) partitionAt(i int) string {
	if i < len(o.Partitions) {
		return o.Partitions[i]
	}
	return ""
}

// poolKey addresses one pending queue: same partition, same exact value.
type poolKey struct {
	partition string
	value     float64
}

// Match pairs each numeric cell with the earliest still-unpaired cell of
// equal magnitude and opposite sign, scanning left to right. The result
// has the same length and order as the input. Identifiers are assigned
// from a single counter starting at 1, in pair formation order.
//
// Values compare by exact negation; there is no tolerance. Zero never
// pairs, and NaN cells are treated as having no opposite.
func Match(cells []Cell, opts Options) []Assignment {
	out := make([]Assignment, len(cells))
	pending := make(map[poolKey][]int)
	counter := 0

	for i, c := range cells {
		out[i].Index = i
		if c.Kind != KindNumber {
			continue
		}
		if c.Value == 0 || math.IsNaN(c.Value) {
			continue
		}

		part := opts.partitionAt(i)
		opposite := poolKey{partition: part, value: -c.Value}
		if queue := pending[opposite]; len(queue) > 0 {
			j := queue[0]
			pending[opposite] = queue[1:]
			counter++
			out[j].PairID = counter
			out[i].PairID = counter
			continue
		}

		key := poolKey{partition: part, value: c.Value}
		pending[key] = append(pending[key], i)
	}

	return out
}

// PairsFormed counts the distinct identifiers in a result.
func PairsFormed(assignments []Assignment) int {
	max := 0
	for _, a := range assignments {
		if a.PairID > max {
			max = a.PairID
		}
	}
	return max
}

// Unmatched counts the numeric cells that found no opposite.
func Unmatched(cells []Cell, assignments []Assignment) int {
	n := 0
	for i, c := range cells {
		if c.Kind == KindNumber && !assignments[i].Paired() {
			n++
		}
	}
	return n
}
