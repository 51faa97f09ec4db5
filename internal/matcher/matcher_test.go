package matcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(values ...float64) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Number(v)
	}
	return cells
}

func pairIDs(assignments []Assignment) []int {
	ids := make([]int, len(assignments))
	for i, a := range assignments {
		ids[i] = a.PairID
	}
	return ids
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		cells []Cell
		opts  Options
		want  []int // 0 means unmatched
	}{
		{
			name:  "empty input",
			cells: nil,
			want:  []int{},
		},
		{
			name:  "single value stays unmatched",
			cells: numbers(5),
			want:  []int{0},
		},
		{
			name:  "simple opposite pair",
			cells: numbers(5, -5),
			want:  []int{1, 1},
		},
		{
			name:  "order of signs does not matter",
			cells: numbers(-5, 5),
			want:  []int{1, 1},
		},
		{
			name:  "identifiers follow pair formation order",
			cells: numbers(3, 7, -7, -3),
			want:  []int{2, 1, 1, 2},
		},
		{
			name:  "duplicates pair first in first out",
			cells: numbers(5, 5, -5, -5),
			want:  []int{1, 2, 1, 2},
		},
		{
			name:  "reference scenario",
			cells: numbers(5, -2, -5, 3, -5, -2, 2, 2),
			want:  []int{1, 2, 1, 0, 0, 3, 2, 3},
		},
		{
			name:  "zero never pairs",
			cells: numbers(0, 0, 0),
			want:  []int{0, 0, 0},
		},
		{
			name:  "zero does not consume the counter",
			cells: numbers(0, 4, -4),
			want:  []int{0, 1, 1},
		},
		{
			name:  "fractional amounts compare exactly",
			cells: numbers(10.25, -10.25, 10.250001),
			want:  []int{1, 1, 0},
		},
		{
			name:  "same sign values never pair",
			cells: numbers(2, 2, 2),
			want:  []int{0, 0, 0},
		},
		{
			name: "blank and text cells pass through",
			cells: []Cell{
				Number(9),
				Blank(),
				Text("n/a"),
				Number(-9),
			},
			want: []int{1, 0, 0, 1},
		},
		{
			name:  "nan has no opposite",
			cells: numbers(math.NaN(), math.NaN(), 1, -1),
			want:  []int{0, 0, 1, 1},
		},
		{
			name:  "partition keys isolate matching",
			cells: numbers(5, -5, 5, -5),
			opts:  Options{Partitions: []string{"a", "b", "b", "a"}},
			want:  []int{1, 2, 2, 1},
		},
		{
			name:  "short partition slice falls back to empty key",
			cells: numbers(5, -5),
			opts:  Options{Partitions: []string{"a"}},
			want:  []int{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.cells, tt.opts)

			require.Len(t, got, len(tt.cells))
			assert.Equal(t, tt.want, pairIDs(got))
			for i, a := range got {
				assert.Equal(t, i, a.Index)
			}
		})
	}
}

func TestMatch_Invariants(t *testing.T) {
	// A longer mixed sequence: every identifier must land on exactly two
	// cells whose values are exact negatives within the same partition.
	cells := numbers(5, -2, -5, 3, -5, -2, 2, 2, 0, 7.5, -7.5, 7.5, -3, 100, -100, 100, -100)
	parts := []string{"", "", "", "", "", "", "", "", "", "x", "x", "y", "", "", "", "", ""}

	got := Match(cells, Options{Partitions: parts})
	require.Len(t, got, len(cells))

	byID := make(map[int][]int)
	for i, a := range got {
		if a.Paired() {
			byID[a.PairID] = append(byID[a.PairID], i)
		}
	}

	require.NotEmpty(t, byID)
	for id, indices := range byID {
		require.Lenf(t, indices, 2, "pair %d must cover exactly two cells", id)
		first, second := cells[indices[0]], cells[indices[1]]
		assert.Equal(t, first.Value, -second.Value)
		assert.Equal(t, parts[indices[0]], parts[indices[1]])
	}

	// Identifiers are dense: 1..PairsFormed with no gaps.
	for id := 1; id <= PairsFormed(got); id++ {
		assert.Contains(t, byID, id)
	}
}

func TestMatch_Deterministic(t *testing.T) {
	cells := numbers(1, -1, 2, -2, 2, -2, 3, 0, -3, 3, -3, 1.5, -1.5)

	first := Match(cells, Options{})
	for run := 0; run < 10; run++ {
		assert.Equal(t, first, Match(cells, Options{}))
	}
}

func TestMatch_LeftmostPreference(t *testing.T) {
	// The -5 must take the earliest pending 5, never a later one.
	got := Match(numbers(5, 5, 5, -5), Options{})
	assert.Equal(t, []int{1, 0, 0, 1}, pairIDs(got))
}

func TestPairsFormed(t *testing.T) {
	got := Match(numbers(1, -1, 2, -2, 9), Options{})
	assert.Equal(t, 2, PairsFormed(got))
	assert.Equal(t, 0, PairsFormed(nil))
}

func TestUnmatched(t *testing.T) {
	cells := []Cell{Number(1), Number(-1), Number(9), Blank(), Text("x")}
	got := Match(cells, Options{})

	// Blank and text cells do not count as unmatched numerics.
	assert.Equal(t, 1, Unmatched(cells, got))
}
