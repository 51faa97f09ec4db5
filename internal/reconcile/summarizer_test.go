package reconcile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairxl/pkg/contracts/domain"
)

func TestSummarizeUnmatched(t *testing.T) {
	tests := []struct {
		name    string
		amounts []float64
		want    domain.UnmatchedStats
	}{
		{
			name:    "empty input",
			amounts: nil,
			want:    domain.UnmatchedStats{},
		},
		{
			name:    "single amount",
			amounts: []float64{12.5},
			want: domain.UnmatchedStats{
				Count: 1, Total: 12.5, Mean: 12.5, Median: 12.5, Min: 12.5, Max: 12.5,
			},
		},
		{
			name:    "mixed amounts",
			amounts: []float64{1, 2, 3, 4},
			want: domain.UnmatchedStats{
				Count: 4, Total: 10, Mean: 2.5, Median: 2.5, Min: 1, Max: 4,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeUnmatched(tt.amounts)
			assert.Equal(t, tt.want.Count, got.Count)
			assert.InDelta(t, tt.want.Total, got.Total, 1e-9)
			assert.InDelta(t, tt.want.Mean, got.Mean, 1e-9)
			assert.InDelta(t, tt.want.Median, got.Median, 1e-9)
			assert.InDelta(t, tt.want.Min, got.Min, 1e-9)
			assert.InDelta(t, tt.want.Max, got.Max, 1e-9)
		})
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	summary := &domain.RunSummary{
		RunID:      "test-run",
		InputPath:  "ledger.xlsx",
		OutputPath: "ledger_out.xlsx",
		StartedAt:  time.Now(),
		Sheets: []domain.SheetResult{
			{Sheet: "Q3", Column: "Amount", RowsScanned: 8, NumericCells: 8, PairsFormed: 3, Unmatched: 2},
			{Sheet: "Q4", Column: "Amount", RowsScanned: 4, NumericCells: 3, PairsFormed: 1, Unmatched: 1},
		},
		Unmatched: domain.UnmatchedStats{
			Count: 3, Total: 15.5, Mean: 5.1666667, Median: 5, Min: 3, Max: 7.5,
		},
	}

	path := filepath.Join(t.TempDir(), "reports", "summary.csv")
	require.NoError(t, WriteSummaryCSV(path, summary))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	// UTF-8 BOM for Excel.
	assert.True(t, strings.HasPrefix(content, "\xEF\xBB\xBF"))

	assert.Contains(t, content, "Sheet,Column,RowsScanned,NumericCells,PairsFormed,Unmatched")
	assert.Contains(t, content, "Q3,Amount,8,8,3,2")
	assert.Contains(t, content, "Q4,Amount,4,3,1,1")
	assert.Contains(t, content, "TOTAL,,12,,4,3")
	assert.Contains(t, content, "UnmatchedAbsAmounts,Count,Total,Mean,Median,Min,Max")
	assert.Contains(t, content, ",3,15.50,5.17,5.00,3.00,7.50")
}

func TestWriteSummaryCSV_BadPath(t *testing.T) {
	// A directory in place of the target file must fail cleanly.
	dir := t.TempDir()
	err := WriteSummaryCSV(dir, &domain.RunSummary{})
	assert.Error(t, err)
}
