package reconcile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	apperrors "pairxl/internal/errors"
	"pairxl/pkg/contracts/domain"
)

// WriteSummaryCSV exports a run summary as a CSV report: one row per
// sheet, a totals row, and the unmatched-amount statistics. A UTF-8 BOM
// is prefixed so Excel opens the file correctly.
func WriteSummaryCSV(path string, summary *domain.RunSummary) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.Wrap(apperrors.CodeWriteFailed, "cannot create summary directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeWriteFailed, "cannot create summary file", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return apperrors.Wrap(apperrors.CodeWriteFailed, "cannot write BOM", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Sheet", "Column", "RowsScanned", "NumericCells", "PairsFormed", "Unmatched"}
	if err := writer.Write(header); err != nil {
		return apperrors.Wrap(apperrors.CodeWriteFailed, "cannot write summary header", err)
	}

	for _, sheet := range summary.Sheets {
		row := []string{
			sheet.Sheet,
			sheet.Column,
			strconv.Itoa(sheet.RowsScanned),
			strconv.Itoa(sheet.NumericCells),
			strconv.Itoa(sheet.PairsFormed),
			strconv.Itoa(sheet.Unmatched),
		}
		if err := writer.Write(row); err != nil {
			return apperrors.Wrap(apperrors.CodeWriteFailed, "cannot write summary row", err)
		}
	}

	total := []string{
		"TOTAL",
		"",
		strconv.Itoa(summary.TotalRows()),
		"",
		strconv.Itoa(summary.TotalPairs()),
		strconv.Itoa(summary.Unmatched.Count),
	}
	if err := writer.Write(total); err != nil {
		return apperrors.Wrap(apperrors.CodeWriteFailed, "cannot write totals row", err)
	}

	statsRows := [][]string{
		{""},
		{"UnmatchedAbsAmounts", "Count", "Total", "Mean", "Median", "Min", "Max"},
		{
			"",
			strconv.Itoa(summary.Unmatched.Count),
			formatAmount(summary.Unmatched.Total),
			formatAmount(summary.Unmatched.Mean),
			formatAmount(summary.Unmatched.Median),
			formatAmount(summary.Unmatched.Min),
			formatAmount(summary.Unmatched.Max),
		},
	}
	for _, row := range statsRows {
		if err := writer.Write(row); err != nil {
			return apperrors.Wrap(apperrors.CodeWriteFailed, "cannot write statistics row", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatAmount renders amounts with two decimals so 13.4 shows as 13.40.
func formatAmount(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
