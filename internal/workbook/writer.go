package workbook

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	apperrors "pairxl/internal/errors"
	"pairxl/internal/matcher"
)

// WriteOptions controls where pair identifiers land on a sheet.
type WriteOptions struct {
	Placement   Placement
	ResultIndex int // used with PlacementAtColumn
}

// WriteResults writes the pair identifiers next to the amount column.
// assignments must be aligned index-for-index with cells, which is what
// matcher.Match guarantees. Unmatched rows are left blank. The 1-based
// index of the result column is returned.
func (w *Workbook) WriteResults(sheet string, amountCol int, cells []ColumnCell, assignments []matcher.Assignment, opts WriteOptions) (int, error) {
	if len(cells) != len(assignments) {
		return 0, apperrors.Newf(apperrors.CodeInternal,
			"assignment count %d does not match cell count %d", len(assignments), len(cells))
	}

	resultCol, err := w.resultColumn(sheet, amountCol, opts)
	if err != nil {
		return 0, err
	}

	written := 0
	for i, cc := range cells {
		if !assignments[i].Paired() {
			continue
		}
		cellName, err := excelize.CoordinatesToCellName(resultCol, cc.Row)
		if err != nil {
			return 0, apperrors.Wrap(apperrors.CodeWriteFailed,
				fmt.Sprintf("invalid result coordinates (%d, %d)", resultCol, cc.Row), err)
		}
		if err := w.file.SetCellValue(sheet, cellName, assignments[i].PairID); err != nil {
			return 0, apperrors.Wrap(apperrors.CodeWriteFailed,
				fmt.Sprintf("cannot write pair id to %s!%s", sheet, cellName), err)
		}
		written++
	}

	w.logger.Debug("pair identifiers written",
		slog.String("sheet", sheet),
		slog.Int("result_column", resultCol),
		slog.Int("cells_written", written))

	return resultCol, nil
}

// resultColumn places the result column according to the strategy,
// inserting a fresh column when the strategy calls for one.
func (w *Workbook) resultColumn(sheet string, amountCol int, opts WriteOptions) (int, error) {
	switch opts.Placement {
	case PlacementInsertRight:
		name, err := excelize.ColumnNumberToName(amountCol + 1)
		if err != nil {
			return 0, apperrors.Wrap(apperrors.CodeWriteFailed, "invalid result column number", err)
		}
		if err := w.file.InsertCols(sheet, name, 1); err != nil {
			return 0, apperrors.Wrap(apperrors.CodeWriteFailed,
				fmt.Sprintf("cannot insert result column on sheet %q", sheet), err)
		}
		return amountCol + 1, nil

	case PlacementAppendEnd:
		rows, err := w.file.GetRows(sheet)
		if err != nil {
			return 0, apperrors.Wrap(apperrors.CodeWriteFailed,
				fmt.Sprintf("cannot read sheet %q", sheet), err)
		}
		width := 0
		for _, row := range rows {
			if len(row) > width {
				width = len(row)
			}
		}
		return width + 1, nil

	case PlacementAtColumn:
		return opts.ResultIndex, nil

	default:
		return 0, apperrors.Newf(apperrors.CodeInvalidOptions,
			"unknown result placement: %q", opts.Placement)
	}
}

// SaveAs writes the workbook to path, or back over the source file when
// path is empty. No partial output is produced: excelize builds the
// archive in memory and only then touches the destination.
func (w *Workbook) SaveAs(path string) error {
	if path == "" || path == w.path {
		if err := w.file.Save(); err != nil {
			return apperrors.Wrap(apperrors.CodeWriteFailed,
				fmt.Sprintf("cannot save workbook %s", w.path), err)
		}
		return nil
	}
	if err := w.file.SaveAs(path); err != nil {
		return apperrors.Wrap(apperrors.CodeWriteFailed,
			fmt.Sprintf("cannot save workbook as %s", path), err)
	}
	return nil
}
