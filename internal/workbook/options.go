package workbook

import (
	"regexp"

	apperrors "pairxl/internal/errors"
)

// RowStop selects when column extraction stops.
type RowStop string

const (
	// RowStopOnBlank stops at the first blank cell in the amount column.
	RowStopOnBlank RowStop = "on_blank"
	// RowStopEndOfSheet reads to the last row, passing blanks through.
	RowStopEndOfSheet RowStop = "end_of_sheet"
	// RowStopAtRow stops after a fixed 1-based row (inclusive).
	RowStopAtRow RowStop = "at_row"
)

// Placement selects where the result column goes.
type Placement string

const (
	// PlacementInsertRight inserts a new column right of the amount column.
	PlacementInsertRight Placement = "insert_right"
	// PlacementAppendEnd adds a new column after the last used column.
	PlacementAppendEnd Placement = "append_end"
	// PlacementAtColumn writes into a fixed 1-based column, overwriting.
	PlacementAtColumn Placement = "at_column"
)

// Options describes one reconciliation run over a workbook.
type Options struct {
	// Sheets and SheetIndexes select the sheets to process, by name and
	// by 1-based workbook position. At least one selector is required.
	Sheets       []string
	SheetIndexes []int

	// ColumnIndex picks the amount column directly (1-based). When zero,
	// ColumnPattern is matched against the header row instead.
	ColumnPattern string
	ColumnIndex   int

	// RowStart is the 1-based first data row, normally 2 to skip the header.
	RowStart int

	RowStop      RowStop
	RowStopIndex int

	Placement   Placement
	ResultIndex int

	// PartitionCol optionally restricts matching to rows sharing the
	// value of this 1-based column.
	PartitionCol int
}

// Validate checks cross-field consistency before a run.
func (o Options) Validate() error {
	if len(o.Sheets) == 0 && len(o.SheetIndexes) == 0 {
		return apperrors.New(apperrors.CodeInvalidOptions, "at least one sheet name or sheet index is required")
	}
	for _, idx := range o.SheetIndexes {
		if idx < 1 {
			return apperrors.Newf(apperrors.CodeInvalidOptions, "sheet index must be at least 1, got %d", idx)
		}
	}

	if o.ColumnIndex < 0 {
		return apperrors.Newf(apperrors.CodeInvalidOptions, "column index must be at least 1, got %d", o.ColumnIndex)
	}
	if o.ColumnIndex == 0 {
		if o.ColumnPattern == "" {
			return apperrors.New(apperrors.CodeInvalidOptions, "either a column index or a column pattern is required")
		}
		if _, err := regexp.Compile(o.ColumnPattern); err != nil {
			return apperrors.Wrap(apperrors.CodeInvalidOptions, "invalid column pattern", err)
		}
	}

	if o.RowStart < 1 {
		return apperrors.Newf(apperrors.CodeInvalidOptions, "row start must be at least 1, got %d", o.RowStart)
	}

	switch o.RowStop {
	case RowStopOnBlank, RowStopEndOfSheet:
		if o.RowStopIndex != 0 {
			return apperrors.Newf(apperrors.CodeInvalidOptions, "row stop index is only valid with the %s strategy", RowStopAtRow)
		}
	case RowStopAtRow:
		if o.RowStopIndex < o.RowStart {
			return apperrors.Newf(apperrors.CodeInvalidOptions, "row stop index %d is before row start %d", o.RowStopIndex, o.RowStart)
		}
	default:
		return apperrors.Newf(apperrors.CodeInvalidOptions, "unknown row stop strategy: %q", o.RowStop)
	}

	switch o.Placement {
	case PlacementInsertRight, PlacementAppendEnd:
		if o.ResultIndex != 0 {
			return apperrors.Newf(apperrors.CodeInvalidOptions, "result index is only valid with the %s placement", PlacementAtColumn)
		}
	case PlacementAtColumn:
		if o.ResultIndex < 1 {
			return apperrors.Newf(apperrors.CodeInvalidOptions, "placement %s requires a result index", PlacementAtColumn)
		}
	default:
		return apperrors.Newf(apperrors.CodeInvalidOptions, "unknown result placement: %q", o.Placement)
	}

	if o.PartitionCol < 0 {
		return apperrors.Newf(apperrors.CodeInvalidOptions, "partition column must be at least 1, got %d", o.PartitionCol)
	}

	return nil
}
