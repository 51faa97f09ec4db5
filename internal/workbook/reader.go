package workbook

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "pairxl/internal/errors"
	"pairxl/internal/matcher"
)

// Workbook wraps one open xlsx file.
type Workbook struct {
	file   *excelize.File
	logger *slog.Logger
	path   string
}

// Open opens an xlsx workbook for reconciliation.
func Open(path string, logger *slog.Logger) (*Workbook, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInputFile,
			fmt.Sprintf("cannot open workbook %s", path), err)
	}

	return &Workbook{file: f, logger: logger, path: path}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Path returns the path the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SheetList returns the workbook's sheet names in order.
func (w *Workbook) SheetList() []string {
	return w.file.GetSheetList()
}

// ResolveSheets turns sheet names and 1-based positions into the list of
// sheets to process, in workbook order without duplicates. Selectors
// that match nothing are logged as warnings; it is an error only when
// no sheet resolves at all.
func (w *Workbook) ResolveSheets(names []string, indexes []int) ([]string, error) {
	list := w.file.GetSheetList()
	if len(list) == 0 {
		return nil, apperrors.New(apperrors.CodeSheetNotFound, "workbook has no sheets")
	}

	wanted := make(map[string]bool)
	for _, name := range names {
		wanted[name] = true
	}
	for _, idx := range indexes {
		if idx >= 1 && idx <= len(list) {
			wanted[list[idx-1]] = true
		} else {
			w.logger.Warn("sheet index out of range",
				slog.Int("index", idx),
				slog.Int("sheet_count", len(list)))
		}
	}

	known := make(map[string]bool, len(list))
	for _, name := range list {
		known[name] = true
	}
	for name := range wanted {
		if !known[name] {
			w.logger.Warn("sheet not found in workbook", slog.String("sheet", name))
		}
	}

	var resolved []string
	for _, name := range list {
		if wanted[name] {
			resolved = append(resolved, name)
		}
	}
	if len(resolved) == 0 {
		return nil, apperrors.New(apperrors.CodeSheetNotFound, "no matching sheet found in workbook")
	}

	return resolved, nil
}

// Column identifies a resolved amount column.
type Column struct {
	Index int // 1-based
	Name  string
}

// ResolveColumn locates the amount column on a sheet, either by 1-based
// index or by matching the header row against a regular expression.
func (w *Workbook) ResolveColumn(sheet, pattern string, index int) (Column, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return Column{}, apperrors.Wrap(apperrors.CodeSheetNotFound,
			fmt.Sprintf("cannot read sheet %q", sheet), err)
	}
	if len(rows) == 0 {
		return Column{}, apperrors.Newf(apperrors.CodeColumnNotFound,
			"sheet %q is empty", sheet)
	}

	header := rows[0]

	if index > 0 {
		if index > len(header) {
			return Column{}, apperrors.Newf(apperrors.CodeColumnNotFound,
				"column index %d not found in sheet %q", index, sheet)
		}
		return Column{Index: index, Name: strings.TrimSpace(header[index-1])}, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return Column{}, apperrors.Wrap(apperrors.CodeInvalidOptions, "invalid column pattern", err)
	}
	for i, name := range header {
		if re.MatchString(strings.TrimSpace(name)) {
			w.logger.Debug("amount column resolved",
				slog.String("sheet", sheet),
				slog.String("column", name),
				slog.Int("index", i+1))
			return Column{Index: i + 1, Name: strings.TrimSpace(name)}, nil
		}
	}

	return Column{}, apperrors.Newf(apperrors.CodeColumnNotFound,
		"no column matching %q found in sheet %q", pattern, sheet)
}

// ColumnCell is one extracted cell with its absolute row number and the
// optional partition key read from the same row.
type ColumnCell struct {
	Row       int // 1-based sheet row
	Cell      matcher.Cell
	Partition string
}

// ExtractOptions controls the extraction range on one sheet.
type ExtractOptions struct {
	RowStart     int
	RowStop      RowStop
	RowStopIndex int
	PartitionCol int
}

// ExtractColumn reads the amount column top to bottom starting at
// RowStart, classifying each cell as number, blank, or text. Blank and
// text cells are kept in the sequence so the output stays row-aligned.
func (w *Workbook) ExtractColumn(sheet string, col int, opts ExtractOptions) ([]ColumnCell, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSheetNotFound,
			fmt.Sprintf("cannot read sheet %q", sheet), err)
	}

	var cells []ColumnCell
	for r := opts.RowStart; r <= len(rows); r++ {
		if opts.RowStop == RowStopAtRow && r > opts.RowStopIndex {
			break
		}

		row := rows[r-1]
		raw := strings.TrimSpace(cellAt(row, col))

		cell := classify(raw)
		if cell.Kind == matcher.KindBlank && opts.RowStop == RowStopOnBlank {
			break
		}

		cc := ColumnCell{Row: r, Cell: cell}
		if opts.PartitionCol > 0 {
			cc.Partition = strings.TrimSpace(cellAt(row, opts.PartitionCol))
		}
		cells = append(cells, cc)
	}

	w.logger.Debug("column extracted",
		slog.String("sheet", sheet),
		slog.Int("column", col),
		slog.Int("cells", len(cells)))

	return cells, nil
}

// cellAt returns the cell text at a 1-based column, tolerating the
// ragged rows excelize produces when trailing cells are empty.
func cellAt(row []string, col int) string {
	if col >= 1 && col <= len(row) {
		return row[col-1]
	}
	return ""
}

// classify maps raw cell text to a matcher cell. Thousands separators
// are stripped before parsing, matching how amounts are usually
// formatted in exported ledgers.
func classify(raw string) matcher.Cell {
	if raw == "" {
		return matcher.Blank()
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return matcher.Text(raw)
	}
	return matcher.Number(value)
}

// Cells strips the row metadata off an extracted column, yielding the
// sequence the matcher consumes.
func Cells(cells []ColumnCell) []matcher.Cell {
	out := make([]matcher.Cell, len(cells))
	for i, cc := range cells {
		out[i] = cc.Cell
	}
	return out
}

// Partitions collects the partition keys of an extracted column, or nil
// when no partition column was configured.
func Partitions(cells []ColumnCell) []string {
	any := false
	out := make([]string, len(cells))
	for i, cc := range cells {
		out[i] = cc.Partition
		if cc.Partition != "" {
			any = true
		}
	}
	if !any {
		return nil
	}
	return out
}
