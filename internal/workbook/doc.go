// Package workbook is the Excel I/O layer of pairxl. It opens xlsx
// workbooks, resolves the sheets and the amount column to reconcile,
// extracts the ordered cell sequence the matcher consumes, and writes
// pair identifiers back into a result column.
//
// The typical flow:
//
//	wb, err := workbook.Open("ledger.xlsx", logger)
//	sheets, err := wb.ResolveSheets([]string{"Q3"}, nil)
//	col, err := wb.ResolveColumn("Q3", `^Amount.*`, 0)
//	cells, err := wb.ExtractColumn("Q3", col.Index, extractOpts)
//	// ... match ...
//	resultCol, err := wb.WriteResults("Q3", col.Index, cells, assignments, writeOpts)
//	err = wb.SaveAs("ledger_reconciled.xlsx")
//
// All failures carry typed codes from pairxl/internal/errors; a cell
// holding non-numeric content is not a failure and simply passes
// through the matcher untouched.
package workbook
