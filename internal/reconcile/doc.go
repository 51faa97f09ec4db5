// Package reconcile orchestrates a full reconciliation run: open the
// workbook, resolve sheets and the amount column, feed the extracted
// cells through the matcher, write pair identifiers back, and save the
// result. It also produces run summaries and their CSV export.
package reconcile
