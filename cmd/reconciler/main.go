// Command reconciler pairs opposite amounts in an Excel workbook and
// writes the pair identifiers back as a new column.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"pairxl/internal/config"
	apperrors "pairxl/internal/errors"
	"pairxl/internal/infrastructure"
	"pairxl/internal/reconcile"
	"pairxl/internal/workbook"
	"pairxl/pkg/contracts/domain"
)

func main() {
	in := flag.String("in", "", "input workbook (.xlsx), required")
	out := flag.String("out", "", "output workbook path (defaults to overwriting the input)")
	sheets := flag.String("sheets", "", "comma-separated sheet names to process")
	sheetIndexes := flag.String("sheet-index", "", "comma-separated 1-based sheet positions to process")
	colPattern := flag.String("col-pattern", "", "regexp matched against the header row to find the amount column")
	colIndex := flag.Int("col-index", 0, "1-based amount column, overrides -col-pattern")
	rowStart := flag.Int("row-start", 0, "1-based first data row")
	rowStop := flag.String("row-stop", "", "row stop strategy: on_blank, end_of_sheet or at_row")
	rowStopIndex := flag.Int("row-stop-index", 0, "1-based last row, used with -row-stop=at_row")
	result := flag.String("result", "", "result placement: insert_right, append_end or at_column")
	resultIndex := flag.Int("result-index", 0, "1-based result column, used with -result=at_column")
	partitionCol := flag.Int("partition-col", 0, "1-based column whose value scopes the matching")
	summaryPath := flag.String("summary", "", "optional CSV path for the run summary report")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "missing required flag: -in")
		flag.Usage()
		os.Exit(exitUsage)
	}

	opts, err := buildOptions(cfg.Matching, flagValues{
		sheets:       *sheets,
		sheetIndexes: *sheetIndexes,
		colPattern:   *colPattern,
		colIndex:     *colIndex,
		rowStart:     *rowStart,
		rowStop:      *rowStop,
		rowStopIndex: *rowStopIndex,
		result:       *result,
		resultIndex:  *resultIndex,
		partitionCol: *partitionCol,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}

	service := reconcile.NewService(logger)
	summary, err := service.Run(context.Background(), reconcile.Request{
		InputPath:  *in,
		OutputPath: *out,
		Options:    opts,
	})
	if err != nil {
		logger.Error("Reconciliation failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}

	if *summaryPath != "" {
		if err := reconcile.WriteSummaryCSV(*summaryPath, summary); err != nil {
			logger.Error("Failed to write summary report", slog.String("error", err.Error()))
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitCode(err))
		}
	}

	printSummary(summary)
}

// Exit statuses, one per failure kind, so scripts can branch on them.
const (
	exitUsage      = 2
	exitInput      = 3
	exitNotFound   = 4
	exitWriteError = 5
)

// exitCode maps a failure to the process exit status.
func exitCode(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidOptions:
		return exitUsage
	case apperrors.CodeInvalidInputFile:
		return exitInput
	case apperrors.CodeSheetNotFound, apperrors.CodeColumnNotFound:
		return exitNotFound
	case apperrors.CodeWriteFailed:
		return exitWriteError
	default:
		return 1
	}
}

// flagValues carries the raw command-line values into option building.
type flagValues struct {
	sheets       string
	sheetIndexes string
	colPattern   string
	colIndex     int
	rowStart     int
	rowStop      string
	rowStopIndex int
	result       string
	resultIndex  int
	partitionCol int
}

// buildOptions merges the flags over the configured matching defaults.
func buildOptions(defaults config.MatchingConfig, fv flagValues) (workbook.Options, error) {
	opts := workbook.Options{
		Sheets:        splitList(fv.sheets),
		ColumnPattern: fv.colPattern,
		ColumnIndex:   fv.colIndex,
		RowStart:      fv.rowStart,
		RowStop:       workbook.RowStop(fv.rowStop),
		RowStopIndex:  fv.rowStopIndex,
		Placement:     workbook.Placement(fv.result),
		ResultIndex:   fv.resultIndex,
		PartitionCol:  fv.partitionCol,
	}

	for _, raw := range splitList(fv.sheetIndexes) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return workbook.Options{}, apperrors.Newf(apperrors.CodeInvalidOptions,
				"-sheet-index values must be integers, got %q", raw)
		}
		opts.SheetIndexes = append(opts.SheetIndexes, n)
	}

	if opts.ColumnPattern == "" && opts.ColumnIndex == 0 {
		opts.ColumnPattern = defaults.ColumnPattern
	}
	if opts.RowStart == 0 {
		opts.RowStart = defaults.RowStart
	}
	if opts.RowStop == "" {
		opts.RowStop = workbook.RowStop(defaults.RowStop)
	}
	if opts.Placement == "" {
		opts.Placement = workbook.Placement(defaults.ResultPlacement)
	}

	return opts, opts.Validate()
}

// splitList parses a comma-separated flag value, dropping empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// printSummary writes the per-sheet results to stdout.
func printSummary(summary *domain.RunSummary) {
	for _, sheet := range summary.Sheets {
		fmt.Printf("%s: %d rows scanned, %d numeric, %d pairs, %d unmatched (column %s)\n",
			sheet.Sheet, sheet.RowsScanned, sheet.NumericCells, sheet.PairsFormed, sheet.Unmatched, sheet.Column)
	}
	fmt.Printf("total: %d pairs formed, %d values unmatched\n",
		summary.TotalPairs(), summary.Unmatched.Count)
}
