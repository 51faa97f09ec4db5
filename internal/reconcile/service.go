package reconcile

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"pairxl/internal/matcher"
	"pairxl/internal/workbook"
	"pairxl/pkg/contracts/domain"
)

// Service runs reconciliations.
type Service struct {
	logger *slog.Logger
}

// NewService creates a reconciliation service.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Request describes one reconciliation run.
type Request struct {
	InputPath  string
	OutputPath string // empty overwrites the input file
	Options    workbook.Options
}

// Run executes a reconciliation end to end. On any error the
// destination file is left untouched.
func (s *Service) Run(ctx context.Context, req Request) (*domain.RunSummary, error) {
	start := time.Now()
	runID := uuid.New().String()
	logger := s.logger.With(slog.String("run_id", runID))

	if err := req.Options.Validate(); err != nil {
		return nil, err
	}

	wb, err := workbook.Open(req.InputPath, logger)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets, err := wb.ResolveSheets(req.Options.Sheets, req.Options.SheetIndexes)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "reconciliation started",
		slog.String("input", req.InputPath),
		slog.Int("sheet_count", len(sheets)))

	summary := &domain.RunSummary{
		RunID:      runID,
		InputPath:  req.InputPath,
		OutputPath: req.OutputPath,
		StartedAt:  start,
	}
	if summary.OutputPath == "" {
		summary.OutputPath = req.InputPath
	}

	var unmatchedAmounts []float64
	for _, sheet := range sheets {
		result, amounts, err := s.processSheet(ctx, wb, sheet, req.Options)
		if err != nil {
			return nil, err
		}
		summary.Sheets = append(summary.Sheets, result)
		unmatchedAmounts = append(unmatchedAmounts, amounts...)
	}

	if err := wb.SaveAs(req.OutputPath); err != nil {
		return nil, err
	}

	summary.Duration = time.Since(start)
	summary.Unmatched = SummarizeUnmatched(unmatchedAmounts)

	logger.InfoContext(ctx, "reconciliation complete",
		slog.String("output", summary.OutputPath),
		slog.Int("pairs_formed", summary.TotalPairs()),
		slog.Int("unmatched", summary.Unmatched.Count),
		slog.Duration("duration", summary.Duration))

	return summary, nil
}

// processSheet reconciles a single sheet, returning its result and the
// absolute amounts that stayed unmatched.
func (s *Service) processSheet(ctx context.Context, wb *workbook.Workbook, sheet string, opts workbook.Options) (domain.SheetResult, []float64, error) {
	col, err := wb.ResolveColumn(sheet, opts.ColumnPattern, opts.ColumnIndex)
	if err != nil {
		return domain.SheetResult{}, nil, err
	}

	cells, err := wb.ExtractColumn(sheet, col.Index, workbook.ExtractOptions{
		RowStart:     opts.RowStart,
		RowStop:      opts.RowStop,
		RowStopIndex: opts.RowStopIndex,
		PartitionCol: opts.PartitionCol,
	})
	if err != nil {
		return domain.SheetResult{}, nil, err
	}

	seq := workbook.Cells(cells)
	assignments := matcher.Match(seq, matcher.Options{
		Partitions: workbook.Partitions(cells),
	})

	if _, err := wb.WriteResults(sheet, col.Index, cells, assignments, workbook.WriteOptions{
		Placement:   opts.Placement,
		ResultIndex: opts.ResultIndex,
	}); err != nil {
		return domain.SheetResult{}, nil, err
	}

	numeric := 0
	var unmatched []float64
	for i, c := range seq {
		if c.Kind != matcher.KindNumber {
			continue
		}
		numeric++
		if !assignments[i].Paired() {
			unmatched = append(unmatched, math.Abs(c.Value))
		}
	}

	result := domain.SheetResult{
		Sheet:        sheet,
		Column:       col.Name,
		RowsScanned:  len(cells),
		NumericCells: numeric,
		PairsFormed:  matcher.PairsFormed(assignments),
		Unmatched:    len(unmatched),
	}

	s.logger.InfoContext(ctx, "sheet reconciled",
		slog.String("sheet", sheet),
		slog.String("column", col.Name),
		slog.Int("rows_scanned", result.RowsScanned),
		slog.Int("pairs_formed", result.PairsFormed),
		slog.Int("unmatched", result.Unmatched))

	return result, unmatched, nil
}
