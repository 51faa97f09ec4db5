package http

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/render"

	"pairxl/internal/config"
	apperrors "pairxl/internal/errors"
	"pairxl/internal/infrastructure"
	"pairxl/internal/reconcile"
	"pairxl/internal/workbook"
	v1 "pairxl/pkg/contracts/api/v1"
)

// maxUploadBytes caps workbook uploads at 64 MiB.
const maxUploadBytes = 64 << 20

// ReconcileHandler accepts an uploaded workbook, runs a reconciliation
// over it, and returns either the reconciled workbook or a JSON summary.
type ReconcileHandler struct {
	service *reconcile.Service
	cfg     *config.Config
	logger  *slog.Logger
	metrics *infrastructure.Metrics
}

// NewReconcileHandler creates a reconcile handler.
func NewReconcileHandler(service *reconcile.Service, cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics) *ReconcileHandler {
	return &ReconcileHandler{
		service: service,
		cfg:     cfg,
		logger:  logger.With(slog.String("handler", "reconcile")),
		metrics: metrics,
	}
}

// Reconcile handles POST /api/v1/reconcile. The workbook arrives as the
// multipart "file" field; run options arrive as sibling form fields.
// With "Accept: application/json" the response is the run summary,
// otherwise the reconciled workbook streams back as an attachment.
func (h *ReconcileHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		render.Render(w, r, apperrors.FromError(
			apperrors.Wrap(apperrors.CodeInvalidOptions, "invalid multipart request", err)))
		return
	}

	formOpts, err := parseReconcileForm(r)
	if err != nil {
		render.Render(w, r, apperrors.FromError(err))
		return
	}
	if err := validate.Struct(formOpts); err != nil {
		render.Render(w, r, validationAPIError(err))
		return
	}

	upload, header, err := r.FormFile("file")
	if err != nil {
		render.Render(w, r, apperrors.FromError(
			apperrors.Wrap(apperrors.CodeInvalidInputFile, "missing workbook upload", err)))
		return
	}
	defer upload.Close()

	dir, err := os.MkdirTemp("", "pairxl-reconcile-")
	if err != nil {
		render.Render(w, r, apperrors.FromError(
			apperrors.Wrap(apperrors.CodeInternal, "cannot create working directory", err)))
		return
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "input.xlsx")
	outPath := filepath.Join(dir, "output.xlsx")
	if err := saveUpload(upload, inPath); err != nil {
		render.Render(w, r, apperrors.FromError(err))
		return
	}

	summary, err := h.service.Run(r.Context(), reconcile.Request{
		InputPath:  inPath,
		OutputPath: outPath,
		Options:    h.workbookOptions(formOpts),
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "reconciliation failed",
			slog.String("file", header.Filename),
			slog.String("error", err.Error()),
		)
		render.Render(w, r, apperrors.FromError(err))
		return
	}

	h.metrics.PairsFormed.Add(float64(summary.TotalPairs()))
	for _, sheet := range summary.Sheets {
		h.metrics.CellsMatched.Add(float64(sheet.NumericCells))
	}

	h.logger.InfoContext(r.Context(), "reconciliation completed",
		slog.String("file", header.Filename),
		slog.Int("sheets", len(summary.Sheets)),
		slog.Int("pairs_formed", summary.TotalPairs()),
	)

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		render.JSON(w, r, v1.ReconcileResponse{Summary: *summary})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+downloadName(header.Filename)+`"`)
	http.ServeFile(w, r, outPath)
}

// parseReconcileForm reads the run options from the multipart form.
func parseReconcileForm(r *http.Request) (*v1.ReconcileOptions, error) {
	opts := &v1.ReconcileOptions{
		Sheets:        r.Form["sheets"],
		ColumnPattern: r.FormValue("column_pattern"),
		RowStop:       r.FormValue("row_stop"),
		Placement:     r.FormValue("placement"),
	}

	intFields := []struct {
		name string
		dst  *int
	}{
		{"column_index", &opts.ColumnIndex},
		{"row_start", &opts.RowStart},
		{"row_stop_index", &opts.RowStopIndex},
		{"result_index", &opts.ResultIndex},
		{"partition_col", &opts.PartitionCol},
	}
	for _, f := range intFields {
		raw := r.FormValue(f.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.Newf(apperrors.CodeInvalidOptions, "field %s must be an integer, got %q", f.name, raw)
		}
		*f.dst = n
	}

	for _, raw := range r.Form["sheet_indexes"] {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.Newf(apperrors.CodeInvalidOptions, "field sheet_indexes must be integers, got %q", raw)
		}
		opts.SheetIndexes = append(opts.SheetIndexes, n)
	}

	return opts, nil
}

// workbookOptions merges the request options over the configured
// matching defaults.
func (h *ReconcileHandler) workbookOptions(opts *v1.ReconcileOptions) workbook.Options {
	defaults := h.cfg.Matching

	out := workbook.Options{
		Sheets:        opts.Sheets,
		SheetIndexes:  opts.SheetIndexes,
		ColumnPattern: opts.ColumnPattern,
		ColumnIndex:   opts.ColumnIndex,
		RowStart:      opts.RowStart,
		RowStop:       workbook.RowStop(opts.RowStop),
		RowStopIndex:  opts.RowStopIndex,
		Placement:     workbook.Placement(opts.Placement),
		ResultIndex:   opts.ResultIndex,
		PartitionCol:  opts.PartitionCol,
	}
	if out.ColumnPattern == "" && out.ColumnIndex == 0 {
		out.ColumnPattern = defaults.ColumnPattern
	}
	if out.RowStart == 0 {
		out.RowStart = defaults.RowStart
	}
	if out.RowStop == "" {
		out.RowStop = workbook.RowStop(defaults.RowStop)
	}
	if out.Placement == "" {
		out.Placement = workbook.Placement(defaults.ResultPlacement)
	}
	return out
}

// saveUpload copies the uploaded workbook to disk.
func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "cannot stage upload", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidInputFile, "cannot read upload", err)
	}
	return nil
}

// downloadName derives the attachment filename from the upload name.
func downloadName(uploaded string) string {
	base := filepath.Base(uploaded)
	ext := filepath.Ext(base)
	if ext == "" {
		return base + "_reconciled.xlsx"
	}
	return strings.TrimSuffix(base, ext) + "_reconciled" + ext
}
