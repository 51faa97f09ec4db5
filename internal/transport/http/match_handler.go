package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apperrors "pairxl/internal/errors"
	"pairxl/internal/infrastructure"
	"pairxl/internal/matcher"
	v1 "pairxl/pkg/contracts/api/v1"
)

var validate = validator.New()

// MatchHandler pairs an in-memory value column without touching a
// workbook. It exists for clients that extract columns themselves.
type MatchHandler struct {
	logger  *slog.Logger
	metrics *infrastructure.Metrics
}

// NewMatchHandler creates a match handler.
func NewMatchHandler(logger *slog.Logger, metrics *infrastructure.Metrics) *MatchHandler {
	return &MatchHandler{
		logger:  logger.With(slog.String("handler", "match")),
		metrics: metrics,
	}
}

// Match handles POST /api/v1/match.
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req v1.MatchRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apperrors.FromError(
			apperrors.Wrap(apperrors.CodeInvalidOptions, "invalid request body", err)))
		return
	}

	if err := validate.Struct(&req); err != nil {
		render.Render(w, r, validationAPIError(err))
		return
	}
	if len(req.Partitions) != 0 && len(req.Partitions) != len(req.Values) {
		render.Render(w, r, apperrors.NewValidationErrors([]apperrors.ValidationError{
			{Field: "partitions", Message: "must be empty or as long as values"},
		}))
		return
	}

	cells := make([]matcher.Cell, len(req.Values))
	for i, v := range req.Values {
		if v == nil {
			cells[i] = matcher.Blank()
			continue
		}
		cells[i] = matcher.Number(*v)
	}

	assignments := matcher.Match(cells, matcher.Options{Partitions: req.Partitions})

	resp := v1.MatchResponse{
		PairIDs:     make([]*int, len(assignments)),
		PairsFormed: matcher.PairsFormed(assignments),
		Unmatched:   matcher.Unmatched(cells, assignments),
	}
	for i, a := range assignments {
		if a.Paired() {
			id := a.PairID
			resp.PairIDs[i] = &id
		}
	}

	h.metrics.PairsFormed.Add(float64(resp.PairsFormed))
	h.metrics.CellsMatched.Add(float64(len(cells)))

	h.logger.InfoContext(r.Context(), "match completed",
		slog.Int("values", len(req.Values)),
		slog.Int("pairs_formed", resp.PairsFormed),
		slog.Int("unmatched", resp.Unmatched),
	)

	render.JSON(w, r, resp)
}

// validationAPIError converts validator failures into a field-level
// error body.
func validationAPIError(err error) *apperrors.APIError {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]apperrors.ValidationError, 0, len(errs))
		for _, fe := range errs {
			fields = append(fields, apperrors.ValidationError{
				Field:   fe.Field(),
				Message: "failed " + fe.Tag() + " validation",
			})
		}
		return apperrors.NewValidationErrors(fields)
	}
	return apperrors.FromError(err)
}
