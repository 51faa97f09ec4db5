// Package api contains API contract definitions for the pairxl HTTP
// service. Version v1 represents the current stable API version.
package api

import (
	"pairxl/pkg/contracts/domain"
)

// MatchRequest carries an ordered value column to the matcher. A nil
// entry stands for a blank or non-numeric cell and passes through
// unmatched. Partitions, when present, must be as long as Values; the
// handler enforces the length since it depends on another field.
type MatchRequest struct {
	Values     []*float64 `json:"values" validate:"required,min=1"`
	Partitions []string   `json:"partitions,omitempty"`
}

// MatchResponse mirrors the request order. A nil entry means the value
// found no opposite.
type MatchResponse struct {
	PairIDs     []*int `json:"pair_ids"`
	PairsFormed int    `json:"pairs_formed"`
	Unmatched   int    `json:"unmatched"`
}

// ReconcileOptions are the form fields accepted by the workbook
// reconciliation endpoint alongside the uploaded file.
type ReconcileOptions struct {
	Sheets        []string `json:"sheets,omitempty"`
	SheetIndexes  []int    `json:"sheet_indexes,omitempty" validate:"omitempty,dive,min=1"`
	ColumnPattern string   `json:"column_pattern,omitempty"`
	ColumnIndex   int      `json:"column_index,omitempty" validate:"omitempty,min=1"`
	RowStart      int      `json:"row_start,omitempty" validate:"omitempty,min=1"`
	RowStop       string   `json:"row_stop,omitempty" validate:"omitempty,oneof=on_blank end_of_sheet at_row"`
	RowStopIndex  int      `json:"row_stop_index,omitempty" validate:"omitempty,min=1"`
	Placement     string   `json:"placement,omitempty" validate:"omitempty,oneof=insert_right append_end at_column"`
	ResultIndex   int      `json:"result_index,omitempty" validate:"omitempty,min=1"`
	PartitionCol  int      `json:"partition_col,omitempty" validate:"omitempty,min=1"`
}

// ReconcileResponse reports a completed run when the client asks for
// JSON instead of the reconciled workbook itself.
type ReconcileResponse struct {
	Summary domain.RunSummary `json:"summary"`
}

// HealthResponse is the health endpoint body.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
