package domain

import (
	"time"
)

// SheetResult summarizes reconciliation of one sheet.
type SheetResult struct {
	Sheet        string `json:"sheet"`
	Column       string `json:"column"`
	RowsScanned  int    `json:"rows_scanned"`
	NumericCells int    `json:"numeric_cells"`
	PairsFormed  int    `json:"pairs_formed"`
	Unmatched    int    `json:"unmatched"`
}

// UnmatchedStats describes the absolute amounts left without an opposite
// at the end of a run.
type UnmatchedStats struct {
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// RunSummary describes one reconciliation run across all selected sheets.
type RunSummary struct {
	RunID      string         `json:"run_id"`
	InputPath  string         `json:"input_path"`
	OutputPath string         `json:"output_path"`
	StartedAt  time.Time      `json:"started_at"`
	Duration   time.Duration  `json:"duration"`
	Sheets     []SheetResult  `json:"sheets"`
	Unmatched  UnmatchedStats `json:"unmatched"`
}

// TotalPairs sums the pairs formed across all sheets.
func (s *RunSummary) TotalPairs() int {
	total := 0
	for _, sheet := range s.Sheets {
		total += sheet.PairsFormed
	}
	return total
}

// TotalRows sums the rows scanned across all sheets.
func (s *RunSummary) TotalRows() int {
	total := 0
	for _, sheet := range s.Sheets {
		total += sheet.RowsScanned
	}
	return total
}
