package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairxl/internal/config"
	apperrors "pairxl/internal/errors"
	"pairxl/internal/workbook"
)

func matchingDefaults() config.MatchingConfig {
	return config.Default().Matching
}

func TestBuildOptions_Defaults(t *testing.T) {
	opts, err := buildOptions(matchingDefaults(), flagValues{sheets: "Q3"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Q3"}, opts.Sheets)
	assert.Equal(t, "^Amount.*", opts.ColumnPattern)
	assert.Equal(t, 2, opts.RowStart)
	assert.Equal(t, workbook.RowStopOnBlank, opts.RowStop)
	assert.Equal(t, workbook.PlacementInsertRight, opts.Placement)
}

func TestBuildOptions_FlagsOverrideDefaults(t *testing.T) {
	opts, err := buildOptions(matchingDefaults(), flagValues{
		sheets:       "Q3, Q4",
		sheetIndexes: "1,3",
		colIndex:     2,
		rowStart:     5,
		rowStop:      "at_row",
		rowStopIndex: 100,
		result:       "at_column",
		resultIndex:  7,
		partitionCol: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Q3", "Q4"}, opts.Sheets)
	assert.Equal(t, []int{1, 3}, opts.SheetIndexes)
	assert.Equal(t, 2, opts.ColumnIndex)
	assert.Empty(t, opts.ColumnPattern)
	assert.Equal(t, 5, opts.RowStart)
	assert.Equal(t, workbook.RowStopAtRow, opts.RowStop)
	assert.Equal(t, 100, opts.RowStopIndex)
	assert.Equal(t, workbook.PlacementAtColumn, opts.Placement)
	assert.Equal(t, 7, opts.ResultIndex)
	assert.Equal(t, 1, opts.PartitionCol)
}

func TestBuildOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		fv   flagValues
	}{
		{"no sheets selected", flagValues{}},
		{"bad sheet index", flagValues{sheetIndexes: "one"}},
		{"bad row stop", flagValues{sheets: "Q3", rowStop: "never"}},
		{"at_row without stop index", flagValues{sheets: "Q3", rowStop: "at_row"}},
		{"at_column without result index", flagValues{sheets: "Q3", result: "at_column"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildOptions(matchingDefaults(), tt.fv)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidOptions))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a"}, splitList("a"))
	assert.Equal(t, []string{"a", "b"}, splitList("a, b"))
	assert.Equal(t, []string{"a", "b"}, splitList("a,,b,"))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		code apperrors.Code
		want int
	}{
		{apperrors.CodeInvalidOptions, exitUsage},
		{apperrors.CodeInvalidInputFile, exitInput},
		{apperrors.CodeSheetNotFound, exitNotFound},
		{apperrors.CodeColumnNotFound, exitNotFound},
		{apperrors.CodeWriteFailed, exitWriteError},
		{apperrors.CodeInternal, 1},
	}

	for _, tt := range tests {
		err := apperrors.New(tt.code, "x")
		assert.Equal(t, tt.want, exitCode(err), string(tt.code))
	}
}
