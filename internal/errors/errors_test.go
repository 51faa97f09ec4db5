package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(CodeSheetNotFound, "sheet 'Ledger' not found")
	assert.Equal(t, "sheet 'Ledger' not found", plain.Error())

	cause := fmt.Errorf("open input.xlsx: no such file")
	wrapped := Wrap(CodeInvalidInputFile, "cannot open workbook", cause)
	assert.Equal(t, "cannot open workbook: open input.xlsx: no such file", wrapped.Error())
	assert.Equal(t, cause, wrapped.Unwrap())
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{
			name: "typed error",
			err:  New(CodeColumnNotFound, "no column matched"),
			want: CodeColumnNotFound,
		},
		{
			name: "wrapped typed error",
			err:  fmt.Errorf("run failed: %w", New(CodeSheetNotFound, "missing")),
			want: CodeSheetNotFound,
		},
		{
			name: "untyped error",
			err:  fmt.Errorf("boom"),
			want: CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
			assert.True(t, IsCode(tt.err, tt.want))
		})
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid input file maps to 400",
			err:        New(CodeInvalidInputFile, "unreadable workbook"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT_FILE",
		},
		{
			name:       "sheet not found maps to 404",
			err:        New(CodeSheetNotFound, "no such sheet"),
			wantStatus: http.StatusNotFound,
			wantCode:   "SHEET_NOT_FOUND",
		},
		{
			name:       "column not found maps to 404",
			err:        New(CodeColumnNotFound, "no column matched"),
			wantStatus: http.StatusNotFound,
			wantCode:   "COLUMN_NOT_FOUND",
		},
		{
			name:       "write failure maps to 422",
			err:        New(CodeWriteFailed, "save failed"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "WRITE_FAILED",
		},
		{
			name:       "untyped error does not leak its message",
			err:        fmt.Errorf("sql: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.ErrorCode)
			if tt.wantCode == "INTERNAL" {
				assert.Equal(t, "internal error", got.Message)
			}
		})
	}
}

func TestNewValidationErrors(t *testing.T) {
	fields := []ValidationError{
		{Field: "values", Message: "required"},
		{Field: "row_start", Message: "must be at least 1"},
	}

	got := NewValidationErrors(fields)
	assert.Equal(t, http.StatusBadRequest, got.StatusCode)
	assert.Equal(t, "INVALID_OPTIONS", got.ErrorCode)
	assert.Equal(t, fields, got.Details)
}
