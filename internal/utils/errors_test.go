package utils_test

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"

	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

func TestNew(t *testing.T) {
	base := errors.New("base error")
	appErr := utils.New(base, http.StatusBadRequest, "Error message")

	if appErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want %d", appErr.StatusCode, http.StatusBadRequest)
	}
	if appErr.Error() != "Error message" {
		t.Errorf("Error() = %q", appErr.Error())
	}
	if !errors.Is(appErr, base) {
		t.Error("AppError should unwrap to the base error")
	}
}

func TestNewNotFoundError(t *testing.T) {
	appErr := utils.NewNotFoundError("bank", int64(42))

	if appErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", appErr.StatusCode)
	}
	if !errors.Is(appErr, utils.ErrNotFound) {
		t.Error("should wrap ErrNotFound")
	}
	if !utils.IsNotFoundError(appErr) {
		t.Error("IsNotFoundError should report true")
	}
}

func TestNewDuplicateError(t *testing.T) {
	appErr := utils.NewDuplicateError("review", "review_hash", "abc123")

	if appErr.StatusCode != http.StatusConflict {
		t.Errorf("StatusCode = %d, want 409", appErr.StatusCode)
	}
	if appErr.Field != "review_hash" {
		t.Errorf("Field = %q, want review_hash", appErr.Field)
	}
	if !utils.IsDuplicateError(appErr) {
		t.Error("IsDuplicateError should report true")
	}
}

func TestNewIntegrityViolationError(t *testing.T) {
	appErr := utils.NewIntegrityViolationError("a value violates the chk_rating_range constraint", "pq: check violation")

	if appErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", appErr.StatusCode)
	}
	if !utils.IsIntegrityViolationError(appErr) {
		t.Error("IsIntegrityViolationError should report true")
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantErr    error
	}{
		{
			name:       "AppError passes through",
			err:        utils.NewBadRequestError("bad"),
			wantStatus: http.StatusBadRequest,
			wantErr:    utils.ErrBadRequest,
		},
		{
			name:       "Wrapped sentinel not found",
			err:        fmt.Errorf("lookup: %w", utils.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantErr:    utils.ErrNotFound,
		},
		{
			name:       "Wrapped sentinel duplicate",
			err:        fmt.Errorf("insert: %w", utils.ErrDuplicate),
			wantStatus: http.StatusConflict,
			wantErr:    utils.ErrDuplicate,
		},
		{
			name:       "Unique violation from postgres",
			err:        &pq.Error{Code: "23505", Constraint: "idx_review_hash"},
			wantStatus: http.StatusConflict,
			wantErr:    utils.ErrDuplicate,
		},
		{
			name:       "Foreign key violation from postgres",
			err:        &pq.Error{Code: "23503", Constraint: "fk_bank"},
			wantStatus: http.StatusBadRequest,
			wantErr:    utils.ErrIntegrityViolation,
		},
		{
			name:       "Check violation from postgres",
			err:        &pq.Error{Code: "23514", Constraint: "chk_rating_range"},
			wantStatus: http.StatusBadRequest,
			wantErr:    utils.ErrIntegrityViolation,
		},
		{
			name:       "Not null violation from postgres",
			err:        &pq.Error{Code: "23502", Column: "review_text"},
			wantStatus: http.StatusBadRequest,
			wantErr:    utils.ErrValidation,
		},
		{
			name:       "sql.ErrNoRows maps to not found",
			err:        sql.ErrNoRows,
			wantStatus: http.StatusNotFound,
			wantErr:    utils.ErrNotFound,
		},
		{
			name:       "Unknown errors become internal",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantErr:    utils.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := utils.ParseError(tt.err)
			if appErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", appErr.StatusCode, tt.wantStatus)
			}
			if !errors.Is(appErr.Err, tt.wantErr) {
				t.Errorf("underlying error = %v, want %v", appErr.Err, tt.wantErr)
			}
		})
	}
}

func TestParseErrorExtractsFieldFromConstraint(t *testing.T) {
	appErr := utils.ParseError(&pq.Error{Code: "23505", Constraint: "idx_review_hash"})
	if appErr.Field != "review_hash" {
		t.Errorf("Field = %q, want review_hash", appErr.Field)
	}
}

func TestStatusCode(t *testing.T) {
	if got := utils.StatusCode(utils.NewNotFoundError("theme", 1)); got != http.StatusNotFound {
		t.Errorf("StatusCode() = %d, want 404", got)
	}
	if got := utils.StatusCode(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("StatusCode() = %d, want 500", got)
	}
}
