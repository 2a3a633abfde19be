package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrInvalidID  = errors.New("invalid_id")
	ErrNameExists = errors.New("name_exists")
	ErrNotFound   = errors.New("not_found")
	ErrEmptyPatch = errors.New("empty_patch_document")

	// Returned by repositories when a write matched no row.
	ErrNoRowsUpdated = errors.New("no_rows_updated")
	ErrNoRowsDeleted = errors.New("no_rows_deleted")
)

// AppError is the structured error services hand back to controllers.
// StatusCode and Code drive the transport mapping; Details optionally
// carries field-keyed validation messages.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
