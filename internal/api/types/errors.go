package types

import (
	"net/http"

	appErr "github.com/finboard-io/engine/pkg/errors"
)

func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	if e, ok := err.(*appErr.AppError); ok {
		return &APIError{Code: string(e.Code), Message: e.Message}
	}
	return &APIError{Code: string(appErr.CodeUnknown), Message: err.Error()}
}

// StatusForError maps repository error codes to HTTP statuses. Anything
// that is not a precondition failure is a backend-layer failure and maps
// to 500.
func StatusForError(err error) int {
	switch {
	case appErr.IsCode(err, appErr.CodeNotFound):
		return http.StatusNotFound
	case appErr.IsCode(err, appErr.CodeConflict):
		return http.StatusBadRequest
	case appErr.IsCode(err, appErr.CodeInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
