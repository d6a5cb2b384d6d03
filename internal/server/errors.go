package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		fieldErrs     validator.ValidationErrors
		exportErr     *export.ExportError
		renderErr     *rendering.RenderError
	)

	switch {
	case errors.Is(err, store.ErrNotSaved):
		return http.StatusInternalServerError
	case errors.Is(err, store.ErrProtectedSection):
		return http.StatusForbidden
	case errors.Is(err, store.ErrSectionNotFound), errors.Is(err, store.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateSection):
		return http.StatusConflict
	case errors.Is(err, llm.ErrMissingCredential):
		return http.StatusPreconditionFailed
	case errors.As(err, &validationErr),
		errors.As(err, &fieldErrs),
		errors.Is(err, types.ErrUnknownTemplate),
		errors.Is(err, types.ErrUnknownSectionType),
		errors.Is(err, types.ErrContentMismatch),
		errors.Is(err, store.ErrNotListSection),
		errors.Is(err, store.ErrInvalidState),
		errors.Is(err, llm.ErrMissingInput),
		errors.Is(err, config.ErrEmptyCredential):
		return http.StatusBadRequest
	case errors.As(err, &renderErr):
		return http.StatusInternalServerError
	case errors.As(err, &exportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// serviceStatus is HTTPStatus for calls that reach an external service: failures the
// request did not cause are reported as 502. A failed save stays a 500.
func serviceStatus(err error) int {
	if status := HTTPStatus(err); status != http.StatusInternalServerError || errors.Is(err, store.ErrNotSaved) {
		return status
	}
	return http.StatusBadGateway
}
