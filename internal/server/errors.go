package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nijanthan/portfolio-cms/internal/editor"
	"github.com/nijanthan/portfolio-cms/internal/github"
	"github.com/nijanthan/portfolio-cms/internal/store"
)

// ErrUnknownSection indicates a request named a content section that
// does not exist.
type ErrUnknownSection struct {
	Section string
}

func (e *ErrUnknownSection) Error() string {
	return fmt.Sprintf("unknown section: %s", e.Section)
}

// ErrConfirmationRequired indicates a destructive operation was sent
// without the explicit confirmation parameter.
type ErrConfirmationRequired struct{}

func (e *ErrConfirmationRequired) Error() string {
	return "destructive operation requires confirm=true"
}

// ErrInvalidBody indicates the request body could not be decoded.
type ErrInvalidBody struct{}

func (e *ErrInvalidBody) Error() string {
	return "invalid request body"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var unknownSection *ErrUnknownSection
	var confirmation *ErrConfirmationRequired
	var invalidBody *ErrInvalidBody
	switch {
	case errors.As(err, &unknownSection):
		return http.StatusNotFound
	case errors.As(err, &confirmation), errors.As(err, &invalidBody):
		return http.StatusBadRequest
	case errors.Is(err, editor.ErrNotAuthenticated), errors.Is(err, github.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, editor.ErrPublishInProgress), errors.Is(err, github.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, editor.ErrEmptyToken), errors.Is(err, store.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrIndexOutOfRange), errors.Is(err, github.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, github.ErrEncoding):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// extractValidationErrors formats validator errors into a readable message.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
