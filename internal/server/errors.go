package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/sales-diagnostic/internal/intake"
)

// Messages returned by the analyze endpoint. Browser clients match on them.
const (
	msgMissingAPIKey    = "Server configuration error: Missing API Key"
	msgAnalysisFailed   = "Failed to generate analysis"
	msgMethodNotAllowed = "Method not allowed"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		decode     *intake.DecodeError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &decode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// validationError turns validator output into an ErrValidation naming the first field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed on %q", fe.Tag())}
	}
	return &ErrValidation{Message: err.Error()}
}
