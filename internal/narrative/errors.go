package narrative

import (
	"errors"
	"fmt"

	"github.com/jonathan/sales-diagnostic/internal/types"
)

// ErrNoTier is returned when a chain has no configured tier to try.
var ErrNoTier = errors.New("no narrative tier configured")

// TierError records why one tier of the chain failed.
type TierError struct {
	Source types.NarrativeSource
	Cause  error
}

func (e *TierError) Error() string {
	return fmt.Sprintf("%s narrative failed: %v", e.Source, e.Cause)
}

func (e *TierError) Unwrap() error {
	return e.Cause
}

// RemoteStatusError is a non-2xx answer from the remote analysis endpoint.
type RemoteStatusError struct {
	StatusCode int
	Message    string
}

func (e *RemoteStatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote analysis returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote analysis returned %d", e.StatusCode)
}
