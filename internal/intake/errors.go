package intake

import "fmt"

// DecodeError is returned when an answer payload is not a JSON object of scalar values.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode answers: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode answers: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
