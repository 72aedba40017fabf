package service

import (
	"fmt"

	"github.com/labasis/labasis-api/internal/domain"
)

// ValidationError carries a human-readable message for malformed or
// out-of-range input. Handlers render it as 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InvalidStateError reports an operation attempted against a
// reservation that already left the required state. The observed state
// is included so the caller knows what won.
type InvalidStateError struct {
	Op    string
	State domain.ReservationState
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s a reservation in state '%s'", e.Op, e.State)
}
