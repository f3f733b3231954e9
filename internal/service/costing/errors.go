package costing

import "errors"

var (
	// ErrInvalidInput indicates a required field is missing, malformed or not finite.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyInput indicates no usable purchase lots were supplied.
	ErrEmptyInput = errors.New("empty input")
	// ErrZeroWeight indicates the aggregate purchase weight is zero.
	ErrZeroWeight = errors.New("zero weight")
)

// ValidationError carries the user-facing message for a rejected calculation.
// It unwraps to one of the sentinel errors above.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func invalid(message string) error {
	return &ValidationError{Err: ErrInvalidInput, Message: message}
}

func empty(message string) error {
	return &ValidationError{Err: ErrEmptyInput, Message: message}
}

func zeroWeight(message string) error {
	return &ValidationError{Err: ErrZeroWeight, Message: message}
}
