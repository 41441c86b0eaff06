package report

import "errors"

// Validation errors abort an operation before any fetch or side effect.
// They surface to the caller as warnings, never as system failures.
var (
	ErrMissingDateBound = errors.New("both start and end dates are required")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrNoOrders         = errors.New("no orders to print")
	ErrPrintBusy        = errors.New("a print is already in progress")
)

// IsValidation reports whether err belongs to the validation taxonomy, as
// opposed to an upstream or sink failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingDateBound) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrNoOrders) ||
		errors.Is(err, ErrPrintBusy)
}
