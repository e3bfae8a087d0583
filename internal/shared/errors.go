package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Persistence errors
	ErrNotFound       = fmt.Errorf("record not found")
	ErrDuplicateEmail = fmt.Errorf("email already registered")
	ErrConstraint     = fmt.Errorf("constraint violation")

	// Authentication errors
	ErrWrongPassword = fmt.Errorf("old password is incorrect")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
