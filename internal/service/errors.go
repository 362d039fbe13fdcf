package service

import "fmt"

// ValidationError is returned when request data fails validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
	}
	return e.Message
}

// UnavailableError is returned when a request is valid but cannot be
// accepted right now, such as a full event queue.
type UnavailableError struct {
	Resource string
	Reason   string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %s", e.Resource, e.Reason)
}
