package mine

import (
	"fmt"
)

// InvalidInputError rejects a mining request before any search happens.
type InvalidInputError struct {
	Field  string
	Reason string
}

func invalid(field, format string, args ...interface{}) *InvalidInputError {
	return &InvalidInputError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %v: %v", e.Field, e.Reason)
}
