package therapist

import (
	"errors"
	"strings"
)

var ErrDuplicateEmail = errors.New("a therapist with this email already exists")

// ValidationError lists every problem found in a signup request.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Messages, "; ")
}
