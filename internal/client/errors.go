package client

import (
	"errors"
	"strings"
)

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrDuplicatePhone      = errors.New("a client with this phone number already exists")
	ErrSearchQueryRequired = errors.New("search query is required")
)

// Messages returned to callers for validation failures.
const (
	MsgMissingFields   = "Missing required fields"
	MsgValidationError = "Validation error"
)

// RequiredFields are the fields a new client must carry.
var RequiredFields = []string{"firstName", "lastName", "age", "gender", "phoneNumber", "problemDescription"}

// ValidationError aggregates every rule a request violated.
type ValidationError struct {
	Message  string
	Messages []string
	Required []string
}

func (e *ValidationError) Error() string {
	return e.Message + ": " + strings.Join(e.Messages, "; ")
}
