package graphql

import (
	"errors"
	"strings"
)

// ErrStatusNotOK is returned when response had status different than 200 OK and carried no GraphQL errors.
var ErrStatusNotOK = errors.New("response status is not 200 OK")

// ErrorMessage is single entry of GraphQL response errors array.
type ErrorMessage struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// Error is returned when GraphQL response contains non-empty errors array.
type Error struct {
	Errors []ErrorMessage
}

// Error returns message of the first GraphQL error.
func (e *Error) Error() string {
	if len(e.Errors) == 0 {
		return "graphql error"
	}
	return e.Errors[0].Message
}

// Messages returns all error messages joined with semicolon.
func (e *Error) Messages() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, m := range e.Errors {
		msgs = append(msgs, m.Message)
	}
	return strings.Join(msgs, "; ")
}
