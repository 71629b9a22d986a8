package vendure

import (
	"errors"
	"fmt"
)

// ErrMimeType is returned when backend rejects uploaded asset because of its mime type.
var ErrMimeType = errors.New("asset mime type rejected")

// ErrEmptyResult is returned when mutation returned no entity.
var ErrEmptyResult = errors.New("mutation returned empty result")

// LoginError is returned when login mutation resolves to error result, e.g. invalid credentials.
// It's business failure, transport and GraphQL failures are returned as other errors.
type LoginError struct {
	Code    string
	Message string
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("login failed: %s (%s)", e.Message, e.Code)
}
