package fetcher

import "errors"

var (
	// ErrStatusNotOK is returned when http response had status differen than 200 OK.
	ErrStatusNotOK = errors.New("response status is not 200 OK")
	// ErrContentTypeNotSupported is returned when response content type is not supported.
	ErrContentTypeNotSupported = errors.New("response content type not supported")
	// ErrTooManyRedirects is returned when download was redirected more times than allowed.
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrMissingLocation is returned when redirect response has no Location header.
	ErrMissingLocation = errors.New("redirect without location")
)
