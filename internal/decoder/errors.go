package decoder

import "errors"

var (
	// ErrUnsupportedFormat is returned when source file extension is not supported.
	ErrUnsupportedFormat = errors.New("unsupported source format")
	// ErrMissingField is returned for product definition without required field.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidValue is returned for product definition field which can't be parsed.
	ErrInvalidValue = errors.New("invalid field value")
	// ErrNoSheets is returned when workbook has no sheets.
	ErrNoSheets = errors.New("workbook has no sheets")
)
