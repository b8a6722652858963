package chartwheel

import "errors"

var (
	// ErrMissingParameter is returned when a chart type needs a ring inset
	// or an overlay cusp list that the caller did not supply.
	ErrMissingParameter = errors.New("chartwheel: missing parameter")
	ErrInvalidFormat    = errors.New("chartwheel: invalid format")
	ErrInvalidInput     = errors.New("chartwheel: invalid input")
)
