package xdf

import "errors"

var (
	// ErrMalformedLength reports an invalid variable-length integer, either
	// a width selector outside {1, 4, 8} or input ending inside the field.
	ErrMalformedLength = errors.New("malformed chunk length")

	// ErrInvalidContainer reports a missing or wrong XDF magic marker.
	ErrInvalidContainer = errors.New("invalid XDF magic")
)
