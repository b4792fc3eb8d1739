package standards

import "errors"

// Service errors.
var (
	ErrStandardNotFound = errors.New("standard not found")
)
