package booking

import "errors"

// ErrNotFound covers both a missing entity and a caller who is not allowed
// to see it. The two cases are deliberately indistinguishable so responses
// never leak whether a booking exists.
var (
	ErrNotFound        = errors.New("booking information not found")
	ErrItemUnavailable = errors.New("item is not available")
	ErrStatusChange    = errors.New("status cannot be changed")
	ErrUnknownState    = errors.New("unknown state")
	ErrInvalidPage     = errors.New("invalid page parameters")
)
