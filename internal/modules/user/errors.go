package user

import "errors"

var (
	ErrNotFound   = errors.New("user not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("email already registered")
)
