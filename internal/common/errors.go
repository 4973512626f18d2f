package common

import "errors"

var (

	// auth errors
	ErrUnauthenticated = errors.New("not authenticated")
	ErrTokenExpired    = errors.New("token expired")

	// local validation errors (never sent to the network)
	ErrValidation   = errors.New("validation error")
	ErrFileTooLarge = errors.New("file exceeds 50 MB limit")
	ErrTooManyFiles = errors.New("too many files")

	// generic flow control
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)
