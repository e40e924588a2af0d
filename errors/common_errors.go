package errors

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrDatabaseOperation = errors.New("database operation failed")
	ErrInternalServer    = errors.New("internal server error")
)
