package client

import "errors"

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

// ServerError carries the server's human-readable message verbatim while
// still matching one of the sentinels above with errors.Is.
type ServerError struct {
	Kind    error
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *ServerError) Unwrap() error {
	return e.Kind
}
