package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
	ErrInvalidInput       = errors.New("invalid input")
)

// Error carries the client facing detail of a failed operation.
// Kind is one of the Err* sentinels above.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(detail string) error {
	return &Error{Kind: ErrNotFound, Detail: detail}
}

func invalidInput(detail string) error {
	return &Error{Kind: ErrInvalidInput, Detail: detail}
}
