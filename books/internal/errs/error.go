package errs

import (
	"errors"
)

var (
	ErrNotFound   = errors.New("book not found")
	ErrConflict   = errors.New("book with this isbn already exists")
	ErrConstraint = errors.New("book violates a storage constraint")
	ErrImmutable  = errors.New("isbn can not be changed")
)

type ErrorBody struct {
	Message string   `json:"message"`
	Status  int      `json:"status"`
	Errors  []string `json:"errors,omitempty"`
}

// ErrorResponse is the envelope of every non-2xx response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
