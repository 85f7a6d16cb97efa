package api

import (
	"errors"
	"fmt"
)

var (
	// ErrDecodeFailed marks a response body that is not the expected shape.
	ErrDecodeFailed = errors.New("decoding response failed")
	// ErrInvalidArgument is returned before any request is made.
	ErrInvalidArgument = errors.New("invalid argument")
)

// RequestFailedError is a non-2xx response from the search API.
type RequestFailedError struct {
	Status int
	Path   string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("Error: %d", e.Status)
}

// StatusCode extracts the HTTP status from err, if it is a RequestFailedError.
func StatusCode(err error) (int, bool) {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Status, true
	}
	return 0, false
}

func decodeError(cause error) error {
	return fmt.Errorf("%w: %v", ErrDecodeFailed, cause)
}
