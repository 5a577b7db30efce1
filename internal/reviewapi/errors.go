package reviewapi

import (
	"errors"
	"fmt"
)

// Failure kinds. The carousel treats all of them identically; callers that
// care match with errors.Is.
var (
	ErrNetworkFailure   = errors.New("network failure")
	ErrBadStatus        = errors.New("bad status")
	ErrMalformedPayload = errors.New("malformed payload")
)

// StatusError is returned for non-2xx responses. It matches ErrBadStatus.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %d", ErrBadStatus, e.StatusCode)
	}
	return fmt.Sprintf("%s: %d: %s", ErrBadStatus, e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrBadStatus
}

// UserMessage returns the text to show a user for err: the server's message
// for a bad status, the error text otherwise.
func UserMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}
