package client

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when a remote service answers with a non-2xx
// status. The body is kept verbatim so callers can surface server-side
// validation messages.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status: %d %s. Body: %s", e.Status, http.StatusText(e.Status), e.Body)
}

// DecodeError is returned when a 2xx response body does not match the
// expected payload schema. Malformed data fails fast at the gateway
// boundary instead of propagating downstream.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsStatus reports whether err is a StatusError with the given status code.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}
