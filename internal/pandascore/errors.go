package pandascore

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload is returned when the response body is not a JSON array of matches.
var ErrMalformedPayload = errors.New("pandascore: malformed payload")

// StatusError captures a non-2xx response from the API.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d %s", providerName, e.StatusCode, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// TransportError wraps a failure to reach the API at all.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request %s failed: %v", providerName, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsNetworkError reports whether err came from the network layer: a non-2xx
// status or a transport failure.
func IsNetworkError(err error) bool {
	if _, ok := AsStatusError(err); ok {
		return true
	}
	var te *TransportError
	return errors.As(err, &te)
}
