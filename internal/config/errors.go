package config

import (
	"errors"
	"fmt"
)

// ErrMissingToken is reported when API_TOKEN is not set anywhere.
var ErrMissingToken = errors.New("API_TOKEN is not set")

// ErrInvalidTimeout is reported for request timeouts below one millisecond.
var ErrInvalidTimeout = errors.New("timeout must be at least 1ms")

// StartupError marks configuration problems that must stop the process
// before any interactive surface is shown.
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup configuration error: %v (set %s in the environment or in a .env file)",
		e.Err, EnvAPIToken)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// IsStartupError reports whether err is a *StartupError.
func IsStartupError(err error) bool {
	var se *StartupError
	return errors.As(err, &se)
}
