package cache

import (
	"errors"
	"fmt"
)

// Common cache errors.
var (
	ErrInvalidKey       = errors.New("resource key cannot be empty")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidCooldown  = errors.New("cooldown must not be negative")
)

// ParseError reports a snapshot file that exists but cannot be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed snapshot %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AsParseError unwraps err into a ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
