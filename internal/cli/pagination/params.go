package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Sort orders.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// Validation errors.
var (
	ErrInvalidLimit      = errors.New("limit must be non-negative")
	ErrInvalidOffset     = errors.New("offset must be non-negative")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'time:desc')")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds the --sort, --limit and --offset flags.
type Params struct {
	// Sort is "field" or "field:order"; empty keeps the feed order.
	Sort string

	// Limit caps the number of items; 0 means no cap.
	Limit int

	// Offset skips this many items first.
	Offset int
}

// Validate checks the bounds of Limit and Offset.
func (p Params) Validate() error {
	if p.Limit < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidLimit, p.Limit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidOffset, p.Offset)
	}
	return nil
}

// ParseSort splits "field" or "field:order". The order defaults to asc.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	parts := strings.Split(sortStr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	field = strings.ToLower(strings.TrimSpace(parts[0]))
	if field == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	order = SortOrderAsc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}

// Window returns items[offset:offset+limit], clamped to the slice. The result
// shares the backing array with items.
func Window[T any](items []T, p Params) []T {
	if p.Offset >= len(items) {
		return items[len(items):]
	}
	end := len(items)
	if p.Limit > 0 && p.Limit < end-p.Offset {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end]
}
