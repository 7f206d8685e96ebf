package pagination

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/esmatch/internal/match"
)

// matchLess compares two matches on one field.
type matchLess func(a, b match.Match) bool

//nolint:gochecknoglobals // fixed lookup table
var matchFields = map[string]matchLess{
	"time":   func(a, b match.Match) bool { return a.ScheduledAt.Before(b.ScheduledAt) },
	"name":   func(a, b match.Match) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
	"game":   func(a, b match.Match) bool { return strings.ToLower(a.Game) < strings.ToLower(b.Game) },
	"league": func(a, b match.Match) bool { return strings.ToLower(a.League) < strings.ToLower(b.League) },
	"status": func(a, b match.Match) bool { return a.Status < b.Status },
	"id":     func(a, b match.Match) bool { return a.ID < b.ID },
}

// SortFields returns the accepted sort fields in alphabetical order.
func SortFields() []string {
	fields := make([]string, 0, len(matchFields))
	for f := range matchFields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// SortMatches returns a sorted copy of matches. Ties keep their feed order in
// both directions. An empty sortStr returns matches unchanged.
func SortMatches(matches []match.Match, sortStr string) ([]match.Match, error) {
	if strings.TrimSpace(sortStr) == "" {
		return matches, nil
	}

	field, order, err := ParseSort(sortStr)
	if err != nil {
		return nil, err
	}
	less, ok := matchFields[field]
	if !ok {
		return nil, fmt.Errorf("%w %q (valid: %s)", ErrInvalidSortField, field, strings.Join(SortFields(), ", "))
	}

	sorted := make([]match.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted, nil
}

// Apply validates p, sorts and then windows matches.
func Apply(matches []match.Match, p Params) ([]match.Match, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sorted, err := SortMatches(matches, p.Sort)
	if err != nil {
		return nil, err
	}
	return Window(sorted, p), nil
}
