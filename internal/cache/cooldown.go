package cache

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cooldown defaults.
const (
	// DefaultCooldown is how long a snapshot is reused before refetching.
	DefaultCooldown = 10 * time.Minute

	// hoursPerDay is used for age formatting.
	hoursPerDay = 24

	// minutesPerHour is used for age formatting.
	minutesPerHour = 60
)

// ParseSeconds parses a duration in one of two forms:
//   - integer seconds: "600"
//   - Go duration: "10m", "1h30m"
//
// The sign is not checked.
func ParseSeconds(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if seconds, err := strconv.Atoi(s); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(s)
}

// ParseCooldown parses a cooldown with ParseSeconds. An empty string yields
// DefaultCooldown.
//
// Zero is allowed and means "always refetch". Negative values are rejected.
func ParseCooldown(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultCooldown, nil
	}

	d, err := ParseSeconds(s)
	if err != nil {
		return 0, fmt.Errorf("invalid cooldown format: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidCooldown, d)
	}
	return d, nil
}

// FormatAge formats a duration in a compact human-readable way.
// Examples: "42s", "5m", "2h15m", "3d4h".
func FormatAge(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < hoursPerDay*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}
