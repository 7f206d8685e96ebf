package pandascore

import (
	"strings"
	"time"

	"github.com/rshade/esmatch/internal/match"
)

func mapMatch(m matchResponse) match.Match {
	opponents := make([]match.Opponent, 0, len(m.Opponents))
	for _, o := range m.Opponents {
		opponents = append(opponents, mapOpponent(o.Opponent))
	}
	return match.Match{
		ID:          m.ID,
		Name:        m.Name,
		ScheduledAt: scheduledAt(m),
		Status:      mapStatus(m.Status),
		Game:        m.Videogame.Name,
		League:      m.League.Name,
		Tournament:  tournamentName(m),
		Opponents:   opponents,
	}
}

func mapOpponent(o opponentResponse) match.Opponent {
	return match.Opponent{
		ID:       o.ID,
		Name:     o.Name,
		Acronym:  optional(o.Acronym),
		Location: optional(o.Location),
	}
}

// mapStatus translates upstream statuses into the domain vocabulary.
// PandaScore calls a match in progress "running".
func mapStatus(status string) match.Status {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "running", "live":
		return match.StatusLive
	case "finished":
		return match.StatusFinished
	case "canceled", "cancelled":
		return match.StatusCanceled
	case "postponed":
		return match.StatusPostponed
	default:
		return match.StatusNotStarted
	}
}

func scheduledAt(m matchResponse) time.Time {
	switch {
	case m.ScheduledAt != nil:
		return m.ScheduledAt.UTC()
	case m.BeginAt != nil:
		return m.BeginAt.UTC()
	default:
		return time.Time{}
	}
}

func tournamentName(m matchResponse) string {
	if m.Serie.FullName == "" {
		return m.Tournament.Name
	}
	if m.Tournament.Name == "" {
		return m.Serie.FullName
	}
	return m.Serie.FullName + " - " + m.Tournament.Name
}

// optional drops blank strings so callers never see sentinel "".
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
