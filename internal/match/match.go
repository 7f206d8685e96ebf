package match

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a match as reported by the data source.
type Status string

// Known statuses. StatusLive is the only value treated as "currently live".
const (
	StatusLive       Status = "live"
	StatusNotStarted Status = "not_started"
	StatusFinished   Status = "finished"
	StatusCanceled   Status = "canceled"
	StatusPostponed  Status = "postponed"
)

// tbd is shown in place of a missing opponent.
const tbd = "TBD"

// Opponent is a team or player taking part in a match.
type Opponent struct {
	ID       int     `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Acronym  *string `json:"acronym,omitempty" yaml:"acronym,omitempty"`
	Location *string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Label returns the acronym when the source provided one, otherwise the name.
func (o Opponent) Label() string {
	if o.Acronym != nil && *o.Acronym != "" {
		return *o.Acronym
	}
	return o.Name
}

// Match is a single scheduled, live or finished esports contest.
type Match struct {
	ID          int        `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	ScheduledAt time.Time  `json:"scheduled_at" yaml:"scheduled_at"`
	Status      Status     `json:"status" yaml:"status"`
	Game        string     `json:"game" yaml:"game"`
	League      string     `json:"league" yaml:"league"`
	Tournament  string     `json:"tournament" yaml:"tournament"`
	Opponents   []Opponent `json:"opponents" yaml:"opponents"`
}

// IsLive reports whether the match is currently being played.
func (m Match) IsLive() bool {
	return m.Status == StatusLive
}

// Versus renders the opponents as "A vs B". Missing slots are shown as TBD.
func (m Match) Versus() string {
	switch len(m.Opponents) {
	case 0:
		return tbd + " vs " + tbd
	case 1:
		return m.Opponents[0].Label() + " vs " + tbd
	}
	labels := make([]string, 0, len(m.Opponents))
	for _, o := range m.Opponents {
		labels = append(labels, o.Label())
	}
	return strings.Join(labels, " vs ")
}
