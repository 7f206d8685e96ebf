package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/esmatch/internal/match"
)

func strPtr(s string) *string { return &s }

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a much longer league name", 10, "a much ..."},
		{"abcdef", 3, "abc"},
		{"Ünïcödé names", 6, "Ünï..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.n), tt.in)
	}
}

func TestRenderMatchRow(t *testing.T) {
	m := match.Match{
		ID:          7,
		Name:        "Final",
		ScheduledAt: time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC),
		Status:      match.StatusLive,
		Game:        "Valorant",
		League:      "VCT Masters",
		Opponents: []match.Opponent{
			{ID: 1, Name: "Team Liquid", Acronym: strPtr("TL")},
			{ID: 2, Name: "Fnatic"},
		},
	}

	row := renderMatchRow(m, false)
	assert.Contains(t, row, "TL vs Fnatic")
	assert.Contains(t, row, "Valorant")
	assert.Contains(t, row, "live")

	selected := renderMatchRow(m, true)
	assert.Contains(t, selected, "> ")

	unscheduled := renderMatchRow(match.Match{Status: match.StatusNotStarted}, false)
	assert.Contains(t, unscheduled, "unscheduled")
	assert.Contains(t, unscheduled, "TBD vs TBD")
}

func TestRenderMatchDetail(t *testing.T) {
	m := match.Match{
		ID:         42,
		Name:       "Grand Final",
		Status:     match.StatusFinished,
		Game:       "Counter-Strike",
		League:     "ESL Pro League",
		Tournament: "Season 20 - Playoffs",
		Opponents: []match.Opponent{
			{ID: 1, Name: "Natus Vincere", Acronym: strPtr("NAVI"), Location: strPtr("UA")},
			{ID: 2, Name: "Vitality"},
		},
	}

	out := RenderMatchDetail(m)
	assert.Contains(t, out, "Grand Final")
	assert.Contains(t, out, "finished")
	assert.Contains(t, out, "Season 20 - Playoffs")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "Natus Vincere (NAVI) · UA")
	assert.Contains(t, out, "Vitality")
	assert.NotContains(t, out, "Vitality (")

	untitled := RenderMatchDetail(match.Match{Opponents: m.Opponents})
	assert.Contains(t, untitled, "NAVI vs Vitality")
}

func TestStatusStyle(t *testing.T) {
	assert.Equal(t, LiveStyle.GetForeground(), StatusStyle(match.StatusLive).GetForeground())
	assert.True(t, StatusStyle(match.StatusLive).GetBold())
	assert.Equal(t, FinishedStyle.GetForeground(), StatusStyle(match.StatusFinished).GetForeground())
	assert.Equal(t, UpcomingStyle.GetForeground(), StatusStyle(match.StatusNotStarted).GetForeground())
	assert.Equal(t, ValueStyle.GetForeground(), StatusStyle(match.Status("unknown")).GetForeground())
}
