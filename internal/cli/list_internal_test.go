package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esmatch/internal/cache"
	"github.com/rshade/esmatch/internal/feed"
	"github.com/rshade/esmatch/internal/match"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"table", OutputTable, false},
		{"JSON", OutputJSON, false},
		{" yaml ", OutputYAML, false},
		{"", OutputTable, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestSelectMatches(t *testing.T) {
	all := []match.Match{
		{ID: 1, Name: "Semifinal A", Status: match.StatusLive, Game: "Counter-Strike", League: "ESL Pro League"},
		{ID: 2, Name: "Quarterfinal B", Status: match.StatusFinished, Game: "Valorant", League: "VCT"},
		{ID: 3, Name: "Grand Semifinal", Status: match.StatusLive, Game: "counter-strike", League: "BLAST"},
	}

	ids := func(ms []match.Match) []int {
		out := make([]int, 0, len(ms))
		for _, m := range ms {
			out = append(out, m.ID)
		}
		return out
	}

	assert.Equal(t, []int{1, 2, 3}, ids(selectMatches(all, listOptions{})))
	assert.Equal(t, []int{1, 3}, ids(selectMatches(all, listOptions{game: "COUNTER-STRIKE"})))
	assert.Equal(t, []int{2}, ids(selectMatches(all, listOptions{league: "vc"})))
	assert.Equal(t, []int{1, 3}, ids(selectMatches(all, listOptions{live: true})))
	assert.Equal(t, []int{1, 3}, ids(selectMatches(all, listOptions{search: "semi"})))
}

func TestRenderMatchTable(t *testing.T) {
	matches := make([]match.Match, 0, 1200)
	for i := range 1200 {
		matches = append(matches, match.Match{ID: i, Status: match.StatusNotStarted})
	}
	res := feed.Result{Feed: "/matches/past", Matches: matches, FetchedAt: time.Now(), FromCache: true}

	var buf bytes.Buffer
	require.NoError(t, renderMatchTable(&buf, res, matches[:2]))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "ID"))
	assert.Contains(t, out, "unscheduled")
	assert.Contains(t, out, "TBD vs TBD")
	assert.Contains(t, out, "2 of 1,200 matches · /matches/past · cached")
}

func TestRenderCacheStatus(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	infos := []cache.Info{
		{Key: "/matches/upcoming", State: cache.Found, FetchedAt: now.Add(-2 * time.Minute), Size: 2048},
		{Key: "/matches/running", State: cache.Found, FetchedAt: now.Add(-2 * time.Hour), Size: 10},
		{Key: "/matches/past", State: cache.Malformed, Size: 3},
		{Key: "/tournaments", State: cache.Absent},
	}

	var buf bytes.Buffer
	require.NoError(t, renderCacheStatus(&buf, infos, 10*time.Minute, "/tmp/snapshots", now))
	lines := strings.Split(buf.String(), "\n")

	assert.Contains(t, lines[1], "fresh")
	assert.Contains(t, lines[1], "2m")
	assert.Contains(t, lines[1], "2,048 B")
	assert.Contains(t, lines[2], "stale")
	assert.Contains(t, lines[3], "malformed")
	assert.Contains(t, lines[4], "absent")
	assert.Contains(t, lines[4], "tournaments.json")
	assert.Contains(t, buf.String(), "Directory: /tmp/snapshots")
}

func TestFreshnessWithZeroCooldown(t *testing.T) {
	now := time.Now()
	info := cache.Info{State: cache.Found, FetchedAt: now}
	assert.Equal(t, "stale", freshness(info, 0, now))
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		interactive bool
		want        PromptResult
	}{
		{"yes", "y\n", true, PromptResult{Accepted: true}},
		{"YES", "YES\n", true, PromptResult{Accepted: true}},
		{"no", "n\n", true, PromptResult{}},
		{"empty defaults to no", "\n", true, PromptResult{}},
		{"eof", "", true, PromptResult{}},
		{"non-interactive never asks", "y\n", false, PromptResult{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := Confirm(&out, strings.NewReader(tt.input), tt.interactive, "Overwrite?")
			assert.Equal(t, tt.want, got)
			if tt.interactive {
				assert.Contains(t, out.String(), "Overwrite? [y/N]")
			} else {
				assert.Empty(t, out.String())
			}
		})
	}
}
