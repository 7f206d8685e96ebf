package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rshade/esmatch/internal/match"
)

// Column widths for the match list.
const (
	colWidthTime   = 16
	colWidthStatus = 11
	colWidthGame   = 16
	colWidthVersus = 32
	colWidthLeague = 24

	timeLayout       = "2006-01-02 15:04"
	detailTimeLayout = "Mon 02 Jan 2006 15:04 MST"
)

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func formatScheduled(t time.Time, layout string) string {
	if t.IsZero() {
		return "unscheduled"
	}
	return t.Local().Format(layout)
}

// matchListHeader is the column header printed above the match list.
func matchListHeader() string {
	return fmt.Sprintf("  %-*s  %-*s  %-*s  %-*s  %s",
		colWidthTime, "Scheduled",
		colWidthStatus, "Status",
		colWidthGame, "Game",
		colWidthVersus, "Match",
		"League",
	)
}

// renderMatchRow formats a match for the list view.
func renderMatchRow(m match.Match, selected bool) string {
	status := fmt.Sprintf("%-*s", colWidthStatus, truncate(string(m.Status), colWidthStatus))
	rest := fmt.Sprintf("%-*s  %-*s  %s",
		colWidthGame, truncate(m.Game, colWidthGame),
		colWidthVersus, truncate(m.Versus(), colWidthVersus),
		truncate(m.League, colWidthLeague),
	)
	when := fmt.Sprintf("%-*s", colWidthTime, formatScheduled(m.ScheduledAt, timeLayout))

	if selected {
		return SelectedStyle.Render("> " + when + "  " + status + "  " + rest)
	}
	return "  " + when + "  " + StatusStyle(m.Status).Render(status) + "  " + rest
}

// RenderMatchDetail renders every field of a match.
func RenderMatchDetail(m match.Match) string {
	var sb strings.Builder

	title := m.Name
	if title == "" {
		title = m.Versus()
	}
	sb.WriteString(TitleStyle.Render(title))
	sb.WriteString("\n")

	field := func(label, value string) {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-12s", label)))
		sb.WriteString(ValueStyle.Render(value))
		sb.WriteString("\n")
	}

	sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-12s", "Status:")))
	sb.WriteString(StatusStyle(m.Status).Render(string(m.Status)))
	sb.WriteString("\n")
	field("Scheduled:", formatScheduled(m.ScheduledAt, detailTimeLayout))
	field("Game:", m.Game)
	field("League:", m.League)
	field("Tournament:", m.Tournament)
	field("Match ID:", strconv.Itoa(m.ID))

	sb.WriteString("\n")
	sb.WriteString(HeaderStyle.Render("Opponents"))
	sb.WriteString("\n")
	if len(m.Opponents) == 0 {
		sb.WriteString(SubtleStyle.Render("  To be decided"))
		sb.WriteString("\n")
	}
	for _, o := range m.Opponents {
		sb.WriteString("  " + ValueStyle.Render(o.Name))
		if o.Acronym != nil {
			sb.WriteString(LabelStyle.Render(" (" + *o.Acronym + ")"))
		}
		if o.Location != nil {
			sb.WriteString(LabelStyle.Render(" · " + *o.Location))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
