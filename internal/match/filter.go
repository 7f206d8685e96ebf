package match

import "strings"

// FilterByGame keeps matches whose game name equals gameName, ignoring case.
func FilterByGame(matches []Match, gameName string) []Match {
	return keep(matches, func(m Match) bool {
		return strings.EqualFold(m.Game, gameName)
	})
}

// FilterByLeague keeps matches whose league name contains query, ignoring case.
func FilterByLeague(matches []Match, query string) []Match {
	q := strings.ToLower(query)
	return keep(matches, func(m Match) bool {
		return strings.Contains(strings.ToLower(m.League), q)
	})
}

// FilterLive keeps matches whose status is exactly StatusLive.
// Status is a controlled vocabulary, so the comparison is case-sensitive.
func FilterLive(matches []Match) []Match {
	return keep(matches, Match.IsLive)
}

// SearchByName keeps matches whose name contains query, ignoring case.
func SearchByName(matches []Match, query string) []Match {
	q := strings.ToLower(query)
	return keep(matches, func(m Match) bool {
		return strings.Contains(strings.ToLower(m.Name), q)
	})
}

// Games returns the distinct game names in first-seen order.
func Games(matches []Match) []string {
	return distinct(matches, func(m Match) string { return m.Game })
}

// Leagues returns the distinct league names in first-seen order.
func Leagues(matches []Match) []string {
	return distinct(matches, func(m Match) string { return m.League })
}

// keep is a stable filter that always allocates a fresh slice.
func keep(matches []Match, pred func(Match) bool) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if pred(m) {
			out = append(out, m)
		}
	}
	return out
}

func distinct(matches []Match, field func(Match) string) []string {
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		v := field(m)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
