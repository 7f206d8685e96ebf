package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/rshade/esmatch/internal/cache"
	"github.com/rshade/esmatch/internal/cli/pagination"
	"github.com/rshade/esmatch/internal/feed"
	"github.com/rshade/esmatch/internal/match"
	"github.com/rshade/esmatch/internal/pandascore"
)

// OutputFormat selects how list renders matches.
type OutputFormat string

// Supported output formats.
const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

const (
	tabPadding      = 2
	tableTimeLayout = "2006-01-02 15:04"
	maxNameWidth    = 40
)

// ParseOutputFormat validates a --output value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputTable, OutputJSON, OutputYAML:
		return f, nil
	case "":
		return OutputTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want table, json or yaml)", s)
	}
}

type listOptions struct {
	feed    string
	game    string
	league  string
	live    bool
	search  string
	refresh bool
	output  string
	page    pagination.Params
}

// NewListCmd creates the non-interactive list command. It applies at most
// one filter to the full match set of a feed.
func NewListCmd(rt *runtime) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print matches from a feed, optionally filtered",
		Long: `Prints the matches of a feed. The snapshot on disk is reused while it is
younger than the cooldown; --refresh always refetches. At most one of --game,
--league, --live or --search may be given.`,
		Example: `  # Upcoming matches (default feed)
  esmatch list

  # Counter-Strike matches from the past feed as YAML
  esmatch list --feed /matches/past --game counter-strike --output yaml

  # Matches whose league contains "esl"
  esmatch list --league esl

  # The ten next matches by start time
  esmatch list --sort time --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, rt, opts)
		},
	}

	cmd.Flags().StringVar(&opts.feed, "feed", "", "feed path (default: first configured feed)")
	cmd.Flags().StringVar(&opts.game, "game", "", "only matches of this game (exact, case-insensitive)")
	cmd.Flags().StringVar(&opts.league, "league", "", "only matches whose league contains this text")
	cmd.Flags().BoolVar(&opts.live, "live", false, "only live matches")
	cmd.Flags().StringVar(&opts.search, "search", "", "only matches whose name contains this text")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "refetch regardless of the cooldown")
	cmd.Flags().StringVarP(&opts.output, "output", "o", string(OutputTable), "output format: table, json or yaml")
	cmd.Flags().StringVar(&opts.page.Sort, "sort", "",
		"sort by field[:asc|desc], one of: "+strings.Join(pagination.SortFields(), ", "))
	cmd.Flags().IntVar(&opts.page.Limit, "limit", 0, "show at most this many matches (0 = all)")
	cmd.Flags().IntVar(&opts.page.Offset, "offset", 0, "skip this many matches first")
	cmd.MarkFlagsMutuallyExclusive("game", "league", "live", "search")

	return cmd
}

func runList(cmd *cobra.Command, rt *runtime, opts listOptions) error {
	ctx := cmd.Context()

	format, err := ParseOutputFormat(opts.output)
	if err != nil {
		return err
	}
	if err := opts.page.Validate(); err != nil {
		return err
	}

	key := strings.TrimSpace(opts.feed)
	if key == "" {
		key = rt.cfg.DefaultFeed()
	} else if !strings.HasPrefix(key, "/") {
		key = "/" + key
	}

	res, err := rt.feeds.Load(ctx, key, opts.refresh)
	if err != nil {
		if pandascore.IsNetworkError(err) {
			return fmt.Errorf("fetching %s failed and no snapshot is stored: %w", key, err)
		}
		return fmt.Errorf("loading %s: %w", key, err)
	}
	if res.Stale() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: refresh failed (%v); showing snapshot fetched %s ago\n",
			res.FetchErr, cache.FormatAge(time.Since(res.FetchedAt)))
	}

	matches, err := pagination.Apply(selectMatches(res.Matches, opts), opts.page)
	if err != nil {
		return err
	}
	logger.Debug().Ctx(ctx).
		Str("feed", key).
		Bool("from_cache", res.FromCache).
		Int("total", len(res.Matches)).
		Int("shown", len(matches)).
		Msg("list filtered")

	return renderMatches(cmd.OutOrStdout(), format, res, matches)
}

// selectMatches applies the single filter chosen by the flags.
func selectMatches(all []match.Match, opts listOptions) []match.Match {
	switch {
	case opts.game != "":
		return match.FilterByGame(all, opts.game)
	case opts.league != "":
		return match.FilterByLeague(all, opts.league)
	case opts.live:
		return match.FilterLive(all)
	case opts.search != "":
		return match.SearchByName(all, opts.search)
	default:
		return all
	}
}

func renderMatches(w io.Writer, format OutputFormat, res feed.Result, matches []match.Match) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(matches); err != nil {
			return err
		}
		return enc.Close()
	case OutputTable:
		return renderMatchTable(w, res, matches)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func renderMatchTable(w io.Writer, res feed.Result, matches []match.Match) error {
	p := message.NewPrinter(language.English)

	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "No matches found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tSCHEDULED\tSTATUS\tGAME\tLEAGUE\tMATCH")
	for _, m := range matches {
		when := "unscheduled"
		if !m.ScheduledAt.IsZero() {
			when = m.ScheduledAt.Local().Format(tableTimeLayout)
		}
		name := m.Name
		if name == "" {
			name = m.Versus()
		}
		if r := []rune(name); len(r) > maxNameWidth {
			name = string(r[:maxNameWidth-3]) + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			strconv.Itoa(m.ID), when, m.Status, m.Game, m.League, name)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	source := "fetched"
	if res.FromCache {
		source = "cached"
	}
	_, err := p.Fprintf(w, "\n%d of %d matches · %s · %s %s ago\n",
		len(matches), len(res.Matches), res.Feed, source, cache.FormatAge(time.Since(res.FetchedAt)))
	return err
}
