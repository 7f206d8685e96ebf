package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/esmatch/internal/cache"
)

// NewCacheStatusCmd creates the cache status command.
func NewCacheStatusCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the age and freshness of each feed snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := make([]cache.Info, 0, len(rt.cfg.Feeds))
			for _, key := range rt.cfg.Feeds {
				info, err := rt.store.Stat(key)
				if err != nil {
					return fmt.Errorf("inspecting snapshot %s: %w", key, err)
				}
				infos = append(infos, info)
			}
			return renderCacheStatus(cmd.OutOrStdout(), infos, rt.feeds.Cooldown(), rt.store.Directory(), time.Now())
		},
	}
}

// freshness describes a snapshot relative to the cooldown.
func freshness(info cache.Info, cooldown time.Duration, now time.Time) string {
	switch info.State {
	case cache.Found:
		snap := cache.Snapshot{FetchedAt: info.FetchedAt}
		if snap.IsFresh(now, cooldown) {
			return "fresh"
		}
		return "stale"
	case cache.Malformed:
		return "malformed"
	default:
		return "absent"
	}
}

func renderCacheStatus(w io.Writer, infos []cache.Info, cooldown time.Duration, dir string, now time.Time) error {
	p := message.NewPrinter(language.English)

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "FEED\tSTATUS\tAGE\tSIZE\tFILE")
	for _, info := range infos {
		age, size := "-", "-"
		if info.State == cache.Found {
			age = cache.FormatAge(now.Sub(info.FetchedAt))
		}
		if info.State != cache.Absent {
			size = p.Sprintf("%d B", info.Size)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			info.Key, freshness(info, cooldown, now), age, size, cache.FileName(info.Key))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nCooldown: %s\nDirectory: %s\n", cooldown, dir)
	return err
}
