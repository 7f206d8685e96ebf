package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/esmatch/internal/tui"
)

// errNotInteractive is returned when the session is started without a terminal.
var errNotInteractive = errors.New(
	"the interactive session needs a terminal; use 'esmatch list' for scripted output")

func newBrowseCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:         "browse",
		Short:       "Browse matches interactively (default)",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationInteractive: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, rt)
		},
	}
}

func runBrowse(cmd *cobra.Command, rt *runtime) error {
	if !tui.IsTerminal(os.Stdin) || !tui.IsTerminal(os.Stdout) {
		return errNotInteractive
	}
	return tui.Run(cmd.Context(), rt.feeds, rt.cfg.Feeds)
}
