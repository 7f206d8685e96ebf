package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/esmatch/internal/cache"
	"github.com/rshade/esmatch/internal/config"
	"github.com/rshade/esmatch/internal/feed"
	"github.com/rshade/esmatch/internal/logging"
	"github.com/rshade/esmatch/internal/pandascore"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// annotationSkipConfig marks commands that run without loading the
// configuration (and therefore without an API token).
const annotationSkipConfig = "esmatch/skip-config"

// annotationInteractive marks commands that hand the terminal to the
// interactive session.
const annotationInteractive = "esmatch/interactive"

// runtime is what PersistentPreRunE builds for the subcommands.
type runtime struct {
	cfg   config.Config
	store *cache.FileStore
	feeds *feed.Service
	logs  *logging.LogPathResult
}

// NewRootCmd creates the root Cobra command for the esmatch CLI.
// Without a subcommand it starts the interactive session.
func NewRootCmd(ver string) *cobra.Command {
	cmd, _ := newRootCmd(ver)
	return cmd
}

// Execute runs the root command with the process arguments. The log file is
// closed even when the command fails, since cobra skips PersistentPostRunE
// after a RunE error.
func Execute(ctx context.Context, ver string) error {
	cmd, rt := newRootCmd(ver)
	return executeRoot(ctx, cmd, rt)
}

func executeRoot(ctx context.Context, cmd *cobra.Command, rt *runtime) error {
	defer rt.cleanup()
	return cmd.ExecuteContext(ctx)
}

func newRootCmd(ver string) (*cobra.Command, *runtime) {
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:           "esmatch",
		Short:         "Browse esports matches from the PandaScore API",
		Long:          "esmatch: fetch, cache and filter esports match schedules from the terminal",
		Version:       ver,
		Example:       rootCmdExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{annotationInteractive: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return rt.logs.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, rt)
		},
	}

	cmd.PersistentFlags().Bool("debug", false,
		"enable debug logging (console on stderr; the interactive session keeps its log file)")
	config.RegisterFlags(cmd.PersistentFlags())
	cmd.AddCommand(newBrowseCmd(rt), NewListCmd(rt), newCacheCmd(rt), newConfigCmd())

	return cmd, rt
}

const rootCmdExample = `  # Start the interactive session
  esmatch

  # List live matches without the menu
  esmatch list --feed /matches/running --live

  # Search upcoming matches and print JSON
  esmatch list --search final --output json

  # Always refetch, ignoring the cooldown
  esmatch list --refresh

  # Show which snapshots are fresh
  esmatch cache status

  # Write a config file with the defaults
  esmatch config init`

// setup loads configuration, configures logging and builds the feed service.
func (rt *runtime) setup(cmd *cobra.Command) error {
	if cmd.Annotations[annotationSkipConfig] == "true" {
		result := setupLogging(cmd, config.Defaults().Logging)
		rt.logs = &result
		return nil
	}

	workDir, err := os.Getwd()
	if err != nil {
		workDir = ""
	}

	cfg, err := config.Load(cmd.Flags(), workDir)
	if err != nil {
		return err
	}
	rt.cfg = cfg

	result := setupLogging(cmd, cfg.Logging)
	rt.logs = &result

	store, err := cache.NewFileStore(cfg.CacheDir)
	if err != nil {
		return err
	}
	client := pandascore.NewClient(pandascore.Config{
		BaseURL: cfg.BaseURL,
		Token:   cfg.APIToken,
		Timeout: cfg.Timeout,
	})

	rt.store = store
	rt.feeds = feed.NewService(cache.NewPolicy(store, client), pandascore.DecodeMatches, cfg.Cooldown)

	logger.Debug().Ctx(cmd.Context()).
		Str("base_url", cfg.BaseURL).
		Str("cache_dir", cfg.CacheDir).
		Dur("cooldown", cfg.Cooldown).
		Strs("feeds", cfg.Feeds).
		Str("config_file", cfg.File).
		Msg("configuration loaded")
	return nil
}

// cleanup releases the log file. It is safe to call more than once.
func (rt *runtime) cleanup() {
	_ = rt.logs.Close()
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd())
	return cmd
}

// newCacheCmd creates the cache command group.
func newCacheCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Snapshot cache commands"}
	cmd.AddCommand(NewCacheStatusCmd(rt))
	return cmd
}
