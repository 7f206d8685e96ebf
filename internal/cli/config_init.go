package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/esmatch/internal/cache"
	"github.com/rshade/esmatch/internal/config"
	"github.com/rshade/esmatch/internal/tui"
)

// NewConfigInitCmd creates the config init command. It writes the defaults,
// with any --base-url, --cache-dir, --cooldown or --timeout overrides, to the
// config file. An existing file is replaced only with --force or after the
// user confirms on a terminal.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates ~/.esmatch/config.yaml (or the file named by --config) with the
default settings. The API token is never written; keep it in API_TOKEN or .env.`,
		Example: `  # Create the default configuration
  esmatch config init

  # Overwrite an existing file with a 5 minute cooldown
  esmatch config init --cooldown 5m --force`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString(config.FlagConfig)
			if path == "" {
				path = config.DefaultConfigPath()
			}

			cfg, err := initialConfig(cmd)
			if err != nil {
				return err
			}

			err = config.WriteTemplate(path, cfg, force)
			if errors.Is(err, config.ErrConfigExists) {
				answer := Confirm(cmd.OutOrStdout(), cmd.InOrStdin(), tui.IsTerminal(os.Stdin),
					fmt.Sprintf("%s exists. Overwrite it?", path))
				if !answer.Accepted {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				err = config.WriteTemplate(path, cfg, true)
			}
			if err != nil {
				return err
			}

			logger.Info().Ctx(cmd.Context()).Str("path", path).Msg("configuration initialized")
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}

// initialConfig applies explicitly set flags on top of the defaults.
func initialConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Defaults()
	flags := cmd.Flags()

	if flags.Changed(config.FlagBaseURL) {
		cfg.BaseURL, _ = flags.GetString(config.FlagBaseURL)
	}
	if flags.Changed(config.FlagCacheDir) {
		cfg.CacheDir, _ = flags.GetString(config.FlagCacheDir)
	}
	if flags.Changed(config.FlagTimeout) {
		raw, _ := flags.GetString(config.FlagTimeout)
		timeout, err := config.ParseTimeout(raw)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid --%s: %w", config.FlagTimeout, err)
		}
		cfg.Timeout = timeout
	}
	if flags.Changed(config.FlagCooldown) {
		raw, _ := flags.GetString(config.FlagCooldown)
		cooldown, err := cache.ParseCooldown(raw)
		if err != nil {
			return config.Config{}, fmt.Errorf("invalid --%s: %w", config.FlagCooldown, err)
		}
		cfg.Cooldown = cooldown
	}
	return cfg, nil
}
