package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/esmatch/internal/config"
	"github.com/rshade/esmatch/internal/logging"
	"github.com/rshade/esmatch/pkg/version"
)

// setupLogging configures logging from the loaded config and the --debug flag,
// then stores a trace-tagged logger in the command context.
//
// Interactive commands never log to stderr: the session owns the screen. With
// --debug they raise the file logger to debug level, and without a usable log
// file their logging is switched off.
func setupLogging(cmd *cobra.Command, loggingCfg config.LoggingConfig) logging.LogPathResult {
	debug, _ := cmd.Flags().GetBool("debug")
	interactive := cmd.Annotations[annotationInteractive] == "true"
	switch {
	case debug && interactive:
		loggingCfg = loggingCfg.DebugLevel()
	case debug:
		loggingCfg = loggingCfg.Debug()
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}
	if interactive && !result.UsingFile {
		result.Logger = result.Logger.Level(zerolog.Disabled)
		fmt.Fprintln(cmd.ErrOrStderr(), "Logging is off during the interactive session: no log file is available.")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)

	logger = logging.ComponentLogger(result.Logger, "cli").
		With().Str("trace_id", traceID).Logger()
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).
		Str("command", cmd.CommandPath()).
		Str("version", version.GetVersion()).
		Bool("prerelease", version.IsPrerelease()).
		Msg("command started")

	return result
}
