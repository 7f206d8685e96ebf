package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/esmatch/internal/cli"
	"github.com/rshade/esmatch/internal/config"
	"github.com/rshade/esmatch/pkg/version"
)

// Exit codes.
const (
	exitOK      = 0
	exitError   = 1
	exitStartup = 2
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx, version.GetVersion())
}

// exitCode maps an error returned by run to the process exit status.
// Startup configuration errors use a distinct code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case config.IsStartupError(err):
		return exitStartup
	default:
		return exitError
	}
}
