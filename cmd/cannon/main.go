package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cannon/internal/cli"
	"github.com/matzehuels/cannon/pkg/errors"
)

// Exit codes.
const (
	exitError    = 1
	exitInput    = 2   // bad image, flag or config value
	exitCanceled = 130 // shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	switch {
	case err == nil:
		return
	case stderrors.Is(err, context.Canceled):
		os.Exit(exitCanceled)
	case errors.IsInput(err):
		fmt.Fprintln(os.Stderr, "cannon:", errors.UserMessage(err))
		os.Exit(exitInput)
	default:
		fmt.Fprintln(os.Stderr, "cannon:", err)
		os.Exit(exitError)
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level must be set before the config is loaded so that loading
	// problems are reported at the right verbosity.
	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if loadConfig != nil {
			return loadConfig(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
