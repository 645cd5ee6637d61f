// Package cli implements scheduler-cli, an offline companion to the API.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCommand assembles the command tree.
func NewRootCommand(version string) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "scheduler-cli",
		Short:         "Build task schedules and mint API tokens from the command line",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine diagnostics to stderr")

	newLogger := func() *zap.Logger {
		if !verbose {
			return zap.NewNop()
		}
		logger, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return logger
	}

	root.AddCommand(newSolveCommand(newLogger), newTokenCommand(newLogger))
	return root
}
