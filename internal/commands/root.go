// Package commands implements the fintrack command line interface.
package commands

import (
	"github.com/fintrack/backend/pkg/router"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
//
// Running it without a subcommand starts the server.
func NewRootCommand() *cobra.Command {
	serve := newServeCommand()

	rootCmd := &cobra.Command{
		Use:     "fintrack",
		Short:   "Personal finance tracker backend",
		Version: router.Version(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(newTrialsCommand())

	return rootCmd
}
