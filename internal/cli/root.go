// Package cli implements the collector command line.
package cli

import (
	"github.com/spf13/cobra"
)

// DefaultConfigPath is used when --config is not given.
const DefaultConfigPath = "configs/collector.yaml"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the root command for the collector.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "collector",
		Short: "Pointer movement event collector",
		Long: `Collects pointer movement events from browsers over a WebSocket channel,
validates them and stores each one as a row in the coordinates table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", DefaultConfigPath, "path to config file")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewProvisionCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
