package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rickgao/cursorlog/internal/config"
	"github.com/rickgao/cursorlog/internal/database"
)

// NewProvisionCommand creates the provision command.
func NewProvisionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Create the coordinates table and exit",
		Long: `Create the coordinates table if it does not exist.

Existing rows are left untouched. serve runs the same step on startup unless
database.skip_provision is set.

Example:
  collector provision --config configs/collector.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadAndValidate(rootOpts.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := newLogger(cfg.Logging, cmd.ErrOrStderr())

			engine, err := database.Open(cmd.Context(), cfg.Database, logger)
			if err != nil {
				return err
			}
			defer engine.Close()

			if err := engine.Provision(cmd.Context()); err != nil {
				return err
			}
			logger.Info("schema provisioned", "driver", engine.Driver())
			return nil
		},
	}
}
