// Package configcmder provides the config command for managing persistent
// loom configuration stored in the .loom/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent loom configuration.

Configuration is stored as config.toml in the .loom/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  storage.driver, storage.sqlite_path, storage.json_path, storage.postgres_dsn,
  simulator.provider, simulator.target, simulator.model,
  logging.debug, logging.json

Use subcommands to get, set, or list configuration values:
  loom config set <key> <value>    Set a configuration value
  loom config get <key>            Get a configuration value
  loom config list                 List all configuration values

Examples:
  loom config set storage.driver postgres
  loom config set simulator.model llama3.2
  loom config get storage.driver
  loom config list`

const configShortDesc string = "Manage persistent loom configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
