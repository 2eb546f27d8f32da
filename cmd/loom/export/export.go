// Package exportcmder provides the export command for writing the stored
// graph snapshot as JSON.
package exportcmder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/loom/pkg/config"
	"github.com/papercomputeco/loom/pkg/logger"
	"github.com/papercomputeco/loom/pkg/snapshot"
	_ "github.com/papercomputeco/loom/pkg/snapshot/jsonfile"
	_ "github.com/papercomputeco/loom/pkg/snapshot/postgres"
	_ "github.com/papercomputeco/loom/pkg/snapshot/sqlite"
)

type exportCommander struct {
	storage snapshot.Options
	output  string
	debug   bool
}

const exportLongDesc string = `Export the stored graph as JSON.

Loads the snapshot from the configured storage driver and writes it as
indented JSON to stdout, or to a file when --output is given. The JSON
document carries every node with its content, metadata, and ancestry,
plus the ordered hyperedge list, and can be fed back to "loom import".

Examples:
  loom export
  loom export --output graph.json
  loom export --driver sqlite --sqlite /tmp/graph.db`

const exportShortDesc string = "Export the stored graph as JSON"

func NewExportCmd() *cobra.Command {
	cmder := &exportCommander{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: exportShortDesc,
		Long:  exportLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.storage, err = resolveStorage(cmd)
			if err != nil {
				return err
			}
			cmder.debug, _ = cmd.Flags().GetBool("debug")

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagStorageDriver, &cmder.storage.Driver)
	config.AddStringFlag(cmd, config.Flags, config.FlagSQLite, &cmder.storage.SQLitePath)
	config.AddStringFlag(cmd, config.Flags, config.FlagJSONPath, &cmder.storage.JSONPath)
	config.AddStringFlag(cmd, config.Flags, config.FlagPostgresDSN, &cmder.storage.PostgresDSN)
	cmd.Flags().StringVarP(&cmder.output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

// resolveStorage builds snapshot options through the viper precedence
// chain: flag > env > config file > default. Shared by the commands
// that open a snapshot store.
func resolveStorage(cmd *cobra.Command) (snapshot.Options, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return snapshot.Options{}, fmt.Errorf("loading config: %w", err)
	}

	config.BindRegisteredFlags(v, cmd, config.Flags, []string{
		config.FlagStorageDriver,
		config.FlagSQLite,
		config.FlagJSONPath,
		config.FlagPostgresDSN,
	})

	return snapshot.Options{
		Driver:      v.GetString("storage.driver"),
		SQLitePath:  v.GetString("storage.sqlite_path"),
		JSONPath:    v.GetString("storage.json_path"),
		PostgresDSN: v.GetString("storage.postgres_dsn"),
	}, nil
}

func (c *exportCommander) run() error {
	log := logger.New(logger.WithDebug(c.debug), logger.WithPretty(true), logger.WithWriter(os.Stderr))
	ctx := context.Background()

	store, err := snapshot.Open(ctx, c.storage)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer store.Close()

	log.Debug("loading snapshot", "driver", c.storage.Driver)

	state, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, snapshot.ErrEmpty) {
			return errors.New("no graph stored yet, nothing to export")
		}
		return fmt.Errorf("loading snapshot: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	data = append(data, '\n')

	if c.output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(c.output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", c.output, err)
	}

	log.Debug("wrote export", "path", c.output, "nodes", len(state.Nodes), "edges", len(state.Edges))
	return nil
}
