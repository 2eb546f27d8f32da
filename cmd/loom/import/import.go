// Package importcmder provides the import command for loading a graph
// snapshot from JSON into the configured store.
package importcmder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/loom/pkg/cliui"
	"github.com/papercomputeco/loom/pkg/config"
	"github.com/papercomputeco/loom/pkg/dotdir"
	"github.com/papercomputeco/loom/pkg/hypergraph"
	"github.com/papercomputeco/loom/pkg/snapshot"
	_ "github.com/papercomputeco/loom/pkg/snapshot/jsonfile"
	_ "github.com/papercomputeco/loom/pkg/snapshot/postgres"
	_ "github.com/papercomputeco/loom/pkg/snapshot/sqlite"
)

type importCommander struct {
	storage   snapshot.Options
	path      string
	configDir string
}

const importLongDesc string = `Import a graph from JSON.

Reads a JSON document produced by "loom export" (or hand-written in the
same shape), validates that it restores into a well-formed graph, and
replaces the snapshot held by the configured storage driver. Pass "-"
to read from stdin.

Examples:
  loom import graph.json
  cat graph.json | loom import -
  loom import graph.json --driver postgres`

const importShortDesc string = "Import a graph from JSON"

func NewImportCmd() *cobra.Command {
	cmder := &importCommander{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: importShortDesc,
		Long:  importLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.storage, err = resolveStorage(cmd)
			if err != nil {
				return err
			}
			cmder.path = args[0]
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagStorageDriver, &cmder.storage.Driver)
	config.AddStringFlag(cmd, config.Flags, config.FlagSQLite, &cmder.storage.SQLitePath)
	config.AddStringFlag(cmd, config.Flags, config.FlagJSONPath, &cmder.storage.JSONPath)
	config.AddStringFlag(cmd, config.Flags, config.FlagPostgresDSN, &cmder.storage.PostgresDSN)

	return cmd
}

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

func (c *importCommander) run() error {
	data, err := c.read()
	if err != nil {
		return err
	}

	var state hypergraph.State
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("decoding graph: %w", err)
	}

	// Restore into a scratch graph first so a malformed document never
	// clobbers the stored snapshot.
	if err := cliui.Step(os.Stderr, "Validating graph", func() error {
		return hypergraph.NewTextGraph().Restore(&state)
	}); err != nil {
		return fmt.Errorf("invalid graph: %w", err)
	}

	ctx := context.Background()

	store, err := snapshot.Open(ctx, c.storage)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer store.Close()

	if err := cliui.Step(os.Stderr, "Saving snapshot", func() error {
		return store.Save(ctx, &state)
	}); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	// The imported identifiers replace the old graph wholesale, so any
	// saved cursor is stale.
	if err := dotdir.NewManager().ClearCursor(c.configDir); err != nil {
		return fmt.Errorf("clearing cursor: %w", err)
	}

	fmt.Printf("  %s Imported %d nodes and %d edges\n",
		cliui.SuccessMark, len(state.Nodes), len(state.Edges))
	return nil
}

func (c *importCommander) read() ([]byte, error) {
	if c.path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.path, err)
	}
	return data, nil
}
