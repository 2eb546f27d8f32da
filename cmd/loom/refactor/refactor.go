// Package refactorcmder provides the refactor command for collapsing
// equivalent lineages in the stored graph.
package refactorcmder

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/loom/pkg/cliui"
	"github.com/papercomputeco/loom/pkg/config"
	"github.com/papercomputeco/loom/pkg/hypergraph"
	"github.com/papercomputeco/loom/pkg/snapshot"
	_ "github.com/papercomputeco/loom/pkg/snapshot/jsonfile"
	_ "github.com/papercomputeco/loom/pkg/snapshot/postgres"
	_ "github.com/papercomputeco/loom/pkg/snapshot/sqlite"
)

type refactorCommander struct {
	storage snapshot.Options
	dryRun  bool
}

const refactorLongDesc string = `Collapse equivalent lineages in the stored graph.

Walks the graph from its roots and merges single-child chains and
identical-content parent/child pairs into single nodes, repeating until
no rewrite applies. The simplified graph replaces the stored snapshot
unless --dry-run is given.

Examples:
  loom refactor
  loom refactor --dry-run`

const refactorShortDesc string = "Collapse equivalent lineages in the stored graph"

func NewRefactorCmd() *cobra.Command {
	cmder := &refactorCommander{}

	cmd := &cobra.Command{
		Use:   "refactor",
		Short: refactorShortDesc,
		Long:  refactorLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.storage, err = resolveStorage(cmd)
			if err != nil {
				return err
			}

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagStorageDriver, &cmder.storage.Driver)
	config.AddStringFlag(cmd, config.Flags, config.FlagSQLite, &cmder.storage.SQLitePath)
	config.AddStringFlag(cmd, config.Flags, config.FlagJSONPath, &cmder.storage.JSONPath)
	config.AddStringFlag(cmd, config.Flags, config.FlagPostgresDSN, &cmder.storage.PostgresDSN)
	cmd.Flags().BoolVar(&cmder.dryRun, "dry-run", false, "Report the result without saving it")

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

func (c *refactorCommander) run() error {
	ctx := context.Background()

	store, err := snapshot.Open(ctx, c.storage)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer store.Close()

	state, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, snapshot.ErrEmpty) {
			fmt.Printf("  %s No graph stored yet, nothing to refactor.\n", cliui.DimStyle.Render("●"))
			return nil
		}
		return fmt.Errorf("loading snapshot: %w", err)
	}

	g := hypergraph.NewTextGraph()
	if err := g.Restore(state); err != nil {
		return fmt.Errorf("restoring graph: %w", err)
	}

	before := g.Len()
	beforeEdges := len(g.Edges())

	if err := cliui.Step(os.Stderr, "Refactoring graph", func() error {
		return g.Refactor()
	}); err != nil {
		return fmt.Errorf("refactoring graph: %w", err)
	}

	fmt.Printf("  %s Nodes %d -> %d, edges %d -> %d\n",
		cliui.SuccessMark, before, g.Len(), beforeEdges, len(g.Edges()))

	if c.dryRun {
		fmt.Printf("  %s Dry run, snapshot left untouched.\n", cliui.DimStyle.Render("●"))
		return nil
	}

	refactored, err := g.State()
	if err != nil {
		return fmt.Errorf("exporting graph: %w", err)
	}

	if err := cliui.Step(os.Stderr, "Saving snapshot", func() error {
		return store.Save(ctx, refactored)
	}); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	return nil
}
