// Package statscmder provides the stats command for summarizing the
// stored graph.
package statscmder

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/loom/pkg/cliui"
	"github.com/papercomputeco/loom/pkg/config"
	"github.com/papercomputeco/loom/pkg/dotdir"
	"github.com/papercomputeco/loom/pkg/hypergraph"
	"github.com/papercomputeco/loom/pkg/snapshot"
	_ "github.com/papercomputeco/loom/pkg/snapshot/jsonfile"
	_ "github.com/papercomputeco/loom/pkg/snapshot/postgres"
	_ "github.com/papercomputeco/loom/pkg/snapshot/sqlite"
	"github.com/papercomputeco/loom/pkg/utils"
)

type statsCommander struct {
	storage   snapshot.Options
	configDir string
}

const statsLongDesc string = `Summarize the stored graph.

Loads the snapshot from the configured storage driver and prints node,
edge, root, and leaf counts, whether the graph is acyclic, and a short
preview of each root's content.

Examples:
  loom stats
  loom stats --driver json --json-path graph.json`

const statsShortDesc string = "Summarize the stored graph"

func NewStatsCmd() *cobra.Command {
	cmder := &statsCommander{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: statsShortDesc,
		Long:  statsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.storage, err = resolveStorage(cmd)
			if err != nil {
				return err
			}
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

func (c *statsCommander) run() error {
	ctx := context.Background()

	store, err := snapshot.Open(ctx, c.storage)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer store.Close()

	state, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, snapshot.ErrEmpty) {
			fmt.Printf("  %s No graph stored yet.\n", cliui.DimStyle.Render("●"))
			return nil
		}
		return fmt.Errorf("loading snapshot: %w", err)
	}

	g := hypergraph.NewTextGraph()
	if err := g.Restore(state); err != nil {
		return fmt.Errorf("restoring graph: %w", err)
	}

	roots := g.Roots()

	leaves := 0
	for _, id := range g.IDs() {
		if len(g.Children(id)) == 0 {
			leaves++
		}
	}

	acyclic := "yes"
	if g.CheckForCycles() {
		acyclic = "no"
	}

	fmt.Printf("\n  %s  %s\n", cliui.KeyStyle.Render("Nodes:  "), cliui.ValueStyle.Render(strconv.Itoa(g.Len())))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Edges:  "), cliui.ValueStyle.Render(strconv.Itoa(len(g.Edges()))))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Roots:  "), cliui.ValueStyle.Render(strconv.Itoa(len(roots))))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Leaves: "), cliui.ValueStyle.Render(strconv.Itoa(leaves)))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Acyclic:"), cliui.ValueStyle.Render(acyclic))

	cursor, err := dotdir.NewManager().LoadCursorState(c.configDir)
	if err != nil {
		return fmt.Errorf("loading cursor: %w", err)
	}
	if cursor != nil {
		mark := cursor.ID
		if _, err := g.Node(cursor.ID); err != nil {
			mark += " (missing)"
		}
		fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Cursor: "), cliui.ValueStyle.Render(utils.Truncate(mark, 72)))
	}
	fmt.Println()

	for i, id := range roots {
		node, err := g.Node(id)
		if err != nil {
			return err
		}

		preview := "<nil>"
		if s, ok := node.Content.(string); ok {
			preview = utils.Truncate(s, 72)
		} else if node.Content != nil {
			preview = utils.Truncate(fmt.Sprintf("%v", node.Content), 72)
		}

		fmt.Printf("  %s %s\n",
			cliui.DimStyle.Render(fmt.Sprintf("root %d.", i+1)),
			preview,
		)
	}
	if len(roots) > 0 {
		fmt.Println()
	}

	return nil
}
