// Package checkoutcmder provides the checkout subcommand for anchoring a
// cursor on a node in the stored graph.
package checkoutcmder

import (
	"context"
	"errors"
	"fmt"

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

type checkoutCommander struct {
	storage   snapshot.Options
	id        string
	configDir string
}

const checkoutLongDesc string = `Checkout a node in the stored graph.

Verifies the identifier exists in the snapshot and saves it as the cursor
in the .loom/ directory. The cursor marks the node later commands anchor
on; "loom stats" displays it.

If no identifier is provided, clears the cursor.

Examples:
  loom checkout 4f7c2a...   Anchor the cursor on a node
  loom checkout             Clear the cursor`

const checkoutShortDesc string = "Checkout a node in the stored graph"

func NewCheckoutCmd() *cobra.Command {
	cmder := &checkoutCommander{}

	cmd := &cobra.Command{
		Use:   "checkout [id]",
		Short: checkoutShortDesc,
		Long:  checkoutLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				cmder.id = args[0]
			}
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

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

func (c *checkoutCommander) run() error {
	manager := dotdir.NewManager()

	// No id clears the cursor.
	if c.id == "" {
		if err := manager.ClearCursor(c.configDir); err != nil {
			return fmt.Errorf("clearing cursor: %w", err)
		}
		fmt.Println("Cursor cleared.")
		return nil
	}

	ctx := context.Background()

	store, err := snapshot.Open(ctx, c.storage)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer store.Close()

	state, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, snapshot.ErrEmpty) {
			return errors.New("no graph stored yet, nothing to checkout")
		}
		return fmt.Errorf("loading snapshot: %w", err)
	}

	g := hypergraph.NewTextGraph()
	if err := g.Restore(state); err != nil {
		return fmt.Errorf("restoring graph: %w", err)
	}

	node, err := g.Node(c.id)
	if err != nil {
		return fmt.Errorf("checking out node: %w", err)
	}

	if err := manager.SaveCursor(&dotdir.CursorState{ID: c.id}, c.configDir); err != nil {
		return fmt.Errorf("saving cursor: %w", err)
	}

	preview := ""
	if s, ok := node.Content.(string); ok {
		preview = utils.Truncate(s, 60)
	}

	fmt.Printf("  %s Checked out %s\n",
		cliui.SuccessMark, cliui.KeyStyle.Render(utils.Truncate(c.id, 16)))
	if preview != "" {
		fmt.Printf("  %s\n", cliui.DimStyle.Render(preview))
	}

	return nil
}
