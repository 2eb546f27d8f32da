// Package loomcmder
package loomcmder

import (
	"github.com/spf13/cobra"

	checkoutcmder "github.com/papercomputeco/loom/cmd/loom/checkout"
	configcmder "github.com/papercomputeco/loom/cmd/loom/config"
	exportcmder "github.com/papercomputeco/loom/cmd/loom/export"
	importcmder "github.com/papercomputeco/loom/cmd/loom/import"
	refactorcmder "github.com/papercomputeco/loom/cmd/loom/refactor"
	statscmder "github.com/papercomputeco/loom/cmd/loom/stats"
	versioncmder "github.com/papercomputeco/loom/cmd/version"
)

const loomLongDesc string = `Loom is a directed hypergraph store for evolving text.

Nodes carry content, hyperedges carry ordered lineage, and every node
remembers the paths that produced it.

Work with a graph using:
  loom stats       Summarize the stored graph
  loom export      Write the graph as JSON
  loom import      Load a graph from JSON
  loom refactor    Collapse equivalent lineages in place
  loom checkout    Anchor the cursor on a node`

const loomShortDesc string = "Loom - Ancestral Hypergraphs"

func NewLoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loom",
		Short: loomShortDesc,
		Long:  loomLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .loom/ config directory")

	// Add subcommands
	cmd.AddCommand(versioncmder.NewVersionCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(exportcmder.NewExportCmd())
	cmd.AddCommand(importcmder.NewImportCmd())
	cmd.AddCommand(statscmder.NewStatsCmd())
	cmd.AddCommand(refactorcmder.NewRefactorCmd())
	cmd.AddCommand(checkoutcmder.NewCheckoutCmd())

	return cmd
}
