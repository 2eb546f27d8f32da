package checkoutcmder_test

import (
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	checkoutcmder "github.com/papercomputeco/loom/cmd/loom/checkout"
	"github.com/papercomputeco/loom/pkg/dotdir"
	"github.com/papercomputeco/loom/pkg/hypergraph"
)

// newCmd attaches the config-dir flag normally provided by the root command.
func newCmd() *cobra.Command {
	cmd := checkoutcmder.NewCheckoutCmd()
	cmd.PersistentFlags().String("config-dir", "", "Override path to .loom/ config directory")
	return cmd
}

var _ = Describe("Checkout command", func() {
	var tmpDir, src string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		src = filepath.Join(tmpDir, "graph.json")

		stored := &hypergraph.State{
			Nodes: map[string]hypergraph.NodeState{
				"a": {Content: "Hello ", Metadata: map[string]any{}, Ancestry: [][]string{}},
				"b": {Content: "World!", Metadata: map[string]any{}, Ancestry: [][]string{{"a"}}},
			},
			Edges: []hypergraph.Edge{{"a", "b"}},
		}
		data, err := json.Marshal(stored)
		Expect(err).NotTo(HaveOccurred())
		Expect(os.WriteFile(src, data, 0o644)).To(Succeed())
	})

	It("anchors the cursor on an existing node", func() {
		cmd := newCmd()
		cmd.SetArgs([]string{"b", "--driver", "json", "--json-path", src, "--config-dir", tmpDir})
		Expect(cmd.Execute()).To(Succeed())

		state, err := dotdir.NewManager().LoadCursorState(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(state).NotTo(BeNil())
		Expect(state.ID).To(Equal("b"))
	})

	It("fails for an unknown identifier", func() {
		cmd := newCmd()
		cmd.SetArgs([]string{"nope", "--driver", "json", "--json-path", src, "--config-dir", tmpDir})
		Expect(cmd.Execute()).To(HaveOccurred())

		state, err := dotdir.NewManager().LoadCursorState(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(state).To(BeNil())
	})

	It("clears the cursor when no identifier is given", func() {
		set := newCmd()
		set.SetArgs([]string{"a", "--driver", "json", "--json-path", src, "--config-dir", tmpDir})
		Expect(set.Execute()).To(Succeed())

		clearCmd := newCmd()
		clearCmd.SetArgs([]string{"--driver", "json", "--json-path", src, "--config-dir", tmpDir})
		Expect(clearCmd.Execute()).To(Succeed())

		state, err := dotdir.NewManager().LoadCursorState(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(state).To(BeNil())
	})

	It("fails when nothing has been stored", func() {
		cmd := newCmd()
		cmd.SetArgs([]string{"a", "--driver", "json", "--json-path", filepath.Join(tmpDir, "missing.json"), "--config-dir", tmpDir})
		Expect(cmd.Execute()).To(MatchError(ContainSubstring("nothing to checkout")))
	})
})
