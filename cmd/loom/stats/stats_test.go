package statscmder_test

import (
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	statscmder "github.com/papercomputeco/loom/cmd/loom/stats"
	"github.com/papercomputeco/loom/pkg/hypergraph"
)

var _ = Describe("Stats command", func() {
	var tmpDir string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	It("summarizes a stored graph without error", func() {
		src := filepath.Join(tmpDir, "graph.json")

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

		cmd := statscmder.NewStatsCmd()
		cmd.SetArgs([]string{"--driver", "json", "--json-path", src})
		Expect(cmd.Execute()).To(Succeed())
	})

	It("reports an empty store without error", func() {
		cmd := statscmder.NewStatsCmd()
		cmd.SetArgs([]string{"--driver", "json", "--json-path", filepath.Join(tmpDir, "missing.json")})
		Expect(cmd.Execute()).To(Succeed())
	})

	It("rejects positional arguments", func() {
		cmd := statscmder.NewStatsCmd()
		cmd.SetArgs([]string{"extra"})
		Expect(cmd.Execute()).To(HaveOccurred())
	})
})
