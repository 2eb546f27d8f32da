package hypergraph_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/loom/pkg/hypergraph"
)

type failingMerger struct{}

func (failingMerger) Merge(ids []string) (string, error) {
	return "", errors.New("merge refused")
}

var _ = Describe("Refactor", func() {
	var g *hypergraph.TextGraph

	BeforeEach(func() {
		g = hypergraph.NewTextGraph()
	})

	It("collapses a single-child chain into one node", func() {
		hello := g.AddNode(hypergraph.NewNode("Hello "))
		world := g.AddNode(hypergraph.NewNode("World!"))
		Expect(g.AddEdge(hypergraph.Edge{hello, world})).To(Succeed())

		Expect(g.Refactor()).To(Succeed())

		Expect(g.Len()).To(Equal(1))
		Expect(g.Edges()).To(BeEmpty())

		node, err := g.Node(g.IDs()[0])
		Expect(err).NotTo(HaveOccurred())
		Expect(node.Content).To(Equal("Hello World!"))
	})

	It("merges a child with content identical to its parent", func() {
		p := g.AddNode(hypergraph.NewNode("x"))
		dup := g.AddNode(hypergraph.NewNode("x"))
		other := g.AddNode(hypergraph.NewNode("y"))
		Expect(g.AddEdge(hypergraph.Edge{p, dup})).To(Succeed())
		Expect(g.AddEdge(hypergraph.Edge{p, other})).To(Succeed())

		Expect(g.Refactor()).To(Succeed())

		// The identical pair concatenates; removing the merged parent also
		// drops its edge to the sibling, which is left behind as a root.
		contents, err := g.Contents(g.IDs())
		Expect(err).NotTo(HaveOccurred())
		Expect(contents).To(ConsistOf("y", "xx"))
		Expect(g.Edges()).To(BeEmpty())
	})

	It("leaves a branching graph with distinct leaf contents alone", func() {
		p := g.AddNode(hypergraph.NewNode("p"))
		l := g.AddNode(hypergraph.NewNode("l"))
		r := g.AddNode(hypergraph.NewNode("r"))
		Expect(g.AddEdge(hypergraph.Edge{p, l})).To(Succeed())
		Expect(g.AddEdge(hypergraph.Edge{p, r})).To(Succeed())

		Expect(g.Refactor()).To(Succeed())

		Expect(g.Len()).To(Equal(3))
		Expect(g.Edges()).To(HaveLen(2))
	})

	It("severs deeper links when collapsing a chain segment", func() {
		a := g.AddNode(hypergraph.NewNode("a"))
		b := g.AddNode(hypergraph.NewNode("b"))
		c := g.AddNode(hypergraph.NewNode("c"))
		Expect(g.AddEdge(hypergraph.Edge{a, b})).To(Succeed())
		Expect(g.AddEdge(hypergraph.Edge{b, c})).To(Succeed())

		Expect(g.Refactor()).To(Succeed())

		// Merging a and b removes b's outgoing edge along with b, so c is
		// orphaned rather than re-parented under the merged node.
		contents, err := g.Contents(g.IDs())
		Expect(err).NotTo(HaveOccurred())
		Expect(contents).To(ConsistOf("ab", "c"))
		Expect(g.Edges()).To(BeEmpty())
	})

	It("propagates merge failures", func() {
		base := hypergraph.New()
		a := base.AddNode(hypergraph.NewNode("a"))
		b := base.AddNode(hypergraph.NewNode("b"))
		Expect(base.AddEdge(hypergraph.Edge{a, b})).To(Succeed())

		Expect(base.Refactor(failingMerger{})).NotTo(Succeed())
	})
})
