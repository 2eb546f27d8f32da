package hypergraph_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/loom/pkg/hypergraph"
)

var _ = Describe("TextGraph", func() {
	var g *hypergraph.TextGraph

	BeforeEach(func() {
		g = hypergraph.NewTextGraph()
	})

	Describe("Merge", func() {
		It("concatenates contents in order and removes the inputs", func() {
			hello := g.AddNode(hypergraph.NewNode("Hello "))
			world := g.AddNode(hypergraph.NewNode("World!"))

			merged, err := g.Merge([]string{hello, world})
			Expect(err).NotTo(HaveOccurred())

			node, err := g.Node(merged)
			Expect(err).NotTo(HaveOccurred())
			Expect(node.Content).To(Equal("Hello World!"))
			Expect(node.Ancestry).To(BeEmpty())

			_, err = g.Node(hello)
			Expect(err).To(HaveOccurred())
			_, err = g.Node(world)
			Expect(err).To(HaveOccurred())
			Expect(g.Len()).To(Equal(1))
		})

		It("drops incident hyperedges of the removed inputs", func() {
			a := g.AddNode(hypergraph.NewNode("a"))
			b := g.AddNode(hypergraph.NewNode("b"))
			c := g.AddNode(hypergraph.NewNode("c"))
			Expect(g.AddEdge(hypergraph.Edge{a, b})).To(Succeed())
			Expect(g.AddEdge(hypergraph.Edge{b, c})).To(Succeed())

			_, err := g.Merge([]string{a, b})
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Edges()).To(BeEmpty())
		})

		It("treats a seeded nil-content root as an empty prefix", func() {
			rooted := hypergraph.NewTextGraph(hypergraph.WithRoot())
			root := rooted.Roots()[0]
			child := rooted.AddNode(hypergraph.NewNode("payload"))
			Expect(rooted.AddEdge(hypergraph.Edge{root, child})).To(Succeed())

			merged, err := rooted.Merge([]string{root, child})
			Expect(err).NotTo(HaveOccurred())

			node, err := rooted.Node(merged)
			Expect(err).NotTo(HaveOccurred())
			Expect(node.Content).To(Equal("payload"))
		})

		It("fails on missing identifiers", func() {
			_, err := g.Merge([]string{"ghost"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Split", func() {
		It("cuts content at a single boundary into linked pieces", func() {
			id := g.AddNode(hypergraph.NewNode("Hello World!"))

			pieces, err := g.Split(id, 6)
			Expect(err).NotTo(HaveOccurred())
			Expect(pieces).To(HaveLen(2))

			first, _ := g.Node(pieces[0])
			second, _ := g.Node(pieces[1])
			Expect(first.Content).To(Equal("Hello "))
			Expect(second.Content).To(Equal("World!"))

			Expect(g.Edges()).To(Equal([]hypergraph.Edge{{pieces[0], pieces[1]}}))

			_, err = g.Node(id)
			Expect(err).To(HaveOccurred())
		})

		It("re-wires recorded lineages to the first piece", func() {
			parent := g.AddNode(hypergraph.NewNode("The quick "))
			id := g.AddNode(hypergraph.NewNode("brown fox"))
			Expect(g.AddEdge(hypergraph.Edge{parent, id})).To(Succeed())

			pieces, err := g.Split(id, 6)
			Expect(err).NotTo(HaveOccurred())

			first, _ := g.Node(pieces[0])
			Expect(first.Ancestry).To(Equal([][]string{{parent}}))
			Expect(g.Edges()).To(ContainElement(hypergraph.Edge{parent, pieces[0]}))
		})

		It("re-parents former children under the last piece", func() {
			id := g.AddNode(hypergraph.NewNode("brown fox"))
			child := g.AddNode(hypergraph.NewNode("jumps"))
			Expect(g.AddEdge(hypergraph.Edge{id, child})).To(Succeed())

			pieces, err := g.Split(id, 6)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Edges()).To(ContainElement(hypergraph.Edge{pieces[1], child}))

			// Removing the original's incident edges clears the child's
			// whole ancestry cache afterwards; the edge alone carries the
			// re-parented lineage until it is re-derived.
			node, _ := g.Node(child)
			Expect(node.Ancestry).To(BeEmpty())
		})

		It("splits at several sorted boundaries", func() {
			id := g.AddNode(hypergraph.NewNode("abcdef"))

			pieces, err := g.Split(id, 4, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(pieces).To(HaveLen(3))

			var contents []any
			contents, err = g.Contents(pieces)
			Expect(err).NotTo(HaveOccurred())
			Expect(contents).To(Equal([]any{"ab", "cd", "ef"}))
		})

		It("rejects out-of-range boundaries", func() {
			id := g.AddNode(hypergraph.NewNode("abc"))
			_, err := g.Split(id, 7)
			Expect(err).To(HaveOccurred())
		})

		It("requires at least one boundary", func() {
			id := g.AddNode(hypergraph.NewNode("abc"))
			_, err := g.Split(id)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ContentLineage", func() {
		var ids map[int]string

		BeforeEach(func() {
			contents := map[int]string{
				1: "The quick ",
				2: "brown fox jumps ",
				3: "red car drives ",
				4: "over the ",
				5: "lazy dog.",
				6: "speedbump.",
			}
			ids = make(map[int]string, len(contents))
			for i := 1; i <= 6; i++ {
				ids[i] = g.AddNode(hypergraph.NewNode(contents[i]))
			}
			for _, edge := range [][]int{{1, 2, 4}, {1, 3, 4}, {2, 4, 5}, {3, 4, 6}} {
				e := make(hypergraph.Edge, len(edge))
				for j, n := range edge {
					e[j] = ids[n]
				}
				Expect(g.AddEdge(e)).To(Succeed())
			}
		})

		It("resolves the lineage that regenerates the content", func() {
			lineage, err := g.ContentLineage("The quick brown fox jumps over the lazy dog.")
			Expect(err).NotTo(HaveOccurred())
			Expect(lineage).To(Equal([]string{ids[1], ids[2], ids[4], ids[5]}))
		})

		It("picks the alternative branch for alternative content", func() {
			lineage, err := g.ContentLineage("The quick red car drives over the speedbump.")
			Expect(err).NotTo(HaveOccurred())
			Expect(lineage).To(Equal([]string{ids[1], ids[3], ids[4], ids[6]}))
		})

		It("returns an empty lineage when nothing matches", func() {
			lineage, err := g.ContentLineage("completely unrelated content")
			Expect(err).NotTo(HaveOccurred())
			Expect(lineage).To(BeEmpty())
		})

		It("rejects non-text content", func() {
			_, err := g.ContentLineage(42)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("JointBoundaries", func() {
		It("validates inputs and reports no spans yet", func() {
			a := g.AddNode(hypergraph.NewNode("The quick brown fox jumps over the lazy dog."))
			b := g.AddNode(hypergraph.NewNode("The quick red car drives over the speedbump."))

			spans, err := g.JointBoundaries([]string{a, b})
			Expect(err).NotTo(HaveOccurred())
			Expect(spans).To(BeEmpty())
		})

		It("fails on unknown identifiers", func() {
			_, err := g.JointBoundaries([]string{"ghost"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("State round trip", func() {
		It("reproduces contents, metadata, ancestry, and edge order", func() {
			a := g.AddNode(hypergraph.NewNode("a"))
			b := g.AddNode(hypergraph.NewNode("b"))
			c := g.AddNode(hypergraph.NewNode("c"))

			an, _ := g.Node(a)
			an.Metadata["origin"] = "sampler"

			Expect(g.AddEdge(hypergraph.Edge{a, b, c})).To(Succeed())
			Expect(g.AddEdge(hypergraph.Edge{b, c})).To(Succeed())

			state, err := g.State()
			Expect(err).NotTo(HaveOccurred())

			// Through the wire format and back.
			raw, err := json.Marshal(state)
			Expect(err).NotTo(HaveOccurred())
			var decoded hypergraph.State
			Expect(json.Unmarshal(raw, &decoded)).To(Succeed())

			restored := hypergraph.NewTextGraph()
			Expect(restored.Restore(&decoded)).To(Succeed())

			Expect(restored.Len()).To(Equal(3))
			Expect(restored.Edges()).To(Equal([]hypergraph.Edge{{a, b, c}, {b, c}}))

			ra, err := restored.Node(a)
			Expect(err).NotTo(HaveOccurred())
			Expect(ra.Content).To(Equal("a"))
			Expect(ra.Metadata).To(HaveKeyWithValue("origin", "sampler"))

			rc, err := restored.Node(c)
			Expect(err).NotTo(HaveOccurred())
			Expect(rc.Ancestry).To(Equal([][]string{{b, a}, {b}}))
		})

		It("rejects a nil state", func() {
			Expect(g.Restore(nil)).NotTo(Succeed())
		})
	})

	Describe("base graph placeholders", func() {
		It("signals not-implemented for content-aware operations", func() {
			base := hypergraph.New()

			_, err := base.Merge([]string{"x"})
			Expect(err).To(MatchError(hypergraph.ErrNotImplemented))

			_, err = base.Split("x", 1)
			Expect(err).To(MatchError(hypergraph.ErrNotImplemented))

			_, err = base.ContentLineage("x")
			Expect(err).To(MatchError(hypergraph.ErrNotImplemented))

			_, err = base.JointBoundaries([]string{"x"})
			Expect(err).To(MatchError(hypergraph.ErrNotImplemented))

			_, err = base.State()
			Expect(err).To(MatchError(hypergraph.ErrNotImplemented))

			err = base.Restore(&hypergraph.State{})
			Expect(err).To(MatchError(hypergraph.ErrNotImplemented))
		})
	})
})
