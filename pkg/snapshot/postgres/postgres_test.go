package postgres_test

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/loom/pkg/hypergraph"
	"github.com/papercomputeco/loom/pkg/snapshot"
	"github.com/papercomputeco/loom/pkg/snapshot/postgres"
)

// connStr returns the PostgreSQL connection string from environment or skips the test.
func connStr() string {
	dsn := os.Getenv("LOOM_TEST_POSTGRES_DSN")
	if dsn == "" {
		Skip("LOOM_TEST_POSTGRES_DSN not set, skipping PostgreSQL tests")
	}
	return dsn
}

var _ = Describe("Store", func() {
	var (
		ctx   context.Context
		store *postgres.Store
	)

	BeforeEach(func() {
		ctx = context.Background()
		dsn := connStr()

		var err error
		store, err = postgres.New(ctx, dsn)
		Expect(err).NotTo(HaveOccurred())

		// Clean tables before each test for isolation.
		empty := &hypergraph.State{Nodes: map[string]hypergraph.NodeState{}, Edges: []hypergraph.Edge{}}
		Expect(store.Save(ctx, empty)).To(Succeed())
	})

	AfterEach(func() {
		if store != nil {
			store.Close()
		}
	})

	It("round-trips a state through the database", func() {
		state := &hypergraph.State{
			Nodes: map[string]hypergraph.NodeState{
				"a": {Content: "alpha", Metadata: map[string]any{"k": "v"}, Ancestry: [][]string{}},
				"b": {Content: "beta", Metadata: map[string]any{}, Ancestry: [][]string{{"a"}}},
			},
			Edges: []hypergraph.Edge{{"a", "b"}},
		}

		Expect(store.Save(ctx, state)).To(Succeed())

		loaded, err := store.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Edges).To(Equal(state.Edges))
		Expect(loaded.Nodes).To(HaveLen(2))
		Expect(loaded.Nodes["b"].Ancestry).To(Equal([][]string{{"a"}}))
	})

	It("reports an empty store when no nodes exist", func() {
		_, err := store.Load(ctx)
		Expect(err).To(MatchError(snapshot.ErrEmpty))
	})
})
