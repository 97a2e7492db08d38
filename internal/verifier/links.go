package verifier

import (
	"golang.org/x/exp/slices"

	"github.com/folidity-lang/folidity/internal/graph"
	"github.com/folidity-lang/folidity/internal/types"
)

// buildBlocks partitions decls into Tarjan-SCC link blocks (spec §4.7).
// Each declaration's Links is added to the graph symmetrically (an edge
// in both directions), so the strongly-connected components graph.SCC
// returns are exactly the undirected graph's connected components — the
// same trick original_source/crates/verifier/src/links.rs plays by running
// petgraph's tarjan_scc over an explicitly Undirected graph.
func buildBlocks(decls []declaration) [][]int {
	index := make(map[types.Handle]int, len(decls))
	for i, d := range decls {
		index[d.Handle] = i
	}

	// A declaration can name the same linked handle twice (e.g. a function
	// whose ViewState equals its StateBound.To entry); slices.Contains
	// keeps each symmetric edge pair from being added more than once.
	adj := make([][]int, len(decls))
	for i, d := range decls {
		for _, l := range d.Links {
			j, ok := index[l]
			if !ok || j == i {
				continue
			}
			if !slices.Contains(adj[i], j) {
				adj[i] = append(adj[i], j)
			}
			if !slices.Contains(adj[j], i) {
				adj[j] = append(adj[j], i)
			}
		}
	}

	return graph.SCC(len(decls), adj)
}
