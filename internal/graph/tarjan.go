// Package graph implements Tarjan's strongly-connected-components
// algorithm, hand-rolled because no dependency in the example pack (nor the
// teacher) provides a graph library; this is the one utility for which the
// corpus offers no ecosystem substitute (see DESIGN.md).
//
// It backs three distinct cycle checks: struct field-dependency recursion,
// model/state parent-chain cycles (internal/resolver), and the verifier's
// undirected declaration link blocks (internal/verifier), per spec §4.2 and
// §4.7.
package graph

// SCC runs Tarjan's algorithm over a directed graph of n nodes (0..n-1)
// described by adj, an adjacency list where adj[i] lists i's successors.
// It returns the strongly connected components in reverse topological
// order, the order Tarjan's algorithm naturally produces.
func SCC(n int, adj [][]int) [][]int {
	t := &tarjan{
		adj:     adj,
		index:   make([]int, n),
		low:     make([]int, n),
		onStack: make([]bool, n),
		visited: make([]bool, n),
		nextIdx: 0,
	}
	for i := range t.index {
		t.index[i] = -1
	}
	for v := 0; v < n; v++ {
		if !t.visited[v] {
			t.strongConnect(v)
		}
	}
	return t.result
}

type tarjan struct {
	adj     [][]int
	index   []int
	low     []int
	onStack []bool
	visited []bool
	stack   []int
	nextIdx int
	result  [][]int
}

// strongConnect is the classic recursive formulation; contract graphs are
// small (declaration counts, not program-wide call graphs), so stack depth
// is not a concern here.
func (t *tarjan) strongConnect(v int) {
	t.index[v] = t.nextIdx
	t.low[v] = t.nextIdx
	t.nextIdx++
	t.visited[v] = true
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.adj[v] {
		if t.index[w] == -1 {
			t.strongConnect(w)
			if t.low[w] < t.low[v] {
				t.low[v] = t.low[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.low[v] {
				t.low[v] = t.index[w]
			}
		}
	}

	if t.low[v] == t.index[v] {
		var comp []int
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		t.result = append(t.result, comp)
	}
}

// HasSelfLoop reports whether node v has an edge to itself, the one case a
// size-1 SCC still needs flagging as recursive (spec §4.2: "struct A { a: A
// }" is a one-node cycle).
func HasSelfLoop(adj [][]int, v int) bool {
	for _, w := range adj[v] {
		if w == v {
			return true
		}
	}
	return false
}

// RecursiveNodes returns the set of nodes lying on some cycle: every member
// of an SCC of size > 1, plus any size-1 SCC with a self-loop.
func RecursiveNodes(n int, adj [][]int) map[int]bool {
	rec := make(map[int]bool)
	for _, comp := range SCC(n, adj) {
		if len(comp) > 1 {
			for _, v := range comp {
				rec[v] = true
			}
			continue
		}
		v := comp[0]
		if HasSelfLoop(adj, v) {
			rec[v] = true
		}
	}
	return rec
}
