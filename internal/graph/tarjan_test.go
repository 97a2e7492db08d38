package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSCCSimpleCycle(t *testing.T) {
	// 0 -> 1 -> 0, 2 standalone
	adj := [][]int{{1}, {0}, {}}
	comps := SCC(3, adj)
	assert.Len(t, comps, 2)
}

func TestRecursiveNodesSelfLoop(t *testing.T) {
	adj := [][]int{{0}}
	rec := RecursiveNodes(1, adj)
	assert.True(t, rec[0])
}

func TestRecursiveNodesNoCycle(t *testing.T) {
	adj := [][]int{{1}, {2}, {}}
	rec := RecursiveNodes(3, adj)
	assert.Empty(t, rec)
}

func TestRecursiveNodesMutualCycle(t *testing.T) {
	adj := [][]int{{1}, {0}}
	rec := RecursiveNodes(2, adj)
	assert.True(t, rec[0])
	assert.True(t, rec[1])
}
