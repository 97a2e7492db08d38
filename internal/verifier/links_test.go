package verifier

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/folidity-lang/folidity/internal/types"
)

func TestBuildBlocksPartitionsLinkedAndIsolatedDeclarations(t *testing.T) {
	h0 := types.Handle{Kind: types.DeclModel, Index: 0}
	h1 := types.Handle{Kind: types.DeclModel, Index: 1}
	h2 := types.Handle{Kind: types.DeclModel, Index: 2}

	decls := []declaration{
		{Handle: h0, Links: []types.Handle{h1}},
		{Handle: h1, Links: []types.Handle{h0}},
		{Handle: h2},
	}

	got := buildBlocks(decls)
	want := [][]int{{1, 0}, {2}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("buildBlocks mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildBlocksDedupesRepeatedLinkToSameHandle(t *testing.T) {
	h0 := types.Handle{Kind: types.DeclFunction, Index: 0}
	h1 := types.Handle{Kind: types.DeclState, Index: 0}

	decls := []declaration{
		{Handle: h0, Links: []types.Handle{h1, h1}},
		{Handle: h1},
	}

	got := buildBlocks(decls)
	want := [][]int{{1, 0}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("buildBlocks mismatch (-want +got):\n%s", diff)
	}
}
