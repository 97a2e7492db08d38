package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/source"
	"github.com/folidity-lang/folidity/internal/types"
)

func TestContractDefineLookup(t *testing.T) {
	bus := &diag.Bus{}
	c := NewContract(bus)

	h := types.Handle{Kind: types.DeclStruct, Index: 0}
	sp := source.Span{Start: 0, End: 3}
	assert.True(t, c.Define("Foo", h, sp))

	got, ok := c.Lookup("Foo")
	assert.True(t, ok)
	assert.Equal(t, h, got.Handle)

	_, ok = c.Lookup("Bar")
	assert.False(t, ok)
}

func TestContractDefineRedefinition(t *testing.T) {
	bus := &diag.Bus{}
	c := NewContract(bus)

	h1 := types.Handle{Kind: types.DeclStruct, Index: 0}
	h2 := types.Handle{Kind: types.DeclModel, Index: 0}

	assert.True(t, c.Define("Foo", h1, source.Span{Start: 0, End: 3}))
	assert.False(t, c.Define("Foo", h2, source.Span{Start: 10, End: 13}))
	assert.True(t, bus.HasErrors())

	// first definition still wins
	got, _ := c.Lookup("Foo")
	assert.Equal(t, h1, got.Handle)
}

func TestNextVarIDStrictlyIncreasing(t *testing.T) {
	c := NewContract(&diag.Bus{})
	seen := make(map[int]bool)
	for i := 0; i < 100; i++ {
		id := c.AllocVarID()
		assert.False(t, seen[id], "id %d reused", id)
		seen[id] = true
	}
	assert.Equal(t, 100, c.NextVarID)
}

func TestScopeShadowing(t *testing.T) {
	c := NewContract(&diag.Bus{})
	outer := NewScope(nil, CtxFunctionBody)
	outer.Define(c, "x", types.Simple(types.Int), nil, VarLocal)

	inner := NewScope(outer, CtxBlock)
	inner.Define(c, "x", types.Simple(types.Uint), nil, VarLocal)

	_, sym, ok := inner.Var("x")
	assert.True(t, ok)
	assert.Equal(t, types.Uint, sym.Type.Kind)

	_, sym, ok = outer.Var("x")
	assert.True(t, ok)
	assert.Equal(t, types.Int, sym.Type.Kind)
}

func TestScopeVarNotFound(t *testing.T) {
	outer := NewScope(nil, CtxFunctionBody)
	_, _, ok := outer.Var("missing")
	assert.False(t, ok)
}
