package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/folidity-lang/folidity/internal/types"
)

func TestExpectedConcreteAccepts(t *testing.T) {
	e := ExpectedConcrete(types.Simple(types.Int))
	assert.True(t, e.Accepts(types.Simple(types.Int)))
	assert.False(t, e.Accepts(types.Simple(types.Uint)))
}

func TestExpectedDynamicOpenAcceptsAnything(t *testing.T) {
	e := ExpectedDynamic()
	assert.True(t, e.IsOpenDynamic())
	assert.True(t, e.Accepts(types.Simple(types.String)))
}

func TestExpectedDynamicClosedSet(t *testing.T) {
	e := ExpectedDynamic(types.Simple(types.Int), types.Simple(types.Uint))
	assert.False(t, e.IsOpenDynamic())
	assert.True(t, e.Accepts(types.Simple(types.Uint)))
	assert.False(t, e.Accepts(types.Simple(types.Float)))
}

func TestExpectedEmptyAcceptsNothing(t *testing.T) {
	e := ExpectedEmpty()
	assert.False(t, e.Accepts(types.Simple(types.Int)))
}

func TestEnumDeclIndexOf(t *testing.T) {
	e := &EnumDecl{Name: "Color", Variants: []EnumVariant{{Name: "Red"}, {Name: "Green"}, {Name: "Blue"}}}
	i, ok := e.IndexOf("Green")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = e.IndexOf("Purple")
	assert.False(t, ok)
}
