package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/folidity-lang/folidity/internal/types"
)

func TestLookupKnown(t *testing.T) {
	sig, ok := Lookup("or")
	assert.True(t, ok)
	assert.Equal(t, 2, len(sig.Params))
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("frobnicate")
	assert.False(t, ok)
}

func TestInitReturnsGenericList(t *testing.T) {
	sig, ok := Lookup("init")
	assert.True(t, ok)
	assert.Equal(t, types.List, sig.Returns.Kind)
	assert.Equal(t, types.Generic, sig.Returns.Element.Kind)
}
