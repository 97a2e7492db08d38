package emitter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/emitter"
	"github.com/folidity-lang/folidity/internal/ir"
)

func TestScratchTableReusesSlotForSameVariable(t *testing.T) {
	table := emitter.NewScratchTable()

	slot, err := table.Alloc(7)
	require.NoError(t, err)

	again, err := table.Alloc(7)
	require.NoError(t, err)
	assert.Equal(t, slot, again)

	other, err := table.Alloc(8)
	require.NoError(t, err)
	assert.NotEqual(t, slot, other)
}

func TestScratchTableErrorsPastCapacity(t *testing.T) {
	table := emitter.NewScratchTable()
	for i := 0; i < 256; i++ {
		_, err := table.Alloc(i)
		require.NoError(t, err)
	}
	_, err := table.Alloc(256)
	assert.Error(t, err)
}

func TestScratchTableLookupMissingVariable(t *testing.T) {
	table := emitter.NewScratchTable()
	_, ok := table.Lookup(42)
	assert.False(t, ok)
}

func TestTealEmitterReportsNotImplemented(t *testing.T) {
	bus := &diag.Bus{}
	e := emitter.NewTealEmitter(bus)

	_, err := e.Emit(ir.NewContract(bus))
	assert.Error(t, err)
	assert.NotEmpty(t, bus.All())
}

func TestChunkStringIncludesOperands(t *testing.T) {
	c := emitter.Chunk{Op: emitter.OpPushInt, Constants: []emitter.Constant{emitter.ConstUint(5)}}
	assert.Equal(t, "pushint 5", c.String())
}
