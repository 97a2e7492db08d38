// Package emitter is the TEAL lowering boundary (spec §6): "most opcode
// selection is straightforward stack-machine translation; only its
// interface to the IR is specified." This package fixes that interface —
// the artifact shape an Emitter produces and the scratch-space bookkeeping
// every lowering needs — without committing to opcode selection, which is
// explicitly out of core scope.
package emitter

import (
	"fmt"

	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/ir"
)

// Artifacts is an emitter's output: a pair of TEAL byte strings (spec §6:
// "emits a pair of byte strings (approval program, clear program)").
type Artifacts struct {
	ApprovalProgram []byte
	ClearProgram    []byte
}

// Emitter lowers a fully resolved and verified contract to Artifacts.
// Implementations consume the contract plus, per function, its pre-resolved
// body and scope (spec §6 "Emitter contract (output from the core)").
type Emitter interface {
	Emit(contract *ir.Contract) (Artifacts, error)
}

// ScratchTable allocates the AVM's 256 scratch-space slots to scope
// variables as a lowering walks a function body, grounded on
// original_source/crates/emitter/src/scratch_table.rs.
type ScratchTable struct {
	next  uint8
	slots map[int]uint8
}

func NewScratchTable() *ScratchTable {
	return &ScratchTable{slots: make(map[int]uint8)}
}

// Alloc assigns varID its own scratch slot, or returns its existing one if
// already allocated. TEAL scratch space has exactly 256 cells; exhausting
// it is a lowering error, not a panic (spec §7 "errors accumulate").
func (s *ScratchTable) Alloc(varID int) (uint8, error) {
	if slot, ok := s.slots[varID]; ok {
		return slot, nil
	}
	if len(s.slots) >= 256 {
		return 0, fmt.Errorf("exceeded scratch space variable count")
	}
	slot := s.next
	s.slots[varID] = slot
	s.next++
	return slot, nil
}

func (s *ScratchTable) Lookup(varID int) (uint8, bool) {
	slot, ok := s.slots[varID]
	return slot, ok
}

// TealEmitter is the Emitter this compiler ships; opcode selection per IR
// node is out of core scope, so Emit reports a single not-yet-implemented
// diagnostic rather than lowering anything (spec §6, §1 Non-goals list).
type TealEmitter struct {
	Diagnostics *diag.Bus
}

func NewTealEmitter(bus *diag.Bus) *TealEmitter {
	return &TealEmitter{Diagnostics: bus}
}

func (e *TealEmitter) Emit(contract *ir.Contract) (Artifacts, error) {
	e.Diagnostics.Push(diag.Report{
		Kind:    diag.Verification,
		Level:   diag.Info,
		Message: "TEAL opcode lowering is not implemented; this build stops at the verified IR",
	})
	return Artifacts{}, fmt.Errorf("emitter: opcode lowering not implemented")
}
