// Package verifier is the formal verifier (spec §4.7): it lifts every
// resolved model, state, and function bound into an SMT formula and checks
// satisfiability, reporting which bounds contradict when it can't. It
// consumes internal/ir and never reaches back into internal/resolver or
// internal/fast.
package verifier

import (
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/source"
	"github.com/folidity-lang/folidity/internal/types"
)

// Constraint is one lifted bound expression, tagged with a per-contract
// monotonic integer id. The tag, not the declaration, is the unit an
// unsat core names back (spec §4.7's tagging scheme; SUPPLEMENTED: tags are
// per-contract monotonic rather than per-declaration, so ids never collide
// once two declarations share a link block, per SPEC_FULL.md §3).
type Constraint struct {
	Tag  int
	Span source.Span
	Expr ir.Expression
}

// declaration is one model/state/function's constraint set, plus the
// handles of other declarations it links to for block partitioning
// (spec §4.7 "linking and block construction"; grounded on
// original_source/crates/verifier/src/ast.rs's Declaration<'ctx>).
type declaration struct {
	Handle      types.Handle
	Constraints []Constraint
	Links       []types.Handle
}
