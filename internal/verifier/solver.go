package verifier

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/smt"
)

// tagPrefix names every per-constraint boolean constant, so an unsat core
// entry can be parsed back to its integer tag id (spec §4.7; grounded on
// original_source/crates/verifier/src/solver.rs's bool_const_to_id, which
// strips z3's own "k!" auto-naming prefix — here the prefix is ours, since
// every tag constant is created with an explicit name).
const tagPrefix = "tag!"

// verifyBlock asserts every constraint in one link block, each wrapped
// `tag_k -> φ` (spec §4.7), then checks satisfiability under the block's
// full tag assumption set. Sat passes silently. Unsat or Unknown (treated
// as Unsat for reporting) reports a single Verification error for the
// block, carrying one note per offending constraint recovered from the
// returned unsat core. ctx is shared and
// reset across every block in the walk (spec §4.7: "solver reset between
// blocks"), rather than rebuilt per block.
func verifyBlock(ctx *smt.Context, constraints []Constraint, bus *diag.Bus) {
	if len(constraints) == 0 {
		return
	}
	ctx.Reset()

	tags := make([]smt.Term, 0, len(constraints))
	byTag := make(map[int]Constraint, len(constraints))

	liftedAll := true
	for _, c := range constraints {
		phi, ok := transformExpr(ctx, c.Expr, bus)
		if !ok {
			liftedAll = false
			continue
		}
		tag := ctx.Const(fmt.Sprintf("%s%d", tagPrefix, c.Tag), smt.SortBool)
		implication, err := ctx.Implies(tag, phi)
		if err != nil {
			bus.Push(diag.VerificationError(c.Span, "%s", err.Error()))
			liftedAll = false
			continue
		}
		if err := ctx.Assert(implication); err != nil {
			bus.Push(diag.VerificationError(c.Span, "%s", err.Error()))
			liftedAll = false
			continue
		}
		tags = append(tags, tag)
		byTag[c.Tag] = c
	}
	if !liftedAll || len(tags) == 0 {
		return
	}

	result, core, err := ctx.CheckAssumptions(tags)
	if err != nil {
		bus.Push(diag.VerificationError(constraints[0].Span, "solver error: %s", err.Error()))
		return
	}
	if result == smt.Sat {
		return
	}

	ids := make([]uint32, 0, len(core))
	for _, name := range core {
		id, ok := parseTagID(name)
		if !ok {
			continue
		}
		ids = append(ids, uint32(id))
	}

	var notes []diag.Report
	for _, id := range diag.DedupeTagIDs(ids) {
		c, ok := byTag[int(id)]
		if !ok {
			continue
		}
		notes = append(notes, diag.VerificationError(c.Span, "this bound contributes to the contradiction"))
	}
	bus.Push(diag.VerificationError(constraints[0].Span,
		"this set of bounds is not satisfiable").WithNotes(notes...))
}

func parseTagID(name string) (int, bool) {
	if !strings.HasPrefix(name, tagPrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(name, tagPrefix))
	if err != nil {
		return 0, false
	}
	return id, true
}
