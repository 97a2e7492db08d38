package verifier

import (
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/smt"
	"github.com/folidity-lang/folidity/internal/types"
)

// Verify is the verifier's single entry point (spec §4.7): every model,
// state, and function bound in contract is lifted into a Constraint, the
// declarations are linked by parent/from/view-state/state-bound edges,
// Tarjan-SCC partitions the link graph into independent blocks, and each
// block is checked for satisfiability. Diagnostics land on
// contract.Diagnostics; like the resolver, Verify never aborts early on an
// individual declaration's failure (spec §7).
// Verify lifts and checks contract's bounds using the default 10 second
// per-block solver timeout. Use VerifyWithTimeout to apply a project's
// folidity.yaml override.
func Verify(contract *ir.Contract) {
	VerifyWithTimeout(contract, 10_000)
}

// VerifyWithTimeout is Verify with an explicit per-block solver timeout in
// milliseconds (spec §1 Configuration: folidity.yaml's solver_timeout_ms).
func VerifyWithTimeout(contract *ir.Contract, timeoutMS int) {
	tag := 0
	nextTag := func() int {
		id := tag
		tag++
		return id
	}

	decls := make([]declaration, 0, len(contract.Models)+len(contract.States)+len(contract.Functions))

	for i, m := range contract.Models {
		d := declaration{Handle: types.Handle{Kind: types.DeclModel, Index: i}}
		if m.Parent != nil {
			d.Links = append(d.Links, *m.Parent)
		}
		for _, e := range m.Bounds {
			d.Constraints = append(d.Constraints, Constraint{Tag: nextTag(), Span: e.Span(), Expr: e})
		}
		decls = append(decls, d)
	}

	for i, s := range contract.States {
		d := declaration{Handle: types.Handle{Kind: types.DeclState, Index: i}}
		if s.From != nil {
			d.Links = append(d.Links, *s.From)
		}
		if s.BodyKind == ir.StateBodyModel && s.ModelRef != nil {
			d.Links = append(d.Links, *s.ModelRef)
		}
		for _, e := range s.Bounds {
			d.Constraints = append(d.Constraints, Constraint{Tag: nextTag(), Span: e.Span(), Expr: e})
		}
		decls = append(decls, d)
	}

	for i, fn := range contract.Functions {
		d := declaration{Handle: types.Handle{Kind: types.DeclFunction, Index: i}}
		if fn.StateBound != nil {
			if fn.StateBound.From != nil {
				d.Links = append(d.Links, *fn.StateBound.From)
			}
			d.Links = append(d.Links, fn.StateBound.To...)
		}
		if fn.ViewState != nil {
			d.Links = append(d.Links, *fn.ViewState)
		}
		for _, e := range fn.Bounds {
			d.Constraints = append(d.Constraints, Constraint{Tag: nextTag(), Span: e.Span(), Expr: e})
		}
		for _, e := range fn.AccessAttrs {
			d.Constraints = append(d.Constraints, Constraint{Tag: nextTag(), Span: e.Span(), Expr: e})
		}
		decls = append(decls, d)
	}

	ctx := smt.NewContextWithTimeout(timeoutMS)
	for _, component := range buildBlocks(decls) {
		var constraints []Constraint
		for _, idx := range component {
			constraints = append(constraints, decls[idx].Constraints...)
		}
		verifyBlock(ctx, constraints, contract.Diagnostics)
	}
}
