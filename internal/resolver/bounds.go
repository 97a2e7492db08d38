package resolver

import (
	"github.com/folidity-lang/folidity/internal/fast"
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/types"
)

// resolveBounds is the bounds resolver (spec §4.6): every model, state, and
// function `st [...]` block is resolved in a dedicated scope seeded with the
// declaration's own fields (and, for a model, its parent chain's fields),
// each bound expression checked against Expected{Concrete(Bool)}.
func (r *resolver) resolveBounds() {
	for _, d := range r.delayedModels {
		m := r.contract.Model(d.Handle)
		scope := ir.NewScope(nil, ir.CtxDeclarationBounds)
		r.defineModelFields(scope, d.Handle)
		m.Bounds = r.resolveBoundList(d.Node.Bounds, scope)
	}
	for _, d := range r.delayedStates {
		s := r.contract.State(d.Handle)
		scope := ir.NewScope(nil, ir.CtxDeclarationBounds)
		for _, f := range fieldsOfState(r.contract, s) {
			scope.Define(r.contract, f.Name, f.Type, nil, ir.VarLocal)
		}
		s.Bounds = r.resolveBoundList(d.Node.Bounds, scope)
	}
	for _, d := range r.delayedFunctions {
		fn := r.contract.Function(d.Handle)
		if fn.Scope == nil {
			continue
		}
		fn.Bounds = r.resolveBoundList(d.Node.Bounds, fn.Scope)
	}
}

// defineModelFields seeds scope with h's own fields, walking the parent
// chain first so a child's bound can reference an inherited field. The
// RecursiveParent guard stops a cyclic chain (already flagged by
// checkModelCycles) from looping forever.
func (r *resolver) defineModelFields(scope *ir.Scope, h types.Handle) {
	m := r.contract.Model(h)
	if m.Parent != nil && !m.RecursiveParent {
		r.defineModelFields(scope, *m.Parent)
	}
	for _, f := range m.Fields {
		scope.Define(r.contract, f.Name, f.Type, nil, ir.VarLocal)
	}
}

func (r *resolver) resolveBoundList(exprs []fast.Expr, scope *ir.Scope) []ir.Expression {
	out := make([]ir.Expression, 0, len(exprs))
	for _, e := range exprs {
		if re, ok := r.resolveExpr(e, ir.ExpectedConcrete(types.Simple(types.Bool)), scope); ok {
			out = append(out, re)
		}
	}
	return out
}
