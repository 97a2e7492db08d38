package resolver

import (
	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/fast"
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/types"
)

// resolveFunctionBodies is the statement resolver (spec §4.5): for every
// delayed function, builds a fresh function-body scope seeded with its
// parameters and (for a view) its bound state variable, then resolves its
// body statement-by-statement.
func (r *resolver) resolveFunctionBodies() {
	for _, d := range r.delayedFunctions {
		fn := r.contract.Function(d.Handle)
		scope := ir.NewScope(nil, ir.CtxFunctionBody)

		for _, p := range fn.Params {
			scope.Define(r.contract, p.Name, p.Type, nil, ir.VarParam)
		}
		if fn.Vis == ir.VisView && fn.ViewState != nil && fn.ViewBind != "" {
			scope.Define(r.contract, fn.ViewBind, types.StateHandle(*fn.ViewState), nil, ir.VarFromState)
		}
		if fn.StateBound != nil && fn.StateBound.From != nil && fn.StateBound.FromBind != "" {
			scope.Define(r.contract, fn.StateBound.FromBind, types.StateHandle(*fn.StateBound.From), nil, ir.VarFromState)
		}

		fn.Scope = scope
		fn.Body = r.resolveBlock(d.Node.Body, fn, scope)

		for _, attr := range d.Node.Access {
			if ae, ok := r.resolveExpr(attr, ir.ExpectedConcrete(types.Simple(types.Bool)), scope); ok {
				fn.AccessAttrs = append(fn.AccessAttrs, ae)
			}
		}
	}
}

func (r *resolver) resolveBlock(stmts []fast.Stmt, fn *ir.Function, scope *ir.Scope) []ir.Statement {
	out := make([]ir.Statement, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, r.resolveStmt(s, fn, scope))
	}
	return out
}

func (r *resolver) resolveStmt(s fast.Stmt, fn *ir.Function, scope *ir.Scope) ir.Statement {
	switch n := s.(type) {
	case *fast.VariableStmt:
		return r.resolveVariableStmt(n, scope)
	case *fast.AssignStmt:
		return r.resolveAssignStmt(n, scope)
	case *fast.IfElseStmt:
		return r.resolveIfElseStmt(n, fn, scope)
	case *fast.ForLoopStmt:
		return r.resolveForLoopStmt(n, fn, scope)
	case *fast.IteratorStmt:
		return r.resolveIteratorStmt(n, fn, scope)
	case *fast.ReturnStmt:
		return r.resolveReturnStmt(n, fn, scope)
	case *fast.ExprStmt:
		e, _ := r.resolveExpr(n.Value, ir.ExpectedEmpty(), scope)
		return ir.NewExprStmt(n.Sp, e)
	case *fast.StateTransitionStmt:
		return r.resolveStateTransitionStmt(n, fn, scope)
	case *fast.BlockStmt:
		inner := ir.NewScope(scope, ir.CtxBlock)
		return ir.NewBlockStmt(n.Sp, r.resolveBlock(n.Statements, fn, inner))
	case *fast.SkipStmt:
		return ir.NewSkipStmt(n.Sp)
	case *fast.ErrorStmt:
		return ir.NewErrorStmt(n.Sp)
	default:
		r.contract.Diagnostics.Push(diag.SemanticError(s.Span(), "unsupported statement"))
		return ir.NewErrorStmt(s.Span())
	}
}

func (r *resolver) resolveVariableStmt(n *fast.VariableStmt, scope *ir.Scope) *ir.VariableStmt {
	var declared *types.Type
	if n.Type != nil {
		declared, _ = r.mapType(n.Type)
	}

	var value ir.Expression
	expected := ir.ExpectedDynamic()
	if declared != nil {
		expected = ir.ExpectedConcrete(declared)
	}
	if n.Value != nil {
		var ok bool
		value, ok = r.resolveExpr(n.Value, expected, scope)
		if !ok {
			value = nil
		}
	}

	ty := declared
	if ty == nil && value != nil {
		ty = value.Type()
	}
	if ty == nil {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Sp, "cannot infer a type for this declaration"))
		return ir.NewVariableStmt(n.Sp, nil, n.Mut, nil, nil)
	}

	// Destructuring binds beyond one name have no expression counterpart:
	// only the single-name form records the initializer on its own symbol.
	if len(n.Names) > 1 {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Sp, "destructuring more than one name is not supported"))
	}
	ids := make([]int, len(n.Names))
	for i, name := range n.Names {
		var v ir.Expression
		if len(n.Names) == 1 {
			v = value
		}
		ids[i] = scope.Define(r.contract, name.Name, ty, v, ir.VarLocal)
	}

	return ir.NewVariableStmt(n.Sp, ids, n.Mut, ty, value)
}

func (r *resolver) resolveAssignStmt(n *fast.AssignStmt, scope *ir.Scope) ir.Statement {
	id, sym, ok := scope.Var(n.Name.Name)
	if !ok {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Name.Span, "%q is not declared", n.Name.Name))
		return ir.NewErrorStmt(n.Sp)
	}
	value, ok := r.resolveExpr(n.Value, ir.ExpectedConcrete(sym.Type), scope)
	if !ok {
		return ir.NewErrorStmt(n.Sp)
	}
	return ir.NewAssignStmt(n.Sp, id, value)
}

func (r *resolver) resolveIfElseStmt(n *fast.IfElseStmt, fn *ir.Function, scope *ir.Scope) ir.Statement {
	cond, _ := r.resolveExpr(n.Condition, ir.ExpectedConcrete(types.Simple(types.Bool)), scope)
	inner := ir.NewScope(scope, ir.CtxBlock)
	body := r.resolveBlock(n.Body, fn, inner)

	var elseStmt ir.Statement
	if n.Else != nil {
		elseStmt = r.resolveStmt(n.Else, fn, scope)
	}

	return ir.NewIfElseStmt(n.Sp, cond, body, elseStmt)
}

func (r *resolver) resolveForLoopStmt(n *fast.ForLoopStmt, fn *ir.Function, scope *ir.Scope) ir.Statement {
	inner := ir.NewScope(scope, ir.CtxBlock)

	var init *ir.VariableStmt
	if n.Init != nil {
		init = r.resolveVariableStmt(n.Init, inner)
	}

	cond, _ := r.resolveExpr(n.Condition, ir.ExpectedConcrete(types.Simple(types.Bool)), inner)

	var post ir.Statement
	if n.Post != nil {
		if e, ok := r.resolveExpr(n.Post, ir.ExpectedEmpty(), inner); ok {
			post = ir.NewExprStmt(n.Post.Span(), e)
		}
	}

	body := r.resolveBlock(n.Body, fn, inner)
	return ir.NewForLoopStmt(n.Sp, init, cond, post, body)
}

func (r *resolver) resolveIteratorStmt(n *fast.IteratorStmt, fn *ir.Function, scope *ir.Scope) ir.Statement {
	list, ok := r.resolveExpr(n.List, ir.ExpectedDynamic(), scope)
	if !ok {
		return ir.NewErrorStmt(n.Sp)
	}
	if list.Type().Kind != types.List && list.Type().Kind != types.Set {
		r.contract.Diagnostics.Push(diag.TypeError(n.List.Span(), "for-each requires a list or set, found %s", list.Type()))
		return ir.NewErrorStmt(n.Sp)
	}
	elemTy := list.Type().Element

	inner := ir.NewScope(scope, ir.CtxBlock)
	ids := make([]int, len(n.Names))
	for i, name := range n.Names {
		ids[i] = inner.Define(r.contract, name.Name, elemTy, nil, ir.VarLocal)
	}
	body := r.resolveBlock(n.Body, fn, inner)
	return ir.NewIteratorStmt(n.Sp, ids, list, body)
}

func (r *resolver) resolveReturnStmt(n *fast.ReturnStmt, fn *ir.Function, scope *ir.Scope) ir.Statement {
	if n.Value == nil {
		if fn.ReturnType != nil && fn.ReturnType.Kind != types.Unit {
			r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "expected a return value of type %s", fn.ReturnType))
		}
		return ir.NewReturnStmt(n.Sp, nil)
	}
	value, ok := r.resolveExpr(n.Value, ir.ExpectedConcrete(fn.ReturnType), scope)
	if !ok {
		return ir.NewErrorStmt(n.Sp)
	}
	return ir.NewReturnStmt(n.Sp, value)
}

func (r *resolver) resolveStateTransitionStmt(n *fast.StateTransitionStmt, fn *ir.Function, scope *ir.Scope) ir.Statement {
	sym, ok := r.contract.Lookup(n.Target.Name)
	if !ok {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Target.Span, "%q is not declared", n.Target.Name))
		return ir.NewErrorStmt(n.Sp)
	}
	if sym.Handle.Kind != types.DeclState {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Target.Span, "%q is not a state", n.Target.Name))
		return ir.NewErrorStmt(n.Sp)
	}
	if fn.StateBound == nil || !boundAllows(fn.StateBound, sym.Handle) {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Sp,
			"function %q has no state bound permitting a transition to %q", fn.Name, n.Target.Name))
	}

	fields := fieldsOfState(r.contract, r.contract.State(sym.Handle))
	if len(n.Args) != len(fields) {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Sp, "%q expects %d fields, got %d", n.Target.Name, len(fields), len(n.Args)))
		return ir.NewErrorStmt(n.Sp)
	}
	args := make([]ir.Expression, len(n.Args))
	for i, a := range n.Args {
		re, ok := r.resolveExpr(a, ir.ExpectedConcrete(fields[i].Type), scope)
		if !ok {
			return ir.NewErrorStmt(n.Sp)
		}
		args[i] = re
	}
	return ir.NewStateTransitionStmt(n.Sp, sym.Handle, args)
}

func boundAllows(sb *ir.StateBound, target types.Handle) bool {
	for _, to := range sb.To {
		if to == target {
			return true
		}
	}
	return false
}
