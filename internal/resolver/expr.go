package resolver

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v2"

	"github.com/folidity-lang/folidity/internal/builtins"
	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/fast"
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/source"
	"github.com/folidity-lang/folidity/internal/types"
)

// resolveExpr is the type-directed expression resolver entry point
// (spec §4.4). expected propagates top-down; every arm either unifies with
// it or reports a Type/Semantic error and returns ok=false.
func (r *resolver) resolveExpr(e fast.Expr, expected ir.Expected, scope *ir.Scope) (ir.Expression, bool) {
	switch n := e.(type) {
	case *fast.IntExpr:
		return r.resolveIntLiteral(n.Text, n.Sp, expected)
	case *fast.FloatExpr:
		return r.resolveFloatLiteral(n.Text, n.Sp, expected)
	case *fast.BoolExpr:
		// Empty always rejects a pure value (spec §3: only statement-level
		// call/member-access expressions are acceptable there).
		if (expected.Kind == ir.ExpectConcrete || expected.Kind == ir.ExpectEmpty) && !expected.Accepts(types.Simple(types.Bool)) {
			r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "expected %s, found bool", expected))
			return nil, false
		}
		return &ir.BoolExpr{Unary: ir.Unary[bool]{Sp: n.Sp, Element: n.Value, Ty: types.Simple(types.Bool)}}, true
	case *fast.StringExpr:
		if (expected.Kind == ir.ExpectConcrete || expected.Kind == ir.ExpectEmpty) && !expected.Accepts(types.Simple(types.String)) {
			r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "expected %s, found string", expected))
			return nil, false
		}
		return &ir.StringExpr{Unary: ir.Unary[string]{Sp: n.Sp, Element: n.Value, Ty: types.Simple(types.String)}}, true
	case *fast.CharExpr:
		if (expected.Kind == ir.ExpectConcrete || expected.Kind == ir.ExpectEmpty) && !expected.Accepts(types.Simple(types.Char)) {
			r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "expected %s, found char", expected))
			return nil, false
		}
		return &ir.CharExpr{Unary: ir.Unary[rune]{Sp: n.Sp, Element: n.Value, Ty: types.Simple(types.Char)}}, true
	case *fast.HexExpr:
		return r.resolveHexLiteral(n.Text, n.Sp, expected)
	case *fast.AddressExpr:
		if (expected.Kind == ir.ExpectConcrete || expected.Kind == ir.ExpectEmpty) && !expected.Accepts(types.Simple(types.Address)) {
			r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "expected %s, found address", expected))
			return nil, false
		}
		return &ir.AddressExpr{Unary: ir.Unary[string]{Sp: n.Sp, Element: n.Text, Ty: types.Simple(types.Address)}}, true
	case *fast.VariableExpr:
		return r.resolveVariable(n, expected, scope)
	case *fast.NotExpr:
		return r.resolveNot(n, scope)
	case *fast.NegExpr:
		return r.resolveNeg(n, expected, scope)
	case *fast.BinaryExpr:
		return r.resolveBinary(n, expected, scope)
	case *fast.FunctionCallExpr:
		return r.resolveFunctionCall(n, expected, scope)
	case *fast.MemberAccessExpr:
		return r.resolveMemberAccess(n, expected, scope)
	case *fast.PipeExpr:
		return r.resolvePipe(n, expected, scope)
	case *fast.StructInitExpr:
		return r.resolveStructInit(n, expected, scope)
	case *fast.ListExpr:
		return r.resolveListOrSet(n.Sp, n.Elements, expected, scope, types.List)
	case *fast.SetExpr:
		return r.resolveListOrSet(n.Sp, n.Elements, expected, scope, types.Set)
	default:
		r.contract.Diagnostics.Push(diag.SemanticError(e.Span(), "unsupported expression"))
		return nil, false
	}
}

func (r *resolver) resolveVariable(n *fast.VariableExpr, expected ir.Expected, scope *ir.Scope) (ir.Expression, bool) {
	if id, sym, ok := scope.Var(n.Name); ok {
		sym.Used = true
		if expected.Kind == ir.ExpectConcrete && !expected.Accepts(sym.Type) {
			r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "expected %s, found %s", expected.Type, sym.Type))
			return nil, false
		}
		return &ir.VariableExpr{Unary: ir.Unary[int]{Sp: n.Sp, Element: id, Ty: sym.Type}}, true
	}
	r.contract.Diagnostics.Push(diag.SemanticError(n.Sp, "%q is not declared", n.Name))
	return nil, false
}

func (r *resolver) resolveNot(n *fast.NotExpr, scope *ir.Scope) (ir.Expression, bool) {
	operand, ok := r.resolveExpr(n.Operand, ir.ExpectedConcrete(types.Simple(types.Bool)), scope)
	if !ok {
		return nil, false
	}
	return &ir.NotExpr{Unary: ir.Unary[ir.Expression]{Sp: n.Sp, Element: operand, Ty: types.Simple(types.Bool)}}, true
}

func (r *resolver) resolveNeg(n *fast.NegExpr, expected ir.Expected, scope *ir.Scope) (ir.Expression, bool) {
	operand, ok := r.resolveExpr(n.Operand, expected, scope)
	if !ok {
		return nil, false
	}
	switch v := operand.(type) {
	case *ir.IntExpr:
		neg := new(big.Int).Neg(v.Element)
		return &ir.IntExpr{Unary: ir.Unary[*big.Int]{Sp: n.Sp, Element: neg, Ty: types.Simple(types.Int)}}, true
	case *ir.UintExpr:
		r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "signed literal where uint was expected"))
		return nil, false
	case *ir.FloatExpr:
		neg := new(apd.Decimal).Neg(v.Element)
		return &ir.FloatExpr{Unary: ir.Unary[*apd.Decimal]{Sp: n.Sp, Element: neg, Ty: types.Simple(types.Float)}}, true
	default:
		r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "unary minus requires a numeric operand"))
		return nil, false
	}
}

var comparisonOps = map[fast.BinOp]bool{
	fast.OpEq: true, fast.OpNe: true, fast.OpLt: true,
	fast.OpLe: true, fast.OpGt: true, fast.OpGe: true,
}

func (r *resolver) resolveBinary(n *fast.BinaryExpr, expected ir.Expected, scope *ir.Scope) (ir.Expression, bool) {
	switch n.Op {
	case fast.OpOr, fast.OpAnd:
		return r.resolveBoolOp(n, scope)
	case fast.OpIn:
		return r.resolveIn(n, scope)
	}

	// Arithmetic and comparisons both resolve their left operand under a
	// numeric-biased (or string/char, for comparisons) Dynamic expectation,
	// then unify the right side against whatever the left concretized to
	// (spec §4.4).
	var sideExpected ir.Expected
	if expected.Kind == ir.ExpectConcrete && expected.Type != nil && (expected.Type.IsNumeric() || expected.Type.Kind == types.String) {
		sideExpected = expected
	} else if comparisonOps[n.Op] {
		sideExpected = ir.ExpectedDynamic(types.Simple(types.Int), types.Simple(types.Uint), types.Simple(types.Float), types.Simple(types.String), types.Simple(types.Char))
	} else {
		sideExpected = ir.ExpectedDynamic(types.Simple(types.Int), types.Simple(types.Uint), types.Simple(types.Float))
	}

	left, ok := r.resolveExpr(n.Left, sideExpected, scope)
	if !ok {
		return nil, false
	}
	right, ok := r.resolveExpr(n.Right, ir.ExpectedConcrete(left.Type()), scope)
	if !ok {
		return nil, false
	}

	if n.Op == fast.OpMod && left.Type().Kind != types.Int && left.Type().Kind != types.Uint {
		r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "modulo requires int or uint operands"))
		return nil, false
	}

	op := mapBinOp(n.Op)
	resultTy := left.Type()
	if comparisonOps[n.Op] {
		resultTy = types.Simple(types.Bool)
	}

	if folded, ok := r.foldBinary(op, left, right, n.Sp); ok {
		return folded, true
	}

	bin := ir.Binary{Sp: n.Sp, Left: left, Right: right, Ty: resultTy}
	return &ir.BinaryExpr{Binary: bin, Op: op}, true
}

func (r *resolver) resolveBoolOp(n *fast.BinaryExpr, scope *ir.Scope) (ir.Expression, bool) {
	left, ok := r.resolveExpr(n.Left, ir.ExpectedConcrete(types.Simple(types.Bool)), scope)
	if !ok {
		return nil, false
	}
	right, ok := r.resolveExpr(n.Right, ir.ExpectedConcrete(types.Simple(types.Bool)), scope)
	if !ok {
		return nil, false
	}
	bin := ir.Binary{Sp: n.Sp, Left: left, Right: right, Ty: types.Simple(types.Bool)}
	return &ir.BinaryExpr{Binary: bin, Op: mapBinOp(n.Op)}, true
}

// resolveIn admits `x in L` over both List and Set, per the open question
// in spec §9: the semantic pass accepts both; only the verifier commits to
// a single (set-membership) encoding.
func (r *resolver) resolveIn(n *fast.BinaryExpr, scope *ir.Scope) (ir.Expression, bool) {
	right, ok := r.resolveExpr(n.Right, ir.ExpectedDynamic(), scope)
	if !ok {
		return nil, false
	}
	if right.Type().Kind != types.List && right.Type().Kind != types.Set {
		r.contract.Diagnostics.Push(diag.TypeError(n.Right.Span(), "right-hand side of 'in' must be a list or set"))
		return nil, false
	}
	left, ok := r.resolveExpr(n.Left, ir.ExpectedConcrete(right.Type().Element), scope)
	if !ok {
		return nil, false
	}
	bin := ir.Binary{Sp: n.Sp, Left: left, Right: right, Ty: types.Simple(types.Bool)}
	return &ir.BinaryExpr{Binary: bin, Op: ir.OpIn}, true
}

func mapBinOp(op fast.BinOp) ir.BinOp {
	switch op {
	case fast.OpMul:
		return ir.OpMul
	case fast.OpDiv:
		return ir.OpDiv
	case fast.OpMod:
		return ir.OpMod
	case fast.OpAdd:
		return ir.OpAdd
	case fast.OpSub:
		return ir.OpSub
	case fast.OpEq:
		return ir.OpEq
	case fast.OpNe:
		return ir.OpNe
	case fast.OpLt:
		return ir.OpLt
	case fast.OpLe:
		return ir.OpLe
	case fast.OpGt:
		return ir.OpGt
	case fast.OpGe:
		return ir.OpGe
	case fast.OpIn:
		return ir.OpIn
	case fast.OpOr:
		return ir.OpOr
	default:
		return ir.OpAnd
	}
}

func isComparison(op ir.BinOp) bool {
	switch op {
	case ir.OpEq, ir.OpNe, ir.OpLt, ir.OpLe, ir.OpGt, ir.OpGe:
		return true
	default:
		return false
	}
}

// foldBinary performs the literal constant folding the spec's Non-goals
// explicitly still allow: both operands must already be resolved to the
// same literal arm. Anything else (or a runtime-only operand) is left for
// the emitter.
func (r *resolver) foldBinary(op ir.BinOp, left, right ir.Expression, sp source.Span) (ir.Expression, bool) {
	switch l := left.(type) {
	case *ir.IntExpr:
		rr, ok := right.(*ir.IntExpr)
		if !ok {
			return nil, false
		}
		return r.foldInt(op, l.Element, rr.Element, sp, types.Int)
	case *ir.UintExpr:
		rr, ok := right.(*ir.UintExpr)
		if !ok {
			return nil, false
		}
		return r.foldInt(op, l.Element, rr.Element, sp, types.Uint)
	case *ir.FloatExpr:
		rr, ok := right.(*ir.FloatExpr)
		if !ok {
			return nil, false
		}
		return r.foldFloat(op, l.Element, rr.Element, sp)
	case *ir.StringExpr:
		rr, ok := right.(*ir.StringExpr)
		if !ok {
			return nil, false
		}
		return r.foldString(op, l.Element, rr.Element, sp)
	default:
		return nil, false
	}
}

func (r *resolver) foldInt(op ir.BinOp, a, b *big.Int, sp source.Span, kind types.Kind) (ir.Expression, bool) {
	if isComparison(op) {
		return boolResult(cmpBool(op, a.Cmp(b)), sp), true
	}

	result := new(big.Int)
	switch op {
	case ir.OpAdd:
		result.Add(a, b)
	case ir.OpSub:
		result.Sub(a, b)
	case ir.OpMul:
		result.Mul(a, b)
	case ir.OpDiv:
		if b.Sign() == 0 {
			r.contract.Diagnostics.Push(diag.SemanticError(sp, "division by zero"))
			return nil, false
		}
		result.Quo(a, b)
	case ir.OpMod:
		if b.Sign() == 0 {
			r.contract.Diagnostics.Push(diag.SemanticError(sp, "modulo by zero"))
			return nil, false
		}
		result.Mod(a, b)
	default:
		return nil, false
	}

	if kind == types.Uint {
		if result.Sign() < 0 {
			r.contract.Diagnostics.Push(diag.TypeError(sp, "uint arithmetic produced a negative value"))
			return nil, false
		}
		return &ir.UintExpr{Unary: ir.Unary[*big.Int]{Sp: sp, Element: result, Ty: types.Simple(types.Uint)}}, true
	}
	return &ir.IntExpr{Unary: ir.Unary[*big.Int]{Sp: sp, Element: result, Ty: types.Simple(types.Int)}}, true
}

func (r *resolver) foldFloat(op ir.BinOp, a, b *apd.Decimal, sp source.Span) (ir.Expression, bool) {
	if isComparison(op) {
		return boolResult(cmpBool(op, a.Cmp(b)), sp), true
	}

	ctx := apd.BaseContext
	ctx.Precision = 50
	result := new(apd.Decimal)
	var err error
	switch op {
	case ir.OpAdd:
		_, err = ctx.Add(result, a, b)
	case ir.OpSub:
		_, err = ctx.Sub(result, a, b)
	case ir.OpMul:
		_, err = ctx.Mul(result, a, b)
	case ir.OpDiv:
		if b.Sign() == 0 {
			r.contract.Diagnostics.Push(diag.SemanticError(sp, "division by zero"))
			return nil, false
		}
		_, err = ctx.Quo(result, a, b)
	default:
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	return &ir.FloatExpr{Unary: ir.Unary[*apd.Decimal]{Sp: sp, Element: result, Ty: types.Simple(types.Float)}}, true
}

func (r *resolver) foldString(op ir.BinOp, a, b string, sp source.Span) (ir.Expression, bool) {
	if op == ir.OpAdd {
		return &ir.StringExpr{Unary: ir.Unary[string]{Sp: sp, Element: a + b, Ty: types.Simple(types.String)}}, true
	}
	if isComparison(op) {
		return boolResult(cmpBool(op, strings.Compare(a, b)), sp), true
	}
	return nil, false
}

func cmpBool(op ir.BinOp, c int) bool {
	switch op {
	case ir.OpEq:
		return c == 0
	case ir.OpNe:
		return c != 0
	case ir.OpLt:
		return c < 0
	case ir.OpLe:
		return c <= 0
	case ir.OpGt:
		return c > 0
	default: // OpGe
		return c >= 0
	}
}

func boolResult(v bool, sp source.Span) ir.Expression {
	return &ir.BoolExpr{Unary: ir.Unary[bool]{Sp: sp, Element: v, Ty: types.Simple(types.Bool)}}
}

// resolveListOrSet resolves a `[...]` literal as either a list or a set
// depending on kind; the element type is the expected element type, or
// inferred from the first element when the expectation is an open Dynamic
// (spec §4.4 "Lists/Sets literal").
func (r *resolver) resolveListOrSet(sp source.Span, elems []fast.Expr, expected ir.Expected, scope *ir.Scope, kind types.Kind) (ir.Expression, bool) {
	elemExpected := ir.ExpectedDynamic()
	if expected.Kind == ir.ExpectConcrete && expected.Type != nil && expected.Type.Kind == kind {
		elemExpected = ir.ExpectedConcrete(expected.Type.Element)
	}

	var resolved []ir.Expression
	var elemTy *types.Type
	for _, e := range elems {
		re, ok := r.resolveExpr(e, elemExpected, scope)
		if !ok {
			return nil, false
		}
		if elemTy == nil {
			elemTy = re.Type()
			if elemExpected.IsOpenDynamic() {
				elemExpected = ir.ExpectedConcrete(elemTy)
			}
		}
		resolved = append(resolved, re)
	}
	if elemTy == nil {
		if expected.Kind == ir.ExpectConcrete && expected.Type != nil {
			elemTy = expected.Type.Element
		} else {
			r.contract.Diagnostics.Push(diag.TypeError(sp, "cannot infer element type of empty list literal"))
			return nil, false
		}
	}

	var ty *types.Type
	if kind == types.Set {
		ty = types.SetOf(elemTy)
	} else {
		ty = types.ListOf(elemTy)
	}
	return &ir.ListExpr{Unary: ir.Unary[[]ir.Expression]{Sp: sp, Element: resolved, Ty: ty}}, true
}

// resolvePipe desugars `x :> f(args)` into `f(x, args)` before resolving,
// preserving the pipe-equivalence law (spec §4.4, §8 scenario 5).
func (r *resolver) resolvePipe(n *fast.PipeExpr, expected ir.Expected, scope *ir.Scope) (ir.Expression, bool) {
	call, ok := n.Right.(*fast.FunctionCallExpr)
	if !ok {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Right.Span(), "right-hand side of pipe must be a function call"))
		return nil, false
	}
	desugared := &fast.FunctionCallExpr{
		Base: fast.AtSpan(n.Sp),
		Name: call.Name,
		Args: append([]fast.Expr{n.Left}, call.Args...),
	}
	return r.resolveFunctionCall(desugared, expected, scope)
}

// resolveFunctionCall tries the builtin catalogue before the global symbol
// table, since builtins shadow nothing and have no declaration handle
// (spec §4.4 "FunctionCall").
func (r *resolver) resolveFunctionCall(n *fast.FunctionCallExpr, expected ir.Expected, scope *ir.Scope) (ir.Expression, bool) {
	if sig, ok := builtins.Lookup(n.Name.Name); ok {
		return r.resolveBuiltinCall(n, sig, expected, scope)
	}

	sym, ok := r.contract.Lookup(n.Name.Name)
	if !ok {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Name.Span, "%q is not a declared function", n.Name.Name))
		return nil, false
	}
	if sym.Handle.Kind != types.DeclFunction {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Name.Span, "%q is not callable", n.Name.Name))
		return nil, false
	}
	fn := r.contract.Function(sym.Handle)
	if len(n.Args) != len(fn.Params) {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Sp, "function %q expects %d arguments, got %d", fn.Name, len(fn.Params), len(n.Args)))
		return nil, false
	}
	args := make([]ir.Expression, len(n.Args))
	for i, a := range n.Args {
		re, ok := r.resolveExpr(a, ir.ExpectedConcrete(fn.Params[i].Type), scope)
		if !ok {
			return nil, false
		}
		args[i] = re
	}
	if expected.Kind == ir.ExpectConcrete && !expected.Accepts(fn.ReturnType) {
		r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "expected %s, function %q returns %s", expected.Type, fn.Name, fn.ReturnType))
		return nil, false
	}
	return &ir.FunctionCallExpr{Sp: n.Sp, Callee: sym.Handle, Name: fn.Name, Args: args, Returns: fn.ReturnType}, true
}

func (r *resolver) resolveBuiltinCall(n *fast.FunctionCallExpr, sig builtins.Signature, expected ir.Expected, scope *ir.Scope) (ir.Expression, bool) {
	if len(n.Args) != len(sig.Params) {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Sp, "%s expects %d arguments, got %d", sig.Name, len(sig.Params), len(n.Args)))
		return nil, false
	}
	args := make([]ir.Expression, len(n.Args))
	for i, a := range n.Args {
		pe := ir.ExpectedConcrete(sig.Params[i])
		if sig.Params[i].Kind == types.Generic {
			pe = ir.ExpectedDynamic(sig.Params[i].Generic...)
		}
		re, ok := r.resolveExpr(a, pe, scope)
		if !ok {
			return nil, false
		}
		args[i] = re
	}

	returns := sig.Returns
	if sig.Returns.Kind == types.Generic || (sig.Returns.Kind == types.List && sig.Returns.Element.Kind == types.Generic) {
		narrowed, ok := narrowGeneric(sig.Returns, expected)
		if !ok {
			r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "cannot infer a concrete type for %s() in this context", sig.Name))
			return nil, false
		}
		returns = narrowed
	}
	return &ir.FunctionCallExpr{Sp: n.Sp, Name: sig.Name, Args: args, Returns: returns}, true
}

// narrowGeneric resolves a builtin's Generic (or list<Generic>) return type
// against the call site's expected type, by set intersection A ∩ B, mirroring
// the original's generic-return narrowing for `init`/`or` (spec §8 "Generic
// narrowing").
func narrowGeneric(g *types.Type, expected ir.Expected) (*types.Type, bool) {
	if g.Kind == types.List && g.Element.Kind == types.Generic {
		elemExpected := ir.ExpectedDynamic()
		switch {
		case expected.Kind == ir.ExpectConcrete && expected.Type != nil && expected.Type.Kind == types.List:
			elemExpected = ir.ExpectedConcrete(expected.Type.Element)
		case expected.Kind == ir.ExpectDynamic:
			var opts []*types.Type
			for _, o := range expected.Options {
				if o.Kind == types.List {
					opts = append(opts, o.Element)
				}
			}
			elemExpected = ir.ExpectedDynamic(opts...)
		}
		elem, ok := narrowGeneric(g.Element, elemExpected)
		if !ok {
			return nil, false
		}
		return types.ListOf(elem), true
	}

	if g.Kind != types.Generic {
		return g, true
	}

	switch expected.Kind {
	case ir.ExpectConcrete:
		for _, o := range g.Generic {
			if types.Equal(o, expected.Type) {
				return o, true
			}
		}
		return nil, false
	case ir.ExpectDynamic:
		if len(expected.Options) == 0 {
			if len(g.Generic) == 0 {
				return nil, false
			}
			return g.Generic[0], true
		}
		inter := types.Intersect(g.Generic, expected.Options)
		if len(inter) == 0 {
			return nil, false
		}
		return inter[0], true
	default:
		if len(g.Generic) == 0 {
			return nil, false
		}
		return g.Generic[0], true
	}
}

// resolveMemberAccess handles both value field access and the bare
// `EnumName.Variant` form, where Target parses as a VariableExpr that never
// resolves in scope but names a declared enum instead (spec §4.4
// "MemberAccess").
func (r *resolver) resolveMemberAccess(n *fast.MemberAccessExpr, expected ir.Expected, scope *ir.Scope) (ir.Expression, bool) {
	if ve, ok := n.Target.(*fast.VariableExpr); ok {
		if _, _, found := scope.Var(ve.Name); !found {
			if sym, ok := r.contract.Lookup(ve.Name); ok && sym.Handle.Kind == types.DeclEnum {
				return r.resolveEnumVariant(sym.Handle, n, expected)
			}
		}
	}

	target, ok := r.resolveExpr(n.Target, ir.ExpectedDynamic(), scope)
	if !ok {
		return nil, false
	}

	field, fieldIndex, ok := r.fieldOf(target.Type(), n.Member.Name)
	if !ok {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Member.Span, "%s has no field %q", target.Type(), n.Member.Name))
		return nil, false
	}
	if expected.Kind == ir.ExpectConcrete && !expected.Accepts(field.Type) {
		r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "expected %s, found %s", expected.Type, field.Type))
		return nil, false
	}
	return &ir.MemberAccessExpr{Sp: n.Sp, Target: target, Member: n.Member.Name, FieldIndex: fieldIndex, Ty: field.Type}, true
}

func (r *resolver) resolveEnumVariant(h types.Handle, n *fast.MemberAccessExpr, expected ir.Expected) (ir.Expression, bool) {
	enum := r.contract.Enum(h)
	idx, ok := enum.IndexOf(n.Member.Name)
	if !ok {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Member.Span, "enum %q has no variant %q", enum.Name, n.Member.Name))
		return nil, false
	}
	ty := types.EnumHandle(h)
	if expected.Kind == ir.ExpectConcrete && !expected.Accepts(ty) {
		r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "expected %s, found %s", expected.Type, ty))
		return nil, false
	}
	return &ir.EnumExpr{Unary: ir.Unary[int]{Sp: n.Sp, Element: idx, Ty: ty}}, true
}

// fieldOf looks a field up by name on a Struct/Model/State-typed value,
// flattening a State(Model) body to its model's fields.
func (r *resolver) fieldOf(t *types.Type, name string) (*ir.Field, int, bool) {
	var fields []*ir.Field
	switch t.Kind {
	case types.Struct:
		fields = r.contract.Struct(t.Handle).Fields
	case types.Model:
		fields = r.contract.Model(t.Handle).Fields
	case types.State:
		fields = fieldsOfState(r.contract, r.contract.State(t.Handle))
	default:
		return nil, 0, false
	}
	for i, f := range fields {
		if f.Name == name {
			return f, i, true
		}
	}
	return nil, 0, false
}

func fieldsOfState(c *ir.Contract, s *ir.StateDecl) []*ir.Field {
	if s.BodyKind == ir.StateBodyModel {
		return c.Model(*s.ModelRef).Fields
	}
	return s.Fields
}

// resolveStructInit handles Struct/Model/State construction, including
// the `..ident` auto_object shorthand that fills remaining fields from an
// existing variable of the same type (spec §4.4 "auto_object shorthand").
// Positional arguments fill the leading fields in declaration order.
func (r *resolver) resolveStructInit(n *fast.StructInitExpr, expected ir.Expected, scope *ir.Scope) (ir.Expression, bool) {
	sym, ok := r.contract.Lookup(n.Name.Name)
	if !ok {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Name.Span, "%q is not declared", n.Name.Name))
		return nil, false
	}

	var fields []*ir.Field
	var ty *types.Type
	switch sym.Handle.Kind {
	case types.DeclStruct:
		fields = r.contract.Struct(sym.Handle).Fields
		ty = types.StructHandle(sym.Handle)
	case types.DeclModel:
		fields = r.contract.Model(sym.Handle).Fields
		ty = types.ModelHandle(sym.Handle)
	case types.DeclState:
		fields = fieldsOfState(r.contract, r.contract.State(sym.Handle))
		ty = types.StateHandle(sym.Handle)
	default:
		r.contract.Diagnostics.Push(diag.SemanticError(n.Name.Span, "%q cannot be constructed", n.Name.Name))
		return nil, false
	}

	var autoObj *int
	if n.AutoObject != nil {
		id, sym2, ok := scope.Var(n.AutoObject.Name)
		if !ok {
			r.contract.Diagnostics.Push(diag.SemanticError(n.AutoObject.Span, "%q is not declared", n.AutoObject.Name))
			return nil, false
		}
		sym2.Used = true
		if !types.Equal(sym2.Type, ty) {
			r.contract.Diagnostics.Push(diag.TypeError(n.AutoObject.Span, "expected %s, found %s", ty, sym2.Type))
			return nil, false
		}
		autoObj = &id
	}

	if len(n.Args) > len(fields) || (autoObj == nil && len(n.Args) != len(fields)) {
		r.contract.Diagnostics.Push(diag.SemanticError(n.Sp, "%q expects %d fields, got %d", n.Name.Name, len(fields), len(n.Args)))
		return nil, false
	}
	args := make([]ir.Expression, len(n.Args))
	for i, a := range n.Args {
		re, ok := r.resolveExpr(a, ir.ExpectedConcrete(fields[i].Type), scope)
		if !ok {
			return nil, false
		}
		args[i] = re
	}

	if expected.Kind == ir.ExpectConcrete && !expected.Accepts(ty) {
		r.contract.Diagnostics.Push(diag.TypeError(n.Sp, "expected %s, found %s", expected.Type, ty))
		return nil, false
	}

	return &ir.StructInitExpr{Sp: n.Sp, Target: sym.Handle, Args: args, AutoObject: autoObj, Ty: ty}, true
}
