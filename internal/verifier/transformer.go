package verifier

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v2"

	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/smt"
)

// transformExpr lifts a resolved ir.Expression into an smt.Term, following
// the sort mapping of spec §4.7 (grounded on
// original_source/crates/verifier/src/transformer.rs's transform_expr).
// Every leaf expression kind has a direct translation. FunctionCall,
// StructInit, and a bare list literal on the wrong side of `in` are left
// unsupported, matching the original's own todo!() arms; Variable and
// MemberAccess, which the original also leaves as todo!(), are supplemented
// here since a model or state bound referencing its own fields by name is
// the common case this verifier actually needs to handle.
func transformExpr(ctx *smt.Context, e ir.Expression, bus *diag.Bus) (smt.Term, bool) {
	switch n := e.(type) {
	case *ir.IntExpr:
		return ctx.Int(n.Element), true
	case *ir.UintExpr:
		return ctx.Int(n.Element), true
	case *ir.FloatExpr:
		num, den := decimalToRat(n.Element)
		return ctx.Real(num, den), true
	case *ir.BoolExpr:
		return ctx.Bool(n.Element), true
	case *ir.StringExpr:
		return ctx.String(n.Element), true
	case *ir.CharExpr:
		return ctx.Char(n.Element), true
	case *ir.HexExpr:
		return ctx.String(hex.EncodeToString(n.Element)), true
	case *ir.AddressExpr:
		return ctx.String(n.Element), true
	case *ir.EnumExpr:
		return ctx.Enum(n.Element), true
	case *ir.VariableExpr:
		sort, ok := smt.SortFor(n.Type())
		if !ok {
			bus.Push(diag.VerificationError(n.Span(), "this value has no scalar SMT representation"))
			return smt.Term{}, false
		}
		return ctx.Const(fmt.Sprintf("var!%d", n.Element), sort), true
	case *ir.MemberAccessExpr:
		return transformMemberAccess(ctx, n, bus)
	case *ir.NotExpr:
		v, ok := transformExpr(ctx, n.Element, bus)
		if !ok {
			return smt.Term{}, false
		}
		r, err := ctx.Not(v)
		if err != nil {
			bus.Push(diag.VerificationError(n.Span(), "%s", err.Error()))
			return smt.Term{}, false
		}
		return r, true
	case *ir.BinaryExpr:
		return transformBinary(ctx, n, bus)
	case *ir.FunctionCallExpr:
		bus.Push(diag.VerificationError(n.Span(), "verification of function calls is not currently supported"))
		return smt.Term{}, false
	case *ir.StructInitExpr:
		bus.Push(diag.VerificationError(n.Span(), "verification of struct initialisation is not currently supported"))
		return smt.Term{}, false
	case *ir.ListExpr:
		bus.Push(diag.VerificationError(n.Span(), "a bare list literal cannot be lifted outside of set membership"))
		return smt.Term{}, false
	default:
		bus.Push(diag.VerificationError(e.Span(), "unsupported expression in a constraint"))
		return smt.Term{}, false
	}
}

// transformMemberAccess flattens a chain of member accesses rooted at a
// scope variable into a single dotted path name and declares a fresh
// scalar constant for it: `p.balance` and `p.owner.id` each get their own
// SMT constant, rather than modelling Folidity's struct/model/state types
// as SMT record sorts.
func transformMemberAccess(ctx *smt.Context, n *ir.MemberAccessExpr, bus *diag.Bus) (smt.Term, bool) {
	path, ok := memberPath(n)
	if !ok {
		bus.Push(diag.VerificationError(n.Span(), "this member access cannot be lifted to a constraint"))
		return smt.Term{}, false
	}
	sort, ok := smt.SortFor(n.Type())
	if !ok {
		bus.Push(diag.VerificationError(n.Span(), "this value has no scalar SMT representation"))
		return smt.Term{}, false
	}
	return ctx.Const(path, sort), true
}

func memberPath(e ir.Expression) (string, bool) {
	switch n := e.(type) {
	case *ir.VariableExpr:
		return fmt.Sprintf("var!%d", n.Element), true
	case *ir.MemberAccessExpr:
		base, ok := memberPath(n.Target)
		if !ok {
			return "", false
		}
		return base + "." + n.Member, true
	default:
		return "", false
	}
}

func transformBinary(ctx *smt.Context, n *ir.BinaryExpr, bus *diag.Bus) (smt.Term, bool) {
	if n.Op == ir.OpIn {
		return transformIn(ctx, n, bus)
	}

	left, ok := transformExpr(ctx, n.Left, bus)
	if !ok {
		return smt.Term{}, false
	}
	right, ok := transformExpr(ctx, n.Right, bus)
	if !ok {
		return smt.Term{}, false
	}

	var (
		r   smt.Term
		err error
	)
	switch n.Op {
	case ir.OpAdd:
		r, err = ctx.Add(left, right)
	case ir.OpSub:
		r, err = ctx.Sub(left, right)
	case ir.OpMul:
		r, err = ctx.Mul(left, right)
	case ir.OpDiv:
		r, err = ctx.Div(left, right)
	case ir.OpMod:
		r, err = ctx.Mod(left, right)
	case ir.OpLt:
		r, err = ctx.Lt(left, right)
	case ir.OpLe:
		r, err = ctx.Le(left, right)
	case ir.OpGt:
		r, err = ctx.Gt(left, right)
	case ir.OpGe:
		r, err = ctx.Ge(left, right)
	case ir.OpEq:
		r, err = ctx.Eq(left, right)
	case ir.OpNe:
		r, err = ctx.Ne(left, right)
	case ir.OpOr:
		r, err = ctx.Or(left, right)
	case ir.OpAnd:
		r, err = ctx.And(left, right)
	default:
		err = fmt.Errorf("operator is not valid in a constraint")
	}
	if err != nil {
		bus.Push(diag.VerificationError(n.Span(), "%s", err.Error()))
		return smt.Term{}, false
	}
	return r, true
}

// transformIn encodes `x in L` as a disjunction of equalities against L's
// elements (spec §4.7: "x in L encodes as set membership"). L must be a
// literal list/set; a symbolic set variable has no native Z3 set theory
// wired here and is left unsupported, matching the original's own gap.
func transformIn(ctx *smt.Context, n *ir.BinaryExpr, bus *diag.Bus) (smt.Term, bool) {
	list, ok := n.Right.(*ir.ListExpr)
	if !ok {
		bus.Push(diag.VerificationError(n.Span(), "set membership requires a literal set or list on the right-hand side"))
		return smt.Term{}, false
	}
	left, ok := transformExpr(ctx, n.Left, bus)
	if !ok {
		return smt.Term{}, false
	}
	if len(list.Element) == 0 {
		return ctx.Bool(false), true
	}

	eqs := make([]smt.Term, 0, len(list.Element))
	for _, el := range list.Element {
		re, ok := transformExpr(ctx, el, bus)
		if !ok {
			continue
		}
		eq, err := ctx.Eq(left, re)
		if err != nil {
			bus.Push(diag.VerificationError(n.Span(), "%s", err.Error()))
			continue
		}
		eqs = append(eqs, eq)
	}
	if len(eqs) == 0 {
		return smt.Term{}, false
	}
	r, err := ctx.Or(eqs...)
	if err != nil {
		bus.Push(diag.VerificationError(n.Span(), "%s", err.Error()))
		return smt.Term{}, false
	}
	return r, true
}

// decimalToRat converts an apd.Decimal's (coefficient, exponent, sign) form
// into an exact rational (num, den), since smt.Context.Real takes a
// numerator/denominator pair rather than a floating approximation.
func decimalToRat(d *apd.Decimal) (*big.Int, *big.Int) {
	coeff := new(big.Int).Set((*big.Int)(&d.Coeff))
	if d.Negative {
		coeff.Neg(coeff)
	}
	den := big.NewInt(1)
	if d.Exponent >= 0 {
		pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Exponent)), nil)
		coeff.Mul(coeff, pow)
	} else {
		den.Exp(big.NewInt(10), big.NewInt(int64(-d.Exponent)), nil)
	}
	return coeff, den
}
