// Package smt is a thin wrapper over github.com/aclements/go-z3/z3 that
// speaks Folidity's own sort vocabulary (spec §4.7: Int, Real, Bool, String,
// Set of a sort-parameterized element) instead of z3's. No other package
// imports z3 directly; this is the one out-of-pack dependency named rather
// than pack-grounded (see DESIGN.md), following
// original_source/crates/verifier/src/solver.rs's direct use of the Rust z3
// crate.
package smt

import (
	"fmt"
	"math/big"

	"github.com/aclements/go-z3/z3"

	"github.com/folidity-lang/folidity/internal/types"
)

// Sort is Folidity's own sort tag, mapped from types.Kind by SortFor.
type Sort int

const (
	SortInt Sort = iota
	SortReal
	SortBool
	SortString
	SortSet
)

// SortFor maps a resolved Folidity type to the SMT sort it lifts to
// (spec §4.7 "SMT sort mapping"). Char, Hex, and Address all lift to
// SortString: Char as a single-codepoint string, Hex/Address as their
// encoded string forms. Enum lifts to SortInt (its variant ordinal).
// Struct, Model, State, Function, Mapping, List, and Generic have no sort:
// callers must not reach this type through a bound expression.
func SortFor(t *types.Type) (Sort, bool) {
	switch t.Kind {
	case types.Int, types.Uint, types.Enum:
		return SortInt, true
	case types.Float:
		return SortReal, true
	case types.Bool:
		return SortBool, true
	case types.Char, types.String, types.Hex, types.Address:
		return SortString, true
	case types.Set:
		return SortSet, true
	default:
		return 0, false
	}
}

// Term is a lifted SMT value, tagged with its Folidity sort so the verifier
// never has to type-switch on z3's own AST hierarchy.
type Term struct {
	sort Sort
	ast  z3.AST
}

func (t Term) Sort() Sort { return t.sort }

// Context owns one z3.Context, one long-lived z3.Solver, and the interning
// table for string-sorted literals (z3's string theory is not needed here:
// every bound operation on String/Hex/Address/Char is equality or
// inequality, so distinct literals only need to be distinct constants, per
// spec §4.7 "hex/address literals encode as their string forms").
type Context struct {
	ctx    *z3.Context
	solver *z3.Solver

	boolSort z3.Sort
	intSort  z3.Sort
	realSort z3.Sort
	strSort  z3.Sort

	strLits map[string]z3.AST
}

// NewContext opens a fresh z3 context configured per spec §4.7's solver
// configuration: model generation enabled, a 10-second per-block timeout.
// NewContext builds a Context with the spec's default 10 second per-check
// timeout (spec §4.7).
func NewContext() *Context {
	return NewContextWithTimeout(10_000)
}

// NewContextWithTimeout builds a Context whose solver aborts an individual
// CheckAssumptions call after timeoutMS milliseconds, overridable via
// internal/config's folidity.yaml solver_timeout_ms.
func NewContextWithTimeout(timeoutMS int) *Context {
	cfg := z3.NewConfig()
	cfg.SetParamValue("model", "true")
	cfg.SetParamValue("timeout", fmt.Sprintf("%d", timeoutMS))

	zctx := z3.NewContext(cfg)
	solver := zctx.NewSolver()

	c := &Context{
		ctx:      zctx,
		solver:   solver,
		boolSort: zctx.BoolSort(),
		intSort:  zctx.IntSort(),
		realSort: zctx.RealSort(),
		strSort:  zctx.UninterpretedSort("FolidityString"),
		strLits:  make(map[string]z3.AST),
	}
	return c
}

// Reset clears every assertion between constraint blocks, so a subsequent
// block starts from a clean slate (spec §4.7 "solver reset between blocks").
func (c *Context) Reset() { c.solver.Reset() }

// Const declares a fresh named symbolic constant of sort, used both for a
// declaration's own field variables and for the per-constraint boolean tag
// constants (spec §4.7: "tag_k → φ").
func (c *Context) Const(name string, sort Sort) Term {
	switch sort {
	case SortInt:
		return Term{SortInt, c.ctx.Const(name, c.intSort)}
	case SortReal:
		return Term{SortReal, c.ctx.Const(name, c.realSort)}
	case SortBool:
		return Term{SortBool, c.ctx.Const(name, c.boolSort)}
	case SortString:
		return Term{SortString, c.ctx.Const(name, c.strSort)}
	default:
		panic(fmt.Sprintf("smt: no scalar constant for sort %d", sort))
	}
}

// Int lifts an arbitrary-precision integer literal.
func (c *Context) Int(v *big.Int) Term {
	return Term{SortInt, c.ctx.FromBigInt(v, c.intSort)}
}

// Real lifts a decimal literal by its numerator/denominator rational form,
// built as an integer division in the Real sort rather than relying on a
// dedicated rational-literal constructor.
func (c *Context) Real(num, den *big.Int) Term {
	n, _ := c.ctx.FromBigInt(num, c.realSort).(z3.Real)
	d, _ := c.ctx.FromBigInt(den, c.realSort).(z3.Real)
	return Term{SortReal, n.Div(d)}
}

// Bool lifts a boolean literal.
func (c *Context) Bool(v bool) Term {
	return Term{SortBool, c.ctx.FromBool(v)}
}

// String interns a string literal: equal Go strings always resolve to the
// same z3 constant, distinct ones to distinct constants, which is all the
// equality/distinct operations spec §4.7 requires of this sort need.
func (c *Context) String(v string) Term {
	if ast, ok := c.strLits[v]; ok {
		return Term{SortString, ast}
	}
	ast := c.ctx.Const(fmt.Sprintf("str!%s", v), c.strSort)
	c.strLits[v] = ast
	return Term{SortString, ast}
}

// Char lifts a rune as a one-codepoint string, per SortFor.
func (c *Context) Char(r rune) Term { return c.String(string(r)) }

// Enum lifts an enum variant to its ordinal (spec §4.7 "Enum variants
// encode as their integer index").
func (c *Context) Enum(ordinal int) Term {
	return Term{SortInt, c.ctx.FromBigInt(big.NewInt(int64(ordinal)), c.intSort)}
}

func asInt(t Term) (z3.Int, bool)   { v, ok := t.ast.(z3.Int); return v, ok }
func asReal(t Term) (z3.Real, bool) { v, ok := t.ast.(z3.Real); return v, ok }
func asBool(t Term) (z3.Bool, bool) { v, ok := t.ast.(z3.Bool); return v, ok }

// Add/Sub/Mul/Div mix Int and Real operands by promoting both sides to
// Real when they differ; mixing any other pair of sorts is the caller's
// sort-mismatch error to report (spec §4.7 "arithmetic mixing across sorts
// is a sort-mismatch error").
func (c *Context) arith(op string, a, b Term) (Term, error) {
	if a.sort != SortInt && a.sort != SortReal || b.sort != SortInt && b.sort != SortReal {
		return Term{}, fmt.Errorf("smt: %s requires numeric operands", op)
	}
	if a.sort == SortInt && b.sort == SortInt {
		ia, _ := asInt(a)
		ib, _ := asInt(b)
		var r z3.Int
		switch op {
		case "+":
			r = ia.Add(ib)
		case "-":
			r = ia.Sub(ib)
		case "*":
			r = ia.Mul(ib)
		case "/":
			r = ia.Div(ib)
		}
		return Term{SortInt, r}, nil
	}
	ra := c.toReal(a)
	rb := c.toReal(b)
	var r z3.Real
	switch op {
	case "+":
		r = ra.Add(rb)
	case "-":
		r = ra.Sub(rb)
	case "*":
		r = ra.Mul(rb)
	case "/":
		r = ra.Div(rb)
	}
	return Term{SortReal, r}, nil
}

func (c *Context) toReal(t Term) z3.Real {
	if r, ok := asReal(t); ok {
		return r
	}
	i, _ := asInt(t)
	return i.ToReal()
}

func (c *Context) Add(a, b Term) (Term, error) { return c.arith("+", a, b) }
func (c *Context) Sub(a, b Term) (Term, error) { return c.arith("-", a, b) }
func (c *Context) Mul(a, b Term) (Term, error) { return c.arith("*", a, b) }
func (c *Context) Div(a, b Term) (Term, error) { return c.arith("/", a, b) }

// Mod is Int-only (spec §4.7: "modulo is Int-only").
func (c *Context) Mod(a, b Term) (Term, error) {
	ia, ok1 := asInt(a)
	ib, ok2 := asInt(b)
	if !ok1 || !ok2 {
		return Term{}, fmt.Errorf("smt: modulo requires integer operands")
	}
	return Term{SortInt, ia.Mod(ib)}, nil
}

func (c *Context) cmp(op string, a, b Term) (Term, error) {
	if a.sort == SortInt && b.sort == SortInt {
		ia, _ := asInt(a)
		ib, _ := asInt(b)
		return Term{SortBool, intCmp(op, ia, ib)}, nil
	}
	if (a.sort == SortInt || a.sort == SortReal) && (b.sort == SortInt || b.sort == SortReal) {
		ra, rb := c.toReal(a), c.toReal(b)
		return Term{SortBool, realCmp(op, ra, rb)}, nil
	}
	return Term{}, fmt.Errorf("smt: %s requires numeric operands", op)
}

func intCmp(op string, a, b z3.Int) z3.Bool {
	switch op {
	case "<":
		return a.LT(b)
	case "<=":
		return a.LE(b)
	case ">":
		return a.GT(b)
	default:
		return a.GE(b)
	}
}

func realCmp(op string, a, b z3.Real) z3.Bool {
	switch op {
	case "<":
		return a.LT(b)
	case "<=":
		return a.LE(b)
	case ">":
		return a.GT(b)
	default:
		return a.GE(b)
	}
}

func (c *Context) Lt(a, b Term) (Term, error) { return c.cmp("<", a, b) }
func (c *Context) Le(a, b Term) (Term, error) { return c.cmp("<=", a, b) }
func (c *Context) Gt(a, b Term) (Term, error) { return c.cmp(">", a, b) }
func (c *Context) Ge(a, b Term) (Term, error) { return c.cmp(">=", a, b) }

// Eq is sort-safe equality (spec §4.7): operands of differing sort are a
// reportable sort mismatch rather than a silent false.
func (c *Context) Eq(a, b Term) (Term, error) {
	if a.sort != b.sort {
		return Term{}, fmt.Errorf("smt: equality between %v and %v", a.sort, b.sort)
	}
	return Term{SortBool, c.ctx.Eq(a.ast, b.ast)}, nil
}

// Ne lowers to z3's n-ary `distinct`, matching spec §4.7: "inequality uses
// distinct".
func (c *Context) Ne(a, b Term) (Term, error) {
	if a.sort != b.sort {
		return Term{}, fmt.Errorf("smt: inequality between %v and %v", a.sort, b.sort)
	}
	return Term{SortBool, c.ctx.Distinct(a.ast, b.ast)}, nil
}

// Not, And, Or are Bool-only; And/Or fold to z3's native n-ary variants,
// never a chain of binary negates (spec §4.7: "logical and/or fold to
// n-ary solver variants, not negates").
func (c *Context) Not(a Term) (Term, error) {
	b, ok := asBool(a)
	if !ok {
		return Term{}, fmt.Errorf("smt: not requires a boolean operand")
	}
	return Term{SortBool, b.Not()}, nil
}

func (c *Context) And(terms ...Term) (Term, error) {
	bs, err := c.asBools(terms)
	if err != nil {
		return Term{}, err
	}
	return Term{SortBool, c.ctx.And(bs...)}, nil
}

func (c *Context) Or(terms ...Term) (Term, error) {
	bs, err := c.asBools(terms)
	if err != nil {
		return Term{}, err
	}
	return Term{SortBool, c.ctx.Or(bs...)}, nil
}

func (c *Context) asBools(terms []Term) ([]z3.Bool, error) {
	out := make([]z3.Bool, len(terms))
	for i, t := range terms {
		b, ok := asBool(t)
		if !ok {
			return nil, fmt.Errorf("smt: expected a boolean operand at position %d", i)
		}
		out[i] = b
	}
	return out, nil
}

// Implies builds `tag -> body`, the wrapper every lifted constraint is
// asserted as (spec §4.7: "tag_k → φ").
func (c *Context) Implies(tag, body Term) (Term, error) {
	bt, ok1 := asBool(tag)
	bb, ok2 := asBool(body)
	if !ok1 || !ok2 {
		return Term{}, fmt.Errorf("smt: implies requires boolean operands")
	}
	return Term{SortBool, bt.Implies(bb)}, nil
}

// Assert adds a boolean term to the live assertion set.
func (c *Context) Assert(t Term) error {
	b, ok := asBool(t)
	if !ok {
		return fmt.Errorf("smt: asserted term must be boolean")
	}
	c.solver.Assert(b)
	return nil
}

// CheckResult is the closed tri-state z3.Check returns: Sat, Unsat, Unknown.
type CheckResult int

const (
	Sat CheckResult = iota
	Unsat
	Unknown
)

// CheckAssumptions asserts every already-pushed constraint and checks
// satisfiability under the given tag assumptions. On Unsat it returns the
// unsat core's tag names unmodified; resolving a tag name back to its
// monotonic integer id is the verifier package's job (spec §4.7:
// "Unknown treated as Unsat for reporting").
func (c *Context) CheckAssumptions(tags []Term) (CheckResult, []string, error) {
	assumptions, err := c.asBools(tags)
	if err != nil {
		return Unknown, nil, err
	}
	sat, err := c.solver.CheckAssumptions(assumptions...)
	if err != nil {
		return Unknown, nil, err
	}
	switch sat {
	case z3.True:
		return Sat, nil, nil
	case z3.False:
		core := c.solver.UnsatCore()
		names := make([]string, len(core))
		for i, b := range core {
			names[i] = b.String()
		}
		return Unsat, names, nil
	default:
		return Unknown, nil, nil
	}
}
