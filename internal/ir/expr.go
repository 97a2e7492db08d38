package ir

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"

	"github.com/folidity-lang/folidity/internal/source"
	"github.com/folidity-lang/folidity/internal/types"
)

// Expression is the closed, typed sum every resolved value expression
// belongs to (folidity_semantics::ast::Expression). Every arm carries its
// span and resolved type; Type() equals the type the arm was resolved under
// (spec §8 invariant).
type Expression interface {
	exprNode()
	Span() source.Span
	Type() *types.Type
}

// Unary is the shared shape for single-element arms, generic over the
// element's Go representation (literal value, variable id, nested
// expression list, ...) the way folidity_semantics::ast::UnaryExpression<T>
// is generic over T (spec §9 "reuse a common UnaryExpression<T> ... shape
// across arms").
type Unary[T any] struct {
	Sp      source.Span
	Element T
	Ty      *types.Type
}

func (u *Unary[T]) Span() source.Span { return u.Sp }
func (u *Unary[T]) Type() *types.Type { return u.Ty }
func (u *Unary[T]) exprNode()         {}

// Binary is the shared shape for the arithmetic/comparison/boolean arms.
type Binary struct {
	Sp    source.Span
	Left  Expression
	Right Expression
	Ty    *types.Type
}

func (b *Binary) Span() source.Span { return b.Sp }
func (b *Binary) Type() *types.Type { return b.Ty }
func (b *Binary) exprNode()         {}

// VariableExpr references a scope-bound variable by its globally unique id.
type VariableExpr struct{ Unary[int] }

// IntExpr/UintExpr hold arbitrary-precision integers (spec §4.4: "Int/Uint
// ... strings are parsed with arbitrary precision").
type IntExpr struct{ Unary[*big.Int] }
type UintExpr struct{ Unary[*big.Int] }

// FloatExpr holds an arbitrary-precision decimal, matching the teacher's
// use of apd.Decimal for exact-precision numeric literals (cue/types.go).
type FloatExpr struct{ Unary[*apd.Decimal] }

type BoolExpr struct{ Unary[bool] }
type StringExpr struct{ Unary[string] }
type CharExpr struct{ Unary[rune] }

// HexExpr holds the decoded bytes of a `hex"..."` literal.
type HexExpr struct{ Unary[[]byte] }

// AddressExpr holds the raw text of an `a"..."` literal; address validation
// is out of core scope (no Algorand SDK dependency is wired for it).
type AddressExpr struct{ Unary[string] }

// EnumExpr is a bare enum variant reference, resolved to its ordinal
// (spec §4.7: enum variants encode as their integer index).
type EnumExpr struct{ Unary[int] }

// ListExpr is a list (or set) literal; Ty.Kind distinguishes the two.
type ListExpr struct{ Unary[[]Expression] }

// NotExpr is boolean negation.
type NotExpr struct{ Unary[Expression] }

// BinOp enumerates the closed set of binary operators sharing the Binary
// shape.
type BinOp int

const (
	OpMul BinOp = iota
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpIn
	OpOr
	OpAnd
	// OpPipe is retained for structural parity with the parse-tree Pipe
	// arm (spec §3); the resolver never constructs it; it desugars
	// `x :> f(args)` directly into a FunctionCallExpr (spec §4.4, §8 "Pipe
	// equivalence").
	OpPipe
)

// BinaryExpr is one arm of the arithmetic/comparison/boolean/pipe family,
// tagged by Op.
type BinaryExpr struct {
	Binary
	Op BinOp
}

// FunctionCallExpr calls a resolved function (builtin or user-defined) by
// handle.
type FunctionCallExpr struct {
	Sp      source.Span
	Callee  types.Handle
	Name    string // retained for builtins, which have no declaration handle
	Args    []Expression
	Returns *types.Type
}

func (f *FunctionCallExpr) Span() source.Span { return f.Sp }
func (f *FunctionCallExpr) Type() *types.Type { return f.Returns }
func (f *FunctionCallExpr) exprNode()         {}

// MemberAccessExpr is `target.member`, resolved to the member's field
// index within target's Struct/Model/State declaration.
type MemberAccessExpr struct {
	Sp         source.Span
	Target     Expression
	Member     string
	FieldIndex int
	Ty         *types.Type
}

func (m *MemberAccessExpr) Span() source.Span { return m.Sp }
func (m *MemberAccessExpr) Type() *types.Type { return m.Ty }
func (m *MemberAccessExpr) exprNode()         {}

// StructInitExpr constructs a Struct, Model, or State(body) value.
// AutoObject, when non-nil, is the variable id supplying the `..ident`
// shorthand (spec §4.4 "auto_object shorthand").
type StructInitExpr struct {
	Sp         source.Span
	Target     types.Handle
	Args       []Expression
	AutoObject *int
	Ty         *types.Type
}

func (s *StructInitExpr) Span() source.Span { return s.Sp }
func (s *StructInitExpr) Type() *types.Type { return s.Ty }
func (s *StructInitExpr) exprNode()         {}
