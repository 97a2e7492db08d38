package fast

import "github.com/folidity-lang/folidity/internal/source"

// Expr is the sum of source-level expression shapes the parser produces.
// Literals carry their raw text (Number, Float as string) per spec §6; the
// resolver is responsible for arbitrary-precision parsing.
type Expr interface {
	exprNode()
	Span() source.Span
}

// Base carries the span shared by every expression/statement node. It is
// exported so the parser package can construct nodes with Base{Sp: span}.
type Base struct{ Sp source.Span }

func (b Base) Span() source.Span { return b.Sp }

func AtSpan(s source.Span) Base { return Base{Sp: s} }

type VariableExpr struct {
	Base
	Name string
}

type IntExpr struct {
	Base
	Text string // decimal digits, arbitrary precision
}

type FloatExpr struct {
	Base
	Text string // e.g. ".5" or "1.25"
}

type BoolExpr struct {
	Base
	Value bool
}

type StringExpr struct {
	Base
	Value string
}

type CharExpr struct {
	Base
	Value rune
}

type HexExpr struct {
	Base
	Text string // without the hex"...": quotes
}

type AddressExpr struct {
	Base
	Text string // without the a"...": quotes
}

// BinOp enumerates binary operators; Add/Sub/etc share one node shape
// (teacher's BinaryExpression{loc,left,right}) per spec §9.
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
)

type BinaryExpr struct {
	Base
	Op    BinOp
	Left  Expr
	Right Expr
}

type NotExpr struct {
	Base
	Operand Expr
}

// NegExpr is unary minus, e.g. `-5`. Only numeric literals and parenthesized
// numeric expressions are meaningful operands; the resolver rejects others.
type NegExpr struct {
	Base
	Operand Expr
}

type FunctionCallExpr struct {
	Base
	Name Identifier
	Args []Expr
}

type MemberAccessExpr struct {
	Base
	Target Expr
	Member Identifier
}

// PipeExpr: `x :> f(args)`. RHS must be a call; desugared by the resolver.
type PipeExpr struct {
	Base
	Left  Expr
	Right Expr
}

type StructInitExpr struct {
	Base
	Name       Identifier
	Args       []Expr
	AutoObject *Identifier // `..ident` shorthand
}

type ListExpr struct {
	Base
	Elements []Expr
}

type SetExpr struct {
	Base
	Elements []Expr
}

func (*VariableExpr) exprNode()     {}
func (*IntExpr) exprNode()          {}
func (*FloatExpr) exprNode()        {}
func (*BoolExpr) exprNode()         {}
func (*StringExpr) exprNode()       {}
func (*CharExpr) exprNode()         {}
func (*HexExpr) exprNode()          {}
func (*AddressExpr) exprNode()      {}
func (*BinaryExpr) exprNode()       {}
func (*NotExpr) exprNode()          {}
func (*NegExpr) exprNode()          {}
func (*FunctionCallExpr) exprNode() {}
func (*MemberAccessExpr) exprNode() {}
func (*PipeExpr) exprNode()         {}
func (*StructInitExpr) exprNode()   {}
func (*ListExpr) exprNode()         {}
func (*SetExpr) exprNode()          {}
