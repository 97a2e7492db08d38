package ir

import (
	"github.com/folidity-lang/folidity/internal/source"
	"github.com/folidity-lang/folidity/internal/types"
)

// Statement is the closed, typed sum of function-body statement shapes
// (folidity_semantics::ast::Statement).
type Statement interface {
	stmtNode()
	Span() source.Span
}

type stmtBase struct{ Sp source.Span }

func (b stmtBase) Span() source.Span { return b.Sp }

// VariableStmt declares one or more names from a `(type?, expr?)` pair;
// at least one of Type/Value must be present, and an absent Type is taken
// from Value's type (spec §4.5). Destructuring beyond one name has no
// expression counterpart in this version (spec §4.5: "destructuring binds
// beyond one name are rejected").
type VariableStmt struct {
	stmtBase
	Names []int // variable ids allocated in the current scope
	Mut   bool
	Type  *types.Type
	Value Expression
}

func (*VariableStmt) stmtNode() {}

// AssignStmt assigns to an already-declared, mutable variable.
type AssignStmt struct {
	stmtBase
	Target int // variable id
	Value  Expression
}

func (*AssignStmt) stmtNode() {}

// IfElseStmt: Else is nil, an *IfElseStmt (else-if chain), or a *BlockStmt.
type IfElseStmt struct {
	stmtBase
	Condition Expression
	Body      []Statement
	Else      Statement
}

func (*IfElseStmt) stmtNode() {}

// ForLoopStmt is the C-style `for let i = 0; i < n; i = i + 1 { ... }` form.
type ForLoopStmt struct {
	stmtBase
	Init      *VariableStmt
	Condition Expression
	Post      Statement
	Body      []Statement
}

func (*ForLoopStmt) stmtNode() {}

// IteratorStmt is the `for x[, y] in list { ... }` form.
type IteratorStmt struct {
	stmtBase
	Names []int
	List  Expression
	Body  []Statement
}

func (*IteratorStmt) stmtNode() {}

// ReturnStmt's Value is nil only in a Unit-returning function.
type ReturnStmt struct {
	stmtBase
	Value Expression
}

func (*ReturnStmt) stmtNode() {}

// ExprStmt is a statement-position expression (e.g. a bare function call),
// resolved under Expected{Kind: ExpectEmpty}.
type ExprStmt struct {
	stmtBase
	Value Expression
}

func (*ExprStmt) stmtNode() {}

// StateTransitionStmt is `-> ToState(args)`: Target must name a state in
// the enclosing function's post-state set (spec §4.5).
type StateTransitionStmt struct {
	stmtBase
	Target types.Handle
	Args   []Expression
}

func (*StateTransitionStmt) stmtNode() {}

// BlockStmt groups statements opening their own scope.
type BlockStmt struct {
	stmtBase
	Statements []Statement
}

func (*BlockStmt) stmtNode() {}

// SkipStmt is a no-op placeholder statement.
type SkipStmt struct{ stmtBase }

func (*SkipStmt) stmtNode() {}

// ErrorStmt marks a statement that failed to resolve; compilation continues
// past it per the "errors accumulate, resolver continues" policy (spec §7).
type ErrorStmt struct{ stmtBase }

func (*ErrorStmt) stmtNode() {}

func NewSkipStmt(sp source.Span) *SkipStmt   { return &SkipStmt{stmtBase{sp}} }
func NewErrorStmt(sp source.Span) *ErrorStmt { return &ErrorStmt{stmtBase{sp}} }

// The remaining statement kinds embed an unexported stmtBase, so the
// resolver (outside this package) needs a constructor to stamp a span on
// each one, the same way NewSkipStmt/NewErrorStmt already do.

func NewVariableStmt(sp source.Span, names []int, mut bool, ty *types.Type, value Expression) *VariableStmt {
	return &VariableStmt{stmtBase: stmtBase{sp}, Names: names, Mut: mut, Type: ty, Value: value}
}

func NewAssignStmt(sp source.Span, target int, value Expression) *AssignStmt {
	return &AssignStmt{stmtBase: stmtBase{sp}, Target: target, Value: value}
}

func NewIfElseStmt(sp source.Span, condition Expression, body []Statement, els Statement) *IfElseStmt {
	return &IfElseStmt{stmtBase: stmtBase{sp}, Condition: condition, Body: body, Else: els}
}

func NewForLoopStmt(sp source.Span, init *VariableStmt, condition Expression, post Statement, body []Statement) *ForLoopStmt {
	return &ForLoopStmt{stmtBase: stmtBase{sp}, Init: init, Condition: condition, Post: post, Body: body}
}

func NewIteratorStmt(sp source.Span, names []int, list Expression, body []Statement) *IteratorStmt {
	return &IteratorStmt{stmtBase: stmtBase{sp}, Names: names, List: list, Body: body}
}

func NewReturnStmt(sp source.Span, value Expression) *ReturnStmt {
	return &ReturnStmt{stmtBase: stmtBase{sp}, Value: value}
}

func NewExprStmt(sp source.Span, value Expression) *ExprStmt {
	return &ExprStmt{stmtBase: stmtBase{sp}, Value: value}
}

func NewStateTransitionStmt(sp source.Span, target types.Handle, args []Expression) *StateTransitionStmt {
	return &StateTransitionStmt{stmtBase: stmtBase{sp}, Target: target, Args: args}
}

func NewBlockStmt(sp source.Span, stmts []Statement) *BlockStmt {
	return &BlockStmt{stmtBase: stmtBase{sp}, Statements: stmts}
}
