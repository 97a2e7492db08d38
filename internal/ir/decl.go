package ir

import (
	"github.com/folidity-lang/folidity/internal/source"
	"github.com/folidity-lang/folidity/internal/types"
)

// Field is a struct/model/state field or a function parameter
// (folidity_semantics::ast::Param).
type Field struct {
	Sp    source.Span
	Name  string
	Type  *types.Type
	IsMut bool
	// Recursive is set by the struct-recursion pass when this field's type
	// lies on a cycle of the field-dependency graph (spec §4.2).
	Recursive bool
}

func (f *Field) Span() source.Span { return f.Sp }

// EnumVariant is one ordered, spanned name of an EnumDecl.
type EnumVariant struct {
	Name string
	Sp   source.Span
}

// EnumDecl is fully resolved in declaration pass 1 (spec §4.1): an ordered,
// non-empty, ≤120-variant list of names.
type EnumDecl struct {
	Sp       source.Span
	Name     string
	Variants []EnumVariant
}

func (e *EnumDecl) Span() source.Span { return e.Sp }

// IndexOf returns the ordinal of variant name, used both for member-access
// resolution and for the verifier's integer encoding of enum values
// (spec §4.7: "Enum variants encode as their integer index").
func (e *EnumDecl) IndexOf(name string) (int, bool) {
	for i, v := range e.Variants {
		if v.Name == name {
			return i, true
		}
	}
	return 0, false
}

// StructDecl is a non-empty field list with no bounds and no inheritance.
type StructDecl struct {
	Sp     source.Span
	Name   string
	Fields []*Field
}

func (s *StructDecl) Span() source.Span { return s.Sp }

func (s *StructDecl) Field(name string) (*Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// ModelDecl is a record type with logical bounds and optional single
// inheritance.
type ModelDecl struct {
	Sp     source.Span
	Name   string
	Fields []*Field
	// Parent is nil when the model has no `: Parent` clause.
	Parent *types.Handle
	Bounds []Expression
	// RecursiveParent is set by the inheritance checker's SCC pass when this
	// model lies on a parent-chain cycle (spec §4.2, §8 scenario 2).
	RecursiveParent bool
}

func (m *ModelDecl) Span() source.Span { return m.Sp }

func (m *ModelDecl) Field(name string) (*Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// StateBodyKind discriminates the three shapes a state's field list can
// take (spec §4.2).
type StateBodyKind int

const (
	StateBodyNone StateBodyKind = iota
	StateBodyRaw
	StateBodyModel
)

// StateDecl is a named vertex of the contract's explicit state machine.
type StateDecl struct {
	Sp       source.Span
	Name     string
	BodyKind StateBodyKind
	Fields   []*Field // BodyKind == StateBodyRaw
	ModelRef *types.Handle // BodyKind == StateBodyModel

	// From/FromBind describe an optional `: PriorState binding` clause.
	From     *types.Handle
	FromBind string // "" if unbound

	Bounds          []Expression
	RecursiveParent bool
}

func (s *StateDecl) Span() source.Span { return s.Sp }

// Field looks up a field by name, delegating to the referenced model when
// BodyKind is StateBodyModel.
func (s *StateDecl) Field(contract *Contract, name string) (*Field, bool) {
	switch s.BodyKind {
	case StateBodyRaw:
		for _, f := range s.Fields {
			if f.Name == name {
				return f, true
			}
		}
		return nil, false
	case StateBodyModel:
		return contract.Model(*s.ModelRef).Field(name)
	default:
		return nil, false
	}
}

// Visibility is a function's exposure: private, public, or a view bound to
// a particular state.
type Visibility int

const (
	VisPriv Visibility = iota
	VisPub
	VisView
)

// StateBound is a function's `when (From?) -> (To+)` pre/post-state clause.
type StateBound struct {
	Sp source.Span

	From     *types.Handle // nil: callable from any state (init functions)
	FromBind string

	To     []types.Handle
	ToBind []string // parallel to To; "" entries are unbound
}

func (b *StateBound) Span() source.Span { return b.Sp }

// Function is a contract entry point: name, signature, access predicates,
// state transition, bounds, and body.
type Function struct {
	Sp     source.Span
	Name   string
	IsInit bool

	Vis Visibility
	// ViewState/ViewBind are set when Vis == VisView.
	ViewState *types.Handle
	ViewBind  string

	ReturnType *types.Type
	// Params is ordered; ParamIndex supports O(1) lookup by name
	// (folidity_semantics::ast::Function.params is an IndexMap for the same
	// reason).
	Params     []*Field
	ParamIndex map[string]int

	StateBound *StateBound

	// AccessAttrs flattens the parsed `@(a | b | c)` attribute list into
	// plain boolean expressions ORed together; each attribute group from
	// the source becomes one entry here.
	AccessAttrs []Expression

	Bounds []Expression
	Body   []Statement

	Scope *Scope
}

func (f *Function) Span() source.Span { return f.Sp }

func (f *Function) Param(name string) (*Field, bool) {
	i, ok := f.ParamIndex[name]
	if !ok {
		return nil, false
	}
	return f.Params[i], true
}
