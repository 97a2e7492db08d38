// Package fast holds the untyped parse tree that external lexer/parser
// collaborators are expected to produce (spec §6, "parser contract"). Type
// references are bare identifiers here; internal/resolver turns them into
// types.Type values linked by handle.
package fast

import "github.com/folidity-lang/folidity/internal/source"

// Identifier is a bare name with its source span.
type Identifier struct {
	Span source.Span
	Name string
}

// Source is the root of one parsed .fol file: an ordered list of top-level
// declarations.
type Source struct {
	Declarations []Declaration
}

// Declaration is the sum of the five top-level declaration kinds.
type Declaration interface {
	declNode()
	Span() source.Span
}

// TypeRef is a parser-level type reference: a type keyword or identifier,
// optionally parameterized (list<T>, set<T>, mapping<From, To, relation>).
type TypeRef struct {
	SourceSpan source.Span
	Name       string // "int", "uint", ..., or a user identifier
	Element    *TypeRef
	MapFrom    *TypeRef
	MapTo      *TypeRef
	Relation   string // "", "total", "partial", "injective", "surjective", "bijective"
}

func (t *TypeRef) Span() source.Span { return t.SourceSpan }

// EnumDecl: `enum Name { A, B, C }`
type EnumDecl struct {
	SourceSpan source.Span
	Name       Identifier
	Variants   []Identifier
}

func (*EnumDecl) declNode()             {}
func (d *EnumDecl) Span() source.Span   { return d.SourceSpan }

// FieldDecl is a struct/model/state field or a function parameter.
type FieldDecl struct {
	SourceSpan source.Span
	Name       Identifier
	Type       *TypeRef
	IsMut      bool
}

// StructDecl: `struct Name { field: Type, mut field2: Type }`
type StructDecl struct {
	SourceSpan source.Span
	Name       Identifier
	Fields     []*FieldDecl
}

func (*StructDecl) declNode()           {}
func (d *StructDecl) Span() source.Span { return d.SourceSpan }

// ModelDecl: `model Name : Parent { fields } st [ bounds ]`
type ModelDecl struct {
	SourceSpan source.Span
	Name       Identifier
	Parent     *Identifier
	Fields     []*FieldDecl
	Bounds     []Expr
}

func (*ModelDecl) declNode()           {}
func (d *ModelDecl) Span() source.Span { return d.SourceSpan }

// StateBodyKind discriminates a state's body shape.
type StateBodyKind int

const (
	StateBodyNone StateBodyKind = iota
	StateBodyRaw
	StateBodyModelRef
)

// StateDecl: `state Name : FromState binding { fields | = Model } st [ bounds ]`
type StateDecl struct {
	SourceSpan source.Span
	Name       Identifier
	BodyKind   StateBodyKind
	Fields     []*FieldDecl // StateBodyRaw
	ModelRef   *Identifier  // StateBodyModelRef
	From       *Identifier
	FromBind   *Identifier
	Bounds     []Expr
}

func (*StateDecl) declNode()           {}
func (d *StateDecl) Span() source.Span { return d.SourceSpan }

// Visibility is the parsed (not yet resolved) function visibility.
type Visibility int

const (
	VisPriv Visibility = iota
	VisPub
	VisView
)

// StateBound is the `when (From?) -> (To+)` clause on a function.
type StateBound struct {
	SourceSpan source.Span
	From       *Identifier
	FromBind   *Identifier
	To         []Identifier
	ToBind     []*Identifier
}

// FunctionDecl: `init pub fn int name(params) when (..) -> (..) @(access) st [..] { body }`
type FunctionDecl struct {
	SourceSpan source.Span
	Name       Identifier
	IsInit     bool
	Vis        Visibility
	ViewState  *Identifier // set when Vis == VisView
	ViewBind   *Identifier
	ReturnType *TypeRef
	Params     []*FieldDecl
	StateBound *StateBound
	Access     []Expr
	Bounds     []Expr
	Body       []Stmt
}

func (*FunctionDecl) declNode()           {}
func (d *FunctionDecl) Span() source.Span { return d.SourceSpan }
