package ir

import "github.com/folidity-lang/folidity/internal/types"

// VariableKind tags why a variable exists in a scope (spec §3 "Scopes and
// symbol table").
type VariableKind int

const (
	VarLocal VariableKind = iota
	VarParam
	VarReturn
	VarFromState
	VarDestructor
	// VarUser marks a scope entry that stands for a user-defined type
	// referenced as a value (e.g. a bare enum name used as its own type),
	// per folidity_semantics::symtable::VariableKind::User.
	VarUser
)

// VariableSym is one entry of a SymTable.
type VariableSym struct {
	Name  string
	Type  *types.Type
	Value Expression // non-nil only for compile-time-known bindings
	Used  bool
	Kind  VariableKind
}

func (v *VariableSym) IsAssigned() bool { return v.Value != nil }

// SymTable is the id-indexed variable table of one Scope. Ids are allocated
// from the owning Contract's global counter, so no two variables in one
// contract ever share an id (spec §8 invariant).
type SymTable struct {
	Vars  map[int]*VariableSym
	Names map[string]int
}

func NewSymTable() *SymTable {
	return &SymTable{Vars: make(map[int]*VariableSym), Names: make(map[string]int)}
}

// Add allocates a fresh id for name and records it in both the id-indexed
// and name-indexed maps.
func (t *SymTable) Add(contract *Contract, name string, ty *types.Type, value Expression, kind VariableKind) int {
	id := contract.AllocVarID()
	t.Vars[id] = &VariableSym{Name: name, Type: ty, Value: value, Kind: kind}
	t.Names[name] = id
	return id
}

func (t *SymTable) Get(id int) (*VariableSym, bool) {
	v, ok := t.Vars[id]
	return v, ok
}

// ScopeContext tags what a scope was opened for, mirroring the "context tag"
// named in spec §3.
type ScopeContext int

const (
	CtxDeclarationBounds ScopeContext = iota
	CtxFunctionBody
	CtxBlock
)

// Scope is a lexical binding context in a chain from innermost to
// outermost. Lookup walks outward until a name is found or the chain is
// exhausted (spec §3 invariant: "shadowing is resolved by scope chain walk
// from innermost outward").
type Scope struct {
	Parent  *Scope
	Table   *SymTable
	Context ScopeContext
}

func NewScope(parent *Scope, ctx ScopeContext) *Scope {
	return &Scope{Parent: parent, Table: NewSymTable(), Context: ctx}
}

// Var resolves name by walking the scope chain outward, returning the
// variable's id alongside its symbol so callers can build a VariableExpr.
func (s *Scope) Var(name string) (int, *VariableSym, bool) {
	if id, ok := s.Table.Names[name]; ok {
		v, _ := s.Table.Get(id)
		return id, v, true
	}
	if s.Parent != nil {
		return s.Parent.Var(name)
	}
	return 0, nil, false
}

// Define adds name to this scope's own table (never a parent's), returning
// the fresh variable id.
func (s *Scope) Define(contract *Contract, name string, ty *types.Type, value Expression, kind VariableKind) int {
	return s.Table.Add(contract, name, ty, value, kind)
}
