// Package types defines the closed TypeVariant sum used throughout the
// resolved IR (internal/ir) and the verifier. It mirrors
// folidity_semantics::ast::TypeVariant from the original implementation.
package types

import "fmt"

// Kind discriminates the closed TypeVariant sum.
type Kind int

const (
	Int Kind = iota
	Uint
	Float
	Char
	String
	Hex
	Address
	Unit
	Bool

	List
	Set
	Mapping

	Function
	Struct
	Model
	State
	Enum

	// Generic is a union of admissible concrete types, used transiently in
	// builtin signatures and in expected-type unions; it is never a valid
	// field or parameter type (spec §3 "Types").
	Generic
)

// Relation describes the declared (unenforced) semantics of a mapping, per
// the open question in spec §9: the verifier does not encode these: they
// are preserved in the IR only.
type Relation int

const (
	RelationNone Relation = iota
	RelationTotal
	RelationPartial
	RelationInjective
	RelationSurjective
	RelationBijective
)

// Handle is a stable {kind, index} reference into a Contract's declaration
// vectors. Cross-entity edges (parent, from, field types) are always such
// handles, never pointers, so the IR stays a flat arena (spec §9).
type Handle struct {
	Kind  DeclKind
	Index int
}

// DeclKind tags which vector a Handle indexes into.
type DeclKind int

const (
	DeclStruct DeclKind = iota
	DeclModel
	DeclState
	DeclEnum
	DeclFunction
)

func (k DeclKind) String() string {
	switch k {
	case DeclStruct:
		return "struct"
	case DeclModel:
		return "model"
	case DeclState:
		return "state"
	case DeclEnum:
		return "enum"
	case DeclFunction:
		return "function"
	default:
		return "unknown"
	}
}

// MappingType carries the relation flag alongside the two element types. The
// relation is not enforced by the verifier (spec §9 Open Questions); it is
// round-tripped for a future emitter/verifier revision.
type MappingType struct {
	From     *Type
	To       *Type
	Relation Relation
}

// Type is the resolved type of an expression, field, or parameter.
type Type struct {
	Kind Kind

	// Element is the element type for List/Set.
	Element *Type
	// MapType is set when Kind == Mapping.
	MapType *MappingType
	// Handle is set when Kind is Struct, Model, State, or Enum.
	Handle Handle
	// Params/Returns are set when Kind == Function.
	Params  []*Type
	Returns *Type
	// Generic holds the admissible concrete types when Kind == Generic.
	Generic []*Type
}

func Simple(k Kind) *Type { return &Type{Kind: k} }

func ListOf(elem *Type) *Type { return &Type{Kind: List, Element: elem} }

func SetOf(elem *Type) *Type { return &Type{Kind: Set, Element: elem} }

func MappingOf(from, to *Type, rel Relation) *Type {
	return &Type{Kind: Mapping, MapType: &MappingType{From: from, To: to, Relation: rel}}
}

func FunctionOf(params []*Type, returns *Type) *Type {
	return &Type{Kind: Function, Params: params, Returns: returns}
}

func StructHandle(h Handle) *Type { return &Type{Kind: Struct, Handle: h} }
func ModelHandle(h Handle) *Type  { return &Type{Kind: Model, Handle: h} }
func StateHandle(h Handle) *Type  { return &Type{Kind: State, Handle: h} }
func EnumHandle(h Handle) *Type   { return &Type{Kind: Enum, Handle: h} }

func GenericOf(options ...*Type) *Type { return &Type{Kind: Generic, Generic: options} }

// IsPrimitive reports whether t is one of the nine scalar kinds.
func (t *Type) IsPrimitive() bool {
	switch t.Kind {
	case Int, Uint, Float, Char, String, Hex, Address, Unit, Bool:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether t is one of Int, Uint, Float.
func (t *Type) IsNumeric() bool {
	switch t.Kind {
	case Int, Uint, Float:
		return true
	default:
		return false
	}
}

// ValidFieldOrParam rejects Function, Model, and State as field/parameter
// types (spec §3 invariant; §4.3 validate_type).
func (t *Type) ValidFieldOrParam() bool {
	switch t.Kind {
	case Function, Model, State:
		return false
	case List, Set:
		return t.Element.ValidFieldOrParam()
	case Mapping:
		return t.MapType.From.ValidFieldOrParam() && t.MapType.To.ValidFieldOrParam()
	default:
		return true
	}
}

// Equal reports structural equality. Generic types are equal only to
// themselves by identity of their option set (order independent).
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case List, Set:
		return Equal(a.Element, b.Element)
	case Mapping:
		return Equal(a.MapType.From, b.MapType.From) && Equal(a.MapType.To, b.MapType.To)
	case Struct, Model, State, Enum:
		return a.Handle == b.Handle
	case Function:
		if len(a.Params) != len(b.Params) || !Equal(a.Returns, b.Returns) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return true
	case Generic:
		return sameSet(a.Generic, b.Generic)
	default:
		return true
	}
}

func sameSet(a, b []*Type) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if Equal(x, y) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Intersect computes A ∩ B for two Generic option sets, used for narrowing
// a builtin's Generic return type against a Dynamic expected-type set
// (spec §4.4, §8 "Generic narrowing").
func Intersect(a, b []*Type) []*Type {
	var out []*Type
	for _, x := range a {
		for _, y := range b {
			if Equal(x, y) {
				out = append(out, x)
				break
			}
		}
	}
	return out
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case Char:
		return "char"
	case String:
		return "string"
	case Hex:
		return "hex"
	case Address:
		return "address"
	case Unit:
		return "unit"
	case Bool:
		return "bool"
	case List:
		return fmt.Sprintf("list<%s>", t.Element)
	case Set:
		return fmt.Sprintf("set<%s>", t.Element)
	case Mapping:
		return fmt.Sprintf("mapping<%s, %s>", t.MapType.From, t.MapType.To)
	case Function:
		return "function"
	case Struct:
		return "struct"
	case Model:
		return "model"
	case State:
		return "state"
	case Enum:
		return "enum"
	case Generic:
		return "generic"
	default:
		return "unknown"
	}
}
