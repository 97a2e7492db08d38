package resolver

import (
	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/fast"
	"github.com/folidity-lang/folidity/internal/types"
)

var primitiveKinds = map[string]types.Kind{
	"int": types.Int, "uint": types.Uint, "float": types.Float,
	"char": types.Char, "string": types.String, "hex": types.Hex,
	"address": types.Address, "unit": types.Unit, "bool": types.Bool,
}

var relationKinds = map[string]types.Relation{
	"":          types.RelationNone,
	"total":     types.RelationTotal,
	"partial":   types.RelationPartial,
	"injective": types.RelationInjective,
	"surjective": types.RelationSurjective,
	"bijective": types.RelationBijective,
}

// mapType lowers a parser-level TypeRef to a resolved types.Type, looking
// up user identifiers against the global symbol table (spec §4.2
// "map_type").
func (r *resolver) mapType(ref *fast.TypeRef) (*types.Type, bool) {
	if ref == nil {
		return nil, false
	}

	if k, ok := primitiveKinds[ref.Name]; ok {
		return types.Simple(k), true
	}

	switch ref.Name {
	case "list":
		elem, ok := r.mapType(ref.Element)
		if !ok {
			return nil, false
		}
		return types.ListOf(elem), true
	case "set":
		elem, ok := r.mapType(ref.Element)
		if !ok {
			return nil, false
		}
		return types.SetOf(elem), true
	case "mapping":
		from, ok1 := r.mapType(ref.MapFrom)
		to, ok2 := r.mapType(ref.MapTo)
		if !ok1 || !ok2 {
			return nil, false
		}
		rel, ok := relationKinds[ref.Relation]
		if !ok {
			r.contract.Diagnostics.Push(diag.SemanticError(ref.SourceSpan, "unknown mapping relation %q", ref.Relation))
			rel = types.RelationNone
		}
		return types.MappingOf(from, to, rel), true
	}

	sym, ok := r.contract.Lookup(ref.Name)
	if !ok {
		r.contract.Diagnostics.Push(diag.SemanticError(ref.SourceSpan, "%q is not declared", ref.Name))
		return nil, false
	}
	switch sym.Handle.Kind {
	case types.DeclStruct:
		return types.StructHandle(sym.Handle), true
	case types.DeclModel:
		return types.ModelHandle(sym.Handle), true
	case types.DeclState:
		return types.StateHandle(sym.Handle), true
	case types.DeclEnum:
		return types.EnumHandle(sym.Handle), true
	default:
		r.contract.Diagnostics.Push(diag.SemanticError(ref.SourceSpan, "%q does not name a type", ref.Name))
		return nil, false
	}
}
