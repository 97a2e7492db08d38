package resolver

import (
	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/fast"
	"github.com/folidity-lang/folidity/internal/graph"
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/types"
)

// resolveFields is pass 2 (spec §4.2): fills in struct/model/state field
// lists from the delayed lists pass 1 recorded, then runs the struct
// recursion check.
func (r *resolver) resolveFields() {
	for _, d := range r.delayedStructs {
		decl := r.contract.Struct(d.Handle)
		decl.Fields = r.resolveFieldList(d.Node.Fields)
	}
	for _, d := range r.delayedModels {
		decl := r.contract.Model(d.Handle)
		decl.Fields = r.resolveFieldList(d.Node.Fields)
		if d.Node.Parent != nil {
			sym, ok := r.contract.Lookup(d.Node.Parent.Name)
			if !ok {
				r.contract.Diagnostics.Push(diag.SemanticError(d.Node.Parent.Span, "%q is not declared", d.Node.Parent.Name))
			} else if sym.Handle.Kind != types.DeclModel {
				r.contract.Diagnostics.Push(diag.SemanticError(d.Node.Parent.Span, "%q is not a model", d.Node.Parent.Name))
			} else {
				h := sym.Handle
				decl.Parent = &h
			}
		}
	}
	for _, d := range r.delayedStates {
		decl := r.contract.State(d.Handle)
		switch d.Node.BodyKind {
		case fast.StateBodyRaw:
			decl.BodyKind = ir.StateBodyRaw
			decl.Fields = r.resolveFieldList(d.Node.Fields)
		case fast.StateBodyModelRef:
			sym, ok := r.contract.Lookup(d.Node.ModelRef.Name)
			if !ok {
				r.contract.Diagnostics.Push(diag.SemanticError(d.Node.ModelRef.Span, "%q is not declared", d.Node.ModelRef.Name))
			} else if sym.Handle.Kind != types.DeclModel {
				r.contract.Diagnostics.Push(diag.SemanticError(d.Node.ModelRef.Span, "%q is not a model", d.Node.ModelRef.Name))
			} else {
				decl.BodyKind = ir.StateBodyModel
				h := sym.Handle
				decl.ModelRef = &h
			}
		default:
			decl.BodyKind = ir.StateBodyNone
		}

		if d.Node.From != nil {
			sym, ok := r.contract.Lookup(d.Node.From.Name)
			if !ok {
				r.contract.Diagnostics.Push(diag.SemanticError(d.Node.From.Span, "%q is not declared", d.Node.From.Name))
			} else if sym.Handle.Kind != types.DeclState {
				r.contract.Diagnostics.Push(diag.SemanticError(d.Node.From.Span, "%q is not a state", d.Node.From.Name))
			} else {
				h := sym.Handle
				decl.From = &h
				if d.Node.FromBind != nil {
					decl.FromBind = d.Node.FromBind.Name
				}
			}
		}
	}

	r.checkStructRecursion()
}

func (r *resolver) resolveFieldList(fields []*fast.FieldDecl) []*ir.Field {
	var out []*ir.Field
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name.Name] {
			r.contract.Diagnostics.Push(diag.SemanticError(f.Name.Span, "duplicate field %q", f.Name.Name))
			continue
		}
		seen[f.Name.Name] = true

		ty, ok := r.mapType(f.Type)
		if !ok {
			continue
		}
		if !ty.ValidFieldOrParam() {
			r.contract.Diagnostics.Push(diag.TypeError(f.Type.Span(), "type %s is not valid as a field type", ty))
			continue
		}
		out = append(out, &ir.Field{Sp: f.SourceSpan, Name: f.Name.Name, Type: ty, IsMut: f.IsMut})
	}
	return out
}

// checkStructRecursion builds the struct field-dependency graph (an edge
// A -> B whenever A has a field of type Struct(B), direct or nested inside
// List/Set/Mapping) and marks the field recursive whenever its dependency
// edge lies on a cycle, i.e. A and B belong to the same strongly connected
// component (spec §4.2: "individual edges lying on a cycle mark their
// source field recursive=true").
func (r *resolver) checkStructRecursion() {
	n := len(r.contract.Structs)
	adj := make([][]int, n)
	for i, s := range r.contract.Structs {
		for _, f := range s.Fields {
			adj[i] = append(adj[i], structDependencies(f.Type)...)
		}
	}

	comps := graph.SCC(n, adj)
	compOf := make([]int, n)
	recursiveComp := make([]bool, len(comps))
	for ci, comp := range comps {
		for _, v := range comp {
			compOf[v] = ci
		}
		if len(comp) > 1 {
			recursiveComp[ci] = true
		} else if graph.HasSelfLoop(adj, comp[0]) {
			recursiveComp[ci] = true
		}
	}

	for i, s := range r.contract.Structs {
		for _, f := range s.Fields {
			for _, dep := range structDependencies(f.Type) {
				if compOf[dep] == compOf[i] && recursiveComp[compOf[i]] {
					f.Recursive = true
					r.contract.Diagnostics.Push(diag.SemanticError(f.Sp, "Recursive field detected."))
					break
				}
			}
		}
	}
}

// structDependencies returns the struct handles t directly or transitively
// (through List/Set/Mapping) depends on, mirroring
// TypeVariant::custom_type_dependencies (spec §4.2).
func structDependencies(t *types.Type) []int {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case types.List, types.Set:
		return structDependencies(t.Element)
	case types.Mapping:
		out := structDependencies(t.MapType.From)
		out = append(out, structDependencies(t.MapType.To)...)
		return out
	case types.Struct:
		return []int{t.Handle.Index}
	default:
		return nil
	}
}
