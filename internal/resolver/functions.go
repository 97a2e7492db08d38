package resolver

import (
	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/fast"
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/types"
)

// resolveFunctionSignatures is the function signature resolver (spec §4.3):
// builds parameter maps, return type, visibility, access-attribute
// placeholders, and state-transition bounds, eagerly, so later passes can
// look functions up by name. Bodies and bounds are left for
// resolveFunctionBodies/resolveBounds.
func (r *resolver) resolveFunctionSignatures(src *fast.Source) {
	for _, d := range src.Declarations {
		fn, ok := d.(*fast.FunctionDecl)
		if !ok {
			continue
		}
		r.resolveFunctionSignature(fn)
	}
}

func (r *resolver) resolveFunctionSignature(n *fast.FunctionDecl) {
	if !r.checkReserved(n.Name) {
		return
	}

	f := &ir.Function{
		Sp:         n.SourceSpan,
		Name:       n.Name.Name,
		IsInit:     n.IsInit,
		ParamIndex: make(map[string]int),
	}

	switch n.Vis {
	case fast.VisPub:
		f.Vis = ir.VisPub
	case fast.VisView:
		f.Vis = ir.VisView
		if n.ViewState == nil {
			r.contract.Diagnostics.Push(diag.SemanticError(n.SourceSpan, "view function must bind a state parameter"))
		} else if sym, ok := r.contract.Lookup(n.ViewState.Name); !ok {
			r.contract.Diagnostics.Push(diag.SemanticError(n.ViewState.Span, "%q is not declared", n.ViewState.Name))
		} else if sym.Handle.Kind != types.DeclState {
			r.contract.Diagnostics.Push(diag.SemanticError(n.ViewState.Span, "%q is not a state", n.ViewState.Name))
		} else {
			h := sym.Handle
			f.ViewState = &h
			if n.ViewBind != nil {
				f.ViewBind = n.ViewBind.Name
			}
		}
	default:
		f.Vis = ir.VisPriv
	}

	if n.IsInit && (f.Vis == ir.VisPriv || f.Vis == ir.VisView) {
		r.contract.Diagnostics.Push(diag.SemanticError(n.SourceSpan, "init function must be public and must not be a view"))
	}

	if n.ReturnType != nil {
		if ty, ok := r.mapType(n.ReturnType); ok {
			if !ty.ValidFieldOrParam() && ty.Kind != types.Unit {
				r.contract.Diagnostics.Push(diag.TypeError(n.ReturnType.Span(), "type %s is not valid as a return type", ty))
			} else {
				f.ReturnType = ty
			}
		}
	} else {
		f.ReturnType = types.Simple(types.Unit)
	}

	seen := make(map[string]bool, len(n.Params))
	for _, p := range n.Params {
		if seen[p.Name.Name] {
			r.contract.Diagnostics.Push(diag.SemanticError(p.Name.Span, "duplicate parameter %q", p.Name.Name))
			continue
		}
		seen[p.Name.Name] = true
		ty, ok := r.mapType(p.Type)
		if !ok {
			continue
		}
		if !ty.ValidFieldOrParam() {
			r.contract.Diagnostics.Push(diag.TypeError(p.Type.Span(), "type %s is not valid as a parameter type", ty))
			continue
		}
		f.ParamIndex[p.Name.Name] = len(f.Params)
		f.Params = append(f.Params, &ir.Field{Sp: p.SourceSpan, Name: p.Name.Name, Type: ty, IsMut: p.IsMut})
	}

	if n.StateBound != nil {
		f.StateBound = r.resolveStateBound(n.StateBound)
	}

	if f.Vis == ir.VisView && len(n.Access) == 0 {
		r.contract.Diagnostics.Push(diag.SemanticWarning(n.SourceSpan,
			"view function inaccessible and omitted from the final build."))
	}

	idx := len(r.contract.Functions)
	r.contract.Functions = append(r.contract.Functions, f)
	h := types.Handle{Kind: types.DeclFunction, Index: idx}
	if !r.contract.Define(n.Name.Name, h, n.Name.Span) {
		return
	}
	r.delayedFunctions = append(r.delayedFunctions, delayedFunction{Handle: h, Node: n})
}

func (r *resolver) resolveStateBound(n *fast.StateBound) *ir.StateBound {
	sb := &ir.StateBound{Sp: n.SourceSpan}

	if n.From != nil {
		sym, ok := r.contract.Lookup(n.From.Name)
		if !ok {
			r.contract.Diagnostics.Push(diag.SemanticError(n.From.Span, "%q is not declared", n.From.Name))
		} else if sym.Handle.Kind != types.DeclState {
			r.contract.Diagnostics.Push(diag.SemanticError(n.From.Span, "%q is not a state", n.From.Name))
		} else {
			h := sym.Handle
			sb.From = &h
			if n.FromBind != nil {
				sb.FromBind = n.FromBind.Name
			}
		}
	}

	for i, to := range n.To {
		sym, ok := r.contract.Lookup(to.Name)
		if !ok {
			r.contract.Diagnostics.Push(diag.SemanticError(to.Span, "%q is not declared", to.Name))
			continue
		}
		if sym.Handle.Kind != types.DeclState {
			r.contract.Diagnostics.Push(diag.SemanticError(to.Span, "%q is not a state", to.Name))
			continue
		}
		sb.To = append(sb.To, sym.Handle)
		bind := ""
		if i < len(n.ToBind) && n.ToBind[i] != nil {
			bind = n.ToBind[i].Name
		}
		sb.ToBind = append(sb.ToBind, bind)
	}

	if len(sb.To) == 0 {
		r.contract.Diagnostics.Push(diag.SemanticError(n.SourceSpan, "state bound must name at least one post-state"))
	}

	return sb
}
