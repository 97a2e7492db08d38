package resolver

import (
	"encoding/hex"
	"math/big"

	"github.com/cockroachdb/apd/v2"

	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/source"
	"github.com/folidity-lang/folidity/internal/types"
)

// numericKindFor picks which of the candidate numeric kinds an expectation
// selects, preferring the order given. An open Dynamic (no options)
// defaults to the first candidate (spec §4.4: plain integer literals
// default to Int unless a narrower expectation says otherwise); an Empty
// expectation selects none.
func numericKindFor(expected ir.Expected, candidates ...types.Kind) (types.Kind, bool) {
	switch expected.Kind {
	case ir.ExpectConcrete:
		for _, c := range candidates {
			if expected.Type != nil && expected.Type.Kind == c {
				return c, true
			}
		}
		return 0, false
	case ir.ExpectDynamic:
		if len(expected.Options) == 0 {
			return candidates[0], true
		}
		for _, c := range candidates {
			for _, o := range expected.Options {
				if o.Kind == c {
					return c, true
				}
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

func (r *resolver) resolveIntLiteral(text string, sp source.Span, expected ir.Expected) (ir.Expression, bool) {
	val, ok := new(big.Int).SetString(text, 10)
	if !ok {
		r.contract.Diagnostics.Push(diag.SemanticError(sp, "invalid integer literal %q", text))
		return nil, false
	}

	kind, ok := numericKindFor(expected, types.Int, types.Uint, types.Float)
	if !ok {
		r.contract.Diagnostics.Push(diag.TypeError(sp, "integer literal is not valid in this context"))
		return nil, false
	}

	switch kind {
	case types.Uint:
		if val.Sign() < 0 {
			r.contract.Diagnostics.Push(diag.TypeError(sp, "signed literal where uint was expected"))
			return nil, false
		}
		return &ir.UintExpr{Unary: ir.Unary[*big.Int]{Sp: sp, Element: val, Ty: types.Simple(types.Uint)}}, true
	case types.Float:
		d, _, err := apd.NewFromString(text)
		if err != nil {
			r.contract.Diagnostics.Push(diag.SemanticError(sp, "invalid float literal %q", text))
			return nil, false
		}
		return &ir.FloatExpr{Unary: ir.Unary[*apd.Decimal]{Sp: sp, Element: d, Ty: types.Simple(types.Float)}}, true
	default:
		return &ir.IntExpr{Unary: ir.Unary[*big.Int]{Sp: sp, Element: val, Ty: types.Simple(types.Int)}}, true
	}
}

func (r *resolver) resolveFloatLiteral(text string, sp source.Span, expected ir.Expected) (ir.Expression, bool) {
	if !expected.Accepts(types.Simple(types.Float)) && expected.Kind != ir.ExpectDynamic {
		r.contract.Diagnostics.Push(diag.TypeError(sp, "float literal is not valid in this context"))
		return nil, false
	}
	d, _, err := apd.NewFromString(text)
	if err != nil {
		r.contract.Diagnostics.Push(diag.SemanticError(sp, "invalid float literal %q", text))
		return nil, false
	}
	return &ir.FloatExpr{Unary: ir.Unary[*apd.Decimal]{Sp: sp, Element: d, Ty: types.Simple(types.Float)}}, true
}

func (r *resolver) resolveHexLiteral(text string, sp source.Span, expected ir.Expected) (ir.Expression, bool) {
	b, err := hex.DecodeString(text)
	if err != nil {
		r.contract.Diagnostics.Push(diag.SemanticError(sp, "invalid hex literal %q", text))
		return nil, false
	}
	if (expected.Kind == ir.ExpectConcrete || expected.Kind == ir.ExpectEmpty) && !expected.Accepts(types.Simple(types.Hex)) {
		r.contract.Diagnostics.Push(diag.TypeError(sp, "expected %s, found hex", expected))
		return nil, false
	}
	return &ir.HexExpr{Unary: ir.Unary[[]byte]{Sp: sp, Element: b, Ty: types.Simple(types.Hex)}}, true
}
