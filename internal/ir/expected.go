package ir

import (
	"strings"

	"github.com/folidity-lang/folidity/internal/types"
)

// ExpectedKind discriminates the three-state expected-type value that
// drives the expression resolver top-down (spec §3 "Expected type").
type ExpectedKind int

const (
	ExpectConcrete ExpectedKind = iota
	ExpectDynamic
	ExpectEmpty
)

// Expected is the inference context threaded into every resolve call.
// - Concrete: Type must be unified with exactly.
// - Dynamic: the resolved type must be a member of Options; an empty
//   Options set means "any type is acceptable" (spec §4.4).
// - Empty: no value is expected; only statement-level call/member-access
//   expressions may appear here.
type Expected struct {
	Kind    ExpectedKind
	Type    *types.Type   // set when Kind == ExpectConcrete
	Options []*types.Type // set when Kind == ExpectDynamic
}

func ExpectedConcrete(t *types.Type) Expected {
	return Expected{Kind: ExpectConcrete, Type: t}
}

func ExpectedDynamic(options ...*types.Type) Expected {
	return Expected{Kind: ExpectDynamic, Options: options}
}

func ExpectedEmpty() Expected {
	return Expected{Kind: ExpectEmpty}
}

// IsOpenDynamic reports whether a Dynamic expectation carries no options,
// i.e. "any type", in which case the first resolved sub-expression fixes
// the type for its siblings (spec §4.4, used for unannotated list/set
// literals).
func (e Expected) IsOpenDynamic() bool {
	return e.Kind == ExpectDynamic && len(e.Options) == 0
}

// String renders the expectation for "expected %s, found ..." diagnostics,
// grounded on original_source/crates/semantics/src/types.rs's
// ExpectedType::display (Empty renders as "nothing").
func (e Expected) String() string {
	switch e.Kind {
	case ExpectConcrete:
		return e.Type.String()
	case ExpectDynamic:
		if len(e.Options) == 0 {
			return "any type"
		}
		names := make([]string, len(e.Options))
		for i, o := range e.Options {
			names[i] = o.String()
		}
		return strings.Join(names, " or ")
	default:
		return "nothing"
	}
}

// Accepts reports whether t satisfies this expectation.
func (e Expected) Accepts(t *types.Type) bool {
	switch e.Kind {
	case ExpectConcrete:
		return types.Equal(e.Type, t)
	case ExpectDynamic:
		if len(e.Options) == 0 {
			return true
		}
		for _, o := range e.Options {
			if types.Equal(o, t) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
