// Package builtins is the catalogue of functions available to every
// function body without an explicit declaration. None of them have an IR
// Function entry (no body, no handle); the expression resolver consults
// this catalogue by name before falling back to a user-defined global
// (spec §4.4 "FunctionCall").
package builtins

import "github.com/folidity-lang/folidity/internal/types"

// Signature is a builtin's arity-fixed parameter/return shape. Returns may
// be types.Generic, narrowed against the call site's expected type by the
// resolver (spec §4.4, §8 "Generic narrowing").
type Signature struct {
	Name    string
	Params  []*types.Type
	Returns *types.Type
}

var numericGeneric = types.GenericOf(
	types.Simple(types.Int),
	types.Simple(types.Uint),
	types.Simple(types.Float),
)

var comparableGeneric = types.GenericOf(
	types.Simple(types.Int),
	types.Simple(types.Uint),
	types.Simple(types.Float),
	types.Simple(types.String),
)

// catalogue is keyed by name; Folidity has no overloading, so one entry per
// name is sufficient.
var catalogue = map[string]Signature{
	// init() returns a freshly zeroed value of one of the listed types; the
	// call site's expected type picks the concrete member (spec §8 scenario
	// 6: "init() -> list<Generic{Int,Uint,String}>").
	"init": {
		Name:    "init",
		Params:  nil,
		Returns: types.ListOf(comparableGeneric),
	},
	// or(a, b) returns a if a is non-default, else b; both arms share one
	// numeric-or-comparable generic family.
	"or": {
		Name:    "or",
		Params:  []*types.Type{comparableGeneric, comparableGeneric},
		Returns: comparableGeneric,
	},
	// len(list<T>) -> uint, len(set<T>) -> uint, len(string) -> uint.
	"len": {
		Name:    "len",
		Params:  []*types.Type{types.GenericOf(types.ListOf(numericGeneric), types.SetOf(numericGeneric), types.Simple(types.String))},
		Returns: types.Simple(types.Uint),
	},
	// sender() -> address: the transaction sender, callable as `sender()`
	// inside @(...) access predicates; no implicit `sender` variable exists.
	"sender": {
		Name:    "sender",
		Params:  nil,
		Returns: types.Simple(types.Address),
	},
}

// Lookup returns the signature for name, if it names a builtin.
func Lookup(name string) (Signature, bool) {
	s, ok := catalogue[name]
	return s, ok
}
