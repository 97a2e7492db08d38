package verifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/parser"
	"github.com/folidity-lang/folidity/internal/resolver"
	"github.com/folidity-lang/folidity/internal/verifier"
)

func mustResolve(t *testing.T, src string) (*ir.Contract, *diag.Bus) {
	t.Helper()
	bus := &diag.Bus{}
	tree := parser.Parse(src, bus)
	require.False(t, bus.HasErrors(), "parse errors: %v", bus.All())
	c := resolver.Resolve(tree, bus)
	require.False(t, bus.HasErrors(), "resolve errors: %v", bus.All())
	return c, bus
}

func hasVerificationError(bus *diag.Bus) bool {
	for _, r := range bus.All() {
		if r.Kind == diag.Verification && r.Level == diag.Error {
			return true
		}
	}
	return false
}

func TestVerifySatisfiableBoundPasses(t *testing.T) {
	c, bus := mustResolve(t, `
model Account {
  balance: int
} st [balance > 0]
`)
	verifier.Verify(c)
	assert.False(t, hasVerificationError(bus), "%v", bus.All())
}

func TestVerifyContradictoryBoundsFlagged(t *testing.T) {
	c, bus := mustResolve(t, `
model Account {
  balance: int
} st [balance > 10, balance < 5]
`)
	verifier.Verify(c)
	assert.True(t, hasVerificationError(bus), "expected a verification error, got %v", bus.All())
}

func TestVerifyIndependentModelsPartitionIntoSeparateBlocks(t *testing.T) {
	c, bus := mustResolve(t, `
model A {
  x: int
} st [x > 0]

model B {
  y: int
} st [y > 10, y < 5]
`)
	verifier.Verify(c)

	errs := 0
	for _, r := range bus.All() {
		if r.Kind == diag.Verification && r.Level == diag.Error {
			errs++
		}
	}
	assert.Equal(t, 1, errs, "only B's block should be unsatisfiable, got %v", bus.All())
}

func TestVerifyInheritedFieldBoundContradiction(t *testing.T) {
	c, bus := mustResolve(t, `
model Base {
  x: int
}

model Derived : Base {
  y: int
} st [x > 0, x < 0]
`)
	verifier.Verify(c)
	assert.True(t, hasVerificationError(bus), "x > 0 and x < 0 resolve against the same inherited-field scope variable and should contradict, got %v", bus.All())
}

func TestVerifyStateBoundSatisfiable(t *testing.T) {
	c, bus := mustResolve(t, `
state Open {
  amount: int
} st [amount >= 0]
`)
	verifier.Verify(c)
	assert.False(t, hasVerificationError(bus), "%v", bus.All())
}
