package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/parser"
	"github.com/folidity-lang/folidity/internal/resolver"
	"github.com/folidity-lang/folidity/internal/types"
)

func mustResolve(t *testing.T, src string) (*ir.Contract, *diag.Bus) {
	t.Helper()
	bus := &diag.Bus{}
	tree := parser.Parse(src, bus)
	require.False(t, bus.HasErrors(), "parse errors: %v", bus.All())
	c := resolver.Resolve(tree, bus)
	return c, bus
}

func TestResolveStructFieldAccess(t *testing.T) {
	c, bus := mustResolve(t, `
struct Point {
  x: int,
  y: int
}

fn int getX(p: Point) {
  return p.x;
}
`)
	assert.False(t, bus.HasErrors(), "%v", bus.All())

	sym, ok := c.Lookup("getX")
	require.True(t, ok)
	fn := c.Function(sym.Handle)
	require.Len(t, fn.Body, 1)

	ret, ok := fn.Body[0].(*ir.ReturnStmt)
	require.True(t, ok)
	member, ok := ret.Value.(*ir.MemberAccessExpr)
	require.True(t, ok)
	assert.Equal(t, "x", member.Member)
	assert.Equal(t, 0, member.FieldIndex)
	assert.Equal(t, types.Int, member.Type().Kind)
}

func TestRecursiveStructFieldFlagged(t *testing.T) {
	c, bus := mustResolve(t, `
struct Node {
  next: Node
}
`)
	assert.True(t, bus.HasErrors())

	found := false
	for _, r := range bus.All() {
		if r.Message == "Recursive field detected." {
			found = true
		}
	}
	assert.True(t, found, "expected a recursive-field diagnostic, got %v", bus.All())

	sym, ok := c.Lookup("Node")
	require.True(t, ok)
	decl := c.Struct(sym.Handle)
	require.Len(t, decl.Fields, 1)
	assert.True(t, decl.Fields[0].Recursive)
}

func TestCyclicModelInheritanceFlagged(t *testing.T) {
	c, bus := mustResolve(t, `
model A : B {
  x: int
}

model B : A {
  y: int
}
`)
	assert.True(t, bus.HasErrors())

	symA, _ := c.Lookup("A")
	symB, _ := c.Lookup("B")
	assert.True(t, c.Model(symA.Handle).RecursiveParent)
	assert.True(t, c.Model(symB.Handle).RecursiveParent)

	cyclic := 0
	for _, r := range bus.All() {
		if r.Message == "This model inheritance is cyclic." {
			cyclic++
		}
	}
	assert.Equal(t, 2, cyclic)
}

func TestConstantFoldingAddition(t *testing.T) {
	c, bus := mustResolve(t, `
fn int add() {
  return 1 + 2;
}
`)
	assert.False(t, bus.HasErrors(), "%v", bus.All())

	sym, _ := c.Lookup("add")
	fn := c.Function(sym.Handle)
	ret := fn.Body[0].(*ir.ReturnStmt)
	folded, ok := ret.Value.(*ir.IntExpr)
	require.True(t, ok, "expected folded IntExpr, got %T", ret.Value)
	assert.Equal(t, int64(3), folded.Element.Int64())
}

func TestDivisionByZeroReported(t *testing.T) {
	_, bus := mustResolve(t, `
fn int bad() {
  return 1 / 0;
}
`)
	assert.True(t, bus.HasErrors())
	found := false
	for _, r := range bus.All() {
		if r.Message == "division by zero" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGenericReturnNarrowing(t *testing.T) {
	c, bus := mustResolve(t, `
fn int pick() {
  let x: int = or(1, 2);
  return x;
}
`)
	assert.False(t, bus.HasErrors(), "%v", bus.All())

	sym, _ := c.Lookup("pick")
	fn := c.Function(sym.Handle)
	varStmt := fn.Body[0].(*ir.VariableStmt)
	call, ok := varStmt.Value.(*ir.FunctionCallExpr)
	require.True(t, ok)
	assert.Equal(t, "or", call.Name)
	assert.Equal(t, types.Int, call.Returns.Kind)
}

func TestPipeDesugarsToFunctionCall(t *testing.T) {
	c, bus := mustResolve(t, `
fn uint lengthOf(s: string) {
  return s :> len();
}
`)
	assert.False(t, bus.HasErrors(), "%v", bus.All())

	sym, _ := c.Lookup("lengthOf")
	fn := c.Function(sym.Handle)
	ret := fn.Body[0].(*ir.ReturnStmt)
	call, ok := ret.Value.(*ir.FunctionCallExpr)
	require.True(t, ok)
	assert.Equal(t, "len", call.Name)
	require.Len(t, call.Args, 1)
	_, isVar := call.Args[0].(*ir.VariableExpr)
	assert.True(t, isVar)
}

func TestViewFunctionWithoutAccessWarns(t *testing.T) {
	_, bus := mustResolve(t, `
state Active {
  flag: bool
}

view(Active a) fn bool check() {
  return true;
}
`)
	assert.False(t, bus.HasErrors(), "%v", bus.All())

	found := false
	for _, r := range bus.All() {
		if r.Level == diag.Warning {
			found = true
		}
	}
	assert.True(t, found, "expected a view-without-access warning, got %v", bus.All())
}

func TestViewFunctionWithAccessDoesNotWarn(t *testing.T) {
	c, bus := mustResolve(t, `
state Active {
  flag: bool
}

view(Active a) fn bool check() @(true) {
  return true;
}
`)
	assert.False(t, bus.HasErrors(), "%v", bus.All())
	for _, r := range bus.All() {
		assert.NotEqual(t, diag.Warning, r.Level)
	}

	sym, _ := c.Lookup("check")
	fn := c.Function(sym.Handle)
	assert.Len(t, fn.AccessAttrs, 1)
}

func TestEnumVariantMemberAccess(t *testing.T) {
	c, bus := mustResolve(t, `
enum Color { Red, Green, Blue }

fn bool isRed(c: Color) {
  return c == Color.Red;
}
`)
	assert.False(t, bus.HasErrors(), "%v", bus.All())

	sym, _ := c.Lookup("isRed")
	fn := c.Function(sym.Handle)
	ret := fn.Body[0].(*ir.ReturnStmt)
	bin, ok := ret.Value.(*ir.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ir.OpEq, bin.Op)

	enumExpr, ok := bin.Right.(*ir.EnumExpr)
	require.True(t, ok)
	assert.Equal(t, 0, enumExpr.Element)
}

func TestStructInitAutoObjectShorthand(t *testing.T) {
	c, bus := mustResolve(t, `
struct Point {
  x: int,
  y: int
}

fn Point moveX(p: Point, dx: int) {
  let nx: int = p.x + dx;
  return Point{nx, ..p};
}
`)
	assert.False(t, bus.HasErrors(), "%v", bus.All())

	sym, _ := c.Lookup("moveX")
	fn := c.Function(sym.Handle)
	ret := fn.Body[1].(*ir.ReturnStmt)
	init, ok := ret.Value.(*ir.StructInitExpr)
	require.True(t, ok)
	require.NotNil(t, init.AutoObject)
	require.Len(t, init.Args, 1)
}

func TestUndeclaredVariableReported(t *testing.T) {
	_, bus := mustResolve(t, `
fn int bad() {
  return y;
}
`)
	assert.True(t, bus.HasErrors())
}

func TestStateTransitionValidatesBound(t *testing.T) {
	c, bus := mustResolve(t, `
state Open {
  amount: int
}

state Closed {
  amount: int
}

pub fn unit close(amount: int) when () -> (Closed) {
  -> Closed(amount);
}
`)
	assert.False(t, bus.HasErrors(), "%v", bus.All())

	sym, _ := c.Lookup("close")
	fn := c.Function(sym.Handle)
	transition, ok := fn.Body[0].(*ir.StateTransitionStmt)
	require.True(t, ok)

	closedSym, _ := c.Lookup("Closed")
	assert.Equal(t, closedSym.Handle, transition.Target)
}

func TestBarePureValueStatementRejected(t *testing.T) {
	_, bus := mustResolve(t, `
fn unit bad() {
  true;
}
`)
	assert.True(t, bus.HasErrors())
	found := false
	for _, r := range bus.All() {
		if r.Message == "expected nothing, found bool" {
			found = true
		}
	}
	assert.True(t, found, "expected a nothing/found-bool diagnostic, got %v", bus.All())
}

func TestBareFunctionCallStatementAccepted(t *testing.T) {
	_, bus := mustResolve(t, `
fn unit log(x: int) {}

fn unit caller() {
  log(1);
}
`)
	assert.False(t, bus.HasErrors(), "%v", bus.All())
}

func TestAddressLiteralTypeMismatchReported(t *testing.T) {
	_, bus := mustResolve(t, `
fn unit bad() {
  let x: int = a"36TL5VSHUY66K2HA7AQ3KCGZTG6CVBGTCBVVUCSBKTUIHC3H3MDK3A4IRE";
}
`)
	assert.True(t, bus.HasErrors())
	found := false
	for _, r := range bus.All() {
		if r.Message == "expected int, found address" {
			found = true
		}
	}
	assert.True(t, found, "expected an int/found-address diagnostic, got %v", bus.All())
}

func TestHexLiteralTypeMismatchReported(t *testing.T) {
	_, bus := mustResolve(t, `
fn unit bad() {
  let x: int = hex"00FF";
}
`)
	assert.True(t, bus.HasErrors())
	found := false
	for _, r := range bus.All() {
		if r.Message == "expected int, found hex" {
			found = true
		}
	}
	assert.True(t, found, "expected an int/found-hex diagnostic, got %v", bus.All())
}

func TestStateTransitionRejectsUnboundTarget(t *testing.T) {
	_, bus := mustResolve(t, `
state Open {
  amount: int
}

state Closed {
  amount: int
}

pub fn unit close(amount: int) when () -> (Open) {
  -> Closed(amount);
}
`)
	assert.True(t, bus.HasErrors())
}
