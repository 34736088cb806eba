package ast

import (
	"bytes"
	"testing"

	"mint/interpreter-go/pkg/runtime"
)

func run(t *testing.T, stmt Statement) (runtime.ObjectHolder, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	closure := runtime.NewClosure()
	ctx := runtime.NewContext(&buf)
	result, err := stmt.Execute(closure, ctx)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	return result, &buf
}

func TestAssignmentBindsAndReturnsValue(t *testing.T) {
	closure := runtime.NewClosure()
	ctx := runtime.NewContext(&bytes.Buffer{})
	result, err := Assign("x", Num(42)).Execute(closure, ctx)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	n, ok := result.TryAsNumber()
	if !ok || n.Value != 42 {
		t.Fatalf("expected Number(42), got %v", result.Value())
	}
	bound, err := closure.Get("x")
	if err != nil {
		t.Fatalf("expected x to be bound: %v", err)
	}
	if bn, _ := bound.TryAsNumber(); bn.Value != 42 {
		t.Fatalf("expected bound x == 42, got %v", bound.Value())
	}
}

func TestVariableValueMissingIsAnError(t *testing.T) {
	_, err := Var("missing").Execute(runtime.NewClosure(), runtime.NewContext(&bytes.Buffer{}))
	if err == nil {
		t.Fatalf("expected error for unbound variable")
	}
}

func TestPrintSpaceSeparatesArgsAndHandlesNone(t *testing.T) {
	_, buf := run(t, Pr(Num(1), NoneLit(), Str("x")))
	if buf.String() != "1 None x\n" {
		t.Fatalf("unexpected print output: %q", buf.String())
	}
}

func TestStringifyNumber(t *testing.T) {
	result, _ := run(t, Repr(Num(42)))
	s, ok := result.TryAsString()
	if !ok || s.Value != "42" {
		t.Fatalf("expected String(\"42\"), got %v", result.Value())
	}
}

func TestAddNumbers(t *testing.T) {
	result, _ := run(t, NewAdd(Num(1), Num(2)))
	n, _ := result.TryAsNumber()
	if n.Value != 3 {
		t.Fatalf("expected 3, got %d", n.Value)
	}
}

func TestAddConcatenatesStrings(t *testing.T) {
	result, _ := run(t, NewAdd(Str("foo"), Str("bar")))
	s, _ := result.TryAsString()
	if s.Value != "foobar" {
		t.Fatalf("expected foobar, got %q", s.Value)
	}
}

func TestAddMixedTypesIsAnError(t *testing.T) {
	_, err := NewAdd(Num(1), Str("x")).Execute(runtime.NewClosure(), runtime.NewContext(&bytes.Buffer{}))
	if err == nil {
		t.Fatalf("expected error adding a Number to a String")
	}
}

func TestDivByZeroIsAnError(t *testing.T) {
	_, err := NewDiv(Num(1), Num(0)).Execute(runtime.NewClosure(), runtime.NewContext(&bytes.Buffer{}))
	if err == nil {
		t.Fatalf("expected zero division error")
	}
}

func TestDivTruncatesTowardZero(t *testing.T) {
	result, _ := run(t, NewDiv(Num(-7), Num(2)))
	n, _ := result.TryAsNumber()
	if n.Value != -3 {
		t.Fatalf("expected -7/2 == -3 (truncation toward zero), got %d", n.Value)
	}
}

func TestCompoundDoesNotInterceptReturn(t *testing.T) {
	seq := Seq(Assign("x", Num(1)), Ret(Num(2)), Assign("y", Num(3)))
	_, err := seq.Execute(runtime.NewClosure(), runtime.NewContext(&bytes.Buffer{}))
	if _, ok := AsReturnSignal(err); !ok {
		t.Fatalf("expected a return signal to propagate out of Compound, got %v", err)
	}
}

func TestMethodBodyUnwrapsReturn(t *testing.T) {
	body := Body(Seq(Assign("x", Num(1)), Ret(Num(2))))
	result, _ := run(t, body)
	n, ok := result.TryAsNumber()
	if !ok || n.Value != 2 {
		t.Fatalf("expected MethodBody to unwrap the return value 2, got %v", result.Value())
	}
}

func TestMethodBodyWithoutReturnYieldsNone(t *testing.T) {
	body := Body(Assign("x", Num(1)))
	result, _ := run(t, body)
	if !result.IsEmpty() {
		t.Fatalf("expected None, got %v", result.Value())
	}
}

func TestIfElseBranches(t *testing.T) {
	stmt := IfElseStmt(Bln(false), Assign("x", Num(1)), Assign("x", Num(2)))
	closure := runtime.NewClosure()
	ctx := runtime.NewContext(&bytes.Buffer{})
	if _, err := stmt.Execute(closure, ctx); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	bound, _ := closure.Get("x")
	n, _ := bound.TryAsNumber()
	if n.Value != 2 {
		t.Fatalf("expected the else branch to run, got %d", n.Value)
	}
}

func TestIfWithoutElseAndFalseConditionYieldsNone(t *testing.T) {
	stmt := If(Bln(false), Assign("x", Num(1)))
	result, _ := run(t, stmt)
	if !result.IsEmpty() {
		t.Fatalf("expected None when condition is false and there is no else, got %v", result.Value())
	}
}

func TestOrShortCircuits(t *testing.T) {
	closure := runtime.NewClosure()
	ctx := runtime.NewContext(&bytes.Buffer{})
	stmt := &Or{LHS: Bln(true), RHS: Var("undefined")}
	result, err := stmt.Execute(closure, ctx)
	if err != nil {
		t.Fatalf("expected Or to short-circuit before evaluating RHS: %v", err)
	}
	b, _ := result.TryAsBool()
	if !b.Value {
		t.Fatalf("expected true")
	}
}

func TestAndShortCircuits(t *testing.T) {
	closure := runtime.NewClosure()
	ctx := runtime.NewContext(&bytes.Buffer{})
	stmt := &And{LHS: Bln(false), RHS: Var("undefined")}
	result, err := stmt.Execute(closure, ctx)
	if err != nil {
		t.Fatalf("expected And to short-circuit before evaluating RHS: %v", err)
	}
	b, _ := result.TryAsBool()
	if b.Value {
		t.Fatalf("expected false")
	}
}

func TestNotNegatesTruthiness(t *testing.T) {
	result, _ := run(t, &Not{Arg: Num(0)})
	b, _ := result.TryAsBool()
	if !b.Value {
		t.Fatalf("Not(0) should be True")
	}
}

func TestComparisonWrapsResultInBool(t *testing.T) {
	result, _ := run(t, Cmp(runtime.Less, Num(1), Num(2)))
	b, ok := result.TryAsBool()
	if !ok || !b.Value {
		t.Fatalf("expected True, got %v", result.Value())
	}
}

func TestClassDefinitionBindsClassByName(t *testing.T) {
	cls := NewClass("Empty", nil)
	closure := runtime.NewClosure()
	ctx := runtime.NewContext(&bytes.Buffer{})
	if _, err := NewClassDefinition(cls).Execute(closure, ctx); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	bound, err := closure.Get("Empty")
	if err != nil {
		t.Fatalf("expected class bound under its own name: %v", err)
	}
	if bound.Value() != cls {
		t.Fatalf("expected the bound value to be the same class pointer")
	}
}

func TestNewInstanceNeverAliasesAcrossEvaluations(t *testing.T) {
	cls := NewClass("Counter", nil)
	node := &NewInstance{Class: cls}
	closure := runtime.NewClosure()
	ctx := runtime.NewContext(&bytes.Buffer{})

	firstHolder, err := node.Execute(closure, ctx)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	first, _ := firstHolder.TryAsClassInstance()
	first.Fields.Define("count", runtime.Own(runtime.Number{Value: 1}))

	secondHolder, err := node.Execute(closure, ctx)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, _ := secondHolder.TryAsClassInstance()
	if second.Fields.Has("count") {
		t.Fatalf("repeated evaluation of the same NewInstance node must allocate a fresh instance, not alias the previous one")
	}
}

func TestNewInstanceCallsInitWithMatchingArity(t *testing.T) {
	cls := NewClass("Point", nil, Def("__init__", []string{"x"}, FieldSet(Var("self"), "x", Var("x"))))
	node := &NewInstance{Class: cls, Args: []Statement{Num(7)}}
	closure := runtime.NewClosure()
	ctx := runtime.NewContext(&bytes.Buffer{})

	holder, err := node.Execute(closure, ctx)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	inst, _ := holder.TryAsClassInstance()
	xVal, err := inst.Fields.Get("x")
	if err != nil {
		t.Fatalf("expected __init__ to set field x: %v", err)
	}
	n, _ := xVal.TryAsNumber()
	if n.Value != 7 {
		t.Fatalf("expected x == 7, got %d", n.Value)
	}
}

func TestMethodCallOnNonInstanceIsAnError(t *testing.T) {
	_, err := Call(Num(1), "whatever").Execute(runtime.NewClosure(), runtime.NewContext(&bytes.Buffer{}))
	if err == nil {
		t.Fatalf("expected error calling a method on a non-instance")
	}
}

func TestFieldAssignmentOnNonInstanceYieldsNoneSilently(t *testing.T) {
	closure := runtime.NewClosure()
	closure.Define("x", runtime.Own(runtime.Number{Value: 1}))
	ctx := runtime.NewContext(&bytes.Buffer{})
	result, err := FieldSet(Var("x"), "field", Num(1)).Execute(closure, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsEmpty() {
		t.Fatalf("expected silent None for a field assignment on a non-instance, got %v", result.Value())
	}
}
