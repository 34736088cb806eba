package ast

import "mint/interpreter-go/pkg/runtime"

// Terse constructors for building trees in tests without a parser.

func Num(value int64) *NumberLiteral { return &NumberLiteral{Value: value} }

func Str(value string) *StringLiteral { return &StringLiteral{Value: value} }

func Bln(value bool) *BoolLiteral { return &BoolLiteral{Value: value} }

func NoneLit() *NoneLiteral { return &NoneLiteral{} }

func Var(dottedIDs ...string) *VariableValue { return &VariableValue{DottedIDs: dottedIDs} }

func Assign(name string, rv Statement) *Assignment { return &Assignment{Var: name, RV: rv} }

func Pr(args ...Statement) *Print { return &Print{Args: args} }

func Call(object Statement, method string, args ...Statement) *MethodCall {
	return &MethodCall{Object: object, Method: method, Args: args}
}

func Repr(arg Statement) *Stringify { return &Stringify{Arg: arg} }

func Seq(statements ...Statement) *Compound { return &Compound{Statements: statements} }

func Ret(stmt Statement) *Return { return &Return{Stmt: stmt} }

func Body(body Statement) *MethodBody { return &MethodBody{Body: body} }

func If(cond, then Statement) *IfElse { return &IfElse{Cond: cond, Then: then} }

func IfElseStmt(cond, then, els Statement) *IfElse {
	return &IfElse{Cond: cond, Then: then, Else: els}
}

func FieldSet(object *VariableValue, field string, rv Statement) *FieldAssignment {
	return &FieldAssignment{Object: object, FieldName: field, RV: rv}
}

func Cmp(cmp Comparator, lhs, rhs Statement) *Comparison {
	return &Comparison{Cmp: cmp, LHS: lhs, RHS: rhs}
}

// NewClass builds a *runtime.Class from a name, parent, and methods:
// the shape the parser will produce for a class definition.
func NewClass(name string, parent *runtime.Class, methods ...runtime.Method) *runtime.Class {
	return &runtime.Class{Name: name, Methods: methods, Parent: parent}
}

// Def builds a runtime.Method from a name, params, and body.
func Def(name string, params []string, body Statement) runtime.Method {
	return runtime.Method{Name: name, FormalParams: params, Body: Body(body)}
}
