// Package ast defines the AST node set: every node implements a single
// Execute(closure, context) contract and returns an ObjectHolder. There
// is a single Statement interface rather than a split
// Expression/Statement hierarchy: this language has no syntactic
// distinction between the two.
package ast

import (
	"bytes"
	"fmt"
	"io"

	"mint/interpreter-go/pkg/runtime"
)

// Statement is the shared contract every AST node satisfies. It also
// satisfies runtime.Executable, so any Statement can be used directly as
// a Method's body.
type Statement interface {
	Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error)
}

var _ runtime.Executable = Statement(nil)

//-----------------------------------------------------------------------------
// Literals: required by any grammar that can express `1+2` or 'hello'.
//-----------------------------------------------------------------------------

type NumberLiteral struct{ Value int64 }

func (n *NumberLiteral) Execute(*runtime.Closure, *runtime.Context) (runtime.ObjectHolder, error) {
	return runtime.Own(runtime.Number{Value: n.Value}), nil
}

type StringLiteral struct{ Value string }

func (s *StringLiteral) Execute(*runtime.Closure, *runtime.Context) (runtime.ObjectHolder, error) {
	return runtime.Own(runtime.String{Value: s.Value}), nil
}

type BoolLiteral struct{ Value bool }

func (b *BoolLiteral) Execute(*runtime.Closure, *runtime.Context) (runtime.ObjectHolder, error) {
	return runtime.Own(runtime.Bool{Value: b.Value}), nil
}

type NoneLiteral struct{}

func (*NoneLiteral) Execute(*runtime.Closure, *runtime.Context) (runtime.ObjectHolder, error) {
	return runtime.None(), nil
}

//-----------------------------------------------------------------------------
// Assignment / variable access
//-----------------------------------------------------------------------------

// Assignment evaluates RV, binds it into closure[Var], and returns it.
type Assignment struct {
	Var string
	RV  Statement
}

func (a *Assignment) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	value, err := a.RV.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	closure.Define(a.Var, value)
	return value, nil
}

// VariableValue resolves a single identifier, or a dotted path through
// nested ClassInstance field closures.
type VariableValue struct {
	DottedIDs []string
}

func (v *VariableValue) Execute(closure *runtime.Closure, _ *runtime.Context) (runtime.ObjectHolder, error) {
	cur := closure
	for i := 0; i+1 < len(v.DottedIDs); i++ {
		val, err := cur.Get(v.DottedIDs[i])
		if err != nil {
			return runtime.None(), err
		}
		ci, ok := val.TryAsClassInstance()
		if !ok {
			return runtime.None(), fmt.Errorf("Not a class instance")
		}
		cur = ci.Fields
	}
	return cur.Get(v.DottedIDs[len(v.DottedIDs)-1])
}

//-----------------------------------------------------------------------------
// Output
//-----------------------------------------------------------------------------

// Print evaluates each argument, writes it (or the literal "None" for an
// empty holder) space-separated and newline-terminated to the context's
// output stream, and returns None.
type Print struct {
	Args []Statement
}

func (p *Print) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	w := ctx.OutputStream()
	for i, arg := range p.Args {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return runtime.None(), err
			}
		}
		value, err := arg.Execute(closure, ctx)
		if err != nil {
			return runtime.None(), err
		}
		if err := printOrNone(w, value, ctx); err != nil {
			return runtime.None(), err
		}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return runtime.None(), err
	}
	return runtime.None(), nil
}

func printOrNone(w io.Writer, h runtime.ObjectHolder, ctx *runtime.Context) error {
	if h.IsEmpty() {
		_, err := io.WriteString(w, "None")
		return err
	}
	return h.Value().Print(w, ctx)
}

//-----------------------------------------------------------------------------
// Method calls and stringification
//-----------------------------------------------------------------------------

// MethodCall evaluates Object, requires it to be a ClassInstance,
// evaluates Args left-to-right, and dispatches via ClassInstance.Call.
type MethodCall struct {
	Object Statement
	Method string
	Args   []Statement
}

func (m *MethodCall) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	objVal, err := m.Object.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	ci, ok := objVal.TryAsClassInstance()
	if !ok {
		return runtime.None(), fmt.Errorf("Object is not a class instance")
	}
	args := make([]runtime.ObjectHolder, len(m.Args))
	for i, a := range m.Args {
		args[i], err = a.Execute(closure, ctx)
		if err != nil {
			return runtime.None(), err
		}
	}
	return ci.Call(m.Method, args, ctx)
}

// Stringify evaluates Arg, prints it into a buffer (or "None"), and
// returns Own(String(buffer)).
type Stringify struct {
	Arg Statement
}

func (s *Stringify) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	value, err := s.Arg.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	var buf bytes.Buffer
	if err := printOrNone(&buf, value, ctx); err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.String{Value: buf.String()}), nil
}

//-----------------------------------------------------------------------------
// Arithmetic
//-----------------------------------------------------------------------------

// binaryOperation factors the common LHS/RHS shape shared by Add, Sub,
// Mult, and Div.
type binaryOperation struct {
	LHS Statement
	RHS Statement
}

func (b *binaryOperation) operands(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, runtime.ObjectHolder, error) {
	lhs, err := b.LHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), runtime.None(), err
	}
	rhs, err := b.RHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), runtime.None(), err
	}
	return lhs, rhs, nil
}

type Add struct{ binaryOperation }

func NewAdd(lhs, rhs Statement) *Add { return &Add{binaryOperation{lhs, rhs}} }

func (a *Add) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := a.operands(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if ln, ok := lhs.TryAsNumber(); ok {
		if rn, ok := rhs.TryAsNumber(); ok {
			return runtime.Own(runtime.Number{Value: ln.Value + rn.Value}), nil
		}
	}
	if ls, ok := lhs.TryAsString(); ok {
		if rs, ok := rhs.TryAsString(); ok {
			return runtime.Own(runtime.String{Value: ls.Value + rs.Value}), nil
		}
	}
	if ci, ok := lhs.TryAsClassInstance(); ok && ci.HasMethod("__add__", 1) {
		return ci.Call("__add__", []runtime.ObjectHolder{rhs}, ctx)
	}
	return runtime.None(), fmt.Errorf("Cannot add arguments")
}

type Sub struct{ binaryOperation }

func NewSub(lhs, rhs Statement) *Sub { return &Sub{binaryOperation{lhs, rhs}} }

func (s *Sub) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := s.operands(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	ln, lok := lhs.TryAsNumber()
	rn, rok := rhs.TryAsNumber()
	if !lok || !rok {
		return runtime.None(), fmt.Errorf("Cannot subtract arguments")
	}
	return runtime.Own(runtime.Number{Value: ln.Value - rn.Value}), nil
}

type Mult struct{ binaryOperation }

func NewMult(lhs, rhs Statement) *Mult { return &Mult{binaryOperation{lhs, rhs}} }

func (m *Mult) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := m.operands(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	ln, lok := lhs.TryAsNumber()
	rn, rok := rhs.TryAsNumber()
	if !lok || !rok {
		return runtime.None(), fmt.Errorf("Cannot multiply arguments")
	}
	return runtime.Own(runtime.Number{Value: ln.Value * rn.Value}), nil
}

type Div struct{ binaryOperation }

func NewDiv(lhs, rhs Statement) *Div { return &Div{binaryOperation{lhs, rhs}} }

func (d *Div) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := d.operands(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	ln, lok := lhs.TryAsNumber()
	rn, rok := rhs.TryAsNumber()
	if !lok || !rok {
		return runtime.None(), fmt.Errorf("Cannot divide arguments")
	}
	if rn.Value == 0 {
		return runtime.None(), fmt.Errorf("Zero division")
	}
	// Go's integer division already truncates toward zero.
	return runtime.Own(runtime.Number{Value: ln.Value / rn.Value}), nil
}

//-----------------------------------------------------------------------------
// Control flow
//-----------------------------------------------------------------------------

// Compound evaluates each statement in order and returns None. It must
// not intercept a return signal; any error (including one) propagates
// unchanged.
type Compound struct {
	Statements []Statement
}

func (c *Compound) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	for _, stmt := range c.Statements {
		if _, err := stmt.Execute(closure, ctx); err != nil {
			return runtime.None(), err
		}
	}
	return runtime.None(), nil
}

// returnSignal is a distinguishable, non-exceptional Go error carrying a
// return's payload as non-local control transfer. Only MethodBody
// unwraps it.
type returnSignal struct {
	value runtime.ObjectHolder
}

func (r returnSignal) Error() string { return "return" }

// AsReturnSignal reports whether err is a return signal, and its payload.
// Exported so pkg/interpreter can detect a return that escaped every
// enclosing MethodBody (a return outside any method).
func AsReturnSignal(err error) (runtime.ObjectHolder, bool) {
	rs, ok := err.(returnSignal)
	if !ok {
		return runtime.None(), false
	}
	return rs.value, true
}

// Return evaluates Stmt and signals a non-local exit carrying the result
// up to the nearest enclosing MethodBody.
type Return struct {
	Stmt Statement
}

func (r *Return) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	value, err := r.Stmt.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.None(), returnSignal{value: value}
}

// MethodBody evaluates Body; if a return signal is captured here, it
// returns its payload, otherwise None.
type MethodBody struct {
	Body Statement
}

func (m *MethodBody) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	_, err := m.Body.Execute(closure, ctx)
	if err != nil {
		if value, ok := AsReturnSignal(err); ok {
			return value, nil
		}
		return runtime.None(), err
	}
	return runtime.None(), nil
}

// IfElse evaluates Cond; if truthy, evaluates Then and returns its
// result; otherwise evaluates Else if present, else returns None.
type IfElse struct {
	Cond Statement
	Then Statement
	Else Statement // nil when absent
}

func (i *IfElse) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	cond, err := i.Cond.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if runtime.IsTrue(cond) {
		return i.Then.Execute(closure, ctx)
	}
	if i.Else != nil {
		return i.Else.Execute(closure, ctx)
	}
	return runtime.None(), nil
}

//-----------------------------------------------------------------------------
// Logical operators
//-----------------------------------------------------------------------------

// Or short-circuits: if LHS is truthy, returns Bool(true) without
// evaluating RHS; otherwise returns Bool(IsTrue(RHS)).
type Or struct {
	LHS Statement
	RHS Statement
}

func (o *Or) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	lhs, err := o.LHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if runtime.IsTrue(lhs) {
		return runtime.Own(runtime.Bool{Value: true}), nil
	}
	rhs, err := o.RHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.Bool{Value: runtime.IsTrue(rhs)}), nil
}

// And short-circuits: if LHS is not truthy, returns Bool(false) without
// evaluating RHS; otherwise returns Bool(IsTrue(RHS)).
type And struct {
	LHS Statement
	RHS Statement
}

func (a *And) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	lhs, err := a.LHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if !runtime.IsTrue(lhs) {
		return runtime.Own(runtime.Bool{Value: false}), nil
	}
	rhs, err := a.RHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.Bool{Value: runtime.IsTrue(rhs)}), nil
}

// Not returns Bool(¬IsTrue(Arg)).
type Not struct {
	Arg Statement
}

func (n *Not) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	arg, err := n.Arg.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.Bool{Value: !runtime.IsTrue(arg)}), nil
}

//-----------------------------------------------------------------------------
// Comparison
//-----------------------------------------------------------------------------

// Comparator matches the signature of runtime.Equal/Less/NotEqual/
// Greater/LessOrEqual/GreaterOrEqual, so Comparison can be built directly
// against any of them.
type Comparator func(a, b runtime.ObjectHolder, ctx *runtime.Context) (bool, error)

// Comparison evaluates LHS and RHS, applies Cmp, and wraps the result in
// a Bool.
type Comparison struct {
	Cmp Comparator
	LHS Statement
	RHS Statement
}

func (c *Comparison) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	lhs, err := c.LHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	rhs, err := c.RHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	result, err := c.Cmp(lhs, rhs, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.Bool{Value: result}), nil
}

//-----------------------------------------------------------------------------
// Classes
//-----------------------------------------------------------------------------

// ClassDefinition binds a pre-built runtime.Class into the closure under
// its name and returns None. The class value is built once (by the
// parser) and shared; unlike NewInstance, there is no per-evaluation
// aliasing concern here, because class definitions are singletons by
// design.
type ClassDefinition struct {
	Cls runtime.ObjectHolder // holds a *runtime.Class
}

func NewClassDefinition(cls *runtime.Class) *ClassDefinition {
	return &ClassDefinition{Cls: runtime.Own(cls)}
}

func (c *ClassDefinition) Execute(closure *runtime.Closure, _ *runtime.Context) (runtime.ObjectHolder, error) {
	cls, ok := c.Cls.Value().(*runtime.Class)
	if !ok {
		return runtime.None(), fmt.Errorf("ClassDefinition does not hold a Class")
	}
	closure.Define(cls.Name, c.Cls)
	return runtime.None(), nil
}

// FieldAssignment resolves Object to a ClassInstance, evaluates RV, and
// writes it into the instance's field closure. If Object is not a class
// instance, it silently returns None rather than erroring.
type FieldAssignment struct {
	Object    *VariableValue
	FieldName string
	RV        Statement
}

func (f *FieldAssignment) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	objVal, err := f.Object.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	ci, ok := objVal.TryAsClassInstance()
	if !ok {
		return runtime.None(), nil
	}
	value, err := f.RV.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	ci.Fields.Define(f.FieldName, value)
	return value, nil
}

// NewInstance allocates a fresh ClassInstance (never aliasing a previous
// evaluation's storage), calls __init__ if the class defines one with
// matching arity, and returns a share to the instance.
type NewInstance struct {
	Class *runtime.Class
	Args  []Statement
}

func (n *NewInstance) Execute(closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	instance := runtime.NewClassInstance(n.Class)
	if n.Class.HasMethod("__init__", len(n.Args)) {
		args := make([]runtime.ObjectHolder, len(n.Args))
		for i, a := range n.Args {
			var err error
			args[i], err = a.Execute(closure, ctx)
			if err != nil {
				return runtime.None(), err
			}
		}
		if _, err := instance.Call("__init__", args, ctx); err != nil {
			return runtime.None(), err
		}
	}
	return runtime.Share(instance), nil
}
