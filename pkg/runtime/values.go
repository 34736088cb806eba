// Package runtime implements the value model: a tagged Value sum, a
// reference-holding wrapper (ObjectHolder), and the class/method table
// single inheritance walks.
package runtime

import (
	"fmt"
	"io"
)

// Kind identifies the runtime value variant.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindClass
	KindClassInstance
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindClass:
		return "class"
	case KindClassInstance:
		return "class_instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour of every runtime object.
type Value interface {
	Kind() Kind
	// Print writes the value's canonical textual form to w.
	Print(w io.Writer, ctx *Context) error
}

// Context carries evaluator-wide services: currently just the output
// sink the embedder supplies.
type Context struct {
	output io.Writer
}

// NewContext constructs a Context writing to the given sink.
func NewContext(output io.Writer) *Context {
	return &Context{output: output}
}

// OutputStream returns the sink supplied by the embedder.
func (c *Context) OutputStream() io.Writer { return c.output }

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type Number struct {
	Value int64
}

func (Number) Kind() Kind { return KindNumber }

func (n Number) Print(w io.Writer, _ *Context) error {
	_, err := fmt.Fprintf(w, "%d", n.Value)
	return err
}

type String struct {
	Value string
}

func (String) Kind() Kind { return KindString }

func (s String) Print(w io.Writer, _ *Context) error {
	_, err := io.WriteString(w, s.Value)
	return err
}

type Bool struct {
	Value bool
}

func (Bool) Kind() Kind { return KindBool }

func (b Bool) Print(w io.Writer, _ *Context) error {
	text := "False"
	if b.Value {
		text = "True"
	}
	_, err := io.WriteString(w, text)
	return err
}

//-----------------------------------------------------------------------------
// Classes and instances
//-----------------------------------------------------------------------------

// Method is a named, fixed-arity callable body.
type Method struct {
	Name         string
	FormalParams []string
	Body         Executable
}

// Executable is satisfied by the AST statement type a Method body holds.
// It is defined here (rather than importing pkg/ast) to keep the runtime
// package free of an AST dependency; pkg/ast closes the loop by
// implementing it.
type Executable interface {
	Execute(closure *Closure, ctx *Context) (ObjectHolder, error)
}

// Class owns an ordered method table and an optional parent for single
// inheritance. Parent is a plain, non-owning pointer into the class table
// the top-level closure owns; Go's GC makes reference-counting unnecessary.
type Class struct {
	Name    string
	Methods []Method
	Parent  *Class
}

func (*Class) Kind() Kind { return KindClass }

func (c *Class) Print(w io.Writer, _ *Context) error {
	_, err := fmt.Fprintf(w, "Class %s", c.Name)
	return err
}

// GetMethod walks the inheritance chain; the first name match wins
// regardless of arity; arity is checked at the call site.
func (c *Class) GetMethod(name string) *Method {
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			return &c.Methods[i]
		}
	}
	if c.Parent != nil {
		return c.Parent.GetMethod(name)
	}
	return nil
}

// HasMethod reports whether a method with the given name and declared
// arity is reachable through the inheritance chain.
func (c *Class) HasMethod(name string, arity int) bool {
	m := c.GetMethod(name)
	return m != nil && len(m.FormalParams) == arity
}

// ClassInstance is an object of a Class with its own field closure. Every
// instance is allocated fresh by NewInstance (pkg/ast), never embedded
// inside an AST node, so that repeated evaluation of the same
// NewInstance node never aliases storage.
type ClassInstance struct {
	Class  *Class
	Fields *Closure
}

// NewClassInstance allocates a fresh instance bound to cls, with an empty
// field closure.
func NewClassInstance(cls *Class) *ClassInstance {
	return &ClassInstance{Class: cls, Fields: NewClosure()}
}

func (*ClassInstance) Kind() Kind { return KindClassInstance }

// Print writes the result of a zero-arg __str__ if defined, else an
// identity token carrying the class name and address.
func (ci *ClassInstance) Print(w io.Writer, ctx *Context) error {
	if ci.Class.HasMethod("__str__", 0) {
		result, err := ci.Call("__str__", nil, ctx)
		if err != nil {
			return err
		}
		if result.IsEmpty() {
			_, err := io.WriteString(w, "None")
			return err
		}
		return result.Value().Print(w, ctx)
	}
	_, err := fmt.Fprintf(w, "<%s instance at %p>", ci.Class.Name, ci)
	return err
}

// HasMethod delegates to the owning class.
func (ci *ClassInstance) HasMethod(name string, arity int) bool {
	return ci.Class.HasMethod(name, arity)
}

// Call validates arity, binds a fresh closure with a non-owning self and
// the actual arguments, executes the body, and returns its result.
func (ci *ClassInstance) Call(name string, actualArgs []ObjectHolder, ctx *Context) (ObjectHolder, error) {
	if !ci.HasMethod(name, len(actualArgs)) {
		return ObjectHolder{}, fmt.Errorf("Class %s does not implement %s method", ci.Class.Name, name)
	}
	method := ci.Class.GetMethod(name)
	closure := NewClosure()
	closure.Define("self", Share(ci))
	for i, param := range method.FormalParams {
		closure.Define(param, actualArgs[i])
	}
	return method.Body.Execute(closure, ctx)
}
