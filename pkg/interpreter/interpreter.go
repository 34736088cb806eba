// Package interpreter drives the lexer, parser, and AST evaluator end to
// end. A return signal that escapes every enclosing MethodBody is
// itself an error, because there is no method activation left to catch
// it.
package interpreter

import (
	"fmt"

	"mint/interpreter-go/pkg/ast"
	"mint/interpreter-go/pkg/parser"
	"mint/interpreter-go/pkg/runtime"
)

// Run evaluates a parsed program's statements in order against closure
// and ctx, returning the last statement's result. A Return that escapes
// every method body is reported as an error.
func Run(program []ast.Statement, closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	result := runtime.None()
	for _, stmt := range program {
		value, err := stmt.Execute(closure, ctx)
		if err != nil {
			if _, ok := ast.AsReturnSignal(err); ok {
				return runtime.None(), fmt.Errorf("return statement outside of a method body")
			}
			return runtime.None(), err
		}
		result = value
	}
	return result, nil
}

// RunSource lexes, parses, and evaluates src in one call: the pipeline
// the CLI and tests drive a whole program through.
func RunSource(src string, closure *runtime.Closure, ctx *runtime.Context) (runtime.ObjectHolder, error) {
	p, err := parser.New(src)
	if err != nil {
		return runtime.None(), err
	}
	program, err := p.ParseProgram()
	if err != nil {
		return runtime.None(), err
	}
	return Run(program, closure, ctx)
}
