// Package parser implements a recursive-descent construction of pkg/ast
// nodes. The grammar below is this repository's own.
package parser

import (
	"fmt"

	"mint/interpreter-go/pkg/ast"
	"mint/interpreter-go/pkg/lexer"
	"mint/interpreter-go/pkg/runtime"
	"mint/interpreter-go/pkg/token"
)

// ParserError reports a syntax error encountered while building the AST.
type ParserError struct {
	Message string
}

func (e *ParserError) Error() string { return e.Message }

func newError(format string, args ...any) *ParserError {
	return &ParserError{Message: fmt.Sprintf(format, args...)}
}

// Parser consumes tokens from a lexer.Lexer and builds pkg/ast nodes.
type Parser struct {
	lex *lexer.Lexer
	cur token.Token

	// classes tracks every class parsed so far by name, so that a
	// subclass's parent clause (`class B(A):`) can resolve directly to
	// the already-built *runtime.Class, built once at parse time rather
	// than walked at runtime.
	classes map[string]*runtime.Class
}

// New constructs a Parser over src.
func New(src string) (*Parser, error) {
	lex, err := lexer.New(src)
	if err != nil {
		return nil, err
	}
	return &Parser{lex: lex, cur: lex.CurrentToken(), classes: make(map[string]*runtime.Class)}, nil
}

// ParseProgram parses the whole input as a flat top-level statement list
// terminated by Eof; the result drives pkg/interpreter.Run directly.
func (p *Parser) ParseProgram() ([]ast.Statement, error) {
	var stmts []ast.Statement
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.Eof {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
	}
	return stmts, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.cur.Kind != kind {
		return token.Token{}, newError("expected %s, got %s", kind, p.cur.Kind)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

func (p *Parser) skipNewlines() error {
	for p.cur.Kind == token.Newline {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Kind {
	case token.Print:
		return p.parsePrint()
	case token.Return:
		return p.parseReturn()
	case token.If:
		return p.parseIfElse()
	case token.Class:
		return p.parseClassDefinition()
	default:
		return p.parseAssignmentOrExpressionStatement()
	}
}

func (p *Parser) parsePrint() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []ast.Statement
	if p.atStatementEnd() {
		return &ast.Print{}, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Kind != token.Char || p.cur.Char != ',' {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return &ast.Print{Args: args}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.atStatementEnd() {
		return &ast.Return{Stmt: &ast.NoneLiteral{}}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Stmt: expr}, nil
}

func (p *Parser) atStatementEnd() bool {
	return p.cur.Kind == token.Newline || p.cur.Kind == token.Eof || p.cur.Kind == token.Dedent
}

func (p *Parser) parseIfElse() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectChar(':'); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.IfElse{Cond: cond, Then: then}
	if p.cur.Kind == token.Else {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind == token.If {
			elseBranch, err := p.parseIfElse()
			if err != nil {
				return nil, err
			}
			node.Else = elseBranch
			return node, nil
		}
		if _, err := p.expectChar(':'); err != nil {
			return nil, err
		}
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Else = elseBlock
	}
	return node, nil
}

// parseBlock consumes a Newline, an Indent, a Newline-separated statement
// sequence, and the matching Dedent: Indent/Dedent wrap a block exactly
// the way the lexer emits them.
func (p *Parser) parseBlock() (ast.Statement, error) {
	if p.cur.Kind != token.Newline {
		return nil, newError("expected newline before block, got %s", p.cur.Kind)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Indent); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.Dedent {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Dedent); err != nil {
		return nil, err
	}
	return &ast.Compound{Statements: stmts}, nil
}

// parseClassDefinition parses `class Name:` or `class Name(Parent):`
// followed by an indented block of `def` members, constructing the
// runtime.Class directly.
func (p *Parser) parseClassDefinition() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Id)
	if err != nil {
		return nil, err
	}
	var parentName string
	if p.cur.Kind == token.Char && p.cur.Char == '(' {
		if err := p.advance(); err != nil {
			return nil, err
		}
		parentTok, err := p.expect(token.Id)
		if err != nil {
			return nil, err
		}
		parentName = parentTok.Text
		if _, err := p.expectChar(')'); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.Newline {
		return nil, newError("expected newline before class body, got %s", p.cur.Kind)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Indent); err != nil {
		return nil, err
	}
	cls := &runtime.Class{Name: nameTok.Text}
	if parentName != "" {
		parent, ok := p.classes[parentName]
		if !ok {
			return nil, newError("unknown parent class %s", parentName)
		}
		cls.Parent = parent
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.Dedent {
		method, err := p.parseMethodDefinition()
		if err != nil {
			return nil, err
		}
		cls.Methods = append(cls.Methods, method)
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Dedent); err != nil {
		return nil, err
	}
	p.classes[cls.Name] = cls
	return ast.NewClassDefinition(cls), nil
}

func (p *Parser) parseMethodDefinition() (runtime.Method, error) {
	if _, err := p.expect(token.Def); err != nil {
		return runtime.Method{}, err
	}
	nameTok, err := p.expect(token.Id)
	if err != nil {
		return runtime.Method{}, err
	}
	if _, err := p.expectChar('('); err != nil {
		return runtime.Method{}, err
	}
	var params []string
	for p.cur.Kind != token.Char || p.cur.Char != ')' {
		paramTok, err := p.expect(token.Id)
		if err != nil {
			return runtime.Method{}, err
		}
		params = append(params, paramTok.Text)
		if p.cur.Kind == token.Char && p.cur.Char == ',' {
			if err := p.advance(); err != nil {
				return runtime.Method{}, err
			}
			continue
		}
		break
	}
	if _, err := p.expectChar(')'); err != nil {
		return runtime.Method{}, err
	}
	if _, err := p.expectChar(':'); err != nil {
		return runtime.Method{}, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return runtime.Method{}, err
	}
	return runtime.Method{Name: nameTok.Text, FormalParams: params, Body: &ast.MethodBody{Body: body}}, nil
}

func (p *Parser) expectChar(c rune) (token.Token, error) {
	if p.cur.Kind != token.Char || p.cur.Char != c {
		return token.Token{}, newError("expected %q, got %s", c, p.cur.Kind)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

// parseAssignmentOrExpressionStatement handles `name = expr`,
// `obj.field = expr`, and bare expression statements (including a
// standalone MethodCall).
func (p *Parser) parseAssignmentOrExpressionStatement() (ast.Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == token.Char && p.cur.Char == '=' {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rv, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *ast.VariableValue:
			if len(target.DottedIDs) == 1 {
				return &ast.Assignment{Var: target.DottedIDs[0], RV: rv}, nil
			}
			object := &ast.VariableValue{DottedIDs: target.DottedIDs[:len(target.DottedIDs)-1]}
			field := target.DottedIDs[len(target.DottedIDs)-1]
			return &ast.FieldAssignment{Object: object, FieldName: field, RV: rv}, nil
		default:
			return nil, newError("left-hand side of an assignment must be a variable or field access")
		}
	}
	return expr, nil
}
