package parser

import (
	"mint/interpreter-go/pkg/ast"
	"mint/interpreter-go/pkg/runtime"
	"mint/interpreter-go/pkg/token"
)

// parseExpression is the entry point into the precedence cascade:
// or > and > not > comparison > additive > multiplicative > unary > primary.
func (p *Parser) parseExpression() (ast.Statement, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Statement, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.Or {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Or{LHS: left, RHS: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Statement, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.And {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.And{LHS: left, RHS: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Statement, error) {
	if p.cur.Kind == token.Not {
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		return &ast.Not{Arg: arg}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Statement, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	cmp, ok := p.comparatorForCurrent()
	if !ok {
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ast.Comparison{Cmp: cmp, LHS: left, RHS: right}, nil
}

func (p *Parser) comparatorForCurrent() (ast.Comparator, bool) {
	switch p.cur.Kind {
	case token.Eq:
		return runtime.Equal, true
	case token.NotEq:
		return runtime.NotEqual, true
	case token.LessOrEq:
		return runtime.LessOrEqual, true
	case token.GreaterOrEq:
		return runtime.GreaterOrEqual, true
	case token.Char:
		switch p.cur.Char {
		case '<':
			return runtime.Less, true
		case '>':
			return runtime.Greater, true
		}
	}
	return nil, false
}

func (p *Parser) parseAdditive() (ast.Statement, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.Char && (p.cur.Char == '+' || p.cur.Char == '-') {
		op := p.cur.Char
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		if op == '+' {
			left = ast.NewAdd(left, right)
		} else {
			left = ast.NewSub(left, right)
		}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Statement, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.Char && (p.cur.Char == '*' || p.cur.Char == '/') {
		op := p.cur.Char
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == '*' {
			left = ast.NewMult(left, right)
		} else {
			left = ast.NewDiv(left, right)
		}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Statement, error) {
	if p.cur.Kind == token.Char && p.cur.Char == '-' {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewSub(&ast.NumberLiteral{Value: 0}, operand), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Statement, error) {
	switch p.cur.Kind {
	case token.Number:
		value := p.cur.Number
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.NumberLiteral{Value: value}, nil
	case token.String:
		value := p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.StringLiteral{Value: value}, nil
	case token.True:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.BoolLiteral{Value: true}, nil
	case token.False:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.BoolLiteral{Value: false}, nil
	case token.None:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.NoneLiteral{}, nil
	case token.Char:
		if p.cur.Char == '(' {
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectChar(')'); err != nil {
				return nil, err
			}
			return expr, nil
		}
		return nil, newError("unexpected character %q in expression", p.cur.Char)
	case token.Id:
		return p.parseIdentifierExpression()
	default:
		return nil, newError("unexpected token %s in expression", p.cur.Kind)
	}
}

// parseIdentifierExpression handles a bare identifier (class
// instantiation `Name(args)` or a variable reference), then any chain of
// `.field` accesses and `.method(args)` calls.
func (p *Parser) parseIdentifierExpression() (ast.Statement, error) {
	name := p.cur.Text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Kind == token.Char && p.cur.Char == '(' {
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		cls, ok := p.classes[name]
		if !ok {
			return nil, newError("unknown class %s", name)
		}
		return p.parsePostfix(&ast.NewInstance{Class: cls, Args: args})
	}
	return p.parsePostfix(&ast.VariableValue{DottedIDs: []string{name}})
}

// parsePostfix consumes a chain of `.field` and `.method(args)`
// suffixes following a primary expression.
func (p *Parser) parsePostfix(expr ast.Statement) (ast.Statement, error) {
	for p.cur.Kind == token.Char && p.cur.Char == '.' {
		if err := p.advance(); err != nil {
			return nil, err
		}
		idTok, err := p.expect(token.Id)
		if err != nil {
			return nil, err
		}
		if p.cur.Kind == token.Char && p.cur.Char == '(' {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			expr = &ast.MethodCall{Object: expr, Method: idTok.Text, Args: args}
			continue
		}
		vv, ok := expr.(*ast.VariableValue)
		if !ok {
			return nil, newError("cannot access field %s on a non-variable expression", idTok.Text)
		}
		vv.DottedIDs = append(vv.DottedIDs, idTok.Text)
	}
	return expr, nil
}

// parseArgList parses a parenthesized, comma-separated expression list.
// The caller has confirmed the current token is '('.
func (p *Parser) parseArgList() ([]ast.Statement, error) {
	if _, err := p.expectChar('('); err != nil {
		return nil, err
	}
	var args []ast.Statement
	for !(p.cur.Kind == token.Char && p.cur.Char == ')') {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Kind == token.Char && p.cur.Char == ',' {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expectChar(')'); err != nil {
		return nil, err
	}
	return args, nil
}
