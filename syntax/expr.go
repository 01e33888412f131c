package syntax

import (
	"github.com/genfn/genfn/ast"
	"github.com/genfn/genfn/errors"
	"github.com/genfn/genfn/syntax/internal/token"
)

// binaryPrec orders infix operators; higher binds tighter. Zero means the
// token is not a binary operator.
var binaryPrec = map[token.Kind]int{
	token.OrOr:    1,
	token.AndAnd:  2,
	token.EqEq:    3,
	token.NotEq:   3,
	token.Lt:      4,
	token.LtEq:    4,
	token.Gt:      4,
	token.GtEq:    4,
	token.Pipe:    5,
	token.Caret:   6,
	token.Amp:     7,
	token.Shl:     8,
	token.Shr:     8,
	token.Plus:    9,
	token.Minus:   9,
	token.Star:    10,
	token.Slash:   10,
	token.Percent: 10,
}

var binaryOpText = map[token.Kind]string{
	token.OrOr: "||", token.AndAnd: "&&", token.EqEq: "==", token.NotEq: "!=",
	token.Lt: "<", token.LtEq: "<=", token.Gt: ">", token.GtEq: ">=",
	token.Pipe: "|", token.Caret: "^", token.Amp: "&", token.Shl: "<<",
	token.Shr: ">>", token.Plus: "+", token.Minus: "-", token.Star: "*",
	token.Slash: "/", token.Percent: "%",
}

// parseExpr parses a full expression, including the low-precedence range
// form `low..high`.
func (p *parser) parseExpr() (ast.Expr, error) {
	low, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(token.DotDot); ok {
		high, err := p.parseBinary(0)
		if err != nil {
			return nil, err
		}
		return &ast.Range{Low: low, High: high, Sp: errors.Over(low.Span(), high.Span())}, nil
	}
	return low, nil
}

func (p *parser) parseBinary(minPrec int) (ast.Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		prec := binaryPrec[p.peek().Kind]
		if prec == 0 || prec <= minPrec {
			return lhs, nil
		}
		op := p.next()
		rhs, err := p.parseBinary(prec)
		if err != nil {
			return nil, err
		}
		lhs = &ast.Binary{
			Op:   binaryOpText[op.Kind],
			X:    lhs,
			Y:    rhs,
			Sp:   errors.Over(lhs.Span(), rhs.Span()),
		}
	}
}

func (p *parser) parseUnary() (ast.Expr, error) {
	var op string
	switch p.peek().Kind {
	case token.Minus:
		op = "-"
	case token.Not:
		op = "!"
	case token.Amp:
		op = "&"
	default:
		return p.parsePostfix()
	}

	t := p.next()
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Op: op, X: x, Sp: errors.Over(t.Span, x.Span())}, nil
}

func (p *parser) parsePostfix() (ast.Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().Kind {
		case token.LParen:
			p.next()
			var args []ast.Expr
			for !p.at(token.RParen) {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
			}
			end, err := p.expectBody(token.RParen)
			if err != nil {
				return nil, err
			}
			x = &ast.Call{Fun: x, Args: args, Sp: errors.Over(x.Span(), end.Span)}

		case token.Dot:
			p.next()
			name, err := p.expectBody(token.Ident)
			if err != nil {
				return nil, err
			}
			x = &ast.Field{X: x, Name: name.Value, Sp: errors.Over(x.Span(), name.Span)}

		case token.LBracket:
			p.next()
			i, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			end, err := p.expectBody(token.RBracket)
			if err != nil {
				return nil, err
			}
			x = &ast.Index{X: x, I: i, Sp: errors.Over(x.Span(), end.Span)}

		case token.Question:
			t := p.next()
			x = &ast.Try{X: x, Sp: errors.Over(x.Span(), t.Span)}

		default:
			return x, nil
		}
	}
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	t := p.peek()
	switch t.Kind {
	case token.Int:
		p.next()
		return &ast.Lit{Kind: ast.LitInt, Text: t.Value, Sp: t.Span}, nil
	case token.Float:
		p.next()
		return &ast.Lit{Kind: ast.LitFloat, Text: t.Value, Sp: t.Span}, nil
	case token.String:
		p.next()
		return &ast.Lit{Kind: ast.LitString, Text: t.Value, Sp: t.Span}, nil
	case token.Rune:
		p.next()
		return &ast.Lit{Kind: ast.LitRune, Text: t.Value, Sp: t.Span}, nil
	case token.KwTrue, token.KwFalse:
		p.next()
		return &ast.Lit{Kind: ast.LitBool, Text: t.Value, Sp: t.Span}, nil
	case token.Ident:
		p.next()
		return &ast.Ident{Name: t.Value, Sp: t.Span}, nil
	case token.LParen:
		open := p.next()
		if end, ok := p.accept(token.RParen); ok {
			return &ast.Lit{Kind: ast.LitUnit, Text: "()", Sp: errors.Over(open.Span, end.Span)}, nil
		}
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		end, err := p.expectBody(token.RParen)
		if err != nil {
			return nil, err
		}
		return &ast.Paren{X: x, Sp: errors.Over(open.Span, end.Span)}, nil
	default:
		return nil, errors.MalformedBody(t.Span, "expected an expression, found %s", t.Kind)
	}
}
