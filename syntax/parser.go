package syntax

import (
	"github.com/genfn/genfn/ast"
	"github.com/genfn/genfn/errors"
	"github.com/genfn/genfn/syntax/internal/token"
)

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF terminator
	}
	return p.toks[p.pos]
}

func (p *parser) next() token.Token {
	t := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) at(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *parser) accept(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.next(), true
	}
	return token.Token{}, false
}

// expectSig consumes a token of the given kind or fails the signature parse.
func (p *parser) expectSig(kind token.Kind, what string) (token.Token, error) {
	if t, ok := p.accept(kind); ok {
		return t, nil
	}
	return token.Token{}, errors.MalformedSignature(p.peek().Span, "expected %s, found %s", what, p.peek().Kind)
}

// expectBody consumes a token of the given kind or fails the body parse.
func (p *parser) expectBody(kind token.Kind) (token.Token, error) {
	if t, ok := p.accept(kind); ok {
		return t, nil
	}
	return token.Token{}, errors.MalformedBody(p.peek().Span, "expected %s, found %s", kind, p.peek().Kind)
}

// ----------------------------------------------------------------------------
// Items

func (p *parser) parseItem() (*ast.Definition, error) {
	start := p.peek().Span

	sizeHint, err := p.parseAnnotation()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectSig(token.KwFn, "`fn*` introducing an iterator item"); err != nil {
		return nil, err
	}
	if _, err := p.expectSig(token.Star, "`*` after `fn` (iterator items are written `fn*`)"); err != nil {
		return nil, err
	}
	name, err := p.expectSig(token.Ident, "iterator item name")
	if err != nil {
		return nil, err
	}

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	// `yields` is contextual, so it arrives as a plain identifier.
	switch {
	case p.at(token.LBrace):
		return nil, errors.MalformedSignature(p.peek().Span, "missing `yields` clause before the iterator body")
	case p.at(token.Ident):
		if kw := p.next(); kw.Value != "yields" {
			return nil, errors.MalformedSignature(kw.Span,
				"expected contextual keyword `yields`, found %q", kw.Value)
		}
	default:
		return nil, errors.MalformedSignature(p.peek().Span,
			"expected contextual keyword `yields`, found %s", p.peek().Kind)
	}

	yieldType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if !p.at(token.LBrace) {
		return nil, errors.MalformedSignature(p.peek().Span, "missing iterator body")
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Definition{
		Name:      name.Value,
		Params:    params,
		YieldType: yieldType,
		Body:      body,
		SizeHint:  sizeHint,
		Sp:        errors.Over(start, body.Sp),
	}, nil
}

// parseAnnotation recognizes an optional `#[size_hint(expr)]` prefix.
func (p *parser) parseAnnotation() (ast.Expr, error) {
	if !p.at(token.Hash) {
		return nil, nil
	}
	p.next()
	if _, err := p.expectSig(token.LBracket, "'[' after '#'"); err != nil {
		return nil, err
	}
	name, err := p.expectSig(token.Ident, "annotation name")
	if err != nil {
		return nil, err
	}
	if name.Value != "size_hint" {
		return nil, errors.MalformedSignature(name.Span, "unknown annotation %q", name.Value)
	}
	if _, err := p.expectSig(token.LParen, "'(' opening the size_hint expression"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSig(token.RParen, "')' closing the size_hint expression"); err != nil {
		return nil, err
	}
	if _, err := p.expectSig(token.RBracket, "']' closing the annotation"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expectSig(token.LParen, "'(' opening the parameter list"); err != nil {
		return nil, err
	}

	var params []ast.Param
	for !p.at(token.RParen) {
		if t, ok := p.accept(token.Ellipsis); ok {
			return nil, errors.MalformedSignature(t.Span, "variadic parameters are not allowed in iterator items")
		}
		name, err := p.expectSig(token.Ident, "parameter name")
		if err != nil {
			return nil, err
		}
		// `...` in type position is the natural spelling of a variadic.
		if t, ok := p.accept(token.Ellipsis); ok {
			return nil, errors.MalformedSignature(t.Span, "variadic parameters are not allowed in iterator items")
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{
			Name: name.Value,
			Type: typ,
			Sp:   errors.Over(name.Span, typ.Sp),
		})
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}

	if _, err := p.expectSig(token.RParen, "')' closing the parameter list"); err != nil {
		return nil, err
	}
	return params, nil
}

// ----------------------------------------------------------------------------
// Statements

func (p *parser) parseBlock() (*ast.Block, error) {
	open, err := p.expectBody(token.LBrace)
	if err != nil {
		return nil, err
	}

	var stmts []ast.Stmt
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			return nil, errors.MalformedBody(p.peek().Span, "unclosed block")
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	end := p.next()

	return &ast.Block{Stmts: stmts, Sp: errors.Over(open.Span, end.Span)}, nil
}

func (p *parser) parseStmt() (ast.Stmt, error) {
	switch p.peek().Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwYield:
		return p.parseYield()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwBreak:
		t := p.next()
		if _, err := p.expectBody(token.Semi); err != nil {
			return nil, err
		}
		return &ast.Break{Sp: t.Span}, nil
	case token.KwContinue:
		t := p.next()
		if _, err := p.expectBody(token.Semi); err != nil {
			return nil, err
		}
		return &ast.Continue{Sp: t.Span}, nil
	case token.LBrace:
		return p.parseBlock()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *parser) parseLet() (ast.Stmt, error) {
	kw := p.next()
	name, err := p.expectBody(token.Ident)
	if err != nil {
		return nil, err
	}

	var typ *ast.Type
	if _, ok := p.accept(token.Colon); ok {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		typ = &t
	}

	if _, err := p.expectBody(token.Eq); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	semi, err := p.expectBody(token.Semi)
	if err != nil {
		return nil, err
	}

	return &ast.Let{
		Name:  name.Value,
		Type:  typ,
		Value: value,
		Sp:    errors.Over(kw.Span, semi.Span),
	}, nil
}

func (p *parser) parseYield() (ast.Stmt, error) {
	kw := p.next()

	var value ast.Expr
	if !p.at(token.Semi) {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		value = v
	}
	semi, err := p.expectBody(token.Semi)
	if err != nil {
		return nil, err
	}

	return &ast.Yield{Value: value, Sp: errors.Over(kw.Span, semi.Span)}, nil
}

func (p *parser) parseReturn() (ast.Stmt, error) {
	kw := p.next()

	var value ast.Expr
	if !p.at(token.Semi) {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		value = v
	}
	semi, err := p.expectBody(token.Semi)
	if err != nil {
		return nil, err
	}

	return &ast.Return{Value: value, Sp: errors.Over(kw.Span, semi.Span)}, nil
}

func (p *parser) parseIf() (ast.Stmt, error) {
	kw := p.next()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.If{Cond: cond, Then: then, Sp: errors.Over(kw.Span, then.Sp)}

	if _, ok := p.accept(token.KwElse); ok {
		if p.at(token.KwIf) {
			els, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt.Else = els
		} else {
			els, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			stmt.Else = els
		}
		stmt.Sp = errors.Over(kw.Span, stmt.Else.Span())
	}
	return stmt, nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	kw := p.next()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, Sp: errors.Over(kw.Span, body.Sp)}, nil
}

func (p *parser) parseFor() (ast.Stmt, error) {
	kw := p.next()
	name, err := p.expectBody(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectBody(token.KwIn); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{
		Var:  name.Value,
		Iter: iter,
		Body: body,
		Sp:   errors.Over(kw.Span, body.Sp),
	}, nil
}

var assignOps = map[token.Kind]string{
	token.Eq:      "=",
	token.PlusEq:  "+=",
	token.MinusEq: "-=",
	token.StarEq:  "*=",
	token.SlashEq: "/=",
}

// parseSimpleStmt parses an assignment or a bare expression statement.
func (p *parser) parseSimpleStmt() (ast.Stmt, error) {
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if op, ok := assignOps[p.peek().Kind]; ok {
		p.next()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		semi, err := p.expectBody(token.Semi)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{
			Target: x,
			Op:     op,
			Value:  value,
			Sp:     errors.Over(x.Span(), semi.Span),
		}, nil
	}

	semi, err := p.expectBody(token.Semi)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x, Sp: errors.Over(x.Span(), semi.Span)}, nil
}
