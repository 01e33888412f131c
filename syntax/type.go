package syntax

import (
	"strings"

	"github.com/genfn/genfn/ast"
	"github.com/genfn/genfn/errors"
	"github.com/genfn/genfn/syntax/internal/token"
)

// parseType recognizes the type grammar: `()`, `[]T`, `*T`, and possibly
// qualified, possibly generic named types like `Result<string>` or
// `bytes.Buffer`. The text is carried verbatim; normalization to Go
// spelling happens in the emitter.
func (p *parser) parseType() (ast.Type, error) {
	start := p.peek().Span

	var b strings.Builder
	end, err := p.writeType(&b)
	if err != nil {
		return ast.Type{}, err
	}
	return ast.Type{Text: b.String(), Sp: errors.Over(start, end)}, nil
}

func (p *parser) writeType(b *strings.Builder) (errors.Span, error) {
	switch p.peek().Kind {
	case token.LParen:
		open := p.next()
		end, err := p.expectSig(token.RParen, "')' completing the unit type `()`")
		if err != nil {
			return errors.Span{}, err
		}
		b.WriteString("()")
		return errors.Over(open.Span, end.Span), nil

	case token.LBracket:
		p.next()
		if _, err := p.expectSig(token.RBracket, "']' in slice type"); err != nil {
			return errors.Span{}, err
		}
		b.WriteString("[]")
		return p.writeType(b)

	case token.Star:
		p.next()
		b.WriteString("*")
		return p.writeType(b)

	case token.Ident:
		name := p.next()
		b.WriteString(name.Value)
		end := name.Span

		if _, ok := p.accept(token.Dot); ok {
			sel, err := p.expectSig(token.Ident, "identifier after '.' in qualified type")
			if err != nil {
				return errors.Span{}, err
			}
			b.WriteString(".")
			b.WriteString(sel.Value)
			end = sel.Span
		}

		if _, ok := p.accept(token.Lt); ok {
			b.WriteString("<")
			for {
				if _, err := p.writeType(b); err != nil {
					return errors.Span{}, err
				}
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
				b.WriteString(", ")
			}
			gt, err := p.expectSig(token.Gt, "'>' closing the type argument list")
			if err != nil {
				return errors.Span{}, err
			}
			b.WriteString(">")
			end = gt.Span
		}
		return end, nil

	default:
		return errors.Span{}, errors.MalformedSignature(p.peek().Span, "expected a type, found %s", p.peek().Kind)
	}
}
