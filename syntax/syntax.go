package syntax

import (
	"github.com/genfn/genfn/ast"
	"github.com/genfn/genfn/errors"
	"github.com/genfn/genfn/syntax/internal/token"
)

// Parse recognizes a single iterator item from src.
func Parse(src string) (*ast.Definition, error) {
	toks, err := token.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	def, err := p.parseItem()
	if err != nil {
		return nil, err
	}
	if !p.at(token.EOF) {
		return nil, errors.MalformedBody(p.peek().Span, "unexpected %s after iterator item", p.peek().Kind)
	}
	return def, nil
}

// ParseFile recognizes every iterator item in src, in order. The first
// failure aborts recognition.
func ParseFile(src string) ([]*ast.Definition, error) {
	toks, err := token.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	var defs []*ast.Definition
	for !p.at(token.EOF) {
		def, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}
