package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/genfn/genfn/ast"
	"github.com/genfn/genfn/errors"
)

// emitter writes the three pieces of one definition: wrapper struct, Next
// method, public constructor. It renders desugared trees only; a yield or
// `?` node reaching it is a pipeline bug.
type emitter struct {
	buf    bytes.Buffer
	indent int

	elem  string            // Go element type of the emitted sequence
	succ  string            // success type inside a Result element, "" otherwise
	scope map[string]string // Go types of params and annotated lets
	err   *errors.Error
}

func (e *emitter) linef(format string, args ...any) {
	for i := 0; i < e.indent; i++ {
		e.buf.WriteByte('\t')
	}
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteByte('\n')
}

func (e *emitter) blank() {
	e.buf.WriteByte('\n')
}

func (e *emitter) fail(span errors.Span, format string, args ...any) {
	if e.err == nil {
		e.err = errors.New(errors.PhaseEmit, errors.KindInternal).
			Span(span).
			Detail(format, args...).
			Build()
	}
}

func (e *emitter) definition(def *ast.Definition) {
	declared := def.YieldType.Text
	if succ, ok := ast.ResultElem(declared); ok {
		e.succ = goType(succ)
	} else {
		e.succ = ""
	}
	e.elem = goType(declared)
	e.scope = make(map[string]string, len(def.Params))
	for _, p := range def.Params {
		e.scope[p.Name] = goType(p.Type.Text)
	}

	wrapper := wrapperName(def.Name)
	public := exportName(def.Name)

	e.linef("type %s struct {", wrapper)
	e.indent++
	e.linef("co *coro.Coroutine[%s]", e.elem)
	if def.SizeHint != nil {
		e.linef("hint int")
		e.linef("exact bool")
	}
	e.indent--
	e.linef("}")
	e.blank()

	e.linef("func (it *%s) Next() (%s, bool) {", wrapper, e.elem)
	e.indent++
	e.linef("v, state := it.co.Resume()")
	e.linef("return v, state == coro.Yielded")
	e.indent--
	e.linef("}")
	e.blank()

	e.linef("func (it *%s) SizeHint() (int, bool) {", wrapper)
	e.indent++
	if def.SizeHint != nil {
		e.linef("return it.hint, it.exact")
	} else {
		e.linef("return 0, false")
	}
	e.indent--
	e.linef("}")
	e.blank()

	params := make([]string, len(def.Params))
	for i, p := range def.Params {
		params[i] = p.Name + " " + goType(p.Type.Text)
	}

	e.linef("// %s returns a lazy sequence of %s values.", public, e.elem)
	e.linef("func %s(%s) coro.Seq[%s] {", public, strings.Join(params, ", "), e.elem)
	e.indent++
	e.linef("co := coro.New(func(y *coro.Yielder[%s]) {", e.elem)
	e.indent++
	e.stmts(def.Body.Stmts)
	e.indent--
	e.linef("})")
	if def.SizeHint != nil {
		e.linef("return &%s{co: co, hint: int(%s), exact: true}", wrapper, e.expr(def.SizeHint))
	} else {
		e.linef("return &%s{co: co}", wrapper)
	}
	e.indent--
	e.linef("}")
}

// ----------------------------------------------------------------------------
// Statements

func (e *emitter) stmts(list []ast.Stmt) {
	for _, s := range list {
		e.stmt(s)
	}
}

func (e *emitter) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Let:
		if s.Type != nil {
			t := goType(s.Type.Text)
			e.scope[s.Name] = t
			e.linef("var %s %s = %s", s.Name, t, e.expr(s.Value))
		} else {
			e.linef("%s := %s", s.Name, e.expr(s.Value))
		}

	case *ast.Assign:
		e.linef("%s %s %s", e.expr(s.Target), s.Op, e.expr(s.Value))

	case *ast.If:
		e.ifStmt(s)

	case *ast.While:
		if lit, ok := s.Cond.(*ast.Lit); ok && lit.Kind == ast.LitBool && lit.Text == "true" {
			e.linef("for {")
		} else {
			e.linef("for %s {", e.expr(s.Cond))
		}
		e.indent++
		e.stmts(s.Body.Stmts)
		e.indent--
		e.linef("}")

	case *ast.For:
		e.forStmt(s)

	case *ast.Block:
		e.linef("{")
		e.indent++
		e.stmts(s.Stmts)
		e.indent--
		e.linef("}")

	case *ast.Suspend:
		v := e.expr(s.Value)
		if e.succ != "" {
			v = "coro.Success(" + v + ")"
		}
		e.linef("y.Suspend(%s)", v)

	case *ast.Terminate:
		e.linef("return")

	case *ast.TryBind:
		e.linef("%s, %sErr := %s", s.Name, s.Name, e.expr(s.X))
		e.linef("if %sErr != nil {", s.Name)
		e.indent++
		e.linef("y.Suspend(coro.Failure[%s](%sErr))", e.succ, s.Name)
		e.linef("return")
		e.indent--
		e.linef("}")

	case *ast.Break:
		e.linef("break")

	case *ast.Continue:
		e.linef("continue")

	case *ast.ExprStmt:
		e.linef("%s", e.expr(s.X))

	default:
		e.fail(s.Span(), "statement %T survived desugaring", s)
	}
}

func (e *emitter) ifStmt(s *ast.If) {
	e.linef("if %s {", e.expr(s.Cond))
	e.indent++
	e.stmts(s.Then.Stmts)
	e.indent--

	for {
		switch els := s.Else.(type) {
		case nil:
			e.linef("}")
			return
		case *ast.If:
			e.linef("} else if %s {", e.expr(els.Cond))
			e.indent++
			e.stmts(els.Then.Stmts)
			e.indent--
			s = els
		case *ast.Block:
			e.linef("} else {")
			e.indent++
			e.stmts(els.Stmts)
			e.indent--
			e.linef("}")
			return
		default:
			e.fail(els.Span(), "else branch %T survived desugaring", els)
			return
		}
	}
}

func (e *emitter) forStmt(s *ast.For) {
	if rng, ok := s.Iter.(*ast.Range); ok {
		low := e.expr(rng.Low)
		if conv := e.rangeConv(rng); conv != "" {
			low = conv + "(" + low + ")"
		}
		high := e.expr(rng.High)
		e.linef("for %s := %s; %s < %s; %s++ {", s.Var, low, s.Var, high, s.Var)
	} else {
		e.linef("for _, %s := range %s {", s.Var, e.expr(s.Iter))
	}
	e.indent++
	e.stmts(s.Body.Stmts)
	e.indent--
	e.linef("}")
}

// rangeConv picks a conversion for the loop start so the induction variable
// gets the bound's type when the start is a bare integer literal.
func (e *emitter) rangeConv(rng *ast.Range) string {
	lit, ok := rng.Low.(*ast.Lit)
	if !ok || lit.Kind != ast.LitInt {
		return ""
	}
	id, ok := rng.High.(*ast.Ident)
	if !ok {
		return ""
	}
	if t := e.scope[id.Name]; isIntType(t) && t != "int" {
		return t
	}
	return ""
}

// ----------------------------------------------------------------------------
// Expressions

func (e *emitter) expr(x ast.Expr) string {
	switch x := x.(type) {
	case nil:
		return ""
	case *ast.Lit:
		if x.Kind == ast.LitUnit {
			return "struct{}{}"
		}
		return x.Text
	case *ast.Ident:
		return x.Name
	case *ast.Unary:
		switch x.X.(type) {
		case *ast.Unary, *ast.Binary:
			return x.Op + "(" + e.expr(x.X) + ")"
		}
		return x.Op + e.expr(x.X)
	case *ast.Binary:
		return e.binary(x)
	case *ast.Call:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = e.expr(a)
		}
		return e.expr(x.Fun) + "(" + strings.Join(args, ", ") + ")"
	case *ast.Field:
		return e.expr(x.X) + "." + x.Name
	case *ast.Index:
		return e.expr(x.X) + "[" + e.expr(x.I) + "]"
	case *ast.Paren:
		return "(" + e.expr(x.X) + ")"
	default:
		e.fail(x.Span(), "expression %T survived desugaring", x)
		return ""
	}
}

// goBinaryPrec orders infix operators by Go's binding strength. The surface
// grammar binds `+`/`-` tighter than shifts and shifts tighter than `&`;
// Go groups all of those at multiplicative or additive level instead, so the
// emitter cannot rely on operator text alone to reproduce the parsed tree.
var goBinaryPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3, "<": 3, "<=": 3, ">": 3, ">=": 3,
	"+": 4, "-": 4, "|": 4, "^": 4,
	"*": 5, "/": 5, "%": 5, "<<": 5, ">>": 5, "&": 5,
}

func (e *emitter) binary(x *ast.Binary) string {
	prec := goBinaryPrec[x.Op]
	return e.operand(x.X, prec, false) + " " + x.Op + " " + e.operand(x.Y, prec, true)
}

// operand renders one side of a binary operator, adding parentheses whenever
// Go's left-associative grouping would otherwise re-group the tree.
func (e *emitter) operand(x ast.Expr, parent int, right bool) string {
	s := e.expr(x)
	b, ok := x.(*ast.Binary)
	if !ok {
		return s
	}
	if p := goBinaryPrec[b.Op]; p < parent || (p == parent && right) {
		return "(" + s + ")"
	}
	return s
}
