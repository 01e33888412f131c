package desugar

import (
	"fmt"

	"github.com/genfn/genfn/ast"
)

// Desugar produces a new definition whose body contains only suspension and
// termination points in place of yield and `?` forms. It is total on
// validated input: it cannot fail, and any shape it could not handle would
// signal a validator gap rather than a user error.
func Desugar(def *ast.Definition) *ast.Definition {
	r := &rewriter{}

	out := &ast.Definition{
		Name:      def.Name,
		Params:    make([]ast.Param, len(def.Params)),
		YieldType: def.YieldType,
		Body:      r.block(def.Body),
		Sp:        def.Sp,
	}
	copy(out.Params, def.Params)
	if def.SizeHint != nil {
		_, out.SizeHint = r.hoist(def.SizeHint)
	}
	return out
}

type rewriter struct {
	tmp int
}

func (r *rewriter) fresh() string {
	name := fmt.Sprintf("_try%d", r.tmp)
	r.tmp++
	return name
}

func (r *rewriter) block(b *ast.Block) *ast.Block {
	out := &ast.Block{Sp: b.Sp}
	for _, s := range b.Stmts {
		out.Stmts = append(out.Stmts, r.stmt(s)...)
	}
	return out
}

// stmt rewrites one statement into its desugared form. Hoisted bind-or-fail
// statements for any `?` subexpressions come first, in evaluation order.
func (r *rewriter) stmt(s ast.Stmt) []ast.Stmt {
	switch s := s.(type) {
	case *ast.Yield:
		binds, v := r.hoist(s.Value)
		if v == nil {
			v = &ast.Lit{Kind: ast.LitUnit, Text: "()", Sp: s.Sp}
		}
		return append(binds, &ast.Suspend{Value: v, Sp: s.Sp})

	case *ast.Return:
		// The validator only lets unit returns through; a return simply
		// ends the sequence.
		return []ast.Stmt{&ast.Terminate{Sp: s.Sp}}

	case *ast.Let:
		binds, v := r.hoist(s.Value)
		out := &ast.Let{Name: s.Name, Value: v, Sp: s.Sp}
		if s.Type != nil {
			t := *s.Type
			out.Type = &t
		}
		return append(binds, out)

	case *ast.Assign:
		tbinds, target := r.hoist(s.Target)
		vbinds, v := r.hoist(s.Value)
		binds := append(tbinds, vbinds...)
		return append(binds, &ast.Assign{Target: target, Op: s.Op, Value: v, Sp: s.Sp})

	case *ast.If:
		binds, cond := r.hoist(s.Cond)
		out := &ast.If{Cond: cond, Then: r.block(s.Then), Sp: s.Sp}
		if s.Else != nil {
			els := r.stmt(s.Else)
			if len(els) == 1 {
				out.Else = els[0]
			} else {
				// An else-if chain whose condition suspends: the hoisted
				// binds may only run when the branch is reached, so the
				// whole tail moves into an else block.
				out.Else = &ast.Block{Stmts: els, Sp: s.Else.Span()}
			}
		}
		return append(binds, out)

	case *ast.While:
		binds, cond := r.hoist(s.Cond)
		body := r.block(s.Body)
		if len(binds) == 0 {
			return []ast.Stmt{&ast.While{Cond: cond, Body: body, Sp: s.Sp}}
		}
		// The condition suspends, so it must re-run every iteration: the
		// loop becomes `while true` with the binds and an exit guard at the
		// top of the body.
		guard := &ast.If{
			Cond: &ast.Unary{Op: "!", X: &ast.Paren{X: cond, Sp: cond.Span()}, Sp: cond.Span()},
			Then: &ast.Block{Stmts: []ast.Stmt{&ast.Break{Sp: s.Sp}}, Sp: s.Sp},
			Sp:   s.Sp,
		}
		stmts := append(binds, guard)
		stmts = append(stmts, body.Stmts...)
		return []ast.Stmt{&ast.While{
			Cond: &ast.Lit{Kind: ast.LitBool, Text: "true", Sp: s.Sp},
			Body: &ast.Block{Stmts: stmts, Sp: body.Sp},
			Sp:   s.Sp,
		}}

	case *ast.For:
		binds, iter := r.hoist(s.Iter)
		out := &ast.For{Var: s.Var, Iter: iter, Body: r.block(s.Body), Sp: s.Sp}
		return append(binds, out)

	case *ast.Block:
		return []ast.Stmt{r.block(s)}

	case *ast.ExprStmt:
		binds, x := r.hoist(s.X)
		return append(binds, &ast.ExprStmt{X: x, Sp: s.Sp})

	case *ast.Break:
		return []ast.Stmt{&ast.Break{Sp: s.Sp}}

	case *ast.Continue:
		return []ast.Stmt{&ast.Continue{Sp: s.Sp}}

	default:
		// Suspend, Terminate and TryBind never occur in recognizer output.
		return []ast.Stmt{s}
	}
}

// hoist clones an expression, replacing every `?` with a reference to a
// fresh binding and returning the bind-or-fail statements that populate
// those bindings, in evaluation order.
func (r *rewriter) hoist(e ast.Expr) ([]ast.Stmt, ast.Expr) {
	switch e := e.(type) {
	case nil:
		return nil, nil

	case *ast.Try:
		binds, x := r.hoist(e.X)
		name := r.fresh()
		binds = append(binds, &ast.TryBind{Name: name, X: x, Sp: e.Sp})
		return binds, &ast.Ident{Name: name, Sp: e.Sp}

	case *ast.Lit:
		return nil, &ast.Lit{Kind: e.Kind, Text: e.Text, Sp: e.Sp}

	case *ast.Ident:
		return nil, &ast.Ident{Name: e.Name, Sp: e.Sp}

	case *ast.Unary:
		binds, x := r.hoist(e.X)
		return binds, &ast.Unary{Op: e.Op, X: x, Sp: e.Sp}

	case *ast.Binary:
		bx, x := r.hoist(e.X)
		by, y := r.hoist(e.Y)
		return append(bx, by...), &ast.Binary{Op: e.Op, X: x, Y: y, Sp: e.Sp}

	case *ast.Call:
		binds, fun := r.hoist(e.Fun)
		args := make([]ast.Expr, len(e.Args))
		for i, a := range e.Args {
			b, x := r.hoist(a)
			binds = append(binds, b...)
			args[i] = x
		}
		return binds, &ast.Call{Fun: fun, Args: args, Sp: e.Sp}

	case *ast.Field:
		binds, x := r.hoist(e.X)
		return binds, &ast.Field{X: x, Name: e.Name, Sp: e.Sp}

	case *ast.Index:
		bx, x := r.hoist(e.X)
		bi, i := r.hoist(e.I)
		return append(bx, bi...), &ast.Index{X: x, I: i, Sp: e.Sp}

	case *ast.Range:
		bl, low := r.hoist(e.Low)
		bh, high := r.hoist(e.High)
		return append(bl, bh...), &ast.Range{Low: low, High: high, Sp: e.Sp}

	case *ast.Paren:
		binds, x := r.hoist(e.X)
		return binds, &ast.Paren{X: x, Sp: e.Sp}

	default:
		return nil, e
	}
}
