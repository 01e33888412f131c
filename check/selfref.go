package check

import (
	"github.com/genfn/genfn/ast"
	"github.com/genfn/genfn/errors"
)

// borrow records one retained address-of: `let p = ... &x ...;` or
// `target = ... &x ...;`. For a let the live range runs from creation to the
// last statement referencing the binding; a borrow assigned into an existing
// structure is assumed to survive to the end of the body, since nothing here
// tracks when that structure dies.
type borrow struct {
	local   string // the local whose address was taken
	binding string // the name holding the reference, "" when assigned into a structure
	created int
	last    int
	span    errors.Span
}

// event is one statement in pre-order execution order.
type event struct {
	step   int
	yields bool
	uses   map[string]bool
}

// checkRetainedBorrows conservatively rejects any local whose address is
// taken and retained across a suspension point. The underlying runtime gives
// no relocation guarantee for such captures, and the wrapper must stay freely
// movable between resumptions.
func checkRetainedBorrows(def *ast.Definition) errors.List {
	w := &borrowWalk{}
	w.block(def.Body)

	end := w.step
	for i := range w.borrows {
		b := &w.borrows[i]
		if b.binding == "" {
			b.last = end
			continue
		}
		for _, ev := range w.events {
			if ev.step > b.created && ev.uses[b.binding] {
				b.last = ev.step
			}
		}
	}

	var diags errors.List
	for _, b := range w.borrows {
		for _, ev := range w.events {
			if ev.yields && ev.step > b.created && ev.step <= b.last {
				diags = append(diags, errors.EscapingSelfReference(b.span, b.local))
				break
			}
		}
	}
	return diags
}

type borrowWalk struct {
	step    int
	events  []event
	borrows []borrow
}

func (w *borrowWalk) block(b *ast.Block) {
	for _, s := range b.Stmts {
		w.stmt(s)
	}
}

func (w *borrowWalk) stmt(s ast.Stmt) {
	w.step++
	ev := event{step: w.step, uses: map[string]bool{}}

	switch s := s.(type) {
	case *ast.Block:
		w.events = append(w.events, ev)
		w.block(s)
		return
	case *ast.Let:
		w.collect(&ev, s.Value)
		if local, ok := retainedAddr(s.Value); ok {
			w.borrows = append(w.borrows, borrow{
				local:   local,
				binding: s.Name,
				created: w.step,
				last:    w.step,
				span:    s.Span(),
			})
		}
		w.events = append(w.events, ev)
		return
	case *ast.Assign:
		w.collect(&ev, s.Target)
		w.collect(&ev, s.Value)
		if local, ok := retainedAddr(s.Value); ok {
			w.borrows = append(w.borrows, borrow{
				local:   local,
				created: w.step,
				last:    w.step,
				span:    s.Span(),
			})
		}
		w.events = append(w.events, ev)
		return
	case *ast.If:
		w.collect(&ev, s.Cond)
		w.events = append(w.events, ev)
		w.block(s.Then)
		if s.Else != nil {
			w.stmt(s.Else)
		}
		return
	case *ast.While:
		w.collect(&ev, s.Cond)
		w.events = append(w.events, ev)
		w.block(s.Body)
		return
	case *ast.For:
		w.collect(&ev, s.Iter)
		w.events = append(w.events, ev)
		w.block(s.Body)
		return
	case *ast.Yield:
		ev.yields = true
		w.collect(&ev, s.Value)
		w.events = append(w.events, ev)
		return
	case *ast.Return:
		w.collect(&ev, s.Value)
		w.events = append(w.events, ev)
		return
	case *ast.ExprStmt:
		ev.yields = containsTry(s.X)
		w.collect(&ev, s.X)
		w.events = append(w.events, ev)
		return
	default:
		w.events = append(w.events, ev)
		return
	}
}

// collect records identifier uses inside e, and flips the yield flag when an
// error-propagation expression makes the statement a suspension point.
func (w *borrowWalk) collect(ev *event, e ast.Expr) {
	if e == nil {
		return
	}
	ast.Inspect(e, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Ident:
			ev.uses[n.Name] = true
		case *ast.Try:
			ev.yields = true
		}
		return true
	})
}

func containsTry(e ast.Expr) bool {
	found := false
	ast.Inspect(e, func(n ast.Node) bool {
		if _, ok := n.(*ast.Try); ok {
			found = true
		}
		return !found
	})
	return found
}

// retainedAddr reports whether the stored expression contains an address-of
// of a local, and names the local. An `&x` passed directly as a call
// argument is not retained and does not count.
func retainedAddr(e ast.Expr) (string, bool) {
	switch e := e.(type) {
	case *ast.Unary:
		if e.Op == "&" {
			if name, ok := rootIdent(e.X); ok {
				return name, true
			}
		}
		return retainedAddr(e.X)
	case *ast.Paren:
		return retainedAddr(e.X)
	case *ast.Binary:
		if name, ok := retainedAddr(e.X); ok {
			return name, true
		}
		return retainedAddr(e.Y)
	case *ast.Field:
		return retainedAddr(e.X)
	case *ast.Index:
		return retainedAddr(e.X)
	}
	return "", false
}

// rootIdent descends selections and subscripts to the base identifier.
func rootIdent(e ast.Expr) (string, bool) {
	for {
		switch x := e.(type) {
		case *ast.Ident:
			return x.Name, true
		case *ast.Field:
			e = x.X
		case *ast.Index:
			e = x.X
		case *ast.Paren:
			e = x.X
		default:
			return "", false
		}
	}
}
