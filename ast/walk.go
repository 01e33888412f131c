package ast

// Inspect traverses the tree rooted at n in depth-first pre-order, calling f
// for each node. If f returns false the node's children are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}

	switch n := n.(type) {
	case *Definition:
		Inspect(n.Body, f)
	case *Block:
		for _, s := range n.Stmts {
			Inspect(s, f)
		}
	case *Let:
		Inspect(n.Value, f)
	case *Assign:
		Inspect(n.Target, f)
		Inspect(n.Value, f)
	case *If:
		Inspect(n.Cond, f)
		Inspect(n.Then, f)
		if n.Else != nil {
			Inspect(n.Else, f)
		}
	case *While:
		Inspect(n.Cond, f)
		Inspect(n.Body, f)
	case *For:
		Inspect(n.Iter, f)
		Inspect(n.Body, f)
	case *Yield:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *Return:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *ExprStmt:
		Inspect(n.X, f)
	case *Suspend:
		Inspect(n.Value, f)
	case *TryBind:
		Inspect(n.X, f)
	case *Unary:
		Inspect(n.X, f)
	case *Binary:
		Inspect(n.X, f)
		Inspect(n.Y, f)
	case *Call:
		Inspect(n.Fun, f)
		for _, a := range n.Args {
			Inspect(a, f)
		}
	case *Field:
		Inspect(n.X, f)
	case *Index:
		Inspect(n.X, f)
		Inspect(n.I, f)
	case *Range:
		Inspect(n.Low, f)
		Inspect(n.High, f)
	case *Paren:
		Inspect(n.X, f)
	case *Try:
		Inspect(n.X, f)
	case *Break, *Continue, *Terminate, *Lit, *Ident:
		// leaves
	}
}

// ContainsYieldPoint reports whether the subtree has a suspension point: a
// yield-expression or an error-propagation expression (which desugars to a
// suspend).
func ContainsYieldPoint(n Node) bool {
	found := false
	Inspect(n, func(n Node) bool {
		switch n.(type) {
		case *Yield, *Try, *Suspend, *TryBind:
			found = true
			return false
		}
		return !found
	})
	return found
}
