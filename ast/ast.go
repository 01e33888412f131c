package ast

import (
	"strings"

	"github.com/genfn/genfn/errors"
)

// Node is implemented by every element of the tree.
type Node interface {
	// Span returns the source text range the node was recognized from.
	// Synthesized nodes inherit the span of the construct they replace.
	Span() errors.Span
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Definition is the unit of transformation: one recognized iterator item.
type Definition struct {
	Name      string
	Params    []Param
	YieldType Type
	Body      *Block

	// SizeHint holds the optional #[size_hint(expr)] annotation, or nil.
	SizeHint Expr

	Sp errors.Span
}

func (d *Definition) Span() errors.Span { return d.Sp }

// Param is one named, typed parameter of a definition.
type Param struct {
	Name string
	Type Type
	Sp   errors.Span
}

func (p Param) Span() errors.Span { return p.Sp }

// Type carries type text verbatim. Normalization to Go spelling happens in
// the emitter, not here.
type Type struct {
	Text string
	Sp   errors.Span
}

func (t Type) Span() errors.Span { return t.Sp }

// ResultElem extracts the success type from `Result<T>` or `Result<T, E>`
// type text. The second result is false when the text is not a Result.
func ResultElem(text string) (string, bool) {
	inner, ok := strings.CutPrefix(text, "Result<")
	if !ok {
		return "", false
	}
	inner, ok = strings.CutSuffix(inner, ">")
	if !ok {
		return "", false
	}
	depth := 0
	for i, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(inner[:i]), true
			}
		}
	}
	return strings.TrimSpace(inner), true
}

// ----------------------------------------------------------------------------
// Statements

// Block is an ordered sequence of statements.
type Block struct {
	Stmts []Stmt
	Sp    errors.Span
}

// Let introduces a local binding: `let name = expr;` or `let name: T = expr;`.
type Let struct {
	Name  string
	Type  *Type
	Value Expr
	Sp    errors.Span
}

// Assign updates an existing binding or assignable expression.
type Assign struct {
	Target Expr
	Op     string
	Value  Expr
	Sp     errors.Span
}

// If is a conditional with an optional else branch. Else is nil, a *Block,
// or another *If for `else if` chains.
type If struct {
	Cond Expr
	Then *Block
	Else Stmt
	Sp   errors.Span
}

// While is a condition-driven loop.
type While struct {
	Cond Expr
	Body *Block
	Sp   errors.Span
}

// For is a `for name in expr { ... }` loop. Iter is frequently a Range.
type For struct {
	Var  string
	Iter Expr
	Body *Block
	Sp   errors.Span
}

// Yield suspends the computation handing over Value; Value is nil for a bare
// `yield;`, which yields the unit value.
type Yield struct {
	Value Expr
	Sp    errors.Span
}

// Return stops the iterator. Value survives recognition so the validator can
// point at it; valid definitions only ever carry a nil Value here.
type Return struct {
	Value Expr
	Sp    errors.Span
}

// Break exits the innermost loop.
type Break struct {
	Sp errors.Span
}

// Continue jumps to the next iteration of the innermost loop.
type Continue struct {
	Sp errors.Span
}

// ExprStmt is an expression evaluated for effect.
type ExprStmt struct {
	X  Expr
	Sp errors.Span
}

// Suspend is the desugared form of a yield: invoke the primitive suspension
// point with Value.
type Suspend struct {
	Value Expr
	Sp    errors.Span
}

// Terminate is the desugared early end of the computation.
type Terminate struct {
	Sp errors.Span
}

// TryBind is the desugared form of an error-propagation expression hoisted
// out of its statement: evaluate X, suspend with the error and terminate if
// it failed, otherwise bind the success value to Name.
type TryBind struct {
	Name string
	X    Expr
	Sp   errors.Span
}

func (n *Block) Span() errors.Span     { return n.Sp }
func (n *Let) Span() errors.Span       { return n.Sp }
func (n *Assign) Span() errors.Span    { return n.Sp }
func (n *If) Span() errors.Span        { return n.Sp }
func (n *While) Span() errors.Span     { return n.Sp }
func (n *For) Span() errors.Span       { return n.Sp }
func (n *Yield) Span() errors.Span     { return n.Sp }
func (n *Return) Span() errors.Span    { return n.Sp }
func (n *Break) Span() errors.Span     { return n.Sp }
func (n *Continue) Span() errors.Span  { return n.Sp }
func (n *ExprStmt) Span() errors.Span  { return n.Sp }
func (n *Suspend) Span() errors.Span   { return n.Sp }
func (n *Terminate) Span() errors.Span { return n.Sp }
func (n *TryBind) Span() errors.Span   { return n.Sp }

func (*Block) stmtNode()     {}
func (*Let) stmtNode()       {}
func (*Assign) stmtNode()    {}
func (*If) stmtNode()        {}
func (*While) stmtNode()     {}
func (*For) stmtNode()       {}
func (*Yield) stmtNode()     {}
func (*Return) stmtNode()    {}
func (*Break) stmtNode()     {}
func (*Continue) stmtNode()  {}
func (*ExprStmt) stmtNode()  {}
func (*Suspend) stmtNode()   {}
func (*Terminate) stmtNode() {}
func (*TryBind) stmtNode()   {}

// ----------------------------------------------------------------------------
// Expressions

// LitKind discriminates literal spellings so the validator can infer a
// yielded type without a type system.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitRune
	LitBool
	LitUnit
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float64"
	case LitString:
		return "string"
	case LitRune:
		return "rune"
	case LitBool:
		return "bool"
	case LitUnit:
		return "unit"
	}
	return "unknown"
}

// Lit is a literal, carried with its source spelling.
type Lit struct {
	Kind LitKind
	Text string
	Sp   errors.Span
}

// Ident is a bare identifier reference.
type Ident struct {
	Name string
	Sp   errors.Span
}

// Unary is a prefix operator application. Op "&" is the address-of form the
// self-reference validator tracks.
type Unary struct {
	Op string
	X  Expr
	Sp errors.Span
}

// Binary is an infix operator application.
type Binary struct {
	Op   string
	X, Y Expr
	Sp   errors.Span
}

// Call is a function or method invocation.
type Call struct {
	Fun  Expr
	Args []Expr
	Sp   errors.Span
}

// Field is a dotted selection.
type Field struct {
	X    Expr
	Name string
	Sp   errors.Span
}

// Index is a subscript.
type Index struct {
	X, I Expr
	Sp   errors.Span
}

// Range is the half-open interval `low..high`.
type Range struct {
	Low, High Expr
	Sp        errors.Span
}

// Paren preserves explicit grouping.
type Paren struct {
	X  Expr
	Sp errors.Span
}

// Try is the error-propagation form `expr?`.
type Try struct {
	X  Expr
	Sp errors.Span
}

func (n *Lit) Span() errors.Span    { return n.Sp }
func (n *Ident) Span() errors.Span  { return n.Sp }
func (n *Unary) Span() errors.Span  { return n.Sp }
func (n *Binary) Span() errors.Span { return n.Sp }
func (n *Call) Span() errors.Span   { return n.Sp }
func (n *Field) Span() errors.Span  { return n.Sp }
func (n *Index) Span() errors.Span  { return n.Sp }
func (n *Range) Span() errors.Span  { return n.Sp }
func (n *Paren) Span() errors.Span  { return n.Sp }
func (n *Try) Span() errors.Span    { return n.Sp }

func (*Lit) exprNode()    {}
func (*Ident) exprNode()  {}
func (*Unary) exprNode()  {}
func (*Binary) exprNode() {}
func (*Call) exprNode()   {}
func (*Field) exprNode()  {}
func (*Index) exprNode()  {}
func (*Range) exprNode()  {}
func (*Paren) exprNode()  {}
func (*Try) exprNode()    {}
