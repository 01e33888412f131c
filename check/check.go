package check

import (
	"github.com/genfn/genfn/ast"
	"github.com/genfn/genfn/errors"
)

// SelfRefPolicy selects how retained-borrow violations are handled.
type SelfRefPolicy int

const (
	// Reject refuses definitions that retain the address of a local across
	// a suspension point.
	Reject SelfRefPolicy = iota

	// Pin skips the retained-borrow check. The coroutine runtime keeps its
	// state on the heap for the lifetime of the computation, so addresses
	// taken into it stay valid even when the wrapper value is moved.
	Pin
)

// Validator holds validation policy. The zero value rejects retained
// borrows, which is the default.
type Validator struct {
	SelfRef SelfRefPolicy
}

// Validate runs all restriction checks with the default policy.
func Validate(def *ast.Definition) error {
	return Validator{}.Validate(def)
}

// Validate walks the definition and returns every violation found as an
// errors.List, or nil if the definition is valid. The definition is never
// mutated.
func (v Validator) Validate(def *ast.Definition) error {
	var diags errors.List
	diags = append(diags, checkYieldTypes(def)...)
	diags = append(diags, checkReturns(def)...)
	diags = append(diags, checkRangePositions(def)...)
	if v.SelfRef == Reject {
		diags = append(diags, checkRetainedBorrows(def)...)
	}
	return diags.Err()
}

// ----------------------------------------------------------------------------
// Single yielded type

// class is the coarse value-type bucket used to compare yields against each
// other and against the declared yields type without a type system. unknown
// is compatible with everything.
type class int

const (
	unknown class = iota
	classInt
	classFloat
	classString
	classRune
	classBool
	classUnit
)

func (c class) String() string {
	switch c {
	case classInt:
		return "integer"
	case classFloat:
		return "float"
	case classString:
		return "string"
	case classRune:
		return "rune"
	case classBool:
		return "bool"
	case classUnit:
		return "()"
	}
	return "unknown"
}

func checkYieldTypes(def *ast.Definition) errors.List {
	var diags errors.List

	declared := def.YieldType.Text
	elem, isResult := ast.ResultElem(declared)
	if !isResult {
		elem = declared
	}

	// The anchor is the declared type where it pins down a class, otherwise
	// the first yield whose value has an inferrable class.
	anchor := typeClass(elem)
	anchorName := elem

	ast.Inspect(def.Body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Yield:
			got := inferClass(n.Value)
			if got == unknown {
				return true
			}
			if anchor == unknown {
				anchor, anchorName = got, got.String()
				return true
			}
			if got != anchor {
				diags = append(diags, errors.MultipleYieldedTypes(n.Span(), anchorName, got.String()))
			}
		case *ast.Try:
			if !isResult {
				diags = append(diags, errors.New(errors.PhaseValidate, errors.KindMultipleYieldedTypes).
					Span(n.Span()).
					Detail("`?` yields an error value, but the declared yields type %s is not Result", declared).
					Help("declare the item as `yields Result<...>` to propagate errors").
					Build())
			}
		}
		return true
	})

	return diags
}

// inferClass guesses the value class of a yielded expression from its
// syntactic shape. Anything it cannot pin down is unknown and passes.
func inferClass(e ast.Expr) class {
	switch e := e.(type) {
	case nil:
		return classUnit
	case *ast.Lit:
		switch e.Kind {
		case ast.LitInt:
			return classInt
		case ast.LitFloat:
			return classFloat
		case ast.LitString:
			return classString
		case ast.LitRune:
			return classRune
		case ast.LitBool:
			return classBool
		case ast.LitUnit:
			return classUnit
		}
	case *ast.Paren:
		return inferClass(e.X)
	case *ast.Unary:
		switch e.Op {
		case "-":
			return inferClass(e.X)
		case "!":
			return classBool
		}
	case *ast.Binary:
		switch e.Op {
		case "==", "!=", "<", "<=", ">", ">=", "&&", "||":
			return classBool
		}
		if c := inferClass(e.X); c != unknown {
			return c
		}
		return inferClass(e.Y)
	}
	return unknown
}

// typeClass buckets declared type text. Unrecognized spellings are opaque
// and compare as unknown.
func typeClass(text string) class {
	switch text {
	case "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64",
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "byte":
		return classInt
	case "f32", "f64", "float32", "float64":
		return classFloat
	case "str", "string":
		return classString
	case "rune", "char":
		return classRune
	case "bool":
		return classBool
	case "()":
		return classUnit
	}
	return unknown
}

// ----------------------------------------------------------------------------
// Unit-only return

func checkReturns(def *ast.Definition) errors.List {
	var diags errors.List
	ast.Inspect(def.Body, func(n ast.Node) bool {
		r, ok := n.(*ast.Return)
		if !ok || r.Value == nil {
			return true
		}
		if lit, ok := r.Value.(*ast.Lit); ok && lit.Kind == ast.LitUnit {
			return true
		}
		diags = append(diags, errors.NonUnitReturn(r.Span()))
		return true
	})
	return diags
}

// ----------------------------------------------------------------------------
// Range position

// checkRangePositions rejects range expressions anywhere other than the
// sequence of a `for` loop, the only position they can be lowered in.
func checkRangePositions(def *ast.Definition) errors.List {
	var diags errors.List
	iters := map[*ast.Range]bool{}
	ast.Inspect(def.Body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.For:
			if r, ok := n.Iter.(*ast.Range); ok {
				iters[r] = true
			}
		case *ast.Range:
			if !iters[n] {
				diags = append(diags, errors.New(errors.PhaseValidate, errors.KindMalformedBody).
					Span(n.Span()).
					Detail("a range expression is only valid as the sequence of a `for` loop").
					Build())
			}
		}
		return true
	})
	return diags
}
