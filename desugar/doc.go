// Package desugar rewrites validated iterator definitions into suspension
// form.
//
// The output tree contains no yield-expressions and no error-propagation
// expressions: yields become primitive suspension points, `?` expressions are
// hoisted into bind-or-fail statements that suspend with the error once and
// then terminate, and returns become early termination. Everything else is
// cloned structurally unchanged. The input tree is never mutated.
package desugar
