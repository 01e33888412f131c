// Package syntax recognizes the iterator-item form
//
//	fn* name(params) yields T { body }
//
// and produces the ast.Definition consumed by the rest of the pipeline.
//
// Recognition is a pure parse: no side effects, no symbol resolution. The
// body grammar is the ordinary statement grammar (let, assignment, if/else,
// while, for-in, break, continue, return, nested blocks, expression
// statements) extended with the two iterator forms `yield EXPR` and `EXPR?`.
// `yields` is a contextual keyword: it is only special between the parameter
// list and the yielded type.
//
// Failures are reported as malformed_signature or malformed_body diagnostics
// pinned to the offending span, and abort recognition immediately.
package syntax
