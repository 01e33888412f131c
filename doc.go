// Package genfn rewrites generator-flavored function syntax into Go source.
//
// An iterator item is written
//
//	fn* count_to(n i32) yields i32 {
//	    for i in 0..n {
//	        yield i;
//	    }
//	}
//
// and expands into an exported function CountTo(n int32) coro.Seq[int32]
// whose result produces 0, 1, ..., n-1 on demand. The body may suspend with
// `yield` and propagate errors with `?`; the expansion wraps a suspend/resume
// coroutine and exposes only the lazy-sequence capability to callers.
//
// # Architecture Overview
//
// The engine is a strict parse, validate, desugar, emit pipeline; each stage
// consumes the previous stage's output and failure at any stage aborts the
// whole run:
//
//	genfn/               Root package with the Expand entry points
//	├── ast/             Definition and statement/expression tree
//	├── syntax/          Recognizer: lexer and recursive-descent parser
//	├── check/           Restriction validator, collects all violations
//	├── desugar/         Control-flow rewriting to suspension form
//	├── codegen/         Go source emission
//	├── coro/            Suspend/resume runtime targeted by emitted code
//	├── errors/          Structured diagnostics with source spans
//	├── config/          .genfn.toml tool configuration
//	└── cmd/genfn/       Command line tool and interactive playground
//
// # Quick Start
//
// Expand a source file in one call:
//
//	src, err := genfn.Expand(input, genfn.Options{Package: "sequences"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("sequences_gen.go", src, 0o644)
//
// # Restrictions
//
// Three structural restrictions keep the expansion sound, enforced before
// any rewriting happens:
//
//   - every yield in a definition must produce the same value type
//   - return may not carry a non-unit value; it only ends the sequence
//   - the address of a local must not be retained across a suspension
//     point, since the produced value may move between resumptions
//
// All violations in a definition are reported together, each with the span
// of the offending syntax.
package genfn
