package codegen

import (
	"bytes"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/tools/imports"

	"github.com/genfn/genfn/ast"
	"github.com/genfn/genfn/errors"
)

// DefaultCoroImport is the import path of the coroutine runtime the emitted
// code targets when no override is configured.
const DefaultCoroImport = "github.com/genfn/genfn/coro"

// Options configures emission.
type Options struct {
	// Package names the emitted package. Empty means "main".
	Package string

	// CoroImport overrides the runtime import path. The path must still
	// resolve to a package named coro, since the emitted code refers to it
	// by that name.
	CoroImport string
}

func (o Options) withDefaults() Options {
	if o.Package == "" {
		o.Package = "main"
	}
	if o.CoroImport == "" {
		o.CoroImport = DefaultCoroImport
	}
	return o
}

// Emit synthesizes a complete Go source file from desugared definitions:
// for each one, a wrapper struct owning the coroutine, a Next method that
// maps resumption onto the lazy-sequence contract, and an exported
// constructor returning coro.Seq only. The output is gofmt-formatted.
func Emit(defs []*ast.Definition, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	start := time.Now()

	var buf bytes.Buffer
	buf.WriteString("// Code generated by genfn. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", opts.Package)
	fmt.Fprintf(&buf, "import %q\n\n", opts.CoroImport)

	for i, def := range defs {
		e := &emitter{}
		e.definition(def)
		if e.err != nil {
			return nil, e.err
		}
		buf.Write(e.buf.Bytes())
		if i < len(defs)-1 {
			buf.WriteByte('\n')
		}
	}

	src, err := imports.Process("genfn_gen.go", buf.Bytes(), nil)
	if err != nil {
		// Emission is total on desugared input, so unformattable output is
		// a pipeline bug.
		return nil, errors.New(errors.PhaseEmit, errors.KindInternal).
			Detail("emitted source does not format").
			Cause(err).
			Build()
	}

	Logger().Debug("emitted definitions",
		zap.Int("count", len(defs)),
		zap.String("package", opts.Package),
		zap.Duration("elapsed", time.Since(start)))

	return src, nil
}
