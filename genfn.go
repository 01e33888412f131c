package genfn

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/genfn/genfn/ast"
	"github.com/genfn/genfn/check"
	"github.com/genfn/genfn/codegen"
	"github.com/genfn/genfn/desugar"
	"github.com/genfn/genfn/syntax"
)

// Options configures an expansion run.
type Options struct {
	// Package names the emitted Go package. Empty means "main".
	Package string

	// CoroImport overrides the runtime import path in emitted code.
	CoroImport string

	// SelfRef selects how address-of-local captures across suspension
	// points are treated. The zero value rejects them.
	SelfRef check.SelfRefPolicy
}

// Expand runs the whole pipeline over source text containing one or more
// iterator items and returns the emitted Go file.
func Expand(source string, opts Options) ([]byte, error) {
	defs, err := Parse(source, opts)
	if err != nil {
		return nil, err
	}
	return Emit(defs, opts)
}

// Parse recognizes and validates every iterator item in the source without
// emitting anything. Useful for listing definitions and for diagnostics-only
// runs.
func Parse(source string, opts Options) ([]*ast.Definition, error) {
	start := time.Now()

	defs, err := syntax.ParseFile(source)
	if err != nil {
		return nil, err
	}

	v := check.Validator{SelfRef: opts.SelfRef}
	for _, def := range defs {
		if err := v.Validate(def); err != nil {
			return nil, err
		}
	}

	Logger().Debug("recognized definitions",
		zap.Int("count", len(defs)),
		zap.Duration("elapsed", time.Since(start)))
	return defs, nil
}

// Emit desugars already-validated definitions and synthesizes the Go file.
func Emit(defs []*ast.Definition, opts Options) ([]byte, error) {
	lowered := make([]*ast.Definition, len(defs))
	for i, def := range defs {
		lowered[i] = desugar.Desugar(def)
	}
	return codegen.Emit(lowered, codegen.Options{
		Package:    opts.Package,
		CoroImport: opts.CoroImport,
	})
}

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the pipeline logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the pipeline logger. It also installs the logger in
// the emission stage so one call covers the whole run.
func SetLogger(l *zap.Logger) {
	logger = l
	codegen.SetLogger(l)
}
