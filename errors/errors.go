package errors

import (
	"fmt"
	"strings"
)

// Phase indicates the pipeline stage in which the diagnostic was produced
type Phase string

const (
	PhaseParse    Phase = "parse"    // syntax recognition
	PhaseValidate Phase = "validate" // restriction checks
	PhaseDesugar  Phase = "desugar"  // control-flow rewriting
	PhaseEmit     Phase = "emit"     // Go source synthesis
)

// Kind categorizes the diagnostic
type Kind string

const (
	KindMalformedSignature    Kind = "malformed_signature"
	KindMalformedBody         Kind = "malformed_body"
	KindMultipleYieldedTypes  Kind = "multiple_yielded_types"
	KindNonUnitReturn         Kind = "non_unit_return"
	KindEscapingSelfReference Kind = "escaping_self_reference"

	// KindInternal marks a pipeline bug: the desugarer and emitter are total
	// on validated input, so any failure there is a validator gap rather than
	// a user-facing diagnostic.
	KindInternal Kind = "internal"
)

// Span identifies a range of source text. Both ends are inclusive and the
// line/column numbers are zero-indexed; rendering adds one.
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

// Over returns a span covering start through end.
func Over(start, end Span) Span {
	return Span{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.StartLine+1, s.StartCol+1)
}

// IsZero reports whether the span carries no position information.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Error is the structured diagnostic type used throughout the engine
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Help   string
	Span   Span
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if !e.Span.IsZero() {
		b.WriteString(e.Span.String())
		b.WriteString(": ")
	}

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Help != "" {
		b.WriteString(" (help: ")
		b.WriteString(e.Help)
		b.WriteByte(')')
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured diagnostic construction
type Builder struct {
	err Error
}

// New creates a new diagnostic builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Span sets the offending source span
func (b *Builder) Span(s Span) *Builder {
	b.err.Span = s
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Help sets an optional hint appended to the rendered message
func (b *Builder) Help(msg string) *Builder {
	b.err.Help = msg
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Build returns the constructed diagnostic
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common diagnostics

// MalformedSignature creates a signature recognition error
func MalformedSignature(span Span, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformedSignature,
		Span:   span,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// MalformedBody creates a body recognition error
func MalformedBody(span Span, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformedBody,
		Span:   span,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// MultipleYieldedTypes creates a yield type conflict error
func MultipleYieldedTypes(span Span, want, got string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindMultipleYieldedTypes,
		Span:   span,
		Detail: fmt.Sprintf("yielded value type %s conflicts with %s", got, want),
	}
}

// NonUnitReturn creates a valued-return error
func NonUnitReturn(span Span) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindNonUnitReturn,
		Span:   span,
		Detail: "iterator items can't return a non-() value",
		Help:   "returning in an iterator is only meant for stopping the iterator",
	}
}

// EscapingSelfReference creates a retained-borrow error
func EscapingSelfReference(span Span, local string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindEscapingSelfReference,
		Span:   span,
		Detail: fmt.Sprintf("address of local %q is retained across a yield point", local),
		Help:   "move the value into the iterator state or drop the reference before yielding",
	}
}

// Internal creates a pipeline-bug error
func Internal(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInternal,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// List aggregates multiple diagnostics so a single run reports every
// violation instead of the first one found.
type List []*Error

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d diagnostics:", len(l))
	for _, e := range l {
		b.WriteString("\n  ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Err returns the list as an error, or nil if it is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Has reports whether the list contains a diagnostic of the given kind.
func (l List) Has(kind Kind) bool {
	for _, e := range l {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
