package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full diagnostic",
			err: &Error{
				Phase:  PhaseValidate,
				Kind:   KindNonUnitReturn,
				Span:   Span{StartLine: 2, StartCol: 4, EndLine: 2, EndCol: 12},
				Detail: "iterator items can't return a non-() value",
				Help:   "returning in an iterator is only meant for stopping the iterator",
			},
			contains: []string{"3:5", "[validate]", "non_unit_return", "non-() value", "help:"},
		},
		{
			name: "minimal diagnostic",
			err: &Error{
				Phase: PhaseParse,
				Kind:  KindMalformedSignature,
			},
			contains: []string{"[parse]", "malformed_signature"},
		},
		{
			name: "diagnostic with cause",
			err: &Error{
				Phase:  PhaseEmit,
				Kind:   KindInternal,
				Detail: "format emitted source",
				Cause:  errors.New("unexpected token"),
			},
			contains: []string{"[emit]", "internal", "caused by", "unexpected token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	a := MalformedSignature(Span{}, "missing yields clause")
	b := MalformedSignature(Span{StartLine: 9}, "something else")
	c := MalformedBody(Span{}, "unparseable statement")

	if !errors.Is(a, b) {
		t.Error("same phase+kind should match")
	}
	if errors.Is(a, c) {
		t.Error("different kind should not match")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := New(PhaseParse, KindMalformedBody).Cause(cause).Build()

	if !errors.Is(err, cause) {
		t.Error("expected unwrap to reach root cause")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseValidate, KindMultipleYieldedTypes).
		Span(Span{StartLine: 4, StartCol: 8, EndLine: 4, EndCol: 15}).
		Detail("yielded value type %s conflicts with %s", "string", "int32").
		Help("all yields in one definition must agree").
		Build()

	if err.Phase != PhaseValidate || err.Kind != KindMultipleYieldedTypes {
		t.Fatalf("builder lost phase/kind: %+v", err)
	}
	if !strings.Contains(err.Error(), "string") || !strings.Contains(err.Error(), "int32") {
		t.Errorf("detail not formatted: %q", err.Error())
	}
}

func TestList(t *testing.T) {
	t.Run("empty is nil error", func(t *testing.T) {
		var l List
		if l.Err() != nil {
			t.Error("empty list should collapse to nil")
		}
	})

	t.Run("collects all violations", func(t *testing.T) {
		l := List{
			NonUnitReturn(Span{StartLine: 1}),
			EscapingSelfReference(Span{StartLine: 3}, "buf"),
		}
		msg := l.Err().Error()
		if !strings.Contains(msg, "2 diagnostics") {
			t.Errorf("expected count header, got %q", msg)
		}
		if !strings.Contains(msg, "non_unit_return") || !strings.Contains(msg, "escaping_self_reference") {
			t.Errorf("expected both kinds in %q", msg)
		}
		if !l.Has(KindNonUnitReturn) || !l.Has(KindEscapingSelfReference) {
			t.Error("Has should report both kinds")
		}
		if l.Has(KindMalformedBody) {
			t.Error("Has reported a kind not present")
		}
	})

	t.Run("single diagnostic renders bare", func(t *testing.T) {
		l := List{NonUnitReturn(Span{})}
		if strings.Contains(l.Error(), "diagnostics:") {
			t.Errorf("single entry should not use the list header: %q", l.Error())
		}
	})
}

func TestSpan(t *testing.T) {
	s := Over(Span{StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 4}, Span{StartLine: 3, StartCol: 0, EndLine: 3, EndCol: 7})
	want := Span{StartLine: 1, StartCol: 2, EndLine: 3, EndCol: 7}
	if s != want {
		t.Errorf("Over = %+v, want %+v", s, want)
	}
	if s.String() != "2:3" {
		t.Errorf("String = %q, want 2:3", s.String())
	}
	if !(Span{}).IsZero() {
		t.Error("zero span should report IsZero")
	}
	if s.IsZero() {
		t.Error("non-zero span reported IsZero")
	}
}
