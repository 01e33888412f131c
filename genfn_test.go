package genfn

import (
	"errors"
	"strings"
	"testing"

	"github.com/genfn/genfn/check"
	genferrors "github.com/genfn/genfn/errors"
)

func TestExpand_CountTo(t *testing.T) {
	src, err := Expand("fn* count_to(n i32) yields i32 { for i in 0..n { yield i; } }",
		Options{Package: "seq"})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	for _, want := range []string{
		"package seq",
		"func CountTo(n int32) coro.Seq[int32]",
		"y.Suspend(i)",
	} {
		if !strings.Contains(string(src), want) {
			t.Errorf("expanded source missing %q:\n%s", want, src)
		}
	}
}

func TestExpand_MultipleItems(t *testing.T) {
	src, err := Expand(`
		fn* ones(n i32) yields i32 { for i in 0..n { yield 1; } }
		fn* twos(n i32) yields i32 { for i in 0..n { yield 2; } }
	`, Options{Package: "seq"})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if !strings.Contains(string(src), "func Ones(") || !strings.Contains(string(src), "func Twos(") {
		t.Errorf("expanded source missing a definition:\n%s", src)
	}
}

func TestExpand_ParseFailureAborts(t *testing.T) {
	_, err := Expand("fn* broken(n i32) { yield 1; }", Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	var diag *genferrors.Error
	if !errors.As(err, &diag) || diag.Kind != genferrors.KindMalformedSignature {
		t.Errorf("error = %v, want malformed_signature", err)
	}
}

func TestExpand_ValidationFailureAborts(t *testing.T) {
	_, err := Expand(`fn* f() yields i32 { yield 1; yield "two"; }`, Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	var list genferrors.List
	if !errors.As(err, &list) || !list.Has(genferrors.KindMultipleYieldedTypes) {
		t.Errorf("error = %v, want multiple_yielded_types", err)
	}
}

func TestExpand_PinPolicy(t *testing.T) {
	src := "fn* f() yields i32 { let x = 1; let p = &x; yield 0; touch(p); }"

	if _, err := Expand(src, Options{}); err == nil {
		t.Fatal("default policy should reject the retained borrow")
	}
	if _, err := Expand(src, Options{SelfRef: check.Pin}); err != nil {
		t.Errorf("Pin policy rejected: %v", err)
	}
}

func TestParse_ListsDefinitions(t *testing.T) {
	defs, err := Parse(`
		fn* ones() yields i32 { yield 1; }
		fn* pairs(xs []i32) yields []i32 { yield xs; }
	`, Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2", len(defs))
	}
	if defs[0].Name != "ones" || defs[1].Name != "pairs" {
		t.Errorf("names = %q, %q", defs[0].Name, defs[1].Name)
	}
	if defs[1].YieldType.Text != "[]i32" {
		t.Errorf("yield type = %q", defs[1].YieldType.Text)
	}
}
