package testbed

import (
	"errors"
	"strings"
	"testing"

	"github.com/genfn/genfn"
	generr "github.com/genfn/genfn/errors"
)

// Expansion coverage over realistic multi-item sources, exercising the whole
// pipeline through the public API.

func TestExpand_SampleFile(t *testing.T) {
	src, err := genfn.Expand(`
		// Counts up to the bound, exclusive.
		#[size_hint(n)]
		fn* count_to(n i32) yields i32 {
			for i in 0..n {
				yield i;
			}
		}

		fn* running_sum(xs []i32) yields i32 {
			let total = 0;
			for x in xs {
				total += x;
				yield total;
			}
		}

		fn* read_lines(path string) yields Result<string> {
			let f = open(path)?;
			while has_more(f) {
				yield next_line(f)?;
			}
		}
	`, genfn.Options{Package: "samples"})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	for _, want := range []string{
		"package samples",
		"func CountTo(n int32) coro.Seq[int32]",
		"hint: int(n), exact: true",
		"func RunningSum(xs []int32) coro.Seq[int32]",
		"for _, x := range xs",
		"func ReadLines(path string) coro.Seq[coro.Result[string]]",
		"coro.Failure[string]",
		"coro.Success(",
	} {
		if !strings.Contains(string(src), want) {
			t.Errorf("expanded source missing %q", want)
		}
	}
}

func TestExpand_RejectionsAreStatic(t *testing.T) {
	// A violating branch is rejected even though it could never run.
	_, err := genfn.Expand(`fn* f() yields i32 {
		if false {
			yield "never";
		}
		yield 1;
	}`, genfn.Options{})
	if err == nil {
		t.Fatal("expected static rejection")
	}
	var list generr.List
	if !errors.As(err, &list) || !list.Has(generr.KindMultipleYieldedTypes) {
		t.Errorf("error = %v, want multiple_yielded_types", err)
	}
}

func TestExpand_DiagnosticsCarrySpans(t *testing.T) {
	_, err := genfn.Expand("fn* f() yields i32 {\n\tyield 1;\n\tyield \"two\";\n}", genfn.Options{})
	if err == nil {
		t.Fatal("expected rejection")
	}
	var list generr.List
	if !errors.As(err, &list) {
		t.Fatalf("error is %T", err)
	}
	if list[0].Span.StartLine != 2 {
		t.Errorf("diagnostic span = %+v, want the second yield on line 3", list[0].Span)
	}
}

func TestExpand_WholePipelineAbortsOnFirstStage(t *testing.T) {
	// Recognition failure surfaces alone, before validation could pile on.
	_, err := genfn.Expand("fn* f() yields i32 { return 5 }", genfn.Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	var diag *generr.Error
	if !errors.As(err, &diag) {
		t.Fatalf("error is %T", err)
	}
	if diag.Phase != generr.PhaseParse {
		t.Errorf("phase = %s, want parse", diag.Phase)
	}
}
