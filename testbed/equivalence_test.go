package testbed

import (
	"errors"
	"fmt"
	"testing"

	"github.com/genfn/genfn/coro"
)

// Runtime equivalence: the wrapper shape the emitter produces, driven
// against the coro runtime, must produce exactly the sequence the
// un-rewritten body would. The bodies below are spelled the way the emitter
// spells them.

type countToIter struct {
	co    *coro.Coroutine[int32]
	hint  int
	exact bool
}

func (it *countToIter) Next() (int32, bool) {
	v, state := it.co.Resume()
	return v, state == coro.Yielded
}

func (it *countToIter) SizeHint() (int, bool) {
	return it.hint, it.exact
}

func countTo(n int32) coro.Seq[int32] {
	co := coro.New(func(y *coro.Yielder[int32]) {
		for i := int32(0); i < n; i++ {
			y.Suspend(i)
		}
	})
	return &countToIter{co: co, hint: int(n), exact: true}
}

func TestCountTo_Equivalence(t *testing.T) {
	for _, n := range []int32{0, 1, 2, 7, 100} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			var want []int32
			for i := int32(0); i < n; i++ {
				want = append(want, i)
			}

			got := coro.Collect[int32](countTo(n))
			if len(got) != len(want) {
				t.Fatalf("got %d values, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("value %d = %d, want %d", i, got[i], want[i])
				}
			}
		})
	}
}

func TestCountTo_IdempotentExhaustion(t *testing.T) {
	seq := countTo(2)
	seq.Next()
	seq.Next()
	if _, ok := seq.Next(); ok {
		t.Fatal("sequence did not end after two values")
	}
	for i := 0; i < 5; i++ {
		if v, ok := seq.Next(); ok {
			t.Fatalf("exhausted sequence produced %v on extra call %d", v, i)
		}
	}
}

func TestCountTo_SizeHint(t *testing.T) {
	seq := countTo(7)
	hinter, ok := seq.(coro.SizeHinter)
	if !ok {
		t.Fatal("wrapper does not expose a size hint")
	}
	if hint, exact := hinter.SizeHint(); hint != 7 || !exact {
		t.Errorf("SizeHint() = %d, %v, want 7, true", hint, exact)
	}
}

// failingIter is the emitted shape for
//
//	fn* read_one() yields Result<i32> {
//	    let r = compute()?;
//	    yield r;
//	}
type failingIter struct {
	co *coro.Coroutine[coro.Result[int32]]
}

func (it *failingIter) Next() (coro.Result[int32], bool) {
	v, state := it.co.Resume()
	return v, state == coro.Yielded
}

func readOne(compute func() (int32, error)) coro.Seq[coro.Result[int32]] {
	co := coro.New(func(y *coro.Yielder[coro.Result[int32]]) {
		_try0, _try0Err := compute()
		if _try0Err != nil {
			y.Suspend(coro.Failure[int32](_try0Err))
			return
		}
		r := _try0
		y.Suspend(coro.Success(r))
	})
	return &failingIter{co: co}
}

func TestErrorPropagation_YieldedOnceThenCompletion(t *testing.T) {
	boom := errors.New("boom")
	seq := readOne(func() (int32, error) { return 0, boom })

	v, ok := seq.Next()
	if !ok {
		t.Fatal("error value was not yielded")
	}
	if v.Ok() || !errors.Is(v.Err, boom) {
		t.Errorf("yielded %+v, want the failure", v)
	}

	// The next resumption ends the sequence: [e] exactly, never [e, r].
	if extra, ok := seq.Next(); ok {
		t.Fatalf("sequence continued after the error with %+v", extra)
	}
	if _, ok := seq.Next(); ok {
		t.Fatal("completion is not idempotent")
	}
}

func TestErrorPropagation_SuccessPath(t *testing.T) {
	seq := readOne(func() (int32, error) { return 42, nil })

	v, ok := seq.Next()
	if !ok || !v.Ok() || v.Value != 42 {
		t.Fatalf("got %+v, %v, want success 42", v, ok)
	}
	if _, ok := seq.Next(); ok {
		t.Fatal("sequence did not end after the single value")
	}
}

func TestAbandonMidSequence(t *testing.T) {
	seq := countTo(1000)
	seq.Next()
	seq.Next()

	// Abandoning a wrapper mid-sequence is always safe; Stop releases the
	// suspended computation immediately.
	seq.(*countToIter).co.Stop()
	if _, ok := seq.Next(); ok {
		t.Fatal("stopped sequence produced a value")
	}
}

func TestWrapperMovesBetweenCalls(t *testing.T) {
	// Single ownership with relocation between resumptions: pass the value
	// through a channel between every call.
	seq := countTo(5)
	ch := make(chan coro.Seq[int32], 1)

	var got []int32
	for {
		ch <- seq
		seq = <-ch
		v, ok := seq.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != 5 {
		t.Fatalf("got %d values after relocation, want 5", len(got))
	}
}
