package coro

import (
	"errors"
	"testing"
)

func TestCoroutine_CountTo(t *testing.T) {
	countTo := func(n int) *Coroutine[int] {
		return New(func(y *Yielder[int]) {
			for i := 0; i < n; i++ {
				y.Suspend(i)
			}
		})
	}

	t.Run("produces full sequence", func(t *testing.T) {
		c := countTo(5)
		for want := 0; want < 5; want++ {
			v, st := c.Resume()
			if st != Yielded {
				t.Fatalf("resume %d: state %v, want yielded", want, st)
			}
			if v != want {
				t.Fatalf("resume %d: value %d, want %d", want, v, want)
			}
		}
		if _, st := c.Resume(); st != Completed {
			t.Fatal("expected completion after last value")
		}
	})

	t.Run("n=0 completes immediately", func(t *testing.T) {
		c := countTo(0)
		v, st := c.Resume()
		if st != Completed {
			t.Fatalf("state %v, want completed", st)
		}
		if v != 0 {
			t.Fatalf("completion carried value %d, want zero", v)
		}
	})
}

func TestCoroutine_IdempotentExhaustion(t *testing.T) {
	c := New(func(y *Yielder[string]) {
		y.Suspend("only")
	})

	if v, st := c.Resume(); st != Yielded || v != "only" {
		t.Fatalf("first resume = (%q, %v)", v, st)
	}
	for i := 0; i < 4; i++ {
		v, st := c.Resume()
		if st != Completed {
			t.Fatalf("resume after completion #%d: state %v", i, st)
		}
		if v != "" {
			t.Fatalf("resume after completion #%d replayed %q", i, v)
		}
	}
}

func TestCoroutine_LocalsSurviveSuspension(t *testing.T) {
	c := New(func(y *Yielder[int]) {
		sum := 0
		for i := 1; i <= 4; i++ {
			sum += i
			y.Suspend(sum)
		}
	})

	want := []int{1, 3, 6, 10}
	for i, w := range want {
		v, st := c.Resume()
		if st != Yielded || v != w {
			t.Fatalf("resume %d = (%d, %v), want (%d, yielded)", i, v, st, w)
		}
	}
	if _, st := c.Resume(); st != Completed {
		t.Fatal("expected completion")
	}
}

func TestCoroutine_EmptyBody(t *testing.T) {
	c := New(func(y *Yielder[int]) {})
	if _, st := c.Resume(); st != Completed {
		t.Fatal("empty body should complete on first resume")
	}
	if _, st := c.Resume(); st != Completed {
		t.Fatal("empty body should stay completed")
	}
}

func TestCoroutine_Stop(t *testing.T) {
	t.Run("mid-sequence", func(t *testing.T) {
		released := make(chan struct{})
		c := New(func(y *Yielder[int]) {
			defer close(released)
			for i := 0; ; i++ {
				y.Suspend(i)
			}
		})

		if v, st := c.Resume(); st != Yielded || v != 0 {
			t.Fatalf("first resume = (%d, %v)", v, st)
		}
		c.Stop()
		<-released

		if _, st := c.Resume(); st != Completed {
			t.Fatal("resume after stop should report completed")
		}
	})

	t.Run("unstarted", func(t *testing.T) {
		c := New(func(y *Yielder[int]) { y.Suspend(1) })
		c.Stop()
		if _, st := c.Resume(); st != Completed {
			t.Fatal("stopped-before-start coroutine should be completed")
		}
	})

	t.Run("already completed", func(t *testing.T) {
		c := New(func(y *Yielder[int]) {})
		c.Resume()
		c.Stop()
		c.Stop()
		if _, st := c.Resume(); st != Completed {
			t.Fatal("expected completed")
		}
	})
}

func TestCoroutine_ErrorYieldedOnceThenCompletion(t *testing.T) {
	// Shape of a desugared `let r = compute()?; yield r;` body whose compute
	// fails: the error is yielded exactly once, then the computation ends.
	compute := func() (int, error) { return 0, errors.New("boom") }

	c := New(func(y *Yielder[Result[int]]) {
		r, err := compute()
		if err != nil {
			y.Suspend(Failure[int](err))
			return
		}
		y.Suspend(Success(r))
	})

	v, st := c.Resume()
	if st != Yielded {
		t.Fatalf("state %v, want yielded", st)
	}
	if v.Ok() || v.Err.Error() != "boom" {
		t.Fatalf("expected failure result, got %+v", v)
	}
	if _, st := c.Resume(); st != Completed {
		t.Fatal("second resume must complete, never produce a second value")
	}
	if _, st := c.Resume(); st != Completed {
		t.Fatal("exhaustion must be idempotent")
	}
}

func TestSeq_Collect(t *testing.T) {
	c := New(func(y *Yielder[int]) {
		for i := 3; i > 0; i-- {
			y.Suspend(i)
		}
	})
	seq := SeqFunc[int](func() (int, bool) {
		v, st := c.Resume()
		return v, st == Yielded
	})

	got := Collect[int](seq)
	want := []int{3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("Collect = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Collect = %v, want %v", got, want)
		}
	}
}

func TestSeq_Take(t *testing.T) {
	c := New(func(y *Yielder[int]) {
		for i := 0; ; i++ {
			y.Suspend(i)
		}
	})
	defer c.Stop()

	seq := SeqFunc[int](func() (int, bool) {
		v, st := c.Resume()
		return v, st == Yielded
	})

	got := Take[int](seq, 3)
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("Take = %v, want [0 1 2]", got)
	}
}

func TestResult(t *testing.T) {
	ok := Success(42)
	if !ok.Ok() || ok.Value != 42 {
		t.Fatalf("Success = %+v", ok)
	}
	bad := Failure[int](errors.New("nope"))
	if bad.Ok() || bad.Err == nil {
		t.Fatalf("Failure = %+v", bad)
	}
}
