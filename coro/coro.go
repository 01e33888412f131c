package coro

import "runtime"

// State is the result of resuming a coroutine.
type State int

const (
	// Yielded means the body suspended and handed over a value.
	Yielded State = iota
	// Completed means the body has returned; no further values will be produced.
	Completed
)

func (s State) String() string {
	switch s {
	case Yielded:
		return "yielded"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// stopped is the sentinel used to unwind an abandoned body goroutine.
type stopped struct{}

// Yielder is the body's handle to the suspension point. It is valid only for
// the lifetime of the body invocation and must not leak out of it.
type Yielder[T any] struct {
	out    chan T
	resume chan struct{}
	stop   chan struct{}
}

// Suspend hands v to the driving Resume call and pauses the body until the
// next Resume. If the coroutine has been stopped, Suspend unwinds the body
// instead of returning.
func (y *Yielder[T]) Suspend(v T) {
	select {
	case y.out <- v:
	case <-y.stop:
		panic(stopped{})
	}
	select {
	case <-y.resume:
	case <-y.stop:
		panic(stopped{})
	}
}

// Coroutine is a resumable computation producing values of type T.
//
// It is owned by exactly one logical caller. Moving it between Resume calls
// is always safe: all retained state lives on the body goroutine's own stack,
// never at an address the holder of the Coroutine could invalidate.
type Coroutine[T any] struct {
	body    func(*Yielder[T])
	out     chan T
	resume  chan struct{}
	stop    chan struct{}
	started bool
	done    bool
}

// New creates a coroutine for body. The body does not start executing until
// the first Resume.
func New[T any](body func(*Yielder[T])) *Coroutine[T] {
	c := &Coroutine[T]{
		body:   body,
		out:    make(chan T),
		resume: make(chan struct{}),
		stop:   make(chan struct{}),
	}
	// Release the body goroutine if the holder abandons the coroutine
	// mid-sequence without calling Stop.
	runtime.AddCleanup(c, func(stop chan struct{}) {
		defer func() { recover() }()
		close(stop)
	}, c.stop)
	return c
}

// Resume runs the body until its next suspension point or until it returns.
// It reports (value, Yielded) for a suspension and (zero, Completed) once the
// body has finished. Resume on a completed or stopped coroutine keeps
// reporting Completed.
func (c *Coroutine[T]) Resume() (T, State) {
	var zero T
	if c.done {
		return zero, Completed
	}

	if !c.started {
		c.started = true
		y := &Yielder[T]{out: c.out, resume: c.resume, stop: c.stop}
		go func() {
			defer close(c.out)
			defer func() {
				if r := recover(); r != nil {
					if _, ok := r.(stopped); !ok {
						panic(r)
					}
				}
			}()
			c.body(y)
		}()
	} else {
		c.resume <- struct{}{}
	}

	v, ok := <-c.out
	if !ok {
		c.done = true
		c.body = nil
		return zero, Completed
	}
	return v, Yielded
}

// Stop abandons the coroutine, releasing the suspended body. After Stop,
// Resume reports Completed. Stopping an unstarted, completed, or already
// stopped coroutine is a no-op.
func (c *Coroutine[T]) Stop() {
	if c.done {
		return
	}
	c.done = true
	c.body = nil
	if c.started {
		close(c.stop)
		// Wait for the body goroutine to unwind and close out.
		for range c.out {
		}
	}
}
