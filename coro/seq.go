package coro

// Seq is the lazy-sequence capability: produce the next value on demand, or
// report that the sequence has ended. Once Next reports false it must keep
// reporting false on every later call.
type Seq[T any] interface {
	Next() (T, bool)
}

// SizeHinter is optionally implemented by sequences that can estimate how
// many values remain: a lower bound and whether that bound is exact.
type SizeHinter interface {
	SizeHint() (int, bool)
}

// SeqFunc adapts a function to the Seq interface.
type SeqFunc[T any] func() (T, bool)

func (f SeqFunc[T]) Next() (T, bool) { return f() }

// Collect drains seq into a slice. It materializes the whole sequence, so it
// must only be used on finite sequences.
func Collect[T any](seq Seq[T]) []T {
	var out []T
	for {
		v, ok := seq.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Take produces at most n values from seq.
func Take[T any](seq Seq[T], n int) []T {
	var out []T
	for len(out) < n {
		v, ok := seq.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}
