package coro

// Result is the outcome-carrying value yielded by iterator items that use
// the `?` error-propagation form: a success value on the happy path, or the
// short-circuiting error.
type Result[T any] struct {
	Value T
	Err   error
}

// Success wraps a value in a successful Result.
func Success[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Failure wraps an error in a failed Result.
func Failure[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Ok reports whether the result carries a success value.
func (r Result[T]) Ok() bool { return r.Err == nil }
