// Package coro provides the suspend/resume primitive that expanded iterator
// items are built on, and the lazy-sequence capability they expose.
//
// A Coroutine is a cooperative, single-threaded resumable computation: the
// body runs until it calls Suspend, handing one value to the caller of
// Resume, and continues from exactly that point on the next Resume with all
// locals intact. There is exactly one logical caller at a time; a Coroutine
// may be moved between calls but must never be resumed concurrently.
//
// Resuming a coroutine whose body has finished is defined behavior: Resume
// keeps reporting Completed and never panics or replays a stale value.
//
// The Seq interface is the only capability code generated by this module
// exposes to its callers: produce the next value, or signal that the
// sequence has ended.
package coro
