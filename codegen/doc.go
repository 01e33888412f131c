// Package codegen turns desugared iterator definitions into Go source.
//
// Each definition becomes three pieces: an unexported wrapper struct owning a
// coroutine, a Next method implementing the lazy-sequence capability, and an
// exported constructor function with the original parameters returning
// coro.Seq only. The wrapper's concrete type never appears in an exported
// signature, so callers cannot reach any capability beyond producing the
// next value.
package codegen
