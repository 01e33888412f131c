// Package ast defines the statement and expression tree for iterator items.
//
// The tree is an ordered, rooted tree over a small closed set of node kinds.
// A Definition is built once by the recognizer and never mutated afterwards:
// the desugarer produces a new tree rather than editing in place. Host
// expressions the pipeline does not care about are carried opaquely and
// printed back verbatim by the emitter.
//
// Suspend, Terminate and TryBind exist only in desugared trees; the
// recognizer never produces them and the validator rejects nothing about
// them because it never sees them.
package ast
