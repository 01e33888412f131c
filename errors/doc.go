// Package errors provides the structured diagnostic types used by the
// expansion pipeline.
//
// Every diagnostic carries the pipeline Phase that produced it, a Kind from
// the closed taxonomy (malformed_signature, malformed_body,
// multiple_yielded_types, non_unit_return, escaping_self_reference), and the
// source Span it points at. The validator reports a List so that all
// violations in a definition surface in one pass.
//
// All kinds are expansion-time failures. The emitted code has no error
// surface of its own: resuming an exhausted iterator is defined behavior,
// not an error.
package errors
