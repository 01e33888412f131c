// Package check validates recognized iterator definitions before any
// rewriting happens.
//
// Three structural restrictions are enforced: every yield in a definition
// must produce the same value type, return statements may not carry a
// non-unit value, and the address of a local must not be retained across a
// suspension point. The checks are read-only and run independently; every
// violation found is reported, not just the first.
package check
