package btree

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory is returned by Insert when the node budget set with
	// WithMaxNodes cannot cover the nodes the insertion needs. The tree is
	// left untouched.
	ErrOutOfMemory = errors.New("node budget exhausted")
	// ErrKeyNotFound is returned by Find for absent keys.
	ErrKeyNotFound = errors.New("key not found")
	// ErrInvariantViolation marks a breach of the structural invariants.
	// Verify wraps it; the algorithms panic with it.
	ErrInvariantViolation = errors.New("b-tree invariant violated")
)

// violation aborts the current operation. It is only reachable through a bug
// in this package, never through caller input.
func violation(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...)))
}
