package btree

import "fmt"

// Verify walks the whole tree and checks every structural invariant: sorted
// keys, key counts within [M-1, 2M-1] below the root, len(keys)+1 children
// per internal node with each subtree inside its separators, all leaves at
// the same depth and a collapsed root. The first breach is returned wrapped
// in ErrInvariantViolation.
func (t *Btree[K]) Verify() error {
	if t.root == nil {
		return fmt.Errorf("%w: missing root", ErrInvariantViolation)
	}
	if !t.root.leaf && len(t.root.keys) == 0 {
		return fmt.Errorf("%w: internal root without keys", ErrInvariantViolation)
	}
	v := verifier[K]{t: t, leafDepth: -1}
	if err := v.walk(t.root, 0, nil, nil); err != nil {
		return err
	}
	if v.keys != t.count {
		return fmt.Errorf("%w: counted %d keys, tree reports %d", ErrInvariantViolation, v.keys, t.count)
	}
	if v.nodes != t.alloc.live {
		return fmt.Errorf("%w: reached %d nodes, allocator reports %d live", ErrInvariantViolation, v.nodes, t.alloc.live)
	}
	return nil
}

type verifier[K any] struct {
	t         *Btree[K]
	leafDepth int
	keys      int
	nodes     int
}

// walk checks the subtree rooted at n, whose keys must lie strictly between
// lo and hi when those are set.
func (v *verifier[K]) walk(n *node[K], depth int, lo, hi *K) error {
	t := v.t
	v.nodes++
	v.keys += len(n.keys)

	maxKeys := 2*t.degree - 1
	if len(n.keys) > maxKeys {
		return v.fail(depth, "holds %d keys, maximum is %d", len(n.keys), maxKeys)
	}
	if depth > 0 && len(n.keys) < t.degree-1 {
		return v.fail(depth, "holds %d keys, minimum is %d", len(n.keys), t.degree-1)
	}
	for i, k := range n.keys {
		if i > 0 && t.compare(n.keys[i-1], k) >= 0 {
			return v.fail(depth, "keys %v and %v out of order", n.keys[i-1], k)
		}
		if lo != nil && t.compare(*lo, k) >= 0 {
			return v.fail(depth, "key %v not above separator %v", k, *lo)
		}
		if hi != nil && t.compare(k, *hi) >= 0 {
			return v.fail(depth, "key %v not below separator %v", k, *hi)
		}
	}

	if n.leaf {
		if len(n.children) != 0 {
			return v.fail(depth, "leaf with %d children", len(n.children))
		}
		if v.leafDepth < 0 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return v.fail(depth, "leaf at depth %d, expected %d", depth, v.leafDepth)
		}
		return nil
	}

	if len(n.children) != len(n.keys)+1 {
		return v.fail(depth, "%d keys with %d children", len(n.keys), len(n.children))
	}
	for i, c := range n.children {
		if c == nil {
			return v.fail(depth, "nil child %d", i)
		}
		childLo, childHi := lo, hi
		if i > 0 {
			childLo = &n.keys[i-1]
		}
		if i < len(n.keys) {
			childHi = &n.keys[i]
		}
		if err := v.walk(c, depth+1, childLo, childHi); err != nil {
			return err
		}
	}
	return nil
}

func (v *verifier[K]) fail(depth int, format string, args ...any) error {
	return fmt.Errorf("%w: node at depth %d %s", ErrInvariantViolation, depth, fmt.Sprintf(format, args...))
}
