package btree

// Ascend calls fn for every key in ascending order until fn returns false.
func (t *Btree[K]) Ascend(fn func(key K) bool) {
	t.ascend(t.root, fn)
}

func (t *Btree[K]) ascend(n *node[K], fn func(key K) bool) bool {
	for i, k := range n.keys {
		if !n.leaf && !t.ascend(n.children[i], fn) {
			return false
		}
		if !fn(k) {
			return false
		}
	}
	if !n.leaf {
		return t.ascend(n.children[len(n.keys)], fn)
	}
	return true
}

// AscendRange calls fn for every key in [greaterOrEqual, lessThan) in
// ascending order until fn returns false. Subtrees entirely outside the range
// are skipped.
func (t *Btree[K]) AscendRange(greaterOrEqual, lessThan K, fn func(key K) bool) {
	t.ascendRange(t.root, greaterOrEqual, lessThan, fn)
}

func (t *Btree[K]) ascendRange(n *node[K], lo, hi K, fn func(key K) bool) bool {
	start, _ := n.search(lo, t.compare)
	for i := start; i < len(n.keys); i++ {
		if !n.leaf && !t.ascendRange(n.children[i], lo, hi, fn) {
			return false
		}
		if t.compare(n.keys[i], hi) >= 0 {
			return false
		}
		if !fn(n.keys[i]) {
			return false
		}
	}
	if !n.leaf {
		return t.ascendRange(n.children[len(n.keys)], lo, hi, fn)
	}
	return true
}

// Keys returns all keys in ascending order.
func (t *Btree[K]) Keys() []K {
	keys := make([]K, 0, t.count)
	t.Ascend(func(k K) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}
