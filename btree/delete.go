package btree

// deleteCase names the step taken at one node while deleting a key. The
// descent classifies the node it stands on, applies the matching step and
// recurses, so every non-root node it enters holds at least M keys.
type deleteCase uint8

const (
	// key found in a leaf: remove it.
	leafFound deleteCase = iota
	// key absent from a leaf: nothing to do.
	leafAbsent
	// key found in an internal node whose preceding child holds >= M keys:
	// replace it with its predecessor and delete that from the child.
	internalFoundBorrowPredecessor
	// mirror of the above with the following child and the successor.
	internalFoundBorrowSuccessor
	// both neighbouring children hold M-1 keys: merge them around the key
	// and delete the key from the merged node.
	internalFoundMerge
	// key absent, the child to enter already holds >= M keys.
	internalAbsentDescend
	// the child holds M-1 keys and its right sibling can spare one.
	internalAbsentRotateRight
	// the child holds M-1 keys and its left sibling can spare one.
	internalAbsentRotateLeft
	// the child and its right sibling hold M-1 keys: merge them.
	internalAbsentMergeRight
	// the child and its left sibling hold M-1 keys: merge them.
	internalAbsentMergeLeft
)

var deleteCaseNames = [...]string{
	leafFound:                      "leaf-found",
	leafAbsent:                     "leaf-absent",
	internalFoundBorrowPredecessor: "internal-found-borrow-left",
	internalFoundBorrowSuccessor:   "internal-found-borrow-right",
	internalFoundMerge:             "internal-found-merge",
	internalAbsentDescend:          "internal-absent-descend",
	internalAbsentRotateRight:      "internal-absent-borrow-right",
	internalAbsentRotateLeft:       "internal-absent-borrow-left",
	internalAbsentMergeRight:       "internal-absent-merge-right",
	internalAbsentMergeLeft:        "internal-absent-merge-left",
}

func (c deleteCase) String() string {
	if int(c) < len(deleteCaseNames) {
		return deleteCaseNames[c]
	}
	return "unknown"
}

/*
Delete removes key from the tree and reports whether it was present.
Deleting an absent key is a no-op: the tree is not restructured at all.
When a merge empties the root, the merged child becomes the new root and the
tree loses one level.
*/
func (t *Btree[K]) Delete(key K) bool {
	if !t.Has(key) {
		return false
	}
	root, removed := t.delete(t.root, key, true)
	if !removed {
		violation("key %v found but not removed", key)
	}
	if root != t.root {
		t.log.Debug().
			Int("height", t.heightOf(root)).
			Int("keys", t.count-1).
			Msg("root collapsed")
	}
	t.root = root
	t.count--
	return true
}

// classify picks the step for deleting key at n and returns it with the lower
// bound of key in n. It never modifies the tree.
func (t *Btree[K]) classify(n *node[K], key K) (deleteCase, int) {
	idx, found := n.search(key, t.compare)
	if n.leaf {
		if found {
			return leafFound, idx
		}
		return leafAbsent, idx
	}

	m := t.degree
	if found {
		switch {
		case len(n.children[idx].keys) >= m:
			return internalFoundBorrowPredecessor, idx
		case len(n.children[idx+1].keys) >= m:
			return internalFoundBorrowSuccessor, idx
		default:
			return internalFoundMerge, idx
		}
	}

	child := n.children[idx]
	switch {
	case len(child.keys) >= m:
		return internalAbsentDescend, idx
	case len(child.keys) < m-1:
		violation("child %d holds %d keys, minimum is %d", idx, len(child.keys), m-1)
	}
	hasRight, hasLeft := idx < len(n.keys), idx > 0
	switch {
	case hasRight && len(n.children[idx+1].keys) >= m:
		return internalAbsentRotateRight, idx
	case hasLeft && len(n.children[idx-1].keys) >= m:
		return internalAbsentRotateLeft, idx
	case hasRight:
		return internalAbsentMergeRight, idx
	case hasLeft:
		return internalAbsentMergeLeft, idx
	}
	violation("internal node without keys below the root")
	return 0, 0
}

/*
delete removes key from the subtree rooted at n and returns the node that roots
the subtree afterwards. That node is n itself except when n is the tree root and
a merge took its last key: n is then released and the merged child is returned.
*/
func (t *Btree[K]) delete(n *node[K], key K, isRoot bool) (*node[K], bool) {
	step, idx := t.classify(n, key)
	switch step {
	case leafFound:
		n.removeKeyAt(idx)
		return n, true

	case leafAbsent:
		return n, false

	case internalFoundBorrowPredecessor:
		pred := n.children[idx].max()
		n.keys[idx] = pred
		return t.deleteReplacement(n, idx, pred)

	case internalFoundBorrowSuccessor:
		succ := n.children[idx+1].min()
		n.keys[idx] = succ
		return t.deleteReplacement(n, idx+1, succ)

	case internalFoundMerge:
		merged := t.mergeChildren(n, idx)
		return t.descendMerged(n, merged, idx, key, isRoot)

	case internalAbsentDescend:
		return t.deleteFromChild(n, idx, key)

	case internalAbsentRotateRight:
		t.rotateFromRight(n, idx)
		return t.deleteFromChild(n, idx, key)

	case internalAbsentRotateLeft:
		t.rotateFromLeft(n, idx)
		return t.deleteFromChild(n, idx, key)

	case internalAbsentMergeRight:
		merged := t.mergeChildren(n, idx)
		return t.descendMerged(n, merged, idx, key, isRoot)

	case internalAbsentMergeLeft:
		merged := t.mergeChildren(n, idx-1)
		return t.descendMerged(n, merged, idx-1, key, isRoot)
	}
	violation("unhandled delete case %s", step)
	return n, false
}

func (t *Btree[K]) deleteFromChild(n *node[K], pos int, key K) (*node[K], bool) {
	child, removed := t.delete(n.children[pos], key, false)
	n.children[pos] = child
	return n, removed
}

// deleteReplacement removes the predecessor or successor that was just copied
// over a separator. It is always present in the child at pos.
func (t *Btree[K]) deleteReplacement(n *node[K], pos int, key K) (*node[K], bool) {
	_, removed := t.deleteFromChild(n, pos, key)
	if !removed {
		violation("replacement key %v missing from child %d", key, pos)
	}
	return n, true
}

// descendMerged continues the deletion inside merged, the child at pos that
// just absorbed its right sibling. If the merge took the root's last key the
// root is released and merged takes its place.
func (t *Btree[K]) descendMerged(n, merged *node[K], pos int, key K, isRoot bool) (*node[K], bool) {
	if len(n.keys) > 0 {
		return t.deleteFromChild(n, pos, key)
	}
	if !isRoot {
		violation("merge emptied a non-root node")
	}
	t.alloc.freeNode(n)
	return t.delete(merged, key, true)
}

/*
mergeChildren folds the child at pos+1 and the separator n.keys[pos] into the
child at pos, which ends up holding 2M-1 keys. The separator and the right child
link are removed from n and the right child is released in the same step.
*/
func (t *Btree[K]) mergeChildren(n *node[K], pos int) *node[K] {
	left, right := n.children[pos], n.children[pos+1]
	if len(left.keys)+len(right.keys)+1 > 2*t.degree-1 {
		violation("merge of %d and %d keys overflows a node", len(left.keys), len(right.keys))
	}

	left.keys = append(left.keys, n.removeKeyAt(pos))
	left.keys = append(left.keys, right.keys...)
	if !left.leaf {
		left.children = append(left.children, right.children...)
	}
	n.removeChildAt(pos + 1)
	t.alloc.freeNode(right)
	return left
}

/*
rotateFromRight gives the child at pos an extra key: the separator moves down to
the end of the child, the right sibling's first key moves up to replace it, and
the sibling's first child becomes the child's last one.
*/
func (t *Btree[K]) rotateFromRight(n *node[K], pos int) {
	child, sibling := n.children[pos], n.children[pos+1]
	child.insertKeyAt(len(child.keys), n.keys[pos])
	n.keys[pos] = sibling.removeKeyAt(0)
	if !child.leaf {
		child.insertChildAt(len(child.children), sibling.removeChildAt(0))
	}
}

// rotateFromLeft is the mirror of rotateFromRight using the left sibling.
func (t *Btree[K]) rotateFromLeft(n *node[K], pos int) {
	child, sibling := n.children[pos], n.children[pos-1]
	child.insertKeyAt(0, n.keys[pos-1])
	n.keys[pos-1] = sibling.removeKeyAt(len(sibling.keys) - 1)
	if !child.leaf {
		child.insertChildAt(0, sibling.removeChildAt(len(sibling.children)-1))
	}
}
