package btree

import "fmt"

/*
Insert adds key to the tree. It returns false without touching the tree when the
key is already present, and ErrOutOfMemory when the node budget cannot cover the
splits this insertion needs.

The algo will start traversing the tree from its root, splitting every full node
before entering it, so the node being written always has room and no split is
ever needed on the way back up.
*/
func (t *Btree[K]) Insert(key K) (bool, error) {
	needed, found := t.planInsert(key)
	if found {
		return false, nil
	}
	if err := t.alloc.reserve(needed); err != nil {
		t.log.Error().
			Err(err).
			Int("live", t.alloc.live).
			Int("needed", needed).
			Msg("insert rejected")
		return false, fmt.Errorf("insert %v: %w", key, err)
	}
	defer t.alloc.cancel()

	t.root = t.insert(t.root, key)
	t.count++
	return true, nil
}

/*
planInsert walks the search path of key without modifying anything.
It reports whether the key already exists and otherwise how many nodes the
insertion will allocate: one per full node on the path, plus one for the new
root when the root itself is full. Splitting a node never changes which of its
children the key descends into, so the full nodes met here are exactly the ones
insertNonFull will split.
*/
func (t *Btree[K]) planInsert(key K) (int, bool) {
	needed := 0
	if t.full(t.root) {
		needed++
	}
	for n := t.root; ; {
		pos, found := n.search(key, t.compare)
		if found {
			return 0, true
		}
		if t.full(n) {
			needed++
		}
		if n.leaf {
			return needed, false
		}
		n = n.children[pos]
	}
}

// insert returns the root after inserting key, growing the tree by one level
// when the current root is full.
func (t *Btree[K]) insert(root *node[K], key K) *node[K] {
	if t.full(root) {
		root = t.splitRoot(root)
	}
	t.insertNonFull(root, key)
	return root
}

/*
Create a new root node.
The existing root then becomes the new root's left child.
The new node created after splitting the existing root becomes new root's right child.
*/
func (t *Btree[K]) splitRoot(root *node[K]) *node[K] {
	newRoot := t.alloc.newNode(false)
	newRoot.insertChildAt(0, root)
	t.splitChild(newRoot, 0)
	t.log.Debug().
		Int("height", t.heightOf(newRoot)).
		Int("keys", t.count).
		Msg("root split")
	return newRoot
}

/*
splitChild splits parent's full child at pos. The child keeps its lower half,
a new sibling receives the upper half and the middle key moves up into parent
at pos, with the sibling linked right after the child.
parent must not be full.
*/
func (t *Btree[K]) splitChild(parent *node[K], pos int) {
	child := parent.children[pos]
	if !t.full(child) {
		violation("split of child %d holding %d keys", pos, len(child.keys))
	}
	sibling := t.alloc.newNode(child.leaf)
	midKey := child.split(sibling, t.degree)
	parent.insertKeyAt(pos, midKey)
	parent.insertChildAt(pos+1, sibling)
}

// insertNonFull places key in the subtree rooted at n, which has room for it.
func (t *Btree[K]) insertNonFull(n *node[K], key K) {
	pos, found := n.search(key, t.compare)
	if found {
		violation("duplicate key %v reached insertion", key)
	}

	// If we reach a leaf node -> it has sufficient space for the new key so, insert it
	if n.leaf {
		n.insertKeyAt(pos, key)
		return
	}

	// If the next node on the traversal path is already full, split it
	if t.full(n.children[pos]) {
		t.splitChild(n, pos)

		// We may need to change our direction after promoting the middle key to the parent.
		switch cmp := t.compare(key, n.keys[pos]); {
		case cmp < 0:
			// The key is still smaller than the promoted one, keep the same direction.
		case cmp > 0:
			pos++
		default:
			violation("duplicate key %v promoted during split", key)
		}
	}

	t.insertNonFull(n.children[pos], key)
}

func (t *Btree[K]) heightOf(n *node[K]) int {
	h := 1
	for ; !n.leaf; n = n.children[0] {
		h++
	}
	return h
}
