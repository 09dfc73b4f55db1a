package btree

// node is a single B-tree node. keys holds at most 2M-1 strictly increasing
// keys. children is only populated on internal nodes and always holds
// len(keys)+1 links. Both slices are allocated once with their full capacity,
// so growing past it is an invariant violation rather than a reallocation.
type node[K any] struct {
	keys     []K
	children []*node[K]
	leaf     bool
}

/*
If key k is found in node n, return its index i.
Else, return the index j where the key would have resided if it was present in the node.
Basically, lower bound of the key in the node -- this coincides with position of the child pointer !!
So, we can continue the traversal down the tree if the returned boolean value is false.
*/
func (n *node[K]) search(key K, compare func(a, b K) int) (int, bool) {
	low, high := 0, len(n.keys)
	for low < high {
		mid := int(uint(low+high) >> 1)
		cmp := compare(key, n.keys[mid])
		switch {
		case cmp > 0:
			low = mid + 1
		case cmp < 0:
			high = mid
		default:
			return mid, true
		}
	}
	return low, false
}

// helper method to insert a key at an arbitrary position of a B-tree node
func (n *node[K]) insertKeyAt(pos int, key K) {
	if len(n.keys) == cap(n.keys) {
		violation("key capacity %d exceeded", cap(n.keys))
	}
	var zero K
	n.keys = append(n.keys, zero)
	copy(n.keys[pos+1:], n.keys[pos:])
	n.keys[pos] = key
}

// helper method to insert child pointer at an arbitrary position of a B-tree node
func (n *node[K]) insertChildAt(pos int, child *node[K]) {
	if len(n.children) == cap(n.children) {
		violation("child capacity %d exceeded", cap(n.children))
	}
	n.children = append(n.children, nil)
	copy(n.children[pos+1:], n.children[pos:])
	n.children[pos] = child
}

func (n *node[K]) removeKeyAt(pos int) K {
	key := n.keys[pos]
	copy(n.keys[pos:], n.keys[pos+1:])
	var zero K
	n.keys[len(n.keys)-1] = zero
	n.keys = n.keys[:len(n.keys)-1]
	return key
}

func (n *node[K]) removeChildAt(pos int) *node[K] {
	child := n.children[pos]
	copy(n.children[pos:], n.children[pos+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	return child
}

/*
split moves the upper half of a full node into sibling and returns the middle key,
so the caller can link both of them into the parent.
With minimum degree m the node holds 2m-1 keys: the lower m-1 keys stay, the m-th key
is promoted and the upper m-1 keys (plus the upper m children) move to sibling.
sibling must be a fresh node of the same kind.
*/
func (n *node[K]) split(sibling *node[K], m int) K {
	mid := m - 1
	midKey := n.keys[mid]

	sibling.keys = append(sibling.keys, n.keys[mid+1:]...)
	clear(n.keys[mid:])
	n.keys = n.keys[:mid]

	// Except for leaf nodes, move half of the child pointers to the new node as well.
	if !n.leaf {
		sibling.children = append(sibling.children, n.children[mid+1:]...)
		clear(n.children[mid+1:])
		n.children = n.children[:mid+1]
	}
	return midKey
}

// min returns the smallest key of the subtree rooted at n.
func (n *node[K]) min() K {
	for !n.leaf {
		n = n.children[0]
	}
	return n.keys[0]
}

// max returns the largest key of the subtree rooted at n.
func (n *node[K]) max() K {
	for !n.leaf {
		n = n.children[len(n.children)-1]
	}
	return n.keys[len(n.keys)-1]
}
