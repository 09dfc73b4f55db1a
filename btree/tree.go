package btree

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

/*
Btree only keeps a pointer to root node of the tree.
A tree is made up of nodes. Each node contains up to 2M-1 sorted keys.

The root is replaced whenever it splits (the tree grows by one level) or when a
merge empties it (the tree shrinks by one level). Every internal step returns the
current root and Btree stores it, so callers never hold a stale root.

A Btree is not safe for concurrent use; wrap it in a mutex when sharing it.
*/
type Btree[K any] struct {
	root    *node[K]
	compare func(a, b K) int
	degree  int
	count   int
	alloc   *allocator[K]
	log     zerolog.Logger
}

// New returns an empty tree ordered by the natural order of K.
func New[K cmp.Ordered](opts ...Option) *Btree[K] {
	return NewWithCompare(cmp.Compare[K], opts...)
}

// NewWithCompare returns an empty tree ordered by compare, which must define
// a total order and return a negative number, zero or a positive number when
// a < b, a == b or a > b.
func NewWithCompare[K any](compare func(a, b K) int, opts ...Option) *Btree[K] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	t := &Btree[K]{
		compare: compare,
		degree:  o.degree,
		alloc:   newAllocator[K](o.degree, o.maxNodes, o.freeListSize),
		log:     o.logger.With().Str("component", "btree").Logger(),
	}
	t.root = t.alloc.newNode(true)
	return t
}

// Position locates a key inside the tree. The zero Position means not found.
// A Position is only valid until the next Insert, Delete or Clear.
type Position[K any] struct {
	n     *node[K]
	index int
}

// Found reports whether the position refers to a key.
func (p Position[K]) Found() bool {
	return p.n != nil
}

// Key returns the key at the position.
func (p Position[K]) Key() K {
	return p.n.keys[p.index]
}

// Index returns the key's index inside its node.
func (p Position[K]) Index() int {
	return p.index
}

// Leaf reports whether the key lives in a leaf node.
func (p Position[K]) Leaf() bool {
	return p.n.leaf
}

// Search descends from the root looking for key. At each node it takes the
// lower bound of key: an exact match ends the search, otherwise the descent
// continues into the child that precedes the first greater key.
func (t *Btree[K]) Search(key K) (Position[K], bool) {
	for next := t.root; next != nil; {
		pos, found := next.search(key, t.compare)
		if found {
			return Position[K]{n: next, index: pos}, true
		}
		if next.leaf {
			break
		}
		next = next.children[pos]
	}
	return Position[K]{}, false
}

// Has reports whether key is stored in the tree.
func (t *Btree[K]) Has(key K) bool {
	_, found := t.Search(key)
	return found
}

// Find returns the stored key equal to key.
func (t *Btree[K]) Find(key K) (K, error) {
	if pos, found := t.Search(key); found {
		return pos.Key(), nil
	}
	var zero K
	return zero, fmt.Errorf("find %v: %w", key, ErrKeyNotFound)
}

// Len returns the number of keys.
func (t *Btree[K]) Len() int {
	return t.count
}

// Degree returns the minimum degree the tree was built with.
func (t *Btree[K]) Degree() int {
	return t.degree
}

// Nodes returns the number of live nodes, the root included.
func (t *Btree[K]) Nodes() int {
	return t.alloc.live
}

// Height returns the number of levels; an empty tree has height 1.
func (t *Btree[K]) Height() int {
	return t.heightOf(t.root)
}

// Min returns the smallest key, or false when the tree is empty.
func (t *Btree[K]) Min() (K, bool) {
	if t.count == 0 {
		var zero K
		return zero, false
	}
	return t.root.min(), true
}

// Max returns the largest key, or false when the tree is empty.
func (t *Btree[K]) Max() (K, bool) {
	if t.count == 0 {
		var zero K
		return zero, false
	}
	return t.root.max(), true
}

// Clear removes every key and releases all nodes but a fresh empty root.
func (t *Btree[K]) Clear() {
	t.release(t.root)
	t.root = t.alloc.newNode(true)
	t.count = 0
}

func (t *Btree[K]) release(n *node[K]) {
	if !n.leaf {
		for _, c := range n.children {
			t.release(c)
		}
	}
	t.alloc.freeNode(n)
}

func (t *Btree[K]) full(n *node[K]) bool {
	return len(n.keys) == 2*t.degree-1
}

// String renders the tree in nested bracket form, e.g. "[[1 2] 3 [4 5]]".
func (t *Btree[K]) String() string {
	var b strings.Builder
	writeNode(&b, t.root)
	return b.String()
}

func writeNode[K any](b *strings.Builder, n *node[K]) {
	b.WriteByte('[')
	for i, k := range n.keys {
		if !n.leaf {
			writeNode(b, n.children[i])
			b.WriteByte(' ')
		} else if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(b, k)
		if !n.leaf {
			b.WriteByte(' ')
		}
	}
	if !n.leaf {
		writeNode(b, n.children[len(n.keys)])
	}
	b.WriteByte(']')
}
