package btree

// allocator hands out nodes and takes back released ones. It keeps a bounded
// free list of cleared nodes and enforces the optional node budget.
//
// Insertions reserve every node they may allocate before touching the tree,
// so running out of budget never leaves a half-applied split behind.
type allocator[K any] struct {
	freelist []*node[K]
	maxKeys  int
	limit    int // 0 means unlimited
	live     int
	reserved int
}

func newAllocator[K any](degree, limit, freeListSize int) *allocator[K] {
	return &allocator[K]{
		freelist: make([]*node[K], 0, freeListSize),
		maxKeys:  2*degree - 1,
		limit:    limit,
	}
}

// reserve sets aside n nodes for the next structural change.
func (a *allocator[K]) reserve(n int) error {
	if a.limit > 0 && a.live+a.reserved+n > a.limit {
		return ErrOutOfMemory
	}
	a.reserved += n
	return nil
}

// cancel drops any reservation that was not consumed.
func (a *allocator[K]) cancel() {
	a.reserved = 0
}

func (a *allocator[K]) newNode(leaf bool) *node[K] {
	switch {
	case a.reserved > 0:
		a.reserved--
	case a.limit > 0 && a.live >= a.limit:
		violation("node allocated without reservation beyond budget %d", a.limit)
	}
	a.live++

	var n *node[K]
	if i := len(a.freelist) - 1; i >= 0 {
		n = a.freelist[i]
		a.freelist[i] = nil
		a.freelist = a.freelist[:i]
	} else {
		n = &node[K]{keys: make([]K, 0, a.maxKeys)}
	}
	n.leaf = leaf
	if !leaf && n.children == nil {
		n.children = make([]*node[K], 0, a.maxKeys+1)
	}
	return n
}

// freeNode invalidates n and returns it to the free list. Callers must have
// already unlinked n from its parent.
func (a *allocator[K]) freeNode(n *node[K]) {
	clear(n.keys)
	n.keys = n.keys[:0]
	clear(n.children)
	n.children = n.children[:0]
	n.leaf = false
	a.live--
	if len(a.freelist) < cap(a.freelist) {
		a.freelist = append(a.freelist, n)
	}
}
