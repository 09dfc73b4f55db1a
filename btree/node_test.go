package btree

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeSearch(t *testing.T) {
	n := newAllocator[int](2, 0, 0).newNode(true)
	n.keys = append(n.keys, 10, 20, 30)

	tests := []struct {
		key   int
		pos   int
		found bool
	}{
		{5, 0, false},
		{10, 0, true},
		{15, 1, false},
		{20, 1, true},
		{25, 2, false},
		{30, 2, true},
		{35, 3, false},
	}
	for _, tt := range tests {
		pos, found := n.search(tt.key, cmp.Compare[int])
		assert.Equal(t, tt.pos, pos, "key %d", tt.key)
		assert.Equal(t, tt.found, found, "key %d", tt.key)
	}
}

func TestNodeInsertRemoveAt(t *testing.T) {
	a := newAllocator[int](2, 0, 0)
	n := a.newNode(false)

	n.insertKeyAt(0, 20)
	n.insertKeyAt(0, 10)
	n.insertKeyAt(2, 30)
	assert.Equal(t, []int{10, 20, 30}, n.keys)

	assert.Equal(t, 20, n.removeKeyAt(1))
	assert.Equal(t, []int{10, 30}, n.keys)

	c1, c2 := a.newNode(true), a.newNode(true)
	n.insertChildAt(0, c2)
	n.insertChildAt(0, c1)
	assert.Same(t, c1, n.children[0])
	assert.Same(t, c2, n.children[1])
	assert.Same(t, c1, n.removeChildAt(0))
	assert.Len(t, n.children, 1)
}

func TestNodeCapacityIsEnforced(t *testing.T) {
	n := newAllocator[int](2, 0, 0).newNode(true)
	n.keys = append(n.keys, 1, 2, 3)

	assert.PanicsWithError(t, "b-tree invariant violated: key capacity 3 exceeded", func() {
		n.insertKeyAt(3, 4)
	})
}

func TestNodeSplitLeaf(t *testing.T) {
	a := newAllocator[int](3, 0, 0)
	n := a.newNode(true)
	n.keys = append(n.keys, 1, 2, 3, 4, 5)

	sibling := a.newNode(true)
	mid := n.split(sibling, 3)

	assert.Equal(t, 3, mid)
	assert.Equal(t, []int{1, 2}, n.keys)
	assert.Equal(t, []int{4, 5}, sibling.keys)
}

func TestNodeSplitInternal(t *testing.T) {
	a := newAllocator[int](2, 0, 0)
	n := a.newNode(false)
	n.keys = append(n.keys, 10, 20, 30)
	kids := make([]*node[int], 4)
	for i := range kids {
		kids[i] = a.newNode(true)
		n.children = append(n.children, kids[i])
	}

	sibling := a.newNode(false)
	mid := n.split(sibling, 2)

	assert.Equal(t, 20, mid)
	assert.Equal(t, []int{10}, n.keys)
	assert.Equal(t, []int{30}, sibling.keys)
	assert.Equal(t, []*node[int]{kids[0], kids[1]}, n.children)
	assert.Equal(t, []*node[int]{kids[2], kids[3]}, sibling.children)
}

func TestNodeMinMax(t *testing.T) {
	tr := treeFrom(t, 2, innerOf([]int{10},
		innerOf([]int{4}, leafOf(1, 2), leafOf(5)),
		innerOf([]int{13}, leafOf(11), leafOf(14, 15)),
	))

	assert.Equal(t, 1, tr.root.min())
	assert.Equal(t, 15, tr.root.max())
	assert.Equal(t, 5, tr.root.children[0].max())
	assert.Equal(t, 11, tr.root.children[1].min())
}
