package btree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// shape describes a hand-built tree: leaves have no kids.
type shape struct {
	keys []int
	kids []shape
}

func leafOf(keys ...int) shape {
	return shape{keys: keys}
}

func innerOf(keys []int, kids ...shape) shape {
	return shape{keys: keys, kids: kids}
}

// treeFrom builds a tree with the exact layout of s and checks it is valid.
func treeFrom(t *testing.T, degree int, s shape) *Btree[int] {
	t.Helper()
	tr := New[int](WithDegree(degree))
	tr.alloc.freeNode(tr.root)
	tr.root, tr.count = materialize(tr, s)
	require.NoError(t, tr.Verify(), "fixture must be a valid tree")
	return tr
}

func materialize(tr *Btree[int], s shape) (*node[int], int) {
	n := tr.alloc.newNode(len(s.kids) == 0)
	n.keys = append(n.keys, s.keys...)
	count := len(s.keys)
	for _, k := range s.kids {
		child, c := materialize(tr, k)
		n.children = append(n.children, child)
		count += c
	}
	return n, count
}

func seq(from, to int) []int {
	keys := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		keys = append(keys, i)
	}
	return keys
}

func insertAll(t *testing.T, tr *Btree[int], keys ...int) {
	t.Helper()
	for _, k := range keys {
		inserted, err := tr.Insert(k)
		require.NoError(t, err)
		require.True(t, inserted, "key %d", k)
	}
}
