package btree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every fixture uses minimum degree 2: nodes hold 1..3 keys and a sibling
// can lend a key once it holds 2.
var deleteCases = []struct {
	name   string
	tree   shape
	key    int
	step   deleteCase
	idx    int
	after  string
	height int
}{
	{
		name:   "leaf found",
		tree:   leafOf(1, 2, 3),
		key:    2,
		step:   leafFound,
		idx:    1,
		after:  "[1 3]",
		height: 1,
	},
	{
		name:   "borrow predecessor",
		tree:   innerOf([]int{5}, leafOf(1, 2), leafOf(6)),
		key:    5,
		step:   internalFoundBorrowPredecessor,
		idx:    0,
		after:  "[[1] 2 [6]]",
		height: 2,
	},
	{
		name: "borrow predecessor from a deep subtree",
		tree: innerOf([]int{10},
			innerOf([]int{4, 7}, leafOf(1, 2), leafOf(5), leafOf(8, 9)),
			innerOf([]int{13}, leafOf(11), leafOf(14)),
		),
		key:    10,
		step:   internalFoundBorrowPredecessor,
		idx:    0,
		after:  "[[[1 2] 4 [5] 7 [8]] 9 [[11] 13 [14]]]",
		height: 3,
	},
	{
		name:   "borrow successor",
		tree:   innerOf([]int{5}, leafOf(1), leafOf(6, 7)),
		key:    5,
		step:   internalFoundBorrowSuccessor,
		idx:    0,
		after:  "[[1] 6 [7]]",
		height: 2,
	},
	{
		name:   "merge around found key collapses root",
		tree:   innerOf([]int{5}, leafOf(1), leafOf(6)),
		key:    5,
		step:   internalFoundMerge,
		idx:    0,
		after:  "[1 6]",
		height: 1,
	},
	{
		name:   "merge around found key keeps root",
		tree:   innerOf([]int{3, 6}, leafOf(1), leafOf(4), leafOf(7, 8)),
		key:    3,
		step:   internalFoundMerge,
		idx:    0,
		after:  "[[1 4] 6 [7 8]]",
		height: 2,
	},
	{
		name:   "descend into rich child",
		tree:   innerOf([]int{3}, leafOf(1, 2), leafOf(4, 5)),
		key:    4,
		step:   internalAbsentDescend,
		idx:    1,
		after:  "[[1 2] 3 [5]]",
		height: 2,
	},
	{
		name:   "rotate from right sibling",
		tree:   innerOf([]int{3}, leafOf(1), leafOf(5, 6, 7)),
		key:    1,
		step:   internalAbsentRotateRight,
		idx:    0,
		after:  "[[3] 5 [6 7]]",
		height: 2,
	},
	{
		name:   "rotate from left sibling",
		tree:   innerOf([]int{5}, leafOf(1, 2, 3), leafOf(6)),
		key:    6,
		step:   internalAbsentRotateLeft,
		idx:    1,
		after:  "[[1 2] 3 [5]]",
		height: 2,
	},
	{
		name:   "merge with right sibling",
		tree:   innerOf([]int{3, 6}, leafOf(1), leafOf(4), leafOf(7, 8)),
		key:    1,
		step:   internalAbsentMergeRight,
		idx:    0,
		after:  "[[3 4] 6 [7 8]]",
		height: 2,
	},
	{
		name:   "merge with left sibling",
		tree:   innerOf([]int{3, 6}, leafOf(1, 2), leafOf(4), leafOf(7)),
		key:    7,
		step:   internalAbsentMergeLeft,
		idx:    2,
		after:  "[[1 2] 3 [4 6]]",
		height: 2,
	},
	{
		name: "rotate internal child from right moves a subtree",
		tree: innerOf([]int{10},
			innerOf([]int{5}, leafOf(1), leafOf(6)),
			innerOf([]int{15, 20}, leafOf(11), leafOf(16), leafOf(21)),
		),
		key:    1,
		step:   internalAbsentRotateRight,
		idx:    0,
		after:  "[[[5 6] 10 [11]] 15 [[16] 20 [21]]]",
		height: 3,
	},
	{
		name: "rotate internal child from left moves a subtree",
		tree: innerOf([]int{15},
			innerOf([]int{5, 10}, leafOf(1), leafOf(6), leafOf(11)),
			innerOf([]int{20}, leafOf(16), leafOf(21)),
		),
		key:    21,
		step:   internalAbsentRotateLeft,
		idx:    1,
		after:  "[[[1] 5 [6]] 10 [[11] 15 [16 20]]]",
		height: 3,
	},
	{
		name: "merge internal children collapses root",
		tree: innerOf([]int{10},
			innerOf([]int{5}, leafOf(1), leafOf(6)),
			innerOf([]int{15}, leafOf(11), leafOf(16)),
		),
		key:    1,
		step:   internalAbsentMergeRight,
		idx:    0,
		after:  "[[5 6] 10 [11] 15 [16]]",
		height: 2,
	},
}

func TestDeleteCases(t *testing.T) {
	for _, tt := range deleteCases {
		t.Run(tt.name, func(t *testing.T) {
			tr := treeFrom(t, 2, tt.tree)
			before := tr.Len()

			step, idx := tr.classify(tr.root, tt.key)
			assert.Equal(t, tt.step, step, "got %s", step)
			assert.Equal(t, tt.idx, idx)

			require.True(t, tr.Delete(tt.key))
			assert.Equal(t, tt.after, tr.String())
			assert.Equal(t, tt.height, tr.Height())
			assert.Equal(t, before-1, tr.Len())
			assert.False(t, tr.Has(tt.key))
			assert.NoError(t, tr.Verify())
		})
	}
}

func TestClassifyLeafAbsent(t *testing.T) {
	tr := treeFrom(t, 2, leafOf(1, 3))

	step, idx := tr.classify(tr.root, 2)
	assert.Equal(t, leafAbsent, step)
	assert.Equal(t, 1, idx)

	assert.False(t, tr.Delete(2))
	assert.Equal(t, "[1 3]", tr.String())
}

func TestClassifyUnderfullChildPanics(t *testing.T) {
	tr := treeFrom(t, 3, innerOf([]int{10}, leafOf(1, 2), leafOf(11, 12)))
	// Break the minimum occupancy behind the tree's back.
	tr.root.children[0].removeKeyAt(0)

	assert.Panics(t, func() { tr.classify(tr.root, 1) })
}

func TestMergeReleasesAbsorbedNode(t *testing.T) {
	tr := treeFrom(t, 2, innerOf([]int{3, 6}, leafOf(1), leafOf(4), leafOf(7, 8)))
	absorbed := tr.root.children[1]
	require.Equal(t, 4, tr.Nodes())

	require.True(t, tr.Delete(1))
	assert.Equal(t, 3, tr.Nodes())
	assert.Empty(t, absorbed.keys, "absorbed node must be cleared")
	for _, c := range tr.root.children {
		assert.NotSame(t, absorbed, c)
	}
}

func TestDeleteCaseString(t *testing.T) {
	assert.Equal(t, "leaf-found", leafFound.String())
	assert.Equal(t, "internal-found-borrow-left", internalFoundBorrowPredecessor.String())
	assert.Equal(t, "internal-absent-merge-left", internalAbsentMergeLeft.String())
	assert.Equal(t, "unknown", deleteCase(200).String())
}
