// Package skiplist implements an ordered set on a probabilistic skip list.
// It shares no code with the B-tree and serves as an independent model when
// cross-checking it.
package skiplist

import (
	"cmp"
	"math"
	"math/rand"
)

const (
	MaxHeight = 16
	p         = 0.5
)

var probabilities [MaxHeight]uint32

type node[K cmp.Ordered] struct {
	key   K
	tower [MaxHeight]*node[K]
}

type SkipList[K cmp.Ordered] struct {
	head   *node[K] // starting head node
	height int      // current height
	length int
	rnd    *rand.Rand
}

func init() {
	probability := 1.0

	for level := 0; level < MaxHeight; level++ {
		probabilities[level] = uint32(probability * float64(math.MaxUint32))
		probability *= p
	}
}

// New returns an empty skip list whose tower heights are drawn from seed, so
// runs with the same seed build the same towers.
func New[K cmp.Ordered](seed int64) *SkipList[K] {
	return &SkipList[K]{
		head:   &node[K]{},
		height: 1,
		rnd:    rand.New(rand.NewSource(seed)),
	}
}

func (sl *SkipList[K]) randomHeight() int {
	seed := sl.rnd.Uint32()

	height := 1
	for height < MaxHeight && seed <= probabilities[height] {
		height++
	}

	return height
}

func (sl *SkipList[K]) search(key K) (*node[K], [MaxHeight]*node[K]) {
	var next *node[K]
	var journey [MaxHeight]*node[K]

	prev := sl.head
	// top to bottom level
	for level := sl.height - 1; level >= 0; level-- {
		for next = prev.tower[level]; next != nil; next = prev.tower[level] {
			// key <= next.key
			if cmp.Compare(key, next.key) <= 0 {
				break
			}
			// key > next.key
			prev = next
		}
		journey[level] = prev
	}

	if next != nil && cmp.Compare(key, next.key) == 0 {
		return next, journey
	}
	return nil, journey
}

// Contains reports whether key is in the set.
func (sl *SkipList[K]) Contains(key K) bool {
	n, _ := sl.search(key)
	return n != nil
}

// Len returns the number of keys.
func (sl *SkipList[K]) Len() int {
	return sl.length
}

// Insert adds key and reports false when it was already present.
func (sl *SkipList[K]) Insert(key K) bool {
	n, journey := sl.search(key)
	if n != nil {
		return false
	}

	height := sl.randomHeight()
	newNode := &node[K]{key: key}

	//bottom to top level
	for level := 0; level < height; level++ {
		prev := journey[level]
		if prev == nil {
			// prev is nil if we extend the height of the list
			// journey array won't have an entry for it.
			prev = sl.head
		}
		newNode.tower[level] = prev.tower[level]
		prev.tower[level] = newNode
	}

	// update current height of skiplist
	if height > sl.height {
		sl.height = height
	}
	sl.length++
	return true
}

func (sl *SkipList[K]) shrink() {
	for level := sl.height - 1; level > 0; level-- {
		if sl.head.tower[level] == nil {
			sl.height--
		} else {
			break
		}
	}
}

// Delete removes key and reports whether it was present.
func (sl *SkipList[K]) Delete(key K) bool {
	n, journey := sl.search(key)

	// no such key exists
	if n == nil {
		return false
	}

	//bottom to top level
	for level := 0; level < sl.height; level++ {
		prev := journey[level]

		if prev.tower[level] != n {
			break
		}

		prev.tower[level] = n.tower[level]
		n.tower[level] = nil
	}

	// shrink height if the removed node was the only node residing on
	// that particular level of the skip list.
	sl.shrink()
	sl.length--
	return true
}

// Ascend calls fn for every key in ascending order until fn returns false.
func (sl *SkipList[K]) Ascend(fn func(key K) bool) {
	for n := sl.head.tower[0]; n != nil; n = n.tower[0] {
		if !fn(n.key) {
			return
		}
	}
}

// Keys returns all keys in ascending order.
func (sl *SkipList[K]) Keys() []K {
	keys := make([]K, 0, sl.length)
	sl.Ascend(func(k K) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}
