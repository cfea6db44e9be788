package breakpoints

import (
	"github.com/google/btree"
)

const btreeDegree = 32

var _ = (Store[int, int])((*BTree[int, int])(nil))

type btreeEntry[K, V any] struct {
	key   K
	value V
}

// BTree stores breakpoints of any key type, ordered by a less function.
type BTree[K, V any] struct {
	tree *btree.BTreeG[btreeEntry[K, V]]
	less func(a, b K) bool
}

func NewBTree[K, V any](less func(a, b K) bool) *BTree[K, V] {
	return &BTree[K, V]{
		tree: btree.NewG(btreeDegree, func(a, b btreeEntry[K, V]) bool {
			return less(a.key, b.key)
		}),
		less: less,
	}
}

func (s *BTree[K, V]) Len() int {
	return s.tree.Len()
}

func (s *BTree[K, V]) Floor(key K) (k K, v V, ok bool) {
	s.tree.DescendLessOrEqual(btreeEntry[K, V]{key: key}, func(e btreeEntry[K, V]) bool {
		k, v, ok = e.key, e.value, true
		return false
	})
	return
}

func (s *BTree[K, V]) Lower(key K) (k K, v V, ok bool) {
	s.tree.DescendLessOrEqual(btreeEntry[K, V]{key: key}, func(e btreeEntry[K, V]) bool {
		if !s.less(e.key, key) {
			// Skip an exact match.
			return true
		}
		k, v, ok = e.key, e.value, true
		return false
	})
	return
}

func (s *BTree[K, V]) Put(key K, value V) {
	s.tree.ReplaceOrInsert(btreeEntry[K, V]{key: key, value: value})
}

func (s *BTree[K, V]) Delete(key K) bool {
	_, ok := s.tree.Delete(btreeEntry[K, V]{key: key})
	return ok
}

func (s *BTree[K, V]) AscendGreaterOrEqual(pivot K, iter func(key K, value V) bool) {
	s.tree.AscendGreaterOrEqual(btreeEntry[K, V]{key: pivot}, func(e btreeEntry[K, V]) bool {
		return iter(e.key, e.value)
	})
}

func (s *BTree[K, V]) Ascend(iter func(key K, value V) bool) {
	s.tree.Ascend(func(e btreeEntry[K, V]) bool {
		return iter(e.key, e.value)
	})
}
