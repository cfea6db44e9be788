package breakpoints

import (
	"log"

	"github.com/akmistry/go-util/radix-tree"
)

var _ = (Store[uint64, int])((*Radix[int])(nil))

type radixEntry[V any] struct {
	key   uint64
	value V
}

func (e *radixEntry[V]) Key() uint64 {
	return e.key
}

// Radix stores breakpoints with uint64 keys in a radix tree. Values are
// updated in place through the stored entry.
type Radix[V any] struct {
	tree radix.Tree
	n    int
}

func (s *Radix[V]) Len() int {
	return s.n
}

func (s *Radix[V]) floorEntry(key uint64) (e *radixEntry[V]) {
	s.tree.DescendLessOrEqualI(key, func(i radix.Item) bool {
		e = i.(*radixEntry[V])
		return false
	})
	return
}

func (s *Radix[V]) Floor(key uint64) (k uint64, v V, ok bool) {
	e := s.floorEntry(key)
	if e == nil {
		return
	}
	return e.key, e.value, true
}

func (s *Radix[V]) Lower(key uint64) (k uint64, v V, ok bool) {
	if key == 0 {
		return
	}
	return s.Floor(key - 1)
}

func (s *Radix[V]) Put(key uint64, value V) {
	e := s.floorEntry(key)
	if e != nil && e.key == key {
		e.value = value
		return
	}

	old := s.tree.ReplaceOrInsert(&radixEntry[V]{key: key, value: value})
	if old != nil {
		log.Panicf("unexpected old entry: %+v", old)
	}
	s.n++
}

func (s *Radix[V]) Delete(key uint64) bool {
	if s.tree.Delete(&radixEntry[V]{key: key}) == nil {
		return false
	}
	s.n--
	return true
}

func (s *Radix[V]) AscendGreaterOrEqual(pivot uint64, iter func(key uint64, value V) bool) {
	s.tree.AscendGreaterOrEqualI(pivot, func(i radix.Item) bool {
		e := i.(*radixEntry[V])
		return iter(e.key, e.value)
	})
}

func (s *Radix[V]) Ascend(iter func(key uint64, value V) bool) {
	s.tree.Ascend(func(i radix.Item) bool {
		e := i.(*radixEntry[V])
		return iter(e.key, e.value)
	})
}
