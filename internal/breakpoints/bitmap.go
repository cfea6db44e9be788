package breakpoints

import (
	"log"

	"github.com/akmistry/go-util/bitmap"
	"github.com/bits-and-blooms/bitset"
)

const (
	leafShift = 8
	leafSize  = 1 << leafShift
	leafMask  = leafSize - 1
)

type bitmapLeaf[V any] struct {
	bm    bitmap.Bitmap256
	items [leafSize]V
}

func (l *bitmapLeaf[V]) has(i int) bool {
	return l.bm.Get(uint8(i))
}

// Returns the highest set index <= i.
func (l *bitmapLeaf[V]) prev(i int) (int, bool) {
	for j := i; j >= 0; j-- {
		if l.has(j) {
			return j, true
		}
	}
	return 0, false
}

var _ = (Store[uint64, int])((*Bitmap[int])(nil))

// Bitmap stores breakpoints with uint64 keys in [0, maxKey] as a two level
// bitmap. Memory scales with maxKey, so it is intended for dense, bounded key
// spaces such as block indices.
type Bitmap[V any] struct {
	leaves map[uint64]*bitmapLeaf[V]
	maxKey uint64

	// Leaves with at least one breakpoint.
	leafIndex bitset.BitSet
	n         int
}

func NewBitmap[V any](maxKey uint64) *Bitmap[V] {
	return &Bitmap[V]{
		leaves: make(map[uint64]*bitmapLeaf[V]),
		maxKey: maxKey,
	}
}

func (s *Bitmap[V]) getOrCreateLeaf(leafIndex uint64) *bitmapLeaf[V] {
	l := s.leaves[leafIndex]
	if l == nil {
		l = new(bitmapLeaf[V])
		s.leaves[leafIndex] = l
		s.leafIndex.Set(uint(leafIndex))
	}
	return l
}

func (s *Bitmap[V]) Len() int {
	return s.n
}

func (s *Bitmap[V]) Floor(key uint64) (k uint64, v V, ok bool) {
	leafIndex := key >> leafShift
	if leaf := s.leaves[leafIndex]; leaf != nil {
		if i, found := leaf.prev(int(key & leafMask)); found {
			return (leafIndex << leafShift) + uint64(i), leaf.items[i], true
		}
	}

	// Leaves past the end of the index are empty.
	li := int64(s.leafIndex.Len()) - 1
	if int64(leafIndex)-1 < li {
		li = int64(leafIndex) - 1
	}
	for ; li >= 0; li-- {
		if !s.leafIndex.Test(uint(li)) {
			continue
		}
		leaf := s.leaves[uint64(li)]
		i, found := leaf.prev(leafMask)
		if !found {
			log.Panicf("Unexpected empty leaf: %d", li)
		}
		return (uint64(li) << leafShift) + uint64(i), leaf.items[i], true
	}
	return
}

func (s *Bitmap[V]) Lower(key uint64) (k uint64, v V, ok bool) {
	if key == 0 {
		return
	}
	return s.Floor(key - 1)
}

func (s *Bitmap[V]) Put(key uint64, value V) {
	if key > s.maxKey {
		log.Panicf("key %d > max key %d", key, s.maxKey)
	}

	leaf := s.getOrCreateLeaf(key >> leafShift)
	i := int(key & leafMask)
	if !leaf.has(i) {
		leaf.bm.Set(uint8(i))
		s.n++
	}
	leaf.items[i] = value
}

func (s *Bitmap[V]) Delete(key uint64) bool {
	leafIndex := key >> leafShift
	leaf := s.leaves[leafIndex]
	i := int(key & leafMask)
	if leaf == nil || !leaf.has(i) {
		return false
	}

	var zeroVal V
	leaf.bm.Clear(uint8(i))
	leaf.items[i] = zeroVal
	s.n--
	if leaf.bm.Empty() {
		delete(s.leaves, leafIndex)
		s.leafIndex.Clear(uint(leafIndex))
	}
	return true
}

func (s *Bitmap[V]) AscendGreaterOrEqual(pivot uint64, iter func(key uint64, value V) bool) {
	leafIndex := pivot >> leafShift
	start := int(pivot & leafMask)
	for {
		if leaf := s.leaves[leafIndex]; leaf != nil {
			for i := start; i < leafSize; i++ {
				i = int(leaf.bm.FindNextSet(uint8(i)))
				if i >= leafSize {
					break
				}
				if !iter((leafIndex<<leafShift)+uint64(i), leaf.items[i]) {
					return
				}
			}
		}

		next, ok := s.leafIndex.NextSet(uint(leafIndex) + 1)
		if !ok {
			return
		}
		leafIndex = uint64(next)
		start = 0
	}
}

func (s *Bitmap[V]) Ascend(iter func(key uint64, value V) bool) {
	s.AscendGreaterOrEqual(0, iter)
}
