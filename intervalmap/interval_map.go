// Package intervalmap implements a map from half-open key ranges to values.
//
// A Map holds a step function over its key space. Every key before the first
// breakpoint maps to the start value, and every breakpoint maps its own key
// and all keys up to the next breakpoint. The breakpoints are always kept in
// canonical form: no breakpoint carries the same value as the run before it,
// so equal step functions have identical representations.
//
// A Map is not safe for concurrent use.
package intervalmap

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/akmistry/intervalmap/internal/breakpoints"
)

var (
	ErrNotCanonical = errors.New("intervalmap: not in canonical form")
)

// Map is a canonical step function from K to V. Keys are ordered by a strict
// weak ordering and values are compared with ==.
type Map[K any, V comparable] struct {
	start V
	bps   breakpoints.Store[K, V]
	less  func(a, b K) bool
}

// New returns a map with every key of K mapped to |initial|.
func New[K cmp.Ordered, V comparable](initial V) *Map[K, V] {
	return NewFunc[K, V](initial, cmp.Less[K])
}

// NewFunc is like New, but orders keys with |less|, which must be a strict
// weak ordering.
func NewFunc[K any, V comparable](initial V, less func(a, b K) bool) *Map[K, V] {
	return &Map[K, V]{
		start: initial,
		bps:   breakpoints.NewBTree[K, V](less),
		less:  less,
	}
}

// NewUint64 returns a map over uint64 keys backed by a radix tree.
func NewUint64[V comparable](initial V) *Map[uint64, V] {
	return &Map[uint64, V]{
		start: initial,
		bps:   new(breakpoints.Radix[V]),
		less:  cmp.Less[uint64],
	}
}

// NewDense returns a map over uint64 keys backed by a bitmap, for dense key
// spaces such as block indices. Set must not be given a key above |maxKey|,
// and memory grows with |maxKey|. Get accepts any key.
func NewDense[V comparable](initial V, maxKey uint64) *Map[uint64, V] {
	return &Map[uint64, V]{
		start: initial,
		bps:   breakpoints.NewBitmap[V](maxKey),
		less:  cmp.Less[uint64],
	}
}

func (m *Map[K, V]) equalKeys(a, b K) bool {
	return !m.less(a, b) && !m.less(b, a)
}

// Set maps every key in [from, to) to |value|. An empty or inverted range is
// a no-op.
func (m *Map[K, V]) Set(from, to K, value V) {
	if !m.less(from, to) {
		return
	}
	if m.bps.Len() == 0 && value == m.start {
		return
	}

	// Value in effect just before |from|.
	leftValue := m.start
	if _, v, ok := m.bps.Lower(from); ok {
		leftValue = v
	}
	needBegin := leftValue != value

	// Collect the breakpoints in [from, to), which are all superseded, and
	// track the value in effect just before |to|.
	var covered []K
	tailValue := leftValue
	hasEnd := false
	var endValue V
	m.bps.AscendGreaterOrEqual(from, func(k K, v V) bool {
		if m.less(k, to) {
			covered = append(covered, k)
			tailValue = v
			return true
		}
		if !m.less(to, k) {
			hasEnd = true
			endValue = v
		}
		return false
	})

	for _, k := range covered {
		if needBegin && m.equalKeys(k, from) {
			// Overwritten in place below.
			continue
		}
		m.bps.Delete(k)
	}
	if needBegin {
		m.bps.Put(from, value)
	}

	if hasEnd {
		if endValue == value {
			// Merge with the run starting at |to|.
			m.bps.Delete(to)
		}
	} else if tailValue != value {
		// Resume the overwritten run at |to|.
		m.bps.Put(to, tailValue)
	}
}

// Get returns the value mapped to |key|.
func (m *Map[K, V]) Get(key K) V {
	if _, v, ok := m.bps.Floor(key); ok {
		return v
	}
	return m.start
}

// Len returns the number of breakpoints.
func (m *Map[K, V]) Len() int {
	return m.bps.Len()
}

// Check verifies that the breakpoints are strictly ordered and that no
// breakpoint repeats the value of the run before it.
func (m *Map[K, V]) Check() (err error) {
	prevValue := m.start
	var prevKey K
	first := true
	m.bps.Ascend(func(k K, v V) bool {
		if !first && !m.less(prevKey, k) {
			err = fmt.Errorf("%w: breakpoint %v not after %v", ErrNotCanonical, k, prevKey)
			return false
		}
		if v == prevValue {
			err = fmt.Errorf("%w: breakpoint %v repeats value %v", ErrNotCanonical, k, v)
			return false
		}
		prevKey, prevValue, first = k, v, false
		return true
	})
	return
}

func (m *Map[K, V]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "{%v |", m.start)
	m.bps.Ascend(func(k K, v V) bool {
		fmt.Fprintf(&b, " %v:%v", k, v)
		return true
	})
	b.WriteString("}")
	return b.String()
}
