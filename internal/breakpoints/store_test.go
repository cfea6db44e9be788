package breakpoints

import (
	"cmp"
	"math"
	"math/rand"
	"slices"
	"testing"
)

type testStore = Store[uint64, int]

func newTestStores() map[string]func() testStore {
	return map[string]func() testStore{
		"BTree":  func() testStore { return NewBTree[uint64, int](cmp.Less[uint64]) },
		"Radix":  func() testStore { return new(Radix[int]) },
		"Bitmap": func() testStore { return NewBitmap[int](1 << 20) },
	}
}

// Reference floor over a plain map.
func modelFloor(model map[uint64]int, key uint64, strict bool) (uint64, int, bool) {
	var bestKey uint64
	var bestVal int
	found := false
	for k, v := range model {
		if k > key || (strict && k == key) {
			continue
		}
		if !found || k > bestKey {
			bestKey, bestVal, found = k, v, true
		}
	}
	return bestKey, bestVal, found
}

func collect(s testStore, pivot uint64) []uint64 {
	var keys []uint64
	s.AscendGreaterOrEqual(pivot, func(k uint64, v int) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func testPutDelete(t *testing.T, s testStore) {
	if s.Len() != 0 {
		t.Errorf("Len() %d != 0", s.Len())
	}
	if _, _, ok := s.Floor(100); ok {
		t.Errorf("Floor(100) ok on empty store")
	}

	s.Put(10, 1)
	s.Put(20, 2)
	s.Put(10, 3)
	if s.Len() != 2 {
		t.Errorf("Len() %d != 2", s.Len())
	}
	if k, v, ok := s.Floor(15); !ok || k != 10 || v != 3 {
		t.Errorf("Floor(15) (%d, %d, %v) != (10, 3, true)", k, v, ok)
	}
	if k, v, ok := s.Floor(20); !ok || k != 20 || v != 2 {
		t.Errorf("Floor(20) (%d, %d, %v) != (20, 2, true)", k, v, ok)
	}
	if k, v, ok := s.Lower(20); !ok || k != 10 || v != 3 {
		t.Errorf("Lower(20) (%d, %d, %v) != (10, 3, true)", k, v, ok)
	}
	if _, _, ok := s.Lower(10); ok {
		t.Errorf("Lower(10) ok")
	}
	if _, _, ok := s.Lower(0); ok {
		t.Errorf("Lower(0) ok")
	}

	if s.Delete(11) {
		t.Errorf("Delete(11) removed a missing key")
	}
	if !s.Delete(10) {
		t.Errorf("Delete(10) did not remove")
	}
	if s.Len() != 1 {
		t.Errorf("Len() %d != 1", s.Len())
	}
	if _, _, ok := s.Floor(15); ok {
		t.Errorf("Floor(15) ok after delete")
	}
}

func TestStore_PutDelete(t *testing.T) {
	for name, newStore := range newTestStores() {
		t.Run(name, func(t *testing.T) {
			testPutDelete(t, newStore())
		})
	}
}

func testRandom(t *testing.T, s testStore) {
	const MaxKey = 5000
	const Iterations = 2000

	model := make(map[uint64]int)
	for i := 0; i < Iterations; i++ {
		key := uint64(rand.Int63n(MaxKey))
		if rand.Intn(3) == 0 {
			_, exists := model[key]
			if s.Delete(key) != exists {
				t.Fatalf("Delete(%d) != %v", key, exists)
			}
			delete(model, key)
		} else {
			s.Put(key, i)
			model[key] = i
		}
		if s.Len() != len(model) {
			t.Fatalf("Len() %d != %d", s.Len(), len(model))
		}

		probe := uint64(rand.Int63n(MaxKey + 10))
		k, v, ok := s.Floor(probe)
		ek, ev, eok := modelFloor(model, probe, false)
		if k != ek || v != ev || ok != eok {
			t.Fatalf("Floor(%d) (%d, %d, %v) != (%d, %d, %v)", probe, k, v, ok, ek, ev, eok)
		}
		k, v, ok = s.Lower(probe)
		ek, ev, eok = modelFloor(model, probe, true)
		if k != ek || v != ev || ok != eok {
			t.Fatalf("Lower(%d) (%d, %d, %v) != (%d, %d, %v)", probe, k, v, ok, ek, ev, eok)
		}
	}

	var expKeys []uint64
	for k := range model {
		expKeys = append(expKeys, k)
	}
	slices.Sort(expKeys)
	var keys []uint64
	s.Ascend(func(k uint64, v int) bool {
		if model[k] != v {
			t.Errorf("Ascend value at %d: %d != %d", k, v, model[k])
		}
		keys = append(keys, k)
		return true
	})
	if !slices.Equal(keys, expKeys) {
		t.Errorf("Ascend keys %v != %v", keys, expKeys)
	}

	for _, pivot := range []uint64{0, 1, 255, 256, 257, MaxKey / 2, MaxKey} {
		var exp []uint64
		for _, k := range expKeys {
			if k >= pivot {
				exp = append(exp, k)
			}
		}
		if got := collect(s, pivot); !slices.Equal(got, exp) {
			t.Errorf("AscendGreaterOrEqual(%d) %v != %v", pivot, got, exp)
		}
	}
}

func TestStore_Random(t *testing.T) {
	for name, newStore := range newTestStores() {
		t.Run(name, func(t *testing.T) {
			testRandom(t, newStore())
		})
	}
}

func TestStore_AscendStop(t *testing.T) {
	for name, newStore := range newTestStores() {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			for _, k := range []uint64{1, 300, 600, 900} {
				s.Put(k, int(k))
			}
			var keys []uint64
			s.AscendGreaterOrEqual(2, func(k uint64, v int) bool {
				keys = append(keys, k)
				return len(keys) < 2
			})
			if !slices.Equal(keys, []uint64{300, 600}) {
				t.Errorf("keys %v != [300 600]", keys)
			}
		})
	}
}

func TestBitmap_LeafRemoved(t *testing.T) {
	s := NewBitmap[int](1 << 20)
	s.Put(1000, 1)
	if k, v, ok := s.Floor(5000); !ok || k != 1000 || v != 1 {
		t.Errorf("Floor(5000) (%d, %d, %v) != (1000, 1, true)", k, v, ok)
	}
	s.Delete(1000)
	if len(s.leaves) != 0 {
		t.Errorf("%d leaves left after delete", len(s.leaves))
	}
}

func TestStore_FarKeys(t *testing.T) {
	for name, newStore := range newTestStores() {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			s.Put(1, 10)
			s.Put(5, 20)
			for _, key := range []uint64{1 << 40, 1 << 63, math.MaxUint64} {
				if k, v, ok := s.Floor(key); !ok || k != 5 || v != 20 {
					t.Errorf("Floor(%d) (%d, %d, %v) != (5, 20, true)", key, k, v, ok)
				}
				if k, v, ok := s.Lower(key); !ok || k != 5 || v != 20 {
					t.Errorf("Lower(%d) (%d, %d, %v) != (5, 20, true)", key, k, v, ok)
				}
				if keys := collect(s, key); len(keys) != 0 {
					t.Errorf("AscendGreaterOrEqual(%d) %v not empty", key, keys)
				}
			}
		})
	}
}

func TestBitmap_PutBeyondMaxKey(t *testing.T) {
	s := NewBitmap[int](1000)
	s.Put(1000, 1)

	defer func() {
		if recover() == nil {
			t.Errorf("Put(1001) did not panic")
		}
		if s.Len() != 1 {
			t.Errorf("Len() %d != 1", s.Len())
		}
	}()
	s.Put(1001, 2)
}

func benchmarkFloor(b *testing.B, s testStore) {
	const MaxKey = 1000000
	for i := 0; i < 10000; i++ {
		s.Put(uint64(rand.Int63n(MaxKey)), i)
	}

	probes := make([]uint64, b.N)
	for i := range probes {
		probes[i] = uint64(rand.Int63n(MaxKey))
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Floor(probes[i])
	}
}

func BenchmarkBTree_Floor(b *testing.B) {
	benchmarkFloor(b, NewBTree[uint64, int](cmp.Less[uint64]))
}

func BenchmarkRadix_Floor(b *testing.B) {
	benchmarkFloor(b, new(Radix[int]))
}

func BenchmarkBitmap_Floor(b *testing.B) {
	benchmarkFloor(b, NewBitmap[int](1<<20))
}
