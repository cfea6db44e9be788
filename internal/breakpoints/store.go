package breakpoints

// Store is an ordered container of breakpoints, mapping each key to the
// value in effect from that key up to the next larger key.
type Store[K, V any] interface {
	Len() int

	// Floor returns the entry with the greatest key <= |key|.
	Floor(key K) (k K, v V, ok bool)
	// Lower returns the entry with the greatest key < |key|.
	Lower(key K) (k K, v V, ok bool)

	// Put inserts |key|, or overwrites its value if already present.
	Put(key K, value V)
	Delete(key K) bool

	AscendGreaterOrEqual(pivot K, iter func(key K, value V) bool)
	Ascend(iter func(key K, value V) bool)
}
