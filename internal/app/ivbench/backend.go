package ivbench

import (
	"errors"
	"fmt"

	"github.com/akmistry/intervalmap/intervalmap"
)

var (
	ErrUnknownBackend = errors.New("unknown backend")
)

type Backend int

const (
	BackendBTree Backend = iota
	BackendRadix
	BackendBitmap
)

var backendNames = []string{
	BackendBTree:  "btree",
	BackendRadix:  "radix",
	BackendBitmap: "bitmap",
}

func (b Backend) String() string {
	if int(b) < 0 || int(b) >= len(backendNames) {
		return fmt.Sprintf("Backend(%d)", int(b))
	}
	return backendNames[b]
}

func ParseBackend(str string) (Backend, error) {
	for i, name := range backendNames {
		if name == str {
			return Backend(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, str)
}

// NewMap returns a map for keys in [0, keys].
func NewMap(b Backend, initial int, keys uint64) *intervalmap.Map[uint64, int] {
	switch b {
	case BackendRadix:
		return intervalmap.NewUint64[int](initial)
	case BackendBitmap:
		return intervalmap.NewDense[int](initial, keys)
	default:
		return intervalmap.New[uint64, int](initial)
	}
}
