package ivbench

import (
	"errors"
	"regexp"
	"strconv"
)

var (
	ErrInvalidKeyCount = errors.New("invalid key count")

	keyCountPattern = regexp.MustCompile("^([1-9][0-9]*)([KMGT])?$")
)

// ParseKeyCount parses a key count, optionally with a binary K, M, G or T
// suffix.
func ParseKeyCount(str string) (uint64, error) {
	// Special case "0" to simplify the regexp.
	if str == "0" {
		return 0, nil
	}

	parts := keyCountPattern.FindStringSubmatch(str)
	if len(parts) < 2 {
		return 0, ErrInvalidKeyCount
	}

	n, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, ErrInvalidKeyCount
	}

	var shift uint
	switch parts[2] {
	case "K":
		shift = 10
	case "M":
		shift = 20
	case "G":
		shift = 30
	case "T":
		shift = 40
	}
	if n > (^uint64(0))>>shift {
		return 0, ErrInvalidKeyCount
	}
	return n << shift, nil
}
