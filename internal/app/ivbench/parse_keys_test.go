package ivbench

import (
	"testing"
)

func TestParseKeyCount(t *testing.T) {
	tests := []struct {
		str    string
		expInt uint64
		expErr bool
	}{
		{"0", 0, false},
		{"1", 1, false},
		{"123456", 123456, false},
		{"4K", 4 << 10, false},
		{"12M", 12 << 20, false},
		{"2G", 2 << 30, false},
		{"345T", 345 << 40, false},
		{"16777216T", 0, true},
		{"99999999999999999999", 0, true},
		{"12a3", 0, true},
		{"01", 0, true},
		{"0K", 0, true},
		{"1 K", 0, true},
		{"1k", 0, true},
		{"1P", 0, true},
		{" 1M", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		i, err := ParseKeyCount(tc.str)
		if i != tc.expInt {
			t.Errorf("ParseKeyCount(%s) %d != %d", tc.str, i, tc.expInt)
		}
		if tc.expErr {
			if err == nil {
				t.Errorf("ParseKeyCount(%s) unexpected nil error", tc.str)
			}
		} else {
			if err != nil {
				t.Errorf("ParseKeyCount(%s) unexpected error %v", tc.str, err)
			}
		}
	}
}
