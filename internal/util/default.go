package util

import (
	"cmp"
)

// SetDefaultIfZero sets *v to |defaultVal| if it holds the zero value.
func SetDefaultIfZero[V comparable](v *V, defaultVal V) {
	var zeroVal V
	if *v == zeroVal {
		*v = defaultVal
	}
}

// ClampMax lowers *v to |maxVal| if it is larger.
func ClampMax[V cmp.Ordered](v *V, maxVal V) {
	if *v > maxVal {
		*v = maxVal
	}
}
