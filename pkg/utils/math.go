// pkg/utils/math.go
package utils

import "math"

// RoundMetres rounds a logical coordinate to whole metres, never below zero.
func RoundMetres(x float64) int {
	return int(math.Max(0, math.Round(x)))
}
