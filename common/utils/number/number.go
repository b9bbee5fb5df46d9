package number

import (
	"math"
	"strconv"
)

// EPSILON is the tolerance used for every near-zero comparison.
const EPSILON = 1e-6

func IsZero(f float64) bool {
	return math.Abs(f) < EPSILON
}

func FloatToStr(f float64, places int) string {
	return strconv.FormatFloat(f, 'f', places, 64)
}
