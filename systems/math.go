package systems

import "math"

// stepAxis returns the displacement along one axis for a tick: ceil(speed * dir).
func stepAxis(speed int, dir float64) int {
	return int(math.Ceil(float64(speed) * dir))
}

// inRange reports whether lo <= v <= hi.
func inRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}

// signOf returns -1 or 1 with equal probability.
func signOf(coin int) int {
	if coin == 0 {
		return -1
	}
	return 1
}
