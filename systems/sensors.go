package systems

import (
	"math"

	"github.com/pthm-cable/critters/geom"
)

// Detects reports whether an observer with the given detection distance
// senses something at target. Distances are rounded up before comparing.
// Sensing is one-way: only the observer's range matters.
func Detects(observer, target geom.Point, detection int) bool {
	return geom.CeilDistance(observer, target) < detection
}

// DetectsSegment reports whether the closest point of segment [a, b] is
// within the observer's detection distance.
func DetectsSegment(observer, a, b geom.Point, detection int) bool {
	return int(math.Ceil(geom.DistanceToSegment(observer, a, b))) < detection
}
