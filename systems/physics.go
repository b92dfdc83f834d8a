package systems

import (
	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/geom"
)

// Bounds is the inclusive map rectangle [0,Width]x[0,Height].
type Bounds struct {
	Width, Height int
}

// Contains reports whether p lies on the map.
func (b Bounds) Contains(p geom.Point) bool {
	return inRange(p.X, 0, b.Width) && inRange(p.Y, 0, b.Height)
}

// Clamp pulls (x, y) onto the map.
func (b Bounds) Clamp(x, y int) (int, int) {
	return min(max(x, 0), b.Width), min(max(y, 0), b.Height)
}

// Move returns the position after one tick at the given heading and speed.
// A path that touches any river segment leaves the position unchanged. An
// axis whose target falls off the map keeps its old coordinate.
func Move(pos components.Position, h components.Heading, speed int, b Bounds, rivers []geom.Polyline) components.Position {
	from := geom.Pt(pos.X, pos.Y)
	to := geom.Pt(pos.X+stepAxis(speed, h.DX), pos.Y+stepAxis(speed, h.DY))
	if to == from {
		return pos
	}

	for _, r := range rivers {
		if r.Crosses(from, to) {
			return pos
		}
	}

	next := pos
	if inRange(to.X, 0, b.Width) {
		next.X = to.X
	}
	if inRange(to.Y, 0, b.Height) {
		next.Y = to.Y
	}
	return next
}

// ValidHeading reports whether both axes are within [-1, 1].
func ValidHeading(dx, dy float64) bool {
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

// HeadingTowards returns a heading pointing from (fx, fy) to (tx, ty). The
// dominant axis gets a full unit step, the other its proportional share.
func HeadingTowards(fx, fy, tx, ty int) components.Heading {
	dx := float64(tx - fx)
	dy := float64(ty - fy)
	ax, ay := abs(dx), abs(dy)

	if ay < ax {
		return components.Heading{DX: sign(dx), DY: (ay / ax) * sign(dy)}
	}
	if ay == 0 {
		return components.Heading{}
	}
	return components.Heading{DX: (ax / ay) * sign(dx), DY: sign(dy)}
}

// HeadingAwayFrom returns the opposite of HeadingTowards.
func HeadingAwayFrom(fx, fy, tx, ty int) components.Heading {
	h := HeadingTowards(fx, fy, tx, ty)
	return components.Heading{DX: -h.DX, DY: -h.DY}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
