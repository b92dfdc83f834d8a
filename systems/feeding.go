package systems

import (
	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/geom"
	"github.com/pthm-cable/critters/traits"
)

// Within reports whether a and b are at most reach apart.
func Within(a, b components.Position, reach int) bool {
	return geom.Distance(geom.Pt(a.X, a.Y), geom.Pt(b.X, b.Y)) <= float64(reach)
}

// EatGrass lets a living herbivore that is not full take one bite from the
// patch. The gain is capped at maxFullness; the bite is removed from the
// patch in full. Returns the amount bitten off the patch.
func EatGrass(v *components.Vitals, diet traits.Diet, maxFullness int, p *components.Patch, bite int) int {
	if v.Dead || !diet.Has(traits.Herbivore) || v.Fullness >= maxFullness {
		return 0
	}
	taken := Bite(p, bite)
	v.Fullness = min(v.Fullness+taken, maxFullness)
	return taken
}

// EatCarrion lets a living carnivore feed on a dead animal. It returns true
// when the meal happened and the carcass should be consumed.
func EatCarrion(v *components.Vitals, diet traits.Diet, maxFullness int, prey *components.Vitals, gain int) bool {
	if v.Dead || !prey.Dead || !diet.Has(traits.Carnivore) {
		return false
	}
	v.Fullness = min(v.Fullness+gain, maxFullness)
	return true
}
