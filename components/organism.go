package components

import "github.com/pthm-cable/critters/traits"

// Vitals tracks an animal's metabolic and lifecycle state.
type Vitals struct {
	Fullness         int
	Dead             bool
	AttackedThisTick bool
	MatingCooldown   int // ticks until the animal can mate again
	Age              int
	AgeOfDeath       int // -1 while alive
}

// Alive reports whether the animal has not died yet.
func (v *Vitals) Alive() bool {
	return !v.Dead
}

// Genome bundles the heritable budget, diet and lineage depth.
type Genome struct {
	ADN        int // unspent upgrade points
	Diet       traits.Diet
	Generation int
}

// Identity names an animal for telemetry and species checks.
type Identity struct {
	ID      uint64
	Species string
}
