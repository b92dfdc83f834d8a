package systems

import (
	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/geom"
)

// Breeder is a read-only view of one mating partner.
type Breeder struct {
	Species string
	Pos     components.Position
	Traits  components.Traits
	Vitals  components.Vitals
	Genome  components.Genome
}

// MatingAllowed reports whether a and b may produce a newborn: same species,
// both alive and past puberty, both off cooldown, and close enough.
func MatingAllowed(a, b *Breeder, maxDistance int) bool {
	if a.Species != b.Species {
		return false
	}
	if a.Vitals.Dead || b.Vitals.Dead {
		return false
	}
	if a.Vitals.Age < a.Traits.Puberty.Value || b.Vitals.Age < b.Traits.Puberty.Value {
		return false
	}
	if a.Vitals.MatingCooldown != 0 || b.Vitals.MatingCooldown != 0 {
		return false
	}
	return Within(a.Pos, b.Pos, maxDistance)
}

// Newborn holds the components of an animal produced by mating.
type Newborn struct {
	Pos    components.Position
	Traits components.Traits
	Vitals components.Vitals
	Genome components.Genome
}

// Offspring derives a newborn from the initiator and its mate. Features
// (value and leftover) and diet come from the parent with the higher
// generation; on a tie the mate is the base.
func Offspring(initiator, mate *Breeder, cfg *config.Config) Newborn {
	base := mate
	if initiator.Genome.Generation > mate.Genome.Generation {
		base = initiator
	}

	mid := geom.Midpoint(
		geom.Pt(initiator.Pos.X, initiator.Pos.Y),
		geom.Pt(mate.Pos.X, mate.Pos.Y),
	)

	return Newborn{
		Pos:    components.Position{X: mid.X, Y: mid.Y},
		Traits: base.Traits,
		Vitals: components.Vitals{
			Fullness:   max(initiator.Vitals.Fullness, mate.Vitals.Fullness),
			Age:        0,
			AgeOfDeath: -1,
		},
		Genome: components.Genome{
			ADN:        initiator.Genome.ADN + mate.Genome.ADN + cfg.Genetics.ADNGainToNewborn,
			Diet:       base.Genome.Diet,
			Generation: base.Genome.Generation + 1,
		},
	}
}
