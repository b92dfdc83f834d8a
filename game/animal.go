package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/geom"
	"github.com/pthm-cable/critters/systems"
	"github.com/pthm-cable/critters/traits"
)

// mind holds the species strategy of one animal.
type mind struct {
	behavior Behavior
}

// Animal is the handle a behavior uses to read and steer its own animal.
// All state lives in ECS components; the handle only addresses them.
type Animal struct {
	sim    *Simulator
	entity ecs.Entity
}

func (a *Animal) identity() *components.Identity { return a.sim.idMap.Get(a.entity) }
func (a *Animal) behavior() Behavior             { return a.sim.mindMap.Get(a.entity).behavior }
func (a *Animal) position() *components.Position { return a.sim.posMap.Get(a.entity) }
func (a *Animal) heading() *components.Heading   { return a.sim.headingMap.Get(a.entity) }
func (a *Animal) traits() *components.Traits     { return a.sim.traitsMap.Get(a.entity) }
func (a *Animal) vitals() *components.Vitals     { return a.sim.vitalsMap.Get(a.entity) }
func (a *Animal) genome() *components.Genome     { return a.sim.genomeMap.Get(a.entity) }
func (a *Animal) intents() *components.Intents   { return a.sim.intentsMap.Get(a.entity) }

// ---------- Reads ----------

// ID is unique per simulator and never reused.
func (a *Animal) ID() uint64      { return a.identity().ID }
func (a *Animal) Species() string { return a.identity().Species }

func (a *Animal) X() int { return a.position().X }
func (a *Animal) Y() int { return a.position().Y }

// Pos returns the current position.
func (a *Animal) Pos() geom.Point {
	p := a.position()
	return geom.Pt(p.X, p.Y)
}

func (a *Animal) DirX() float64 { return a.heading().DX }
func (a *Animal) DirY() float64 { return a.heading().DY }

// Idle reports whether the animal has no direction set.
func (a *Animal) Idle() bool {
	h := a.heading()
	return h.DX == 0 && h.DY == 0
}

func (a *Animal) Fullness() int    { return a.vitals().Fullness }
func (a *Animal) MaxFullness() int { return a.traits().MaxFullness.Value }
func (a *Animal) Speed() int       { return a.traits().Speed.Value }
func (a *Animal) Detection() int   { return a.traits().Detection.Value }
func (a *Animal) AttackPower() int { return a.traits().Attack.Value }
func (a *Animal) PubertyAge() int  { return a.traits().Puberty.Value }

func (a *Animal) ADN() int        { return a.genome().ADN }
func (a *Animal) Generation() int { return a.genome().Generation }
func (a *Animal) Herbivore() bool { return a.genome().Diet.Has(traits.Herbivore) }
func (a *Animal) Carnivore() bool { return a.genome().Diet.Has(traits.Carnivore) }

func (a *Animal) Age() int            { return a.vitals().Age }
func (a *Animal) AgeOfDeath() int     { return a.vitals().AgeOfDeath }
func (a *Animal) Dead() bool          { return a.vitals().Dead }
func (a *Animal) Alive() bool         { return a.vitals().Alive() }
func (a *Animal) MatingCooldown() int { return a.vitals().MatingCooldown }

// Hungry reports whether fullness is below three quarters of the maximum.
func (a *Animal) Hungry() bool {
	return float64(a.Fullness()) < float64(a.MaxFullness())*0.75
}

// Tick returns the simulator's current tick.
func (a *Animal) Tick() int { return a.sim.tick }

// Width and Height return the map size.
func (a *Animal) Width() int  { return a.sim.bounds.Width }
func (a *Animal) Height() int { return a.sim.bounds.Height }

// Rand returns the simulator's random source. Behaviors must draw from it
// so runs stay reproducible for a given seed.
func (a *Animal) Rand() *rand.Rand { return a.sim.rng }

// SameSpeciesAs reports whether other belongs to this animal's species.
func (a *Animal) SameSpeciesAs(other DetectedAnimal) bool {
	return other.Species == a.Species()
}

// ---------- Movement ----------

// SetDir sets the heading. Both values must be within [-1, 1].
func (a *Animal) SetDir(dx, dy float64) {
	if !systems.ValidHeading(dx, dy) {
		invariant("direction (%v,%v) of animal %d is outside [-1,1]", dx, dy, a.ID())
	}
	*a.heading() = components.Heading{DX: dx, DY: dy}
}

// Stop clears the heading.
func (a *Animal) Stop() {
	*a.heading() = components.Heading{}
}

// MoveTowards points the animal at (x, y).
func (a *Animal) MoveTowards(x, y int) {
	p := a.position()
	*a.heading() = systems.HeadingTowards(p.X, p.Y, x, y)
}

// MoveAwayFrom points the animal directly away from (x, y).
func (a *Animal) MoveAwayFrom(x, y int) {
	p := a.position()
	*a.heading() = systems.HeadingAwayFrom(p.X, p.Y, x, y)
}

// ---------- Intents ----------

// EatGrass asks to take a bite of g this tick.
func (a *Animal) EatGrass(g DetectedGrass) {
	a.intents().AddGrass(g.entity)
}

// EatPrey asks to feed on the dead animal p this tick.
func (a *Animal) EatPrey(p DetectedAnimal) {
	a.intents().AddPrey(p.entity)
}

// Attack asks to strike target this tick. A later call replaces it.
func (a *Animal) Attack(target DetectedAnimal) {
	a.intents().SetAttack(target.entity)
}

// Mate asks to mate with partner this tick. A later call replaces it.
func (a *Animal) Mate(partner DetectedAnimal) {
	a.intents().SetMate(partner.entity)
}

// ---------- Economy ----------

func (a *Animal) improve(f *traits.Feature, points int) int {
	return systems.Improve(f, points, a.genome())
}

// ImproveSpeed spends points of ADN on speed and returns the speed gained.
func (a *Animal) ImproveSpeed(points int) int {
	return a.improve(&a.traits().Speed, points)
}

func (a *Animal) ImproveDetectionDistance(points int) int {
	return a.improve(&a.traits().Detection, points)
}

func (a *Animal) ImproveMaxFullness(points int) int {
	return a.improve(&a.traits().MaxFullness, points)
}

func (a *Animal) ImproveAttack(points int) int {
	return a.improve(&a.traits().Attack, points)
}

// ImprovePubertyAge raises the age at which the animal may mate.
func (a *Animal) ImprovePubertyAge(points int) int {
	return a.improve(&a.traits().Puberty, points)
}

// AttackCost returns the ADN needed for one point of attack.
func (a *Animal) AttackCost() int { return a.traits().Attack.Cost }

// BeHerbivore unlocks eating grass. It returns false if already unlocked or
// the animal cannot pay.
func (a *Animal) BeHerbivore() bool {
	return systems.UnlockDiet(a.genome(), traits.Herbivore, a.sim.cfg.Costs.Herbivore)
}

// BeCarnivore unlocks eating dead animals.
func (a *Animal) BeCarnivore() bool {
	return systems.UnlockDiet(a.genome(), traits.Carnivore, a.sim.cfg.Costs.Carnivore)
}

// ---------- Snapshots ----------

func (a *Animal) snapshot() DetectedAnimal {
	p := a.position()
	v := a.vitals()
	return DetectedAnimal{
		Species:    a.Species(),
		X:          p.X,
		Y:          p.Y,
		Dead:       v.Dead,
		AgeOfDeath: v.AgeOfDeath,
		entity:     a.entity,
	}
}

func (a *Animal) breeder() systems.Breeder {
	return systems.Breeder{
		Species: a.Species(),
		Pos:     *a.position(),
		Traits:  *a.traits(),
		Vitals:  *a.vitals(),
		Genome:  *a.genome(),
	}
}

// View returns the render state of the animal.
func (a *Animal) View() AnimalView {
	p := a.position()
	v := a.vitals()
	t := a.traits()
	g := a.genome()
	return AnimalView{
		ID:          a.ID(),
		Species:     a.Species(),
		X:           p.X,
		Y:           p.Y,
		Generation:  g.Generation,
		Fullness:    v.Fullness,
		MaxFullness: t.MaxFullness.Value,
		Dead:        v.Dead,
		Detection:   t.Detection.Value,
		Diet:        g.Diet,
	}
}
