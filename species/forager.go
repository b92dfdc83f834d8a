package species

import (
	"github.com/pthm-cable/critters/game"
	"github.com/pthm-cable/critters/geom"
)

// foragerRestlessness is the period, in ticks, after which a wandering
// forager may pick a new direction.
const foragerRestlessness = 60

// forager walks towards the nearest grass it sees, runs from any living
// animal of another species and mates with its own kind.
type forager struct {
	nearest *game.DetectedGrass
	fleeing bool

	// sated runs when the forager stands on grass but is not hungry.
	sated func(a *game.Animal, g game.DetectedGrass)
	// born spends the newborn's ADN.
	born func(a *game.Animal)
}

func newGuineaPig() *forager {
	return &forager{
		sated: func(a *game.Animal, _ game.DetectedGrass) { a.Stop() },
		born:  func(a *game.Animal) { a.ImproveDetectionDistance(a.ADN()) },
	}
}

func newBoui() *forager {
	return &forager{
		sated: func(a *game.Animal, g game.DetectedGrass) { a.MoveAwayFrom(g.X, g.Y) },
		born:  func(a *game.Animal) { a.ImproveSpeed(a.ADN()) },
	}
}

func (f *forager) ChooseInitialDiet(a *game.Animal) { a.BeHerbivore() }

func (f *forager) OnSpawn(a *game.Animal) { a.ImproveSpeed(a.ADN()) }

func (f *forager) OnBirth(a *game.Animal, _, _ *game.Animal) { f.born(a) }

func (f *forager) Behave(a *game.Animal) {
	switch {
	case f.fleeing:
		// keep running
	case f.nearest != nil && f.nearest.Amount > 0:
		f.graze(a, *f.nearest)
	case a.Idle() || f.restless(a):
		randomMoves(a)
	}

	f.fleeing = false
	f.nearest = nil
}

func (f *forager) graze(a *game.Animal, g game.DetectedGrass) {
	inReach := geom.Distance(a.Pos(), g.Pos()) <= float64(g.MaxDistanceToEat)
	switch {
	case inReach && a.Hungry():
		a.Stop()
		a.EatGrass(g)
	case inReach:
		f.sated(a, g)
	case a.Hungry():
		a.MoveTowards(g.X, g.Y)
		a.EatGrass(g)
	default:
		randomMoves(a)
	}
}

func (f *forager) restless(a *game.Animal) bool {
	jitter := a.Rand().Intn(foragerRestlessness / 5)
	return (a.Tick()+jitter)%foragerRestlessness == 0
}

func (f *forager) OnGrassDetected(a *game.Animal, g game.DetectedGrass) {
	if f.nearest == nil || f.nearest.Amount == 0 ||
		geom.Distance(a.Pos(), g.Pos()) <= geom.Distance(a.Pos(), f.nearest.Pos()) {
		f.nearest = &g
	}
}

func (f *forager) OnAnimalDetected(a *game.Animal, d game.DetectedAnimal) {
	if a.SameSpeciesAs(d) {
		a.Mate(d)
		return
	}
	if d.Alive() {
		a.MoveAwayFrom(d.X, d.Y)
		f.fleeing = true
	}
}
