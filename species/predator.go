package species

import "github.com/pthm-cable/critters/game"

// predatorRestlessness is the period, in ticks, at which a predator with no
// target changes direction.
const predatorRestlessness = 40

// predator mates with other predators and, when hungry, chases the last
// carcass it saw or else the first living prey.
type predator struct {
	target *game.DetectedAnimal
}

func (p *predator) ChooseInitialDiet(a *game.Animal) { a.BeCarnivore() }

// OnSpawn buys exactly one point of attack and puts the rest into detection.
func (p *predator) OnSpawn(a *game.Animal) {
	a.ImproveAttack(a.AttackCost())
	a.ImproveDetectionDistance(a.ADN())
}

func (p *predator) OnBirth(a *game.Animal, _, _ *game.Animal) {
	a.ImproveSpeed(a.ADN())
}

func (p *predator) Behave(a *game.Animal) {
	switch {
	case p.target != nil:
		t := *p.target
		a.MoveTowards(t.X, t.Y)
		a.Attack(t)
		a.EatPrey(t)
	case a.Idle() || a.Tick()%predatorRestlessness == 0:
		randomMoves(a)
	}
	p.target = nil
}

func (p *predator) OnAnimalDetected(a *game.Animal, d game.DetectedAnimal) {
	kin := a.SameSpeciesAs(d)
	if kin && d.Alive() {
		a.Mate(d)
	}
	if !a.Hungry() {
		return
	}
	switch {
	case d.Dead:
		p.target = &d
	case !kin && p.target == nil:
		p.target = &d
	}
}
