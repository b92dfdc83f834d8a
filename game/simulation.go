package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/systems"
	"github.com/pthm-cable/critters/telemetry"
)

// NextTick advances the world by one tick. The phases run strictly in order;
// behaviors only declare intents, and the engine resolves them afterwards.
func (s *Simulator) NextTick() {
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseDetect)
	s.detect()

	s.perf.StartPhase(telemetry.PhaseBehave)
	s.behave()

	s.perf.StartPhase(telemetry.PhaseMove)
	s.move()

	s.perf.StartPhase(telemetry.PhaseAttack)
	s.resolveAttacks()

	s.perf.StartPhase(telemetry.PhaseEat)
	s.resolveEating()

	s.perf.StartPhase(telemetry.PhaseMate)
	s.resolveMating()

	s.perf.StartPhase(telemetry.PhaseBookkeeping)
	s.bookkeeping()

	s.perf.StartPhase(telemetry.PhaseCommit)
	s.commit()
	s.tick++

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()

	s.perf.EndTick()
}

// Run advances the world by n ticks.
func (s *Simulator) Run(n int) {
	for i := 0; i < n; i++ {
		s.NextTick()
	}
}

// detect notifies every animal of the grass, river segments and other
// animals within its detection distance. Sightings are computed from a
// snapshot taken when the phase starts.
func (s *Simulator) detect() {
	s.prepareDetection()
	p := s.detection
	p.run()

	for i, a := range s.animals {
		r := &p.results[i]
		b := a.behavior()

		if gs, ok := b.(GrassSensor); ok {
			for _, j := range r.grass {
				gs.OnGrassDetected(a, p.grass[j])
			}
		}
		if rs, ok := b.(RiverSensor); ok {
			for _, j := range r.rivers {
				rs.OnRiverDetected(a, p.segments[j].a, p.segments[j].b)
			}
		}
		if as, ok := b.(AnimalSensor); ok {
			for _, j := range r.animals {
				as.OnAnimalDetected(a, p.animals[j])
			}
		}
	}
}

func (s *Simulator) grassSnapshot(e ecs.Entity) DetectedGrass {
	pos := s.posMap.Get(e)
	patch := s.patchMap.Get(e)
	return DetectedGrass{
		X:                pos.X,
		Y:                pos.Y,
		Amount:           patch.Amount,
		MaxDistanceToEat: systems.EdibleRadius(patch.Amount, s.cfg),
		entity:           e,
	}
}

// behave lets every animal decide, dead ones included.
func (s *Simulator) behave() {
	for _, a := range s.animals {
		a.behavior().Behave(a)
	}
}

// move applies headings and hunger to living animals.
func (s *Simulator) move() {
	for _, a := range s.animals {
		v := a.vitals()
		if v.Dead {
			continue
		}

		pos := a.position()
		*pos = systems.Move(*pos, *a.heading(), a.Speed(), s.bounds, s.paths)

		if systems.Hunger(v) {
			s.kill(a, telemetry.CauseStarvation)
		}
	}
}

// resolveAttacks applies declared attacks in animal order. An attacker
// strikes at most once per tick and any positive attack is lethal.
func (s *Simulator) resolveAttacks() {
	for _, a := range s.animals {
		in := a.intents()
		if !in.HasAttack {
			continue
		}
		target := s.lookup(in.Attack)
		if target == nil || target == a {
			continue
		}

		av := a.vitals()
		if !systems.CanAttack(av, *a.position(), target.vitals(), *target.position(), s.cfg.Animal.MaxDistanceToAttack) {
			continue
		}
		av.AttackedThisTick = true

		damage := a.AttackPower()
		s.emit(telemetry.NewAttackEvent(s.tick, a.ID(), a.Species(), target.ID(), damage))
		if damage <= 0 {
			continue
		}

		if l, ok := target.behavior().(AttackListener); ok {
			l.OnAttacked(target, a.snapshot(), damage)
		}
		s.kill(target, telemetry.CauseKilled)
		s.emit(telemetry.NewKillEvent(s.tick, a.ID(), a.Species(), target.ID()))
	}
}

// resolveEating applies grass and carrion intents. Emptied grass is removed
// when the phase ends; an eaten carcass feeds one carnivore and is queued
// for removal.
func (s *Simulator) resolveEating() {
	var emptied []ecs.Entity

	for _, a := range s.animals {
		if a.Dead() {
			continue
		}
		in := a.intents()

		if a.Herbivore() {
			for _, e := range in.Grass {
				if !s.world.Alive(e) || !s.patchMap.HasAll(e) {
					continue
				}
				patch := s.patchMap.Get(e)
				gpos := s.posMap.Get(e)
				if !systems.Within(*a.position(), *gpos, systems.EdibleRadius(patch.Amount, s.cfg)) {
					continue
				}

				taken := systems.EatGrass(a.vitals(), a.genome().Diet, a.MaxFullness(), patch, s.cfg.Grass.Bite)
				if taken > 0 {
					s.emit(telemetry.NewGrassBiteEvent(s.tick, a.ID(), a.Species(), taken))
				}
				if patch.Amount == 0 {
					emptied = append(emptied, e)
				}
			}
		}

		if a.Carnivore() {
			for _, e := range in.Prey {
				prey := s.lookup(e)
				if prey == nil || prey == a {
					continue
				}
				if _, eaten := s.queued[e]; eaten {
					continue
				}
				if !systems.Within(*a.position(), *prey.position(), s.cfg.Animal.MaxDistanceToEatPrey) {
					continue
				}

				gain := s.cfg.Animal.FullnessPerCarnivorousBite
				if systems.EatCarrion(a.vitals(), a.genome().Diet, a.MaxFullness(), prey.vitals(), gain) {
					s.queueRemoval(e)
					s.emit(telemetry.NewCarrionMealEvent(s.tick, a.ID(), a.Species(), prey.ID(), gain))
				}
			}
		}
	}

	s.removeGrass(emptied)
}

// resolveMating applies mating intents. Newborns are staged and do not act
// until the next tick.
func (s *Simulator) resolveMating() {
	for _, a := range s.animals {
		in := a.intents()
		if !in.HasMate {
			continue
		}
		partner := s.lookup(in.Mate)
		if partner == nil || partner == a {
			continue
		}

		ba := a.breeder()
		bp := partner.breeder()
		if !systems.MatingAllowed(&ba, &bp, s.cfg.Animal.MaxDistanceToMate) {
			continue
		}

		a.vitals().MatingCooldown = s.cfg.Animal.TimeBetweenMating
		partner.vitals().MatingCooldown = s.cfg.Animal.TimeBetweenMating
		s.breed(a, partner)
	}
}

// bookkeeping ends the tick for every live animal and regrows the grass.
func (s *Simulator) bookkeeping() {
	for _, a := range s.animals {
		if systems.EndTick(a.vitals(), s.cfg.Animal.TimeToRot) {
			s.queueRemoval(a.entity)
		}
		a.intents().Clear()
	}
	s.flora.Update()
}
