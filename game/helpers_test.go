package game

import (
	"errors"
	"testing"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/geom"
)

// probe is a scriptable behavior that records every hook call.
type probe struct {
	behave   func(a *Animal)
	diet     func(a *Animal)
	spawn    func(a *Animal)
	onGrass  func(a *Animal, g DetectedGrass)
	onAnimal func(a *Animal, d DetectedAnimal)
	onBirth  func(a *Animal, p1, p2 *Animal)

	behaves     int
	deaths      int
	grassSeen   []DetectedGrass
	animalsSeen []DetectedAnimal
	riversSeen  [][2]geom.Point
	attackedBy  []DetectedAnimal
	damage      []int
}

func (p *probe) Behave(a *Animal) {
	p.behaves++
	if p.behave != nil {
		p.behave(a)
	}
}

func (p *probe) ChooseInitialDiet(a *Animal) {
	if p.diet != nil {
		p.diet(a)
		return
	}
	a.BeHerbivore()
}

func (p *probe) OnSpawn(a *Animal) {
	if p.spawn != nil {
		p.spawn(a)
	}
}

func (p *probe) OnGrassDetected(a *Animal, g DetectedGrass) {
	p.grassSeen = append(p.grassSeen, g)
	if p.onGrass != nil {
		p.onGrass(a, g)
	}
}

func (p *probe) OnAnimalDetected(a *Animal, d DetectedAnimal) {
	p.animalsSeen = append(p.animalsSeen, d)
	if p.onAnimal != nil {
		p.onAnimal(a, d)
	}
}

func (p *probe) OnRiverDetected(a *Animal, n1, n2 geom.Point) {
	p.riversSeen = append(p.riversSeen, [2]geom.Point{n1, n2})
}

func (p *probe) OnAttacked(a *Animal, attacker DetectedAnimal, damage int) {
	p.attackedBy = append(p.attackedBy, attacker)
	p.damage = append(p.damage, damage)
}

func (p *probe) OnDeath(a *Animal) {
	p.deaths++
}

func (p *probe) OnBirth(a *Animal, p1, p2 *Animal) {
	if p.onBirth != nil {
		p.onBirth(a, p1, p2)
	}
}

// probeSpecies registers a species whose animals each get a fresh probe
// configured by setup.
func probeSpecies(name string, setup func(p *probe)) Species {
	return Species{
		Name: name,
		NewBehavior: func() Behavior {
			p := &probe{}
			if setup != nil {
				setup(p)
			}
			return p
		},
	}
}

func probeOf(t *testing.T, a *Animal) *probe {
	t.Helper()
	p, ok := a.behavior().(*probe)
	if !ok {
		t.Fatalf("animal %d has behavior %T, want *probe", a.ID(), a.behavior())
	}
	return p
}

// newTestSim builds a simulator on the default config with the given species.
func newTestSim(t *testing.T, species ...Species) *Simulator {
	t.Helper()
	return newTestSimWith(t, config.Default(), Options{Seed: 1}, species...)
}

func newTestSimWith(t *testing.T, cfg *config.Config, opts Options, species ...Species) *Simulator {
	t.Helper()
	reg := NewRegistry()
	for _, sp := range species {
		if err := reg.Register(sp); err != nil {
			t.Fatalf("register %s: %v", sp.Name, err)
		}
	}
	s := New(cfg, reg, opts)
	t.Cleanup(func() { s.Close() })
	return s
}

func mustSpawn(t *testing.T, s *Simulator, species string, x, y int) *Animal {
	t.Helper()
	a, err := s.Spawn(species, x, y)
	if err != nil {
		t.Fatalf("spawn %s at (%d,%d): %v", species, x, y, err)
	}
	return a
}

// expectInvariant runs fn and fails unless it panics with ErrInvariant.
func expectInvariant(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvariant) {
			t.Fatalf("panic = %v, want ErrInvariant", r)
		}
	}()
	fn()
}

// mateWithKin mates with every living animal of the same species it sees.
func mateWithKin(p *probe) {
	p.onAnimal = func(a *Animal, d DetectedAnimal) {
		if a.SameSpeciesAs(d) && d.Alive() {
			a.Mate(d)
		}
	}
}

func findByGeneration(s *Simulator, gen int) *Animal {
	for _, a := range s.animals {
		if a.Generation() == gen {
			return a
		}
	}
	return nil
}
