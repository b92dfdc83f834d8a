package game_test

import (
	"testing"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/game"
	"github.com/pthm-cable/critters/species"
)

func newStockSim(t *testing.T) *game.Simulator {
	t.Helper()
	reg := game.NewRegistry()
	if err := species.Register(reg); err != nil {
		t.Fatal(err)
	}
	s := game.New(config.Default(), reg, game.Options{Seed: 5})
	t.Cleanup(func() { s.Close() })
	return s
}

func spawn(t *testing.T, s *game.Simulator, name string, x, y int) *game.Animal {
	t.Helper()
	a, err := s.Spawn(name, x, y)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestPredator_HuntsWhenHungry(t *testing.T) {
	tests := []struct {
		name     string
		fullness int
		wantPrey int
	}{
		{"hungry", 100, 0},
		{"sated", 450, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStockSim(t)
			p := spawn(t, s, species.Predator, 100, 100)
			spawn(t, s, species.GuineaPig, 110, 100)
			game.SetFullness(p, tt.fullness)

			s.NextTick()

			if got := s.Count(species.GuineaPig); got != tt.wantPrey {
				t.Errorf("guinea pigs left = %d, want %d", got, tt.wantPrey)
			}
			if tt.wantPrey == 0 && p.Fullness() != p.MaxFullness() {
				t.Errorf("predator fullness = %d, want a full meal", p.Fullness())
			}
		})
	}
}

func TestGuineaPig_Flees(t *testing.T) {
	s := newStockSim(t)
	p := spawn(t, s, species.Predator, 100, 100)
	g := spawn(t, s, species.GuineaPig, 110, 100)
	game.SetFullness(p, 450)

	s.NextTick()

	if g.DirX() != 1 || g.DirY() != 0 {
		t.Errorf("guinea pig heading (%v,%v), want straight away from the predator", g.DirX(), g.DirY())
	}
	if g.X() != 110+g.Speed() {
		t.Errorf("guinea pig x = %d, want %d", g.X(), 110+g.Speed())
	}
}
