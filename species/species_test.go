package species

import (
	"reflect"
	"testing"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/game"
)

func newSim(t *testing.T, seed int64) *game.Simulator {
	t.Helper()
	reg := game.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	s := game.New(config.Default(), reg, game.Options{Seed: seed})
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRegister(t *testing.T) {
	reg := game.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	want := []string{Boui, GuineaPig, Predator}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

// ---------- Spawn investments ----------

func TestSpawnInvestments(t *testing.T) {
	tests := []struct {
		species   string
		speed     int
		detection int
		attack    int
		herbivore bool
	}{
		{GuineaPig, 5, 130, 0, true},
		{Boui, 5, 130, 0, true},
		{Predator, 2, 138, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.species, func(t *testing.T) {
			s := newSim(t, 1)
			a, err := s.Spawn(tt.species, 800, 450)
			if err != nil {
				t.Fatal(err)
			}
			if a.Speed() != tt.speed || a.Detection() != tt.detection || a.AttackPower() != tt.attack {
				t.Errorf("speed=%d detection=%d attack=%d, want %d %d %d",
					a.Speed(), a.Detection(), a.AttackPower(), tt.speed, tt.detection, tt.attack)
			}
			if a.Herbivore() != tt.herbivore || a.Carnivore() == tt.herbivore {
				t.Errorf("herbivore=%v carnivore=%v", a.Herbivore(), a.Carnivore())
			}
			if a.ADN() != 0 {
				t.Errorf("ADN = %d, want everything spent", a.ADN())
			}
		})
	}
}

// ---------- Birth investments ----------

func TestBirthInvestments(t *testing.T) {
	tests := []struct {
		species   string
		speed     int
		detection int
	}{
		{GuineaPig, 5, 132},
		{Boui, 6, 130},
		{Predator, 2, 138},
	}

	for _, tt := range tests {
		t.Run(tt.species, func(t *testing.T) {
			s := newSim(t, 3)
			for _, x := range []int{800, 810} {
				if _, err := s.Spawn(tt.species, x, 450); err != nil {
					t.Fatal(err)
				}
			}

			s.NextTick()

			var child *game.Animal
			for _, a := range s.Handles() {
				if a.Generation() == 2 {
					child = a
				}
			}
			if child == nil {
				t.Fatal("parents did not mate")
			}
			if child.Speed() != tt.speed || child.Detection() != tt.detection {
				t.Errorf("newborn speed=%d detection=%d, want %d %d",
					child.Speed(), child.Detection(), tt.speed, tt.detection)
			}
			if child.ADN() != 0 {
				t.Errorf("newborn ADN = %d, want 0", child.ADN())
			}
		})
	}
}

// ---------- Grazing ----------

func TestGuineaPig_GrazesNearestGrass(t *testing.T) {
	s := newSim(t, 1)
	s.AddGrass(100, 140, 500)
	s.AddGrass(100, 120, 500)
	g, err := s.Spawn(GuineaPig, 100, 100)
	if err != nil {
		t.Fatal(err)
	}

	// Wait until it is hungry enough to eat.
	for g.Alive() && !g.Hungry() {
		s.NextTick()
	}
	before := s.Grass()
	s.NextTick()
	after := s.Grass()

	if after[0].Amount < before[0].Amount {
		t.Errorf("farther patch was bitten: %d -> %d", before[0].Amount, after[0].Amount)
	}
	if after[1].Amount > before[1].Amount-7 {
		t.Errorf("nearest patch was not bitten: %d -> %d", before[1].Amount, after[1].Amount)
	}
	if !g.Idle() {
		t.Error("a grazing guinea pig should sit still")
	}
}

// ---------- Long runs ----------

func TestStockSpecies_LongRun(t *testing.T) {
	for _, host := range []string{GuineaPig, Boui} {
		t.Run(host, func(t *testing.T) {
			s := newSim(t, 11)
			if err := s.Populate(host); err != nil {
				t.Fatal(err)
			}
			s.Run(1000)

			if s.Tick() != 1000 {
				t.Errorf("tick = %d, want 1000", s.Tick())
			}
			for _, v := range s.Animals() {
				if v.X < 0 || v.X > s.Width() || v.Y < 0 || v.Y > s.Height() {
					t.Errorf("animal %d off the map at (%d,%d)", v.ID, v.X, v.Y)
				}
				if v.Species != host && v.Species != Predator {
					t.Errorf("unexpected species %q", v.Species)
				}
			}
		})
	}
}
