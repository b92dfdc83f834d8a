package systems

import (
	"testing"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/traits"
)

func adult(species string, x, y int) *Breeder {
	return &Breeder{
		Species: species,
		Pos:     components.Position{X: x, Y: y},
		Traits:  components.DefaultTraits(cfg),
		Vitals:  components.Vitals{Fullness: 300, Age: 20, AgeOfDeath: -1},
		Genome:  components.Genome{ADN: 5, Diet: traits.Herbivore, Generation: 1},
	}
}

func TestMatingAllowed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a, b *Breeder)
		want   bool
	}{
		{"valid pair", func(a, b *Breeder) {}, true},
		{"different species", func(a, b *Breeder) { b.Species = "boui" }, false},
		{"too far", func(a, b *Breeder) { b.Pos.X = 151 }, false},
		{"at mating distance", func(a, b *Breeder) { b.Pos.X = 150 }, true},
		{"initiator too young", func(a, b *Breeder) { a.Vitals.Age = 19 }, false},
		{"mate too young", func(a, b *Breeder) { b.Vitals.Age = 0 }, false},
		{"initiator on cooldown", func(a, b *Breeder) { a.Vitals.MatingCooldown = 3 }, false},
		{"mate on cooldown", func(a, b *Breeder) { b.Vitals.MatingCooldown = 1 }, false},
		{"dead mate", func(a, b *Breeder) { b.Vitals.Dead = true }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := adult("guineapig", 100, 100)
			b := adult("guineapig", 110, 100)
			tt.mutate(a, b)
			if got := MatingAllowed(a, b, cfg.Animal.MaxDistanceToMate); got != tt.want {
				t.Errorf("MatingAllowed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOffspring(t *testing.T) {
	a := adult("guineapig", 100, 100)
	b := adult("guineapig", 110, 100)
	a.Vitals.Fullness = 250
	b.Vitals.Fullness = 410
	a.Genome.ADN = 3
	b.Genome.ADN = 7

	baby := Offspring(a, b, cfg)

	if baby.Pos != (components.Position{X: 105, Y: 100}) {
		t.Errorf("position = %+v, want midpoint (105,100)", baby.Pos)
	}
	if baby.Vitals.Age != 0 || baby.Vitals.Dead || baby.Vitals.AgeOfDeath != -1 {
		t.Errorf("unexpected vitals %+v", baby.Vitals)
	}
	if baby.Vitals.Fullness != 410 {
		t.Errorf("fullness = %d, want 410", baby.Vitals.Fullness)
	}
	if baby.Genome.ADN != 3+7+cfg.Genetics.ADNGainToNewborn {
		t.Errorf("adn = %d, want %d", baby.Genome.ADN, 3+7+cfg.Genetics.ADNGainToNewborn)
	}
	if baby.Genome.Generation != 2 {
		t.Errorf("generation = %d, want 2", baby.Genome.Generation)
	}
}

func TestOffspring_ClonesMoreEvolvedParent(t *testing.T) {
	a := adult("guineapig", 0, 0)
	b := adult("guineapig", 10, 0)
	a.Genome.Generation = 4
	b.Genome.Generation = 2
	a.Traits.Speed = traits.Feature{Cost: 3, Value: 7, Leftover: 2}
	a.Traits.Detection = traits.Feature{Cost: 1, Value: 150, Leftover: 0}
	a.Traits.Attack = traits.Feature{Cost: 5, Value: 1, Leftover: 4}
	b.Traits.Speed = traits.Feature{Cost: 3, Value: 2, Leftover: 1}

	baby := Offspring(a, b, cfg)

	if baby.Traits != a.Traits {
		t.Errorf("traits = %+v, want clone of %+v", baby.Traits, a.Traits)
	}
	if baby.Genome.Generation != 5 {
		t.Errorf("generation = %d, want 5", baby.Genome.Generation)
	}

	// Upgrading the clone leaves the parent untouched.
	purse := 3
	baby.Traits.Speed.Upgrade(3, &purse)
	if a.Traits.Speed.Value != 7 {
		t.Error("newborn traits must not alias the parent's")
	}
}

func TestOffspring_TieUsesMate(t *testing.T) {
	a := adult("guineapig", 0, 0)
	b := adult("guineapig", 10, 0)
	b.Traits.Detection.Value = 999

	baby := Offspring(a, b, cfg)
	if baby.Traits.Detection.Value != 999 {
		t.Errorf("detection = %d, want mate's 999", baby.Traits.Detection.Value)
	}
}

func TestImprove(t *testing.T) {
	g := components.Genome{ADN: 20}
	f := traits.NewFeature(3, 2)

	if gain := Improve(&f, 20, &g); gain != 6 {
		t.Errorf("gain = %d, want 6", gain)
	}
	if g.ADN != 0 || f.Value != 8 || f.Leftover != 2 {
		t.Errorf("got adn=%d value=%d leftover=%d", g.ADN, f.Value, f.Leftover)
	}
	if gain := Improve(&f, 1, &g); gain != 0 || f.Leftover != 2 {
		t.Error("spending from an empty genome must do nothing")
	}
}

func TestUnlockDiet(t *testing.T) {
	g := components.Genome{ADN: 20}

	if !UnlockDiet(&g, traits.Herbivore, 10) {
		t.Fatal("expected herbivore unlock")
	}
	if g.ADN != 10 || !g.Diet.Has(traits.Herbivore) {
		t.Errorf("got adn=%d diet=%v", g.ADN, g.Diet.Names())
	}
	if UnlockDiet(&g, traits.Herbivore, 10) {
		t.Error("unlocking twice must not charge again")
	}
	if !UnlockDiet(&g, traits.Carnivore, 7) || g.ADN != 3 {
		t.Errorf("expected carnivore unlock leaving 3 adn, got %d", g.ADN)
	}
	if UnlockDiet(&components.Genome{ADN: 6}, traits.Carnivore, 7) {
		t.Error("unlock without enough adn must fail")
	}
}
