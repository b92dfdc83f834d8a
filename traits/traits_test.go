package traits

import "testing"

func TestFeatureUpgrade(t *testing.T) {
	tests := []struct {
		name         string
		feature      Feature
		points       int
		purse        int
		wantGain     int
		wantValue    int
		wantLeftover int
		wantPurse    int
	}{
		{"speed cost 3 with 7 points", NewFeature(3, 2), 7, 20, 2, 4, 1, 13},
		{"exact multiple", NewFeature(1, 130), 5, 5, 5, 135, 0, 0},
		{"not enough for a unit", NewFeature(5, 0), 4, 20, 0, 0, 4, 16},
		{"leftover completes a unit", Feature{Cost: 5, Value: 1, Leftover: 4}, 1, 1, 1, 2, 0, 0},
		{"more than purse", NewFeature(3, 2), 21, 20, 0, 2, 0, 20},
		{"zero points", NewFeature(3, 2), 0, 20, 0, 2, 0, 20},
		{"negative points", NewFeature(3, 2), -4, 20, 0, 2, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.feature
			purse := tt.purse
			gain := f.Upgrade(tt.points, &purse)

			if gain != tt.wantGain {
				t.Errorf("gain = %d, want %d", gain, tt.wantGain)
			}
			if f.Value != tt.wantValue {
				t.Errorf("value = %d, want %d", f.Value, tt.wantValue)
			}
			if f.Leftover != tt.wantLeftover {
				t.Errorf("leftover = %d, want %d", f.Leftover, tt.wantLeftover)
			}
			if purse != tt.wantPurse {
				t.Errorf("purse = %d, want %d", purse, tt.wantPurse)
			}
			if f.Leftover >= f.Cost {
				t.Errorf("leftover %d must stay below cost %d", f.Leftover, f.Cost)
			}
		})
	}
}

func TestDiet(t *testing.T) {
	var d Diet
	if d.Has(Herbivore) || d.Has(Carnivore) {
		t.Error("zero diet should be empty")
	}

	d = d.Add(Herbivore)
	if !d.Has(Herbivore) || d.IsOmnivore() {
		t.Errorf("expected herbivore only, got %v", d.Names())
	}

	d = d.Add(Carnivore)
	if !d.IsOmnivore() {
		t.Error("expected omnivore")
	}

	if Carnivore.Has(Herbivore) || !Carnivore.Has(Carnivore) {
		t.Errorf("expected carnivore only, got %v", Carnivore.Names())
	}
}

func TestDietColor(t *testing.T) {
	tests := []struct {
		name    string
		diet    Diet
		r, g, b uint8
	}{
		{"none", 0, 150, 150, 150},
		{"herbivore", Herbivore, 80, 150, 200},
		{"carnivore", Carnivore, 200, 80, 80},
		{"omnivore", Herbivore | Carnivore, 180, 100, 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r, g, b := tt.diet.Color(); r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("Color() = %d,%d,%d, want %d,%d,%d", r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}
