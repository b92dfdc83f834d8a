// Package traits defines upgradeable animal characteristics and diets.
package traits

// Feature is a single upgradeable numeric attribute (speed, detection range,
// ...). ADN points are converted into Value at Cost points per unit; points
// that do not buy a whole unit are kept in Leftover for the next upgrade.
type Feature struct {
	Cost     int
	Value    int
	Leftover int
}

// NewFeature returns a feature with the given cost and starting value.
func NewFeature(cost, value int) Feature {
	return Feature{Cost: cost, Value: value}
}

// Upgrade spends points from purse on the feature and returns the value
// gained. Nothing happens when points is not positive or exceeds the purse.
func (f *Feature) Upgrade(points int, purse *int) int {
	if points <= 0 || points > *purse || f.Cost <= 0 {
		return 0
	}
	*purse -= points
	total := points + f.Leftover
	gain := total / f.Cost
	f.Value += gain
	f.Leftover = total % f.Cost
	return gain
}

// Diet is a set of food sources an animal can use.
type Diet uint8

const (
	Herbivore Diet = 1 << iota // Eats grass
	Carnivore                  // Eats dead animals
)

// Has checks if a diet contains a food source.
func (d Diet) Has(other Diet) bool {
	return d&other != 0
}

// Add adds a food source to the diet.
func (d Diet) Add(other Diet) Diet {
	return d | other
}

// IsOmnivore checks if the diet has both herbivore and carnivore.
func (d Diet) IsOmnivore() bool {
	return d.Has(Herbivore) && d.Has(Carnivore)
}

// Names returns human-readable names for the diet.
func (d Diet) Names() []string {
	var names []string
	if d.Has(Herbivore) {
		names = append(names, "Herbivore")
	}
	if d.Has(Carnivore) {
		names = append(names, "Carnivore")
	}
	return names
}

// Color returns an RGB marker color for the diet.
func (d Diet) Color() (r, g, b uint8) {
	if d.IsOmnivore() {
		return 180, 100, 180 // Purple
	}
	if d.Has(Carnivore) {
		return 200, 80, 80 // Red
	}
	if d.Has(Herbivore) {
		return 80, 150, 200 // Blue
	}
	return 150, 150, 150 // Gray default
}
