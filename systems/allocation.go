package systems

import (
	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/traits"
)

// Improve spends ADN from the genome on a feature and returns the value
// gained. Spending more than the genome holds does nothing.
func Improve(f *traits.Feature, points int, g *components.Genome) int {
	return f.Upgrade(points, &g.ADN)
}

// UnlockDiet pays cost once to add a food source to the diet. It returns
// false when the diet is already known or the genome cannot pay.
func UnlockDiet(g *components.Genome, d traits.Diet, cost int) bool {
	if g.Diet.Has(d) || g.ADN < cost {
		return false
	}
	g.ADN -= cost
	g.Diet = g.Diet.Add(d)
	return true
}
