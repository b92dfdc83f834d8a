package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
)

// Bite removes up to size from the patch and returns what was taken.
func Bite(p *components.Patch, size int) int {
	taken := min(size, p.Amount)
	if taken < 0 {
		taken = 0
	}
	p.Amount -= taken
	return taken
}

// Grow ages the patch by one tick and adds one unit every growthTime ticks.
func Grow(p *components.Patch, growthTime int) {
	p.Age++
	if growthTime > 0 && p.Age%growthTime == 0 {
		p.Amount++
	}
}

// GrassWidth is the drawn width of a patch holding amount.
func GrassWidth(amount int, cfg *config.Config) int {
	return amount / cfg.Grass.WidthDivisor
}

// EdibleRadius is how close an animal must be to eat from a patch. Bigger
// patches can be reached from further away.
func EdibleRadius(amount int, cfg *config.Config) int {
	return max(GrassWidth(amount, cfg), cfg.Animal.MaxDistanceToEatPrey)
}

// InitialGrassAmount draws the starting amount of a generated patch in
// [min, min + min/2).
func InitialGrassAmount(rng *rand.Rand, cfg *config.Config) int {
	base := cfg.Grass.MinInitialAmount
	if base/2 <= 0 {
		return base
	}
	return base + rng.Intn(base/2)
}

// FloraSystem regrows every grass patch in the world.
type FloraSystem struct {
	filter     *ecs.Filter1[components.Patch]
	growthTime int
}

// NewFloraSystem creates a new flora system.
func NewFloraSystem(w *ecs.World, cfg *config.Config) *FloraSystem {
	return &FloraSystem{
		filter:     ecs.NewFilter1[components.Patch](w),
		growthTime: cfg.Grass.GrowthTime,
	}
}

// Update grows all patches by one tick.
func (s *FloraSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		Grow(query.Get(), s.growthTime)
	}
}
