package systems

import (
	"math/rand"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/geom"
)

// GenerateRiverNodes draws the node lists of a random set of rivers. The
// first node of each river lies in the central half of the map; each next
// node is offset from the previous one on both axes by a random distance in
// the configured band, with a random sign per axis. Paths are not checked
// for self-intersection and may leave the map.
func GenerateRiverNodes(rng *rand.Rand, cfg *config.Config) [][]geom.Point {
	w, h := cfg.Map.Width, cfg.Map.Height
	minOff := cfg.Derived.RiverMinOffset
	spread := max(cfg.Derived.RiverMaxOffset, 1)

	count := 1 + rng.Intn(cfg.Derived.MaxRivers)
	rivers := make([][]geom.Point, 0, count)

	for range count {
		n := cfg.Generator.MinRiverNodes + rng.Intn(cfg.Generator.ExtraRiverNodes)
		nodes := make([]geom.Point, n)
		nodes[0] = geom.Pt(w/4+rng.Intn(max(w/2, 1)), h/4+rng.Intn(max(h/2, 1)))

		for i := 1; i < n; i++ {
			dx := (minOff + rng.Intn(spread)) * signOf(rng.Intn(2))
			dy := (minOff + rng.Intn(spread)) * signOf(rng.Intn(2))
			nodes[i] = geom.Pt(nodes[i-1].X+dx, nodes[i-1].Y+dy)
		}
		rivers = append(rivers, nodes)
	}
	return rivers
}

// RandomPoint returns a uniformly random position on the map.
func RandomPoint(rng *rand.Rand, cfg *config.Config) geom.Point {
	return geom.Pt(rng.Intn(cfg.Map.Width), rng.Intn(cfg.Map.Height))
}
