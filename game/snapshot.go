package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/geom"
	"github.com/pthm-cable/critters/traits"
)

// DetectedAnimal is what an observer learns about another animal when it
// detects it. Values are copied at detection time and go stale afterwards.
type DetectedAnimal struct {
	Species    string
	X, Y       int
	Dead       bool
	AgeOfDeath int

	entity ecs.Entity
}

// Alive reports whether the animal was alive when detected.
func (d DetectedAnimal) Alive() bool {
	return !d.Dead
}

// Pos returns the detected position.
func (d DetectedAnimal) Pos() geom.Point {
	return geom.Pt(d.X, d.Y)
}

// DetectedGrass is a copy of a grass patch taken at detection time.
type DetectedGrass struct {
	X, Y             int
	Amount           int
	MaxDistanceToEat int

	entity ecs.Entity
}

// Pos returns the detected position.
func (d DetectedGrass) Pos() geom.Point {
	return geom.Pt(d.X, d.Y)
}

// River is an impassable polyline. Animals never move across a segment.
type River struct {
	geom.Polyline
}

// AnimalView is the read-only state a renderer needs for one animal.
type AnimalView struct {
	ID          uint64
	Species     string
	X, Y        int
	Generation  int
	Fullness    int
	MaxFullness int
	Dead        bool
	Detection   int
	Diet        traits.Diet
}

// GrassView is the read-only state a renderer needs for one grass patch.
type GrassView struct {
	X, Y         int
	Amount       int
	EdibleRadius int
}
