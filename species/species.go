// Package species provides the stock animals: two grass foragers and a
// predator that hunts them.
package species

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/critters/game"
)

// Stock species names.
const (
	GuineaPig = "guineapig"
	Boui      = "boui"
	Predator  = game.PredatorSpecies
)

// All returns the stock species.
func All() []game.Species {
	return []game.Species{
		{Name: GuineaPig, NewBehavior: func() game.Behavior { return newGuineaPig() }},
		{Name: Boui, NewBehavior: func() game.Behavior { return newBoui() }},
		{Name: Predator, NewBehavior: func() game.Behavior { return &predator{} }},
	}
}

// Register adds every stock species to reg.
func Register(reg *game.Registry) error {
	for _, sp := range All() {
		if err := reg.Register(sp); err != nil {
			return fmt.Errorf("registering %s: %w", sp.Name, err)
		}
	}
	return nil
}

// randomAxis picks 1 half the time, otherwise 0 or -1.
func randomAxis(r *rand.Rand) float64 {
	if r.Intn(2) == 0 {
		return 1
	}
	if r.Intn(2) == 0 {
		return 0
	}
	return -1
}

func randomMoves(a *game.Animal) {
	r := a.Rand()
	dx := randomAxis(r)
	dy := randomAxis(r)
	a.SetDir(dx, dy)
}
