package systems

import (
	"errors"

	"github.com/pthm-cable/critters/components"
)

// ErrAlreadyDead is returned when killing an animal that is already dead.
var ErrAlreadyDead = errors.New("animal is already dead")

// Hunger burns one point of fullness. It returns true when a living animal
// had nothing left to burn and must die of starvation.
func Hunger(v *components.Vitals) bool {
	if v.Dead {
		return false
	}
	if v.Fullness > 0 {
		v.Fullness--
		return false
	}
	return true
}

// Kill marks the animal dead and records its age of death.
func Kill(v *components.Vitals) error {
	if v.Dead {
		return ErrAlreadyDead
	}
	v.Dead = true
	v.AgeOfDeath = v.Age
	return nil
}

// EndTick resets per-tick flags and advances the cooldown and age counters.
// It returns true when a corpse has rotted long enough to be removed.
func EndTick(v *components.Vitals, timeToRot int) bool {
	v.AttackedThisTick = false
	if v.MatingCooldown > 0 {
		v.MatingCooldown--
	}
	v.Age++
	return v.Dead && v.Age-v.AgeOfDeath >= timeToRot
}
