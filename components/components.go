// Package components defines ECS components for the simulation.
package components

import "github.com/mlange-42/ark/ecs"

// Intents holds the actions an animal declared during its behavior step.
// Everything is cleared at the end of each tick.
type Intents struct {
	Grass []ecs.Entity // grass to eat, no duplicates
	Prey  []ecs.Entity // dead animals to eat, no duplicates

	Attack    ecs.Entity
	HasAttack bool
	Mate      ecs.Entity
	HasMate   bool
}

// AddGrass records a grass intent unless it is already recorded.
func (in *Intents) AddGrass(e ecs.Entity) {
	if !containsEntity(in.Grass, e) {
		in.Grass = append(in.Grass, e)
	}
}

// AddPrey records a prey intent unless it is already recorded.
func (in *Intents) AddPrey(e ecs.Entity) {
	if !containsEntity(in.Prey, e) {
		in.Prey = append(in.Prey, e)
	}
}

// SetAttack replaces the attack target.
func (in *Intents) SetAttack(e ecs.Entity) {
	in.Attack = e
	in.HasAttack = true
}

// SetMate replaces the mating target.
func (in *Intents) SetMate(e ecs.Entity) {
	in.Mate = e
	in.HasMate = true
}

// Clear drops every intent, keeping slice capacity.
func (in *Intents) Clear() {
	in.Grass = in.Grass[:0]
	in.Prey = in.Prey[:0]
	in.HasAttack = false
	in.HasMate = false
}

// Empty reports whether no intent is recorded.
func (in *Intents) Empty() bool {
	return len(in.Grass) == 0 && len(in.Prey) == 0 && !in.HasAttack && !in.HasMate
}

func containsEntity(list []ecs.Entity, e ecs.Entity) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

// Patch is a grass patch. Amount never goes below zero.
type Patch struct {
	Amount int
	Age    int
}
