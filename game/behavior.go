package game

import "github.com/pthm-cable/critters/geom"

// Behavior is the strategy of one animal. Behave runs once per tick after
// detection; it may only change the animal's direction, spend its ADN and
// declare intents. ChooseInitialDiet runs once for animals placed on the map.
type Behavior interface {
	Behave(a *Animal)
	ChooseInitialDiet(a *Animal)
}

// Optional hooks. The engine checks for them with a type assertion.

// GrassSensor is notified of every grass patch in detection range.
type GrassSensor interface {
	OnGrassDetected(a *Animal, g DetectedGrass)
}

// AnimalSensor is notified of every other animal in detection range.
type AnimalSensor interface {
	OnAnimalDetected(a *Animal, other DetectedAnimal)
}

// RiverSensor is notified of every river segment in detection range.
type RiverSensor interface {
	OnRiverDetected(a *Animal, n1, n2 geom.Point)
}

// AttackListener is notified right before the animal dies from an attack.
type AttackListener interface {
	OnAttacked(a *Animal, attacker DetectedAnimal, damage int)
}

// DeathListener is notified once, when the animal dies.
type DeathListener interface {
	OnDeath(a *Animal)
}

// BirthListener runs on a newborn before it joins the world.
type BirthListener interface {
	OnBirth(a *Animal, parent1, parent2 *Animal)
}

// SpawnListener runs on an animal placed on the map, after its diet is set.
type SpawnListener interface {
	OnSpawn(a *Animal)
}
