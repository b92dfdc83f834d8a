package components

// Position represents an entity's map position in integer map units.
type Position struct {
	X, Y int
}

// Heading is the movement direction chosen by the animal's behavior.
// Each axis is in [-1, 1]; displacement per tick is ceil(speed * axis).
type Heading struct {
	DX, DY float64
}
