package game

// SetFullness lets external tests stage hungry or sated animals.
func SetFullness(a *Animal, fullness int) { a.vitals().Fullness = fullness }
