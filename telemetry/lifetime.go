package telemetry

// LifetimeStats tracks per-animal statistics over its lifetime.
type LifetimeStats struct {
	Species    string
	BirthTick  int
	DeathTick  int // -1 while alive
	Cause      DeathCause
	Generation int

	// Hunting
	Attacks int
	Kills   int

	// Feeding
	GrassBites   int
	GrassEaten   int
	CarrionMeals int

	// Reproduction
	Children int
}

// Lifespan returns how many ticks the animal lived, measured up to now when
// it is still alive.
func (s *LifetimeStats) Lifespan(now int) int {
	if s.DeathTick >= 0 {
		return s.DeathTick - s.BirthTick
	}
	return now - s.BirthTick
}

// LifetimeTracker manages per-animal lifetime statistics.
type LifetimeTracker struct {
	stats map[uint64]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint64]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new animal.
func (lt *LifetimeTracker) Register(id uint64, species string, birthTick, generation int) {
	lt.stats[id] = &LifetimeStats{
		Species:    species,
		BirthTick:  birthTick,
		DeathTick:  -1,
		Generation: generation,
	}
}

// Get returns the lifetime stats for an animal, or nil if not found.
func (lt *LifetimeTracker) Get(id uint64) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an animal's stats and returns them for logging.
func (lt *LifetimeTracker) Remove(id uint64) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// Record applies an event to the animals it concerns.
func (lt *LifetimeTracker) Record(ev Event) {
	switch ev.Type {
	case EventBirth:
		if s := lt.stats[ev.TargetID]; s != nil {
			s.Children++
		}
		if s := lt.stats[ev.PartnerID]; s != nil {
			s.Children++
		}
	case EventDeath:
		if s := lt.stats[ev.AnimalID]; s != nil {
			s.DeathTick = ev.Tick
			s.Cause = ev.Cause
		}
	case EventAttack:
		if s := lt.stats[ev.AnimalID]; s != nil {
			s.Attacks++
		}
	case EventKill:
		if s := lt.stats[ev.AnimalID]; s != nil {
			s.Kills++
		}
	case EventGrassBite:
		if s := lt.stats[ev.AnimalID]; s != nil {
			s.GrassBites++
			s.GrassEaten += ev.Amount
		}
	case EventCarrionMeal:
		if s := lt.stats[ev.AnimalID]; s != nil {
			s.CarrionMeals++
		}
	}
}

// Count returns the number of tracked animals.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// MostChildren returns the tracked animal with the most children, or 0 and
// nil when nothing is tracked.
func (lt *LifetimeTracker) MostChildren() (uint64, *LifetimeStats) {
	var bestID uint64
	var best *LifetimeStats
	for id, s := range lt.stats {
		if best == nil || s.Children > best.Children || (s.Children == best.Children && id < bestID) {
			bestID, best = id, s
		}
	}
	return bestID, best
}
