// Package telemetry provides ecosystem health tracking, bookmarking, and
// CSV output for simulation runs.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSpawn EventType = iota
	EventBirth
	EventDeath
	EventAttack
	EventKill
	EventGrassBite
	EventCarrionMeal
	EventRemoval
)

var eventNames = [...]string{"spawn", "birth", "death", "attack", "kill", "grass_bite", "carrion_meal", "removal"}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// DeathCause says why an animal died.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseStarvation
	CauseKilled
)

func (c DeathCause) String() string {
	switch c {
	case CauseStarvation:
		return "starvation"
	case CauseKilled:
		return "killed"
	}
	return "none"
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int
	AnimalID uint64
	Species  string

	// Optional fields depending on event type
	TargetID  uint64     // victim, eaten corpse, or first parent
	PartnerID uint64     // second parent (birth events only)
	Amount    int        // grass bitten, fullness gained, or damage
	Cause     DeathCause // death events only
}

// NewSpawnEvent creates an event for an animal placed by map generation.
func NewSpawnEvent(tick int, id uint64, species string) Event {
	return Event{Type: EventSpawn, Tick: tick, AnimalID: id, Species: species}
}

// NewBirthEvent creates a birth event for a newborn and both its parents.
func NewBirthEvent(tick int, childID uint64, species string, parentID, partnerID uint64) Event {
	return Event{
		Type:      EventBirth,
		Tick:      tick,
		AnimalID:  childID,
		Species:   species,
		TargetID:  parentID,
		PartnerID: partnerID,
	}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(tick int, id uint64, species string, cause DeathCause) Event {
	return Event{Type: EventDeath, Tick: tick, AnimalID: id, Species: species, Cause: cause}
}

// NewAttackEvent creates an event for a resolved attack, harmful or not.
func NewAttackEvent(tick int, attackerID uint64, species string, targetID uint64, damage int) Event {
	return Event{Type: EventAttack, Tick: tick, AnimalID: attackerID, Species: species, TargetID: targetID, Amount: damage}
}

// NewKillEvent creates a kill event.
func NewKillEvent(tick int, attackerID uint64, species string, victimID uint64) Event {
	return Event{Type: EventKill, Tick: tick, AnimalID: attackerID, Species: species, TargetID: victimID}
}

// NewGrassBiteEvent creates a grass bite event.
func NewGrassBiteEvent(tick int, id uint64, species string, amount int) Event {
	return Event{Type: EventGrassBite, Tick: tick, AnimalID: id, Species: species, Amount: amount}
}

// NewCarrionMealEvent creates an event for a carnivore eating a corpse.
func NewCarrionMealEvent(tick int, id uint64, species string, corpseID uint64, gain int) Event {
	return Event{Type: EventCarrionMeal, Tick: tick, AnimalID: id, Species: species, TargetID: corpseID, Amount: gain}
}

// NewRemovalEvent creates an event for an animal purged from the world.
func NewRemovalEvent(tick int, id uint64, species string) Event {
	return Event{Type: EventRemoval, Tick: tick, AnimalID: id, Species: species}
}
