package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one step of the simulation tick.
type Phase int

// Phases in tick order.
const (
	PhaseDetect Phase = iota
	PhaseBehave
	PhaseMove
	PhaseAttack
	PhaseEat
	PhaseMate
	PhaseBookkeeping
	PhaseCommit
	PhaseTelemetry

	numPhases
)

var phaseNames = [numPhases]string{
	"detect", "behave", "move", "attack", "eat",
	"mate", "bookkeeping", "commit", "telemetry",
}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// tickTiming is the wall time of one tick split by phase.
type tickTiming struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector keeps the phase timings of the last few ticks.
type PerfCollector struct {
	now func() time.Time

	ring  []tickTiming
	next  int
	count int

	cur     tickTiming
	tickAt  time.Time
	phaseAt time.Time
	phase   Phase
	inPhase bool
}

// NewPerfCollector creates a collector averaging over the last window
// ticks. A window below 1 means 60.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		now:  time.Now,
		ring: make([]tickTiming, window),
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickAt = p.now()
	p.cur = tickTiming{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = ph
	p.phaseAt = now
	p.inPhase = true
}

// EndTick closes the running phase and records the tick.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.inPhase = false
	p.cur.total = now.Sub(p.tickAt)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase >= 0 && p.phase < numPhases {
		p.cur.phases[p.phase] += now.Sub(p.phaseAt)
	}
}

// PerfStats summarizes the recorded ticks.
type PerfStats struct {
	Ticks           int
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	// Indexed by Phase.
	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64
}

// Stats averages the recorded ticks.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Ticks: p.count}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	for i, tt := range p.ring[:p.count] {
		total += tt.total
		if i == 0 || tt.total < s.MinTickDuration {
			s.MinTickDuration = tt.total
		}
		s.MaxTickDuration = max(s.MaxTickDuration, tt.total)
		for ph, d := range tt.phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgTickDuration = total / n
	for ph, sum := range phaseSum {
		s.PhaseAvg[ph] = sum / n
		if total > 0 {
			s.PhasePct[ph] = float64(sum) / float64(total) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs the summary, leaving out phases below 0.1% of the tick.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	for ph, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, Phase(ph).String()+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	for ph, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(Phase(ph).String()+"_pct", pct))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd      int     `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	DetectPct      float64 `csv:"detect_pct"`
	BehavePct      float64 `csv:"behave_pct"`
	MovePct        float64 `csv:"move_pct"`
	AttackPct      float64 `csv:"attack_pct"`
	EatPct         float64 `csv:"eat_pct"`
	MatePct        float64 `csv:"mate_pct"`
	BookkeepingPct float64 `csv:"bookkeeping_pct"`
	CommitPct      float64 `csv:"commit_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		DetectPct:      s.PhasePct[PhaseDetect],
		BehavePct:      s.PhasePct[PhaseBehave],
		MovePct:        s.PhasePct[PhaseMove],
		AttackPct:      s.PhasePct[PhaseAttack],
		EatPct:         s.PhasePct[PhaseEat],
		MatePct:        s.PhasePct[PhaseMate],
		BookkeepingPct: s.PhasePct[PhaseBookkeeping],
		CommitPct:      s.PhasePct[PhaseCommit],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
