package telemetry

import "testing"

func TestCollector_FlushCountsAndResets(t *testing.T) {
	c := NewCollector(100)

	c.Record(NewBirthEvent(10, 5, "guineapig", 1, 2))
	c.Record(NewBirthEvent(11, 6, "guineapig", 3, 4))
	c.Record(NewDeathEvent(12, 1, "guineapig", CauseStarvation))
	c.Record(NewDeathEvent(13, 2, "guineapig", CauseKilled))
	c.Record(NewDeathEvent(13, 9, "predator", CauseStarvation))
	c.Record(NewAttackEvent(13, 7, "predator", 2, 5))
	c.Record(NewGrassBiteEvent(14, 3, "guineapig", 8))
	c.Record(NewGrassBiteEvent(14, 4, "guineapig", 5))
	c.Record(NewCarrionMealEvent(15, 7, "predator", 2, 500))
	c.Record(NewRemovalEvent(15, 2, "guineapig"))

	if c.ShouldFlush(99) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(100) {
		t.Error("should flush at the window end")
	}

	sample := Sample{
		Species: []SpeciesSample{
			{Name: "predator", Alive: 2, Dead: 1, Generations: []float64{1, 1}},
			{Name: "guineapig", Alive: 4, Dead: 0, Generations: []float64{1, 2, 2, 3}},
		},
		Fullness:     []float64{0.5, 0.5},
		Generations:  []float64{1, 1, 1, 2, 2, 3},
		GrassPatches: 3,
		GrassAmount:  1200,
	}
	stats, species := c.Flush(100, sample)

	if stats.Births != 2 || stats.StarvationDeaths != 2 || stats.KillDeaths != 1 {
		t.Errorf("unexpected life events: %+v", stats)
	}
	if stats.Attacks != 1 || stats.GrassBites != 2 || stats.GrassEaten != 13 || stats.CarrionMeals != 1 || stats.Removals != 1 {
		t.Errorf("unexpected feeding events: %+v", stats)
	}
	if stats.Alive != 6 || stats.Corpses != 1 || stats.Species != 2 {
		t.Errorf("unexpected population: alive=%d corpses=%d species=%d", stats.Alive, stats.Corpses, stats.Species)
	}
	if stats.GenerationMax != 3 {
		t.Errorf("generation max = %d, want 3", stats.GenerationMax)
	}
	if stats.FullnessMean != 0.5 {
		t.Errorf("fullness mean = %v, want 0.5", stats.FullnessMean)
	}

	if len(species) != 2 || species[0].Species != "guineapig" {
		t.Fatalf("species rows should be sorted by name, got %+v", species)
	}
	if species[0].Births != 2 || species[0].Deaths != 2 || species[0].GenerationMean != 2 {
		t.Errorf("unexpected guineapig row %+v", species[0])
	}
	if species[1].Deaths != 1 || species[1].WindowEndTick != 100 {
		t.Errorf("unexpected predator row %+v", species[1])
	}

	// Next window starts empty
	next, _ := c.Flush(200, Sample{})
	if next.WindowStartTick != 100 || next.Births != 0 || next.GrassBites != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, "guineapig", 0, 1)
	lt.Register(2, "guineapig", 0, 1)
	lt.Register(3, "guineapig", 40, 2)

	lt.Record(NewBirthEvent(40, 3, "guineapig", 1, 2))
	lt.Record(NewGrassBiteEvent(41, 3, "guineapig", 8))
	lt.Record(NewKillEvent(42, 1, "guineapig", 9))
	lt.Record(NewDeathEvent(50, 2, "guineapig", CauseStarvation))

	if s := lt.Get(1); s.Children != 1 || s.Kills != 1 {
		t.Errorf("parent 1: %+v", s)
	}
	if s := lt.Get(2); s.Children != 1 || s.DeathTick != 50 || s.Cause != CauseStarvation {
		t.Errorf("parent 2: %+v", s)
	}
	if s := lt.Get(3); s.GrassBites != 1 || s.GrassEaten != 8 {
		t.Errorf("child: %+v", s)
	}

	if got := lt.Get(2).Lifespan(80); got != 50 {
		t.Errorf("dead lifespan = %d, want 50", got)
	}
	if got := lt.Get(3).Lifespan(80); got != 40 {
		t.Errorf("living lifespan = %d, want 40", got)
	}

	if id, _ := lt.MostChildren(); id != 1 {
		t.Errorf("MostChildren = %d, want 1 (lowest id on tie)", id)
	}

	removed := lt.Remove(2)
	if removed == nil || lt.Get(2) != nil || lt.Count() != 2 {
		t.Error("Remove should hand back and forget the stats")
	}
}
