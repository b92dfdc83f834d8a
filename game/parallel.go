package game

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/critters/geom"
	"github.com/pthm-cable/critters/systems"
)

// parallelThreshold is the minimum animal count to use the worker pool.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// senseMask records which sensor hooks a behavior implements.
type senseMask uint8

const (
	senseGrass senseMask = 1 << iota
	senseRivers
	senseAnimals
)

type segment struct {
	a, b geom.Point
}

// sightings lists what one animal detects this tick, as indices into the
// detection tables.
type sightings struct {
	grass   []int
	rivers  []int
	animals []int
}

// workChunk represents a range of observers for a worker to scan.
type workChunk struct {
	start, end int
}

// detectionPool computes sightings for every animal. Scanning only reads the
// tables, so it can be split across workers; hooks are delivered afterwards
// on the simulation goroutine in animal order.
type detectionPool struct {
	// Tables for the current tick, indexed like Simulator.animals
	observers []geom.Point
	ranges    []int
	senses    []senseMask
	animals   []DetectedAnimal
	grass     []DetectedGrass
	segments  []segment
	results   []sightings

	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newDetectionPool() *detectionPool {
	return &detectionPool{numWorkers: runtime.GOMAXPROCS(0)}
}

// prepareDetection snapshots the world into the detection tables.
func (s *Simulator) prepareDetection() {
	p := s.detection
	n := len(s.animals)

	p.observers = p.observers[:0]
	p.ranges = p.ranges[:0]
	p.senses = p.senses[:0]
	p.animals = p.animals[:0]
	for _, a := range s.animals {
		var mask senseMask
		b := a.behavior()
		if _, ok := b.(GrassSensor); ok {
			mask |= senseGrass
		}
		if _, ok := b.(RiverSensor); ok {
			mask |= senseRivers
		}
		if _, ok := b.(AnimalSensor); ok {
			mask |= senseAnimals
		}

		snap := a.snapshot()
		p.observers = append(p.observers, snap.Pos())
		p.ranges = append(p.ranges, a.Detection())
		p.senses = append(p.senses, mask)
		p.animals = append(p.animals, snap)
	}

	p.grass = p.grass[:0]
	for _, e := range s.grass {
		p.grass = append(p.grass, s.grassSnapshot(e))
	}

	p.segments = p.segments[:0]
	for _, r := range s.rivers {
		for i := 0; i < r.NumSegments(); i++ {
			n1, n2 := r.Segment(i)
			p.segments = append(p.segments, segment{a: n1, b: n2})
		}
	}

	if cap(p.results) < n {
		grown := make([]sightings, n)
		copy(grown, p.results)
		p.results = grown
	}
	p.results = p.results[:n]
}

// scan fills the sightings of observer i.
func (p *detectionPool) scan(i int) {
	r := &p.results[i]
	r.grass = r.grass[:0]
	r.rivers = r.rivers[:0]
	r.animals = r.animals[:0]

	from, detection, mask := p.observers[i], p.ranges[i], p.senses[i]

	if mask&senseGrass != 0 {
		for j := range p.grass {
			if systems.Detects(from, p.grass[j].Pos(), detection) {
				r.grass = append(r.grass, j)
			}
		}
	}
	if mask&senseRivers != 0 {
		for j, seg := range p.segments {
			if systems.DetectsSegment(from, seg.a, seg.b, detection) {
				r.rivers = append(r.rivers, j)
			}
		}
	}
	if mask&senseAnimals != 0 {
		for j := range p.animals {
			if j != i && systems.Detects(from, p.observers[j], detection) {
				r.animals = append(r.animals, j)
			}
		}
	}
}

// run scans every observer, in parallel when there are enough of them.
func (p *detectionPool) run() {
	n := len(p.observers)
	if n < parallelThreshold || p.numWorkers < 2 {
		for i := 0; i < n; i++ {
			p.scan(i)
		}
		return
	}

	if !p.running {
		p.start()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	chunks := 0
	for start := 0; start < n; start += chunkSize {
		p.workChan <- workChunk{start: start, end: min(start+chunkSize, n)}
		chunks++
	}
	for i := 0; i < chunks; i++ {
		<-p.doneChan
	}
}

func (p *detectionPool) start() {
	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	p.running = true
}

func (p *detectionPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case c := <-p.workChan:
			for i := c.start; i < c.end; i++ {
				p.scan(i)
			}
			p.doneChan <- struct{}{}
		}
	}
}

// stop shuts the workers down. The pool restarts on the next parallel run.
func (p *detectionPool) stop() {
	if !p.running {
		return
	}
	close(p.stopChan)
	p.wg.Wait()
	p.running = false
}
