// Package perf wraps an ecs.Proc with timing and memory sampling, and can
// capture pprof profiles of the rounds it runs.
package perf

import (
	"fmt"
	"runtime"
	"time"

	"github.com/borkshop/markerfield/internal/ecs"
)

// numSamples sizes the ring of recent rounds kept for the summary stats.
const numSamples = 64

type sample struct {
	start, end time.Time
	mem        runtime.MemStats
}

func (s *sample) took() time.Duration { return s.end.Sub(s.start) }

// Perf is an ecs.Proc that times the Proc it wraps.
type Perf struct {
	ecs.Proc

	prof  profiler
	round int
	next  int
	ring  [numSamples]sample
}

// Init wraps proc. Profiles go under a directory named after the current time,
// prefixed with name when one is given.
func (perf *Perf) Init(name string, proc ecs.Proc) {
	stamp := time.Now().Format("20060102T150405Z0700")
	dir := "prof-" + stamp
	if name != "" {
		dir = fmt.Sprintf("%s-prof-%s", name, stamp)
	}
	perf.Proc = proc
	perf.prof = profiler{dir: dir, debug: 2}
}

// Process runs the wrapped Proc once, sampling how long it took and the heap
// afterwards. Profiling starts or stops here, as last requested.
func (perf *Perf) Process() {
	perf.round++
	perf.prof.sync(perf.round)

	s := &perf.ring[perf.next]
	if perf.Proc != nil {
		s.start = time.Now()
		perf.Proc.Process()
		s.end = time.Now()
	}
	runtime.ReadMemStats(&s.mem)

	perf.prof.snapshot(perf.round)
	perf.next = (perf.next + 1) % numSamples
}

// Start asks for profiling from the next round on.
func (perf *Perf) Start() { perf.prof.want = true }

// Stop asks for profiling to end at the next round.
func (perf *Perf) Stop() { perf.prof.want = false }

// Toggle flips the profiling request.
func (perf *Perf) Toggle() { perf.prof.want = !perf.prof.want }

// Close stops any running profile and returns the first profiling error.
func (perf *Perf) Close() error { return perf.prof.close() }

// Err returns the profiling error that disabled the profiler, if any.
func (perf *Perf) Err() error { return perf.prof.err }

// Running reports whether profiling is requested and whether it is active.
func (perf *Perf) Running() (should, are bool) { return perf.prof.want, perf.prof.active }

// Round returns how many rounds have been processed.
func (perf *Perf) Round() int { return perf.round }

// OutputDir returns the directory profiles are written under.
func (perf *Perf) OutputDir() string { return perf.prof.dir }

// Last returns how long the wrapped Proc took last round.
func (perf *Perf) Last() time.Duration {
	if perf.round == 0 {
		return 0
	}
	return perf.last().took()
}

// Mean returns the wrapped Proc's mean time over the recent rounds.
func (perf *Perf) Mean() time.Duration {
	n := perf.filled()
	if n == 0 {
		return 0
	}
	var sum time.Duration
	for i := range perf.ring[:n] {
		sum += perf.ring[i].took()
	}
	return sum / time.Duration(n)
}

// Max returns the wrapped Proc's longest time over the recent rounds.
func (perf *Perf) Max() (max time.Duration) {
	for i := range perf.ring[:perf.filled()] {
		if d := perf.ring[i].took(); d > max {
			max = d
		}
	}
	return max
}

// MemStats returns the memory stats read after the last round.
func (perf *Perf) MemStats() *runtime.MemStats { return &perf.last().mem }

func (perf *Perf) filled() int {
	if perf.round < numSamples {
		return perf.round
	}
	return numSamples
}

func (perf *Perf) last() *sample {
	return &perf.ring[(perf.next+numSamples-1)%numSamples]
}
