package agents

import (
	"math/rand"
	"sync"
	"time"
)

const (
	DefaultSimulationInterval = 200 * time.Millisecond
	DefaultSimulationMaxStep  = 15.0
	defaultSimulationMaxTicks = 1000
)

// StepFunc returns the next progress increment
type StepFunc func() float64

// RandomStep draws increments uniformly from [0, max)
func RandomStep(rng *rand.Rand, max float64) StepFunc {
	var mu sync.Mutex
	return func() float64 {
		mu.Lock()
		defer mu.Unlock()
		return rng.Float64() * max
	}
}

// Simulator fakes upload progress from 0 to exactly 100
type Simulator struct {
	Interval time.Duration
	Step     StepFunc
	// MaxTicks forces completion if the step function stalls
	MaxTicks int
}

// Stream emits progress after every tick and closes after emitting 100.
// A started run cannot be cancelled.
func (s *Simulator) Stream() <-chan float64 {
	out := make(chan float64)

	go func() {
		defer close(out)

		maxTicks := s.MaxTicks
		if maxTicks <= 0 {
			maxTicks = defaultSimulationMaxTicks
		}

		var tick <-chan time.Time
		if s.Interval > 0 {
			ticker := time.NewTicker(s.Interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		progress := 0.0
		for i := 1; ; i++ {
			if tick != nil {
				<-tick
			}

			progress += s.Step()
			if progress >= 100 || i >= maxTicks {
				out <- 100
				return
			}
			out <- progress
		}
	}()

	return out
}

// Run blocks until the simulation completes, calling onProgress on every tick
func (s *Simulator) Run(onProgress func(float64)) float64 {
	final := 0.0
	for p := range s.Stream() {
		final = p
		if onProgress != nil {
			onProgress(p)
		}
	}
	return final
}
