package upload

import (
	"context"
	"time"

	"medibook/utils"
)

const (
	minStep = 5
	maxStep = 25
)

// Simulator drives a progress counter from 0 to 100 in random steps.
type Simulator struct {
	Clock utils.Clock
	Rand  utils.RandomSource
	Tick  time.Duration
}

// Run calls report with each new progress value and returns once 100 is
// reached. Every step is in [minStep, maxStep) and the last one is clamped.
func (s Simulator) Run(ctx context.Context, report func(progress int)) error {
	progress := 0
	for progress < 100 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Clock.After(s.Tick):
		}
		progress += minStep + s.Rand.Intn(maxStep-minStep)
		if progress > 100 {
			progress = 100
		}
		report(progress)
	}
	return nil
}
