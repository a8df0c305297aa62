// Package scheduler drives the clock tick and the reminder sweep.
package scheduler

import (
	"context"
	"time"

	"github.com/runoshun/todo/internal/domain"
)

// Runner fires Tick and Sweep on their own intervals until its context ends.
// Fields are ordered to minimize memory padding.
type Runner struct {
	Clock domain.Clock
	// Tick is called on every clock tick. Nil disables the tick timer.
	Tick func(now time.Time)
	// Sweep is called once at start and then every SweepInterval.
	Sweep         func(ctx context.Context, now time.Time)
	TickInterval  time.Duration
	SweepInterval time.Duration
}

// Run blocks until ctx is done. Both tickers are stopped before it returns.
// Cancellation is a normal exit and yields nil.
func (r *Runner) Run(ctx context.Context) error {
	clock := r.Clock
	if clock == nil {
		clock = domain.RealClock{}
	}
	sweepEvery := r.SweepInterval
	if sweepEvery <= 0 {
		sweepEvery = domain.DefaultSweepInterval
	}
	tickEvery := r.TickInterval
	if tickEvery <= 0 {
		tickEvery = domain.DefaultTickInterval
	}

	if r.Sweep != nil {
		r.Sweep(ctx, clock.Now())
	}

	sweep := time.NewTicker(sweepEvery)
	defer sweep.Stop()

	var tickC <-chan time.Time
	if r.Tick != nil {
		tick := time.NewTicker(tickEvery)
		defer tick.Stop()
		tickC = tick.C
	}

	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.Canceled {
				return nil
			}
			return ctx.Err()
		case <-tickC:
			r.Tick(clock.Now())
		case <-sweep.C:
			if r.Sweep != nil {
				r.Sweep(ctx, clock.Now())
			}
		}
	}
}
