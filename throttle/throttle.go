// Package throttle paces outbound API calls: a random jittered sleep
// before every request, backed by a sustained requests-per-second floor.
// It holds no global state; callers receive one Throttle instance and
// share it across everything that talks to the network.
package throttle

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// Delay produces the pause taken before one outbound call.
type Delay interface {
	Next() time.Duration
}

// Jitter draws delays uniformly from [Min, Max). A degenerate band
// (Max <= Min) always yields Min.
type Jitter struct {
	Min time.Duration
	Max time.Duration
}

func (j Jitter) Next() time.Duration {
	if j.Max <= j.Min {
		return j.Min
	}
	return j.Min + rand.N(j.Max-j.Min)
}

// Fixed always returns the same delay. Fixed(0) disables the sleep,
// which keeps tests deterministic without changing production code paths.
type Fixed time.Duration

func (f Fixed) Next() time.Duration { return time.Duration(f) }

// Throttle blocks callers before each outbound call. The random delay is
// the primary politeness mechanism; the rate.Limiter underneath is a
// safety floor that only bites when the delay band is tuned below it.
// It is not adaptive: no backoff, no reaction to response codes.
type Throttle struct {
	delay   Delay
	limiter *rate.Limiter
}

// New creates a Throttle with the given delay strategy and sustained
// rate. rps <= 0 disables the rate floor.
func New(delay Delay, rps float64, burst int) *Throttle {
	t := &Throttle{delay: delay}
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return t
}

// Wait blocks for the next delay, then for limiter admission. It is
// called once immediately before every outbound API call, the first
// included; no call is exempt.
func (t *Throttle) Wait(ctx context.Context) error {
	if d := t.delay.Next(); d > 0 {
		if err := sleep(ctx, d); err != nil {
			return err
		}
	}
	if t.limiter != nil {
		return t.limiter.Wait(ctx)
	}
	return nil
}

// sleep pauses for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
