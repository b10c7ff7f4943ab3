package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter is the upper bound of the random component added to every
// delay: a uniform draw from [0, 1) seconds.
const DefaultJitter = time.Second

// Delayer enforces a minimum pause before each outbound request: a fixed
// floor plus bounded uniform jitter. The jitter breaks up regular request
// timing that bot detection keys on. It is safe for concurrent use.
type Delayer struct {
	floor  time.Duration
	jitter time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewDelayer creates a delayer with the given floor. A negative floor is
// treated as zero. If rnd is nil a time-seeded source is used.
func NewDelayer(floor time.Duration, rnd *rand.Rand) *Delayer {
	if floor < 0 {
		floor = 0
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Delayer{
		floor:  floor,
		jitter: DefaultJitter,
		rnd:    rnd,
	}
}

// next returns the duration of the upcoming pause: floor + uniform(0, jitter).
func (d *Delayer) next() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.floor + time.Duration(d.rnd.Float64()*float64(d.jitter))
}

// Wait blocks for the computed delay, or until the context is canceled.
func (d *Delayer) Wait(ctx context.Context) error {
	timer := time.NewTimer(d.next())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
