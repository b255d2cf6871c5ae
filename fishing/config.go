package fishing

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("invalid session config")

// Config is fixed for the lifetime of a session.
type Config struct {
	// CastLimit stops the session after this many casts; 0 means unlimited
	CastLimit int
	// Threshold is the number of extra post-peak falling samples required before reeling
	Threshold uint32
}

func (c Config) Validate() error {
	if c.CastLimit < 0 {
		return fmt.Errorf("%w: cast limit %d is negative", ErrInvalidConfig, c.CastLimit)
	}
	return nil
}

// Timings are the fixed waits of the cycle. Every wait is bounded.
type Timings struct {
	Settle       time.Duration // before the first cycle
	CastDelay    time.Duration // after casting, before sampling
	Poll         time.Duration // between samples
	CycleTimeout time.Duration // from cast to abandoning the cycle
	Cooldown     time.Duration // between cycles
}

// DefaultTimings returns the timings tuned for the game client.
func DefaultTimings() Timings {
	return Timings{
		Settle:       5 * time.Second,
		CastDelay:    time.Second,
		Poll:         50 * time.Millisecond,
		CycleTimeout: 60 * time.Second,
		Cooldown:     time.Second,
	}
}
