// Package timing records how long the stages of a run take.
package timing

import (
	"context"
	"sync"
	"time"

	"brightcut/internal/logger"
)

type contextKey struct{}

type info struct {
	operation string
	start     time.Time
}

type Tracker struct {
	mu      sync.Mutex
	timings map[string][]time.Duration
	logger  logger.Logger
	now     func() time.Time
}

func NewTracker(log logger.Logger) *Tracker {
	return &Tracker{
		timings: make(map[string][]time.Duration),
		logger:  log,
		now:     time.Now,
	}
}

// StartTiming returns a context carrying the start of operation. Pass it to
// EndTiming once the operation finishes.
func (t *Tracker) StartTiming(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, contextKey{}, info{operation: operation, start: t.now()})
}

// EndTiming records the elapsed time since the matching StartTiming. A
// context without timing information is ignored.
func (t *Tracker) EndTiming(ctx context.Context) time.Duration {
	ti, ok := ctx.Value(contextKey{}).(info)
	if !ok {
		return 0
	}

	elapsed := t.now().Sub(ti.start)

	t.mu.Lock()
	t.timings[ti.operation] = append(t.timings[ti.operation], elapsed)
	t.mu.Unlock()

	if t.logger != nil {
		t.logger.Debug("Timing", "operation completed", map[string]interface{}{
			"operation":   ti.operation,
			"duration_ms": float64(elapsed.Microseconds()) / 1000,
		})
	}
	return elapsed
}

func (t *Tracker) Timings(operation string) []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	timings := t.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}
