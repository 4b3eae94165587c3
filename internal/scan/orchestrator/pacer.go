package orchestrator

import (
	"context"
	"time"
)

// Pacer spaces out store fetches. The first Wait returns immediately, every
// later one blocks for the interval or until ctx is done. Not safe for
// concurrent use.
type Pacer struct {
	interval time.Duration
	started  bool
}

func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

func (p *Pacer) Wait(ctx context.Context) error {
	if !p.started || p.interval <= 0 {
		p.started = true
		return ctx.Err()
	}

	t := time.NewTimer(p.interval)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
