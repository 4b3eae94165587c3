package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPacer_FirstWaitIsImmediate(t *testing.T) {
	p := NewPacer(time.Hour)

	start := time.Now()
	assert.NoError(t, p.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestPacer_WaitsBetweenCalls(t *testing.T) {
	p := NewPacer(25 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	assert.NoError(t, p.Wait(ctx))
	assert.NoError(t, p.Wait(ctx))
	assert.NoError(t, p.Wait(ctx))

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestPacer_Cancelled(t *testing.T) {
	p := NewPacer(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	assert.NoError(t, p.Wait(ctx))

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	assert.ErrorIs(t, p.Wait(ctx), context.Canceled)
}

func TestPacer_CancelledBeforeFirst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, NewPacer(0).Wait(ctx), context.Canceled)
}
