package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTickAligned(t *testing.T) {
	s := New(Options{Interval: time.Hour, AlignToStart: true}, zerolog.Nop())

	now := time.Date(2026, 3, 25, 10, 17, 42, 0, time.UTC)
	next := s.nextTick(now)
	assert.Equal(t, time.Date(2026, 3, 25, 11, 0, 0, 0, time.UTC), next)

	// exactly on the boundary moves to the following interval
	boundary := time.Date(2026, 3, 25, 11, 0, 0, 0, time.UTC)
	assert.Equal(t, boundary.Add(time.Hour), s.nextTick(boundary))
}

func TestNextTickUnaligned(t *testing.T) {
	s := New(Options{Interval: time.Hour}, zerolog.Nop())
	now := time.Date(2026, 3, 25, 10, 17, 42, 0, time.UTC)
	assert.Equal(t, now.Add(time.Hour), s.nextTick(now))
}

func TestTickStart(t *testing.T) {
	aligned := New(Options{Interval: time.Hour, AlignToStart: true}, zerolog.Nop())
	at := time.Date(2026, 3, 25, 11, 0, 0, 500, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 25, 11, 0, 0, 0, time.UTC), aligned.tickStart(at))

	unaligned := New(Options{Interval: time.Hour}, zerolog.Nop())
	assert.Equal(t, at, unaligned.tickStart(at))
}

func TestNewPanicsOnZeroInterval(t *testing.T) {
	assert.Panics(t, func() {
		New(Options{}, zerolog.Nop())
	})
}

func TestRunInvokesTickAndStopsOnCancel(t *testing.T) {
	s := New(Options{Interval: 20 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ticks atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, func(ctx context.Context, tick time.Time) error {
			if ticks.Add(1) >= 2 {
				cancel()
			}
			return nil
		})
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
	assert.GreaterOrEqual(t, ticks.Load(), int32(2))
}

func TestRunHonorsStartupDelayCancellation(t *testing.T) {
	s := New(Options{Interval: time.Hour, StartupDelay: time.Minute}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, func(ctx context.Context, tick time.Time) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}
