package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestRunInvokesTicksUntilCancelled(t *testing.T) {
	sched := New(Options{Interval: 5 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	err := sched.Run(ctx, func(ctx context.Context, at time.Time) error {
		ticks++
		if ticks >= 3 {
			cancel()
		}
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("run should end with context.Canceled, got %v", err)
	}
	if ticks < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", ticks)
	}
}

func TestRunContinuesAfterTickError(t *testing.T) {
	sched := New(Options{Interval: 5 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	_ = sched.Run(ctx, func(ctx context.Context, at time.Time) error {
		ticks++
		if ticks == 1 {
			return errors.New("broker unreachable")
		}
		cancel()
		return nil
	})

	if ticks < 2 {
		t.Fatalf("a failed tick must not stop the loop, got %d ticks", ticks)
	}
}

func TestTicksDoNotOverlap(t *testing.T) {
	sched := New(Options{Interval: time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	inFlight := 0
	ticks := 0
	_ = sched.Run(ctx, func(ctx context.Context, at time.Time) error {
		inFlight++
		if inFlight > 1 {
			t.Fatal("tick bodies must never overlap")
		}
		time.Sleep(3 * time.Millisecond)
		inFlight--
		ticks++
		if ticks >= 4 {
			cancel()
		}
		return nil
	})
}

func TestNewPanicsOnNonPositiveInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero interval")
		}
	}()
	New(Options{}, zerolog.Nop())
}
