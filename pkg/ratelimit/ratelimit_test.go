package ratelimit

import (
	"context"
	"math/rand"
	"testing"
	"time"
)

func TestDelayer_NextBounds(t *testing.T) {
	floor := 2 * time.Second
	d := NewDelayer(floor, rand.New(rand.NewSource(7)))

	for i := 0; i < 100; i++ {
		n := d.next()
		if n < floor {
			t.Fatalf("delay %v below floor %v", n, floor)
		}
		if n >= floor+DefaultJitter {
			t.Fatalf("delay %v at or above floor+jitter %v", n, floor+DefaultJitter)
		}
	}
}

func TestDelayer_Deterministic(t *testing.T) {
	d1 := NewDelayer(time.Second, rand.New(rand.NewSource(99)))
	d2 := NewDelayer(time.Second, rand.New(rand.NewSource(99)))

	for i := 0; i < 10; i++ {
		if a, b := d1.next(), d2.next(); a != b {
			t.Fatalf("call %d: same seed diverged: %v vs %v", i, a, b)
		}
	}
}

func TestDelayer_NegativeFloor(t *testing.T) {
	d := NewDelayer(-5*time.Second, rand.New(rand.NewSource(1)))
	if n := d.next(); n < 0 || n >= DefaultJitter {
		t.Errorf("expected delay in [0, 1s), got %v", n)
	}
}

func TestDelayer_WaitCancellation(t *testing.T) {
	d := NewDelayer(time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := d.Wait(ctx)
	if err == nil {
		t.Fatal("expected context error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("wait did not honor cancellation, took %v", elapsed)
	}
}

func TestDelayer_WaitCompletes(t *testing.T) {
	d := NewDelayer(0, rand.New(rand.NewSource(1)))
	d.jitter = 5 * time.Millisecond

	if err := d.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
