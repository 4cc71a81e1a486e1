package throttle

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestJitter_WithinBounds(t *testing.T) {
	j := Jitter{Min: 10 * time.Millisecond, Max: 50 * time.Millisecond}

	for i := 0; i < 1000; i++ {
		d := j.Next()
		if d < j.Min || d >= j.Max {
			t.Fatalf("draw %d: %v outside [%v, %v)", i, d, j.Min, j.Max)
		}
	}
}

func TestJitter_SpreadsDraws(t *testing.T) {
	j := Jitter{Min: 0, Max: 1000 * time.Millisecond}

	seen := make(map[time.Duration]struct{})
	for i := 0; i < 100; i++ {
		seen[j.Next()] = struct{}{}
	}
	// A uniform draw over a nanosecond-granular band virtually never
	// repeats; a handful of distinct values means the source is broken.
	if len(seen) < 50 {
		t.Errorf("only %d distinct draws out of 100", len(seen))
	}
}

func TestJitter_DegenerateBand(t *testing.T) {
	tests := []struct {
		name string
		j    Jitter
		want time.Duration
	}{
		{"equal bounds", Jitter{Min: 20 * time.Millisecond, Max: 20 * time.Millisecond}, 20 * time.Millisecond},
		{"inverted bounds", Jitter{Min: 30 * time.Millisecond, Max: 10 * time.Millisecond}, 30 * time.Millisecond},
		{"zero band", Jitter{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 10; i++ {
				if got := tt.j.Next(); got != tt.want {
					t.Fatalf("Next() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFixed(t *testing.T) {
	if got := Fixed(42 * time.Millisecond).Next(); got != 42*time.Millisecond {
		t.Errorf("Next() = %v, want 42ms", got)
	}
	if got := Fixed(0).Next(); got != 0 {
		t.Errorf("Next() = %v, want 0", got)
	}
}

func TestWait_ZeroDelayIsFast(t *testing.T) {
	th := New(Fixed(0), 0, 0)

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := th.Wait(context.Background()); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("100 zero-delay waits took %v", elapsed)
	}
}

func TestWait_SleepsAtLeastDelay(t *testing.T) {
	th := New(Fixed(30*time.Millisecond), 0, 0)

	start := time.Now()
	if err := th.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Wait returned after %v, want >= 30ms", elapsed)
	}
}

func TestWait_CancelledContext(t *testing.T) {
	th := New(Fixed(5*time.Second), 0, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := th.Wait(ctx)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Wait should fail when the context expires mid-sleep")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
	if elapsed > 2*time.Second {
		t.Errorf("Wait held for %v after cancellation", elapsed)
	}
}

func TestWait_RateFloor(t *testing.T) {
	// Zero jitter leaves only the sustained-rate floor: at 50 rps the
	// second and third calls each owe ~20ms.
	th := New(Fixed(0), 50, 1)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := th.Wait(context.Background()); err != nil {
			t.Fatalf("Wait %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("3 waits at 50 rps took %v, want >= 30ms", elapsed)
	}
}

func TestNew_DisablesFloorWithoutRate(t *testing.T) {
	th := New(Fixed(0), 0, 5)
	if th.limiter != nil {
		t.Error("rps <= 0 should leave the limiter nil")
	}

	th = New(Fixed(0), 10, 0)
	if th.limiter == nil {
		t.Fatal("positive rps should install a limiter")
	}
	if got := th.limiter.Burst(); got != 1 {
		t.Errorf("burst normalised to %d, want 1", got)
	}
}
