package md2site

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
)

// ---------------------------------------------------------------------------
// TestResolvePoolSize - Worker count resolution
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	t.Run("explicit workers win", func(t *testing.T) {
		t.Parallel()

		for _, n := range []int{1, 3, 20} {
			if got := ResolvePoolSize(n); got != n {
				t.Errorf("ResolvePoolSize(%d) = %d", n, got)
			}
		}
	})

	t.Run("auto size stays in bounds", func(t *testing.T) {
		t.Parallel()

		got := ResolvePoolSize(0)
		want := min(max(runtime.GOMAXPROCS(0)/cpuDivisor, MinPoolSize), MaxPoolSize)
		if got != want {
			t.Errorf("ResolvePoolSize(0) = %d, want %d", got, want)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunPool - Bounded concurrent execution
// ---------------------------------------------------------------------------

func TestRunPool(t *testing.T) {
	t.Parallel()

	t.Run("results are indexed", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		out := make([]int, 10)
		errs := runPool(context.Background(), 10, 3, func(_ context.Context, i int) error {
			out[i] = i * i
			if i == 4 {
				return boom
			}
			return nil
		})
		for i := range out {
			if out[i] != i*i {
				t.Errorf("out[%d] = %d", i, out[i])
			}
			if (i == 4) != (errs[i] != nil) {
				t.Errorf("errs[%d] = %v", i, errs[i])
			}
		}
	})

	t.Run("concurrency is bounded", func(t *testing.T) {
		t.Parallel()

		var running, peak atomic.Int32
		runPool(context.Background(), 20, 2, func(context.Context, int) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			runtime.Gosched()
			running.Add(-1)
			return nil
		})
		if peak.Load() > 2 {
			t.Errorf("peak concurrency = %d, want <= 2", peak.Load())
		}
	})

	t.Run("canceled context skips work", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var calls atomic.Int32
		errs := runPool(ctx, 5, 2, func(context.Context, int) error {
			calls.Add(1)
			return nil
		})
		if calls.Load() != 0 {
			t.Errorf("fn called %d times after cancel", calls.Load())
		}
		for i, err := range errs {
			if !errors.Is(err, context.Canceled) {
				t.Errorf("errs[%d] = %v, want context.Canceled", i, err)
			}
		}
	})

	t.Run("panics become errors", func(t *testing.T) {
		t.Parallel()

		errs := runPool(context.Background(), 2, 2, func(_ context.Context, i int) error {
			if i == 1 {
				panic("bad item")
			}
			return nil
		})
		if errs[0] != nil || errs[1] == nil || !strings.Contains(errs[1].Error(), "bad item") {
			t.Errorf("errs = %v", errs)
		}
	})

	t.Run("no work", func(t *testing.T) {
		t.Parallel()

		if errs := runPool(context.Background(), 0, 4, nil); errs != nil {
			t.Errorf("runPool(0) = %v, want nil", errs)
		}
	})
}
