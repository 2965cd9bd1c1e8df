package memo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestKeyOf(t *testing.T) {
	if KeyOf("ab", "c") == KeyOf("a", "bc") {
		t.Fatalf("length prefixing should separate parts")
	}
	if KeyOf("x") != KeyOf("x") {
		t.Fatalf("keys must be deterministic")
	}
	if len(KeyOf()) != 64 {
		t.Fatalf("expected hex sha256, got %q", KeyOf())
	}
}

func TestDo_CachesValues(t *testing.T) {
	c := New[int]()
	var calls int
	fn := func(context.Context) (int, error) { calls++; return 7, nil }

	for range 3 {
		v, err := c.Do(context.Background(), KeyOf("k"), fn)
		if err != nil || v != 7 {
			t.Fatalf("Do = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one computation, got %d", calls)
	}
	if s := c.Stats(); s.Entries != 1 || s.Hits < 2 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestDo_NeverCachesErrors(t *testing.T) {
	c := New[int]()
	boom := errors.New("boom")
	var calls int
	fn := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 2, nil
	}
	if _, err := c.Do(context.Background(), KeyOf("k"), fn); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	v, err := c.Do(context.Background(), KeyOf("k"), fn)
	if err != nil || v != 2 {
		t.Fatalf("second call = %d, %v", v, err)
	}
	if calls != 2 {
		t.Fatalf("error was cached")
	}
}

func TestDo_Disabled(t *testing.T) {
	c := New[int](Disabled())
	var calls int
	fn := func(context.Context) (int, error) { calls++; return calls, nil }
	a, _ := c.Do(context.Background(), KeyOf("k"), fn)
	b, _ := c.Do(context.Background(), KeyOf("k"), fn)
	if a != 1 || b != 2 {
		t.Fatalf("disabled cache should recompute, got %d then %d", a, b)
	}
	if s := c.Stats(); !s.Disabled || s.Entries != 0 {
		t.Fatalf("stats = %+v", s)
	}

	var nilCache *Cache[int]
	if v, err := nilCache.Do(context.Background(), KeyOf("k"), fn); err != nil || v != 3 {
		t.Fatalf("nil cache should recompute, got %d %v", v, err)
	}
}

func TestDo_EvictsOldest(t *testing.T) {
	c := New[string](WithMax(2))
	ctx := context.Background()
	val := func(s string) func(context.Context) (string, error) {
		return func(context.Context) (string, error) { return s, nil }
	}
	_, _ = c.Do(ctx, KeyOf("a"), val("a"))
	_, _ = c.Do(ctx, KeyOf("b"), val("b"))
	_, _ = c.Do(ctx, KeyOf("c"), val("c"))

	if _, ok := c.Get(KeyOf("a")); ok {
		t.Fatalf("oldest entry should be evicted")
	}
	if _, ok := c.Get(KeyOf("c")); !ok {
		t.Fatalf("newest entry missing")
	}
}

func TestDo_CollapsesConcurrentMisses(t *testing.T) {
	c := New[int]()
	var calls atomic.Int32
	release := make(chan struct{})
	fn := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 1, nil
	}

	var wg sync.WaitGroup
	started := make(chan struct{}, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			_, _ = c.Do(context.Background(), KeyOf("same"), fn)
		}()
	}
	for range 8 {
		<-started
	}
	close(release)
	wg.Wait()

	// late arrivals may recompute only if they missed both the flight and the store
	if n := calls.Load(); n < 1 || n > 8 {
		t.Fatalf("calls = %d", n)
	}
	if v, ok := c.Get(KeyOf("same")); !ok || v != 1 {
		t.Fatalf("value not stored")
	}
}

func TestDo_WaiterCancelDoesNotCancelSharedComputation(t *testing.T) {
	c := New[int]()
	entered := make(chan struct{})
	release := make(chan struct{})
	fn := func(ctx context.Context) (int, error) {
		close(entered)
		<-release
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 42, nil
	}

	first, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	var firstVal int
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstVal, firstErr = c.Do(first, KeyOf("k"), fn)
	}()
	<-entered
	cancel()
	close(release)
	wg.Wait()

	if firstErr != nil || firstVal != 42 {
		t.Fatalf("first caller = %d, %v", firstVal, firstErr)
	}
	v, err := c.Do(context.Background(), KeyOf("k"), func(context.Context) (int, error) {
		t.Fatalf("value should have been cached")
		return 0, nil
	})
	if err != nil || v != 42 {
		t.Fatalf("second caller = %d, %v", v, err)
	}
}

func TestDo_CanceledBeforeStart(t *testing.T) {
	c := New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Do(ctx, KeyOf("k"), func(context.Context) (int, error) {
		t.Fatalf("canceled callers must not start a computation")
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestPurge(t *testing.T) {
	c := New[int]()
	_, _ = c.Do(context.Background(), KeyOf("k"), func(context.Context) (int, error) { return 1, nil })
	c.Purge()
	if _, ok := c.Get(KeyOf("k")); ok {
		t.Fatalf("purge left entries")
	}
}
