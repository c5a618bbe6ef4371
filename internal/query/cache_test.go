package query

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

func TestReadCachesResult(t *testing.T) {
	c := NewCache(zerolog.Nop())
	var calls atomic.Int32
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := Read(context.Background(), c, "patients", fetch)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if v != "value" {
			t.Fatalf("v = %q", v)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("fetch ran %d times, want 1", n)
	}
}

func TestKeyIsolationBetweenFilters(t *testing.T) {
	c := NewCache(zerolog.Nop())
	var calls atomic.Int32
	fetchFor := func(result string) func(context.Context) (string, error) {
		return func(ctx context.Context) (string, error) {
			calls.Add(1)
			return result, nil
		}
	}

	p1 := url.Values{"search": {"smith"}}
	p2 := url.Values{"search": {"jones"}}

	v1, _ := Read(context.Background(), c, ListKey("patients", p1), fetchFor("smith-page"))
	v2, _ := Read(context.Background(), c, ListKey("patients", p2), fetchFor("jones-page"))
	if v1 == v2 {
		t.Error("different filters must not share a cached result")
	}
	if calls.Load() != 2 {
		t.Errorf("fetch ran %d times, want 2", calls.Load())
	}
}

func TestConcurrentIdenticalReadsCoalesce(t *testing.T) {
	c := NewCache(zerolog.Nop())
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	const readers = 8
	var wg sync.WaitGroup
	results := make([]int, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Read(context.Background(), c, "claims", fetch)
			if err != nil {
				t.Errorf("Read: %v", err)
			}
			results[i] = v
		}(i)
	}
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("fetch ran %d times for identical concurrent reads, want 1", n)
	}
	for i, v := range results {
		if v != 42 {
			t.Errorf("results[%d] = %d", i, v)
		}
	}
}

func TestInvalidateForcesFreshFetch(t *testing.T) {
	c := NewCache(zerolog.Nop())
	var calls atomic.Int32
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "v", nil
	}

	Read(context.Background(), c, "patients", fetch)
	c.Invalidate("patients")
	Read(context.Background(), c, "patients", fetch)

	if n := calls.Load(); n != 2 {
		t.Errorf("fetch ran %d times, want 2 after invalidation", n)
	}
}

func TestInvalidatePrefixSemantics(t *testing.T) {
	cases := []struct {
		key, prefix string
		want        bool
	}{
		{"patients", "patients", true},
		{"patients?page=2", "patients", true},
		{"patients/42", "patients", true},
		{"patients/42/encounters", "patients/42", true},
		{"patients-archive", "patients", false},
		{"encounters", "patients", false},
	}
	for _, tc := range cases {
		if got := matchesPrefix(tc.key, tc.prefix); got != tc.want {
			t.Errorf("matchesPrefix(%q, %q) = %v, want %v", tc.key, tc.prefix, got, tc.want)
		}
	}
}

func TestFailedFetchIsNotCached(t *testing.T) {
	c := NewCache(zerolog.Nop())
	var calls atomic.Int32
	boom := errors.New("boom")
	fetch := func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", boom
		}
		return "ok", nil
	}

	if _, err := Read(context.Background(), c, "patients", fetch); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	v, err := Read(context.Background(), c, "patients", fetch)
	if err != nil || v != "ok" {
		t.Errorf("retry after failure: v=%q err=%v", v, err)
	}
}
