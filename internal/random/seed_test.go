package random

import (
	"sort"
	"sync"
	"testing"
)

func TestNewSeedReturnsValue(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct seeds, got %d twice", a)
	}
}

func TestSeededSourceIsDeterministic(t *testing.T) {
	left := NewSeededSource(42)
	right := NewSeededSource(42)
	for i := 0; i < 50; i++ {
		if l, r := left.IntN(1000), right.IntN(1000); l != r {
			t.Fatalf("draw %d: %d != %d", i, l, r)
		}
	}
}

func TestPermCoversRange(t *testing.T) {
	perm := NewSeededSource(7).Perm(4)
	got := append([]int(nil), perm...)
	sort.Ints(got)
	for i, v := range got {
		if v != i {
			t.Fatalf("perm = %v, want permutation of 0..3", perm)
		}
	}
}

func TestSourceConcurrentUse(t *testing.T) {
	src, err := NewSource()
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if v := src.IntN(15); v < 0 || v >= 15 {
					t.Errorf("value %d out of range", v)
				}
			}
		}()
	}
	wg.Wait()
}
