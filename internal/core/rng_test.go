package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Between(0, 1000) != b.Between(0, 1000) {
			t.Fatal("same seed should give the same sequence")
		}
	}
	a.Seed(7)
	b.Seed(7)
	if a.Float64() != b.Float64() {
		t.Fatal("reseeding should restart the sequence")
	}
}

func TestRNGChanceBounds(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 200; i++ {
		if !r.Chance(1000, 1000) || !r.Chance(1200, 1000) {
			t.Fatal("n >= outOf must always succeed")
		}
		if r.Chance(0, 1000) || r.Chance(-5, 1000) || r.Chance(5, 0) {
			t.Fatal("n <= 0 must never succeed")
		}
	}
	hits := 0
	for i := 0; i < 10000; i++ {
		if r.Chance(250, 1000) {
			hits++
		}
	}
	if hits < 2000 || hits > 3000 {
		t.Fatalf("25%% chance hit %d/10000", hits)
	}
}

func TestRNGBetweenInclusive(t *testing.T) {
	r := NewRNG(3)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := r.Between(2, 4)
		if v < 2 || v > 4 {
			t.Fatalf("Between(2,4) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected all of 2..4, saw %v", seen)
	}
	if r.Between(5, 5) != 5 || r.Between(6, 1) != 6 {
		t.Fatal("degenerate ranges should return lo")
	}
}
