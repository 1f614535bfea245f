package core

import "testing"

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)

	for i := 0; i < 100; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatalf("Same seed produced different sequences at step %d", i)
		}
	}
}

func TestRNGRanges(t *testing.T) {
	r := NewRNG(7)

	for i := 0; i < 500; i++ {
		if v := r.IntRange(2, 5); v < 2 || v >= 5 {
			t.Fatalf("IntRange(2, 5) = %d", v)
		}
		if v := r.FloatRange(0.9, 1.2); v < 0.9 || v >= 1.2 {
			t.Fatalf("FloatRange(0.9, 1.2) = %v", v)
		}
	}

	if r.Intn(0) != 0 {
		t.Error("Intn(0) should return 0")
	}
	if r.IntRange(3, 3) != 3 {
		t.Error("Empty IntRange should return min")
	}
}

func TestRNGChooseWeighted(t *testing.T) {
	r := NewRNG(1)

	if r.ChooseWeighted(nil) != -1 {
		t.Error("Empty weights should return -1")
	}
	if r.ChooseWeighted([]float64{0, 0}) != 0 {
		t.Error("All-zero weights should return 0")
	}

	// Zero-weight entries must never be picked
	for i := 0; i < 200; i++ {
		if idx := r.ChooseWeighted([]float64{0, 1, 0}); idx != 1 {
			t.Fatalf("ChooseWeighted picked zero-weight index %d", idx)
		}
	}
}

func TestDeriveSeed(t *testing.T) {
	if DeriveSeed(1, 2) != DeriveSeed(1, 2) {
		t.Error("DeriveSeed should be deterministic")
	}
	if DeriveSeed(1, 2) == DeriveSeed(1, 3) {
		t.Error("Different salts should give different seeds")
	}
	if DeriveSeed(0, 0) == 0 {
		t.Error("DeriveSeed should never return 0")
	}
}
