package rng

import "testing"

func TestWeightedChoiceDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	weights := []float64{60, 40}
	for i := 0; i < 100; i++ {
		if a.WeightedChoice(weights) != b.WeightedChoice(weights) {
			t.Fatalf("draw %d diverged between same-seed sources", i)
		}
	}
}

func TestWeightedChoiceSkewed(t *testing.T) {
	s := New(1)
	counts := [2]int{}
	for i := 0; i < 10000; i++ {
		counts[s.WeightedChoice([]float64{99, 1})]++
	}
	if counts[0] < 9000 {
		t.Fatalf("expected heavy skew toward index 0, got %v", counts)
	}
}

func TestChoicePanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty slice")
		}
	}()
	Choice(New(1), []int{})
}
