package simulation

import "testing"

func TestNakamotoS1SingleRound(t *testing.T) {
	m := NewNakamotoManager(NakamotoConfig{
		HonestPower:   60,
		SelfishPowers: []float64{40},
		Gamma:         0,
		Rounds:        1,
		Seed:          1,
	})
	chain := m.Run()
	if chain.Size() > 1 {
		t.Fatalf("chain size = %d, want at most 1 after a single round", chain.Size())
	}
	wins := m.Wins()
	total := 0
	for _, c := range wins {
		total += c
	}
	if total != 1 {
		t.Fatalf("total wins = %d, want 1", total)
	}
}

func TestNakamotoWinsSumEqualsRounds(t *testing.T) {
	m := NewNakamotoManager(NakamotoConfig{
		HonestPower:   55,
		SelfishPowers: []float64{45},
		Gamma:         1,
		Rounds:        500,
		Seed:          42,
	})
	m.Run()
	total := 0
	for _, c := range m.Wins() {
		total += c
	}
	if total != 500 {
		t.Fatalf("sum(wins) = %d, want 500 (one leader per round)", total)
	}
}

func TestNakamotoChainNeverExceedsRounds(t *testing.T) {
	m := NewNakamotoManager(NakamotoConfig{
		HonestPower:   55,
		SelfishPowers: []float64{45},
		Gamma:         1,
		Rounds:        2000,
		Seed:          42,
	})
	chain := m.Run()
	if chain.Size() > 2000 {
		t.Fatalf("public chain size = %d exceeds rounds played", chain.Size())
	}
}
