package miner

import "testing"

func TestIDGeneratorStartsAt42(t *testing.T) {
	g := NewIDGenerator()
	if got := g.Next(); got != 42 {
		t.Fatalf("first id = %d, want 42", got)
	}
	if got := g.Next(); got != 43 {
		t.Fatalf("second id = %d, want 43", got)
	}
}

func TestIDGeneratorScopedPerRun(t *testing.T) {
	a := NewIDGenerator()
	a.Next()
	a.Next()
	b := NewIDGenerator()
	if got := b.Next(); got != 42 {
		t.Fatalf("second generator leaked state from the first: got %d, want 42", got)
	}
}

func TestSelfishActionString(t *testing.T) {
	cases := map[SelfishAction]string{Idle: "IDLE", Adopt: "ADOPT", Wait: "WAIT", Override: "OVERRIDE", Match: "MATCH"}
	for a, want := range cases {
		if got := a.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", a, got, want)
		}
	}
}
