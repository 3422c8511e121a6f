package actionstore

import (
	"reflect"
	"testing"

	"github.com/abeychain/selfminer/miner"
)

func TestAddPreservesOrderAndMultiplicity(t *testing.T) {
	s := New[string]()
	s.Add(miner.Wait, "a")
	s.Add(miner.Wait, "b")
	s.Add(miner.Match, "c")

	if got := s.Objects(miner.Wait); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Objects(WAIT) = %v", got)
	}
	if got := s.Actions(); !reflect.DeepEqual(got, []miner.SelfishAction{miner.Wait, miner.Wait, miner.Match}) {
		t.Fatalf("Actions() = %v", got)
	}
}

func TestRemoveIsNoOpWhenAbsent(t *testing.T) {
	s := New[string]()
	s.Add(miner.Wait, "a")
	s.Remove(miner.Wait, "not-present")
	if got := s.Objects(miner.Wait); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("Objects(WAIT) = %v, want unchanged", got)
	}
}

func TestRemoveDeletesFirstOccurrence(t *testing.T) {
	s := New[string]()
	s.Add(miner.Override, "a")
	s.Add(miner.Override, "a")
	s.Remove(miner.Override, "a")
	if got := s.Objects(miner.Override); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("Objects(OVERRIDE) = %v, want one remaining", got)
	}
}

func TestClearResetsEverything(t *testing.T) {
	s := New[string]()
	s.Add(miner.Wait, "a")
	s.Clear()
	if got := s.Objects(miner.Wait); len(got) != 0 {
		t.Fatalf("Objects(WAIT) after Clear = %v, want empty", got)
	}
	if got := s.Actions(); len(got) != 0 {
		t.Fatalf("Actions() after Clear = %v, want empty", got)
	}
}
