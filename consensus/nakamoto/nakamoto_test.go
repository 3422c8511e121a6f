package nakamoto

import (
	"testing"

	"github.com/abeychain/selfminer/chainmodel"
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/miner"
)

func TestSelfishMineNewBlockInitializesForkOnFirstMine(t *testing.T) {
	s := NewSelfishMiner(42, "sm", 40)
	s.MineNewBlock(3, false, nil)
	if s.Private.ForkBlockID == nil || *s.Private.ForkBlockID != 3 {
		t.Fatalf("ForkBlockID = %v, want 3", s.Private.ForkBlockID)
	}
	if s.Action != miner.Wait {
		t.Fatalf("Action = %v, want WAIT (no ongoing fork)", s.Action)
	}
}

func TestDecideNextActionLeadTable(t *testing.T) {
	s := NewSelfishMiner(42, "sm", 40)
	s.Private.Initialize(0)
	s.Private.Append(chainmodel.Block{Data: "a"})
	s.Private.Append(chainmodel.Block{Data: "b"})

	s.DecideNextAction(0) // lead = 2
	if s.Action != miner.Wait {
		t.Fatalf("lead=2: Action = %v, want WAIT", s.Action)
	}

	s.DecideNextAction(1) // lead = 1
	if s.Action != miner.Override {
		t.Fatalf("lead=1: Action = %v, want OVERRIDE", s.Action)
	}

	s.DecideNextAction(2) // lead = 0
	if s.Action != miner.Match {
		t.Fatalf("lead=0: Action = %v, want MATCH", s.Action)
	}

	s.DecideNextAction(3) // lead = -1
	if s.Action != miner.Adopt {
		t.Fatalf("lead=-1: Action = %v, want ADOPT", s.Action)
	}
	if !s.Private.Empty() {
		t.Fatal("ADOPT must clear the private chain")
	}
}

func TestDecideNextActionIdleOnEmptyPrivate(t *testing.T) {
	s := NewSelfishMiner(42, "sm", 40)
	s.DecideNextAction(5)
	if s.Action != miner.Idle {
		t.Fatalf("Action = %v, want IDLE", s.Action)
	}
}

func TestResolveImmediateTieClearsCompetitorsAndOverrides(t *testing.T) {
	public := NewChain("public")
	public.Append(chainmodel.Block{Data: "h1"})

	leader := NewSelfishMiner(42, "leader", 30)
	leader.Private.Initialize(1)
	leader.Private.Append(chainmodel.Block{Data: "p1"})

	competitor := NewSelfishMiner(43, "rival", 20)
	competitor.Private.Initialize(1)
	competitor.Private.Append(chainmodel.Block{Data: "q1"})

	r := rng.New(1)
	ResolveImmediateTie(public, leader, []*SelfishMiner{leader, competitor}, r)

	if !leader.Private.Empty() {
		t.Fatal("leader private chain must be cleared after tie resolution")
	}
	if !competitor.Private.Empty() {
		t.Fatal("competitor private chain must be cleared after tie resolution")
	}
	// fork_block_id 1 truncates at index 0: h1 and any spliced tie block are
	// dropped, leaving exactly the leader's private chain.
	if len(public.Blocks) != 1 || public.Blocks[0].Data != "p1" {
		t.Fatalf("public chain should be the leader's private chain after the override, got %+v", public.Blocks)
	}
}

func TestHonestMineNewBlockPreemptsOnlyAtGammaHalf(t *testing.T) {
	h := NewHonestMiner(1, "honest", 60)
	r := rng.New(7)
	_, idx := h.MineNewBlock(true, 1.0, 2, r)
	if idx != -1 {
		t.Fatalf("gamma=1 must never preempt at mine time, got idx=%d", idx)
	}
	if h.Action != miner.Publish {
		t.Fatalf("honest Action = %v, want PUBLISH", h.Action)
	}
}
