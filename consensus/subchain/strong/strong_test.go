// Copyright 2026 The Selfminer Authors
// This file is part of the selfminer library.
//
// The selfminer library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The selfminer library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the selfminer library. If not, see <http://www.gnu.org/licenses/>.

package strong

import (
	"testing"

	"github.com/abeychain/selfminer/chainmodel"
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/miner"
)

func TestWeakBufferGraftDoesNotCountAsChainStarted(t *testing.T) {
	s := NewSelfishMiner(42, "sm", 40)
	s.AddWeakBlock()
	s.AddWeakBlock()
	if !s.Private.Empty() {
		t.Fatal("a weak buffer alone must not make the strong chain non-empty")
	}

	s.MineNewBlock(0, false, nil)
	if len(s.Private.Blocks) != 3 {
		t.Fatalf("Private.Blocks = %d, want 3 (2 grafted weak + 1 new strong)", len(s.Private.Blocks))
	}
	if s.Private.Size() != 1 {
		t.Fatalf("Private.Size() = %d, want 1 (only the new strong block counts)", s.Private.Size())
	}
	if len(s.WeakBuffer) != 0 {
		t.Fatal("the weak buffer must be drained by the graft")
	}
}

func TestClearPrivateLeavesWeakBufferClearAllDoesNot(t *testing.T) {
	s := NewSelfishMiner(42, "sm", 40)
	s.AddWeakBlock()
	s.Private.Initialize(0)
	s.Private.Append(chainmodel.Block{Data: "p1"})

	s.ClearPrivate()
	if !s.Private.Empty() {
		t.Fatal("ClearPrivate must clear the strong chain")
	}
	if len(s.WeakBuffer) != 1 {
		t.Fatal("ClearPrivate must leave the weak buffer untouched")
	}

	s.ClearAll()
	if len(s.WeakBuffer) != 0 {
		t.Fatal("ClearAll must also clear the weak buffer")
	}
}

func TestSelfishDecideNextActionClearsWeakBufferOnAdopt(t *testing.T) {
	s := NewSelfishMiner(42, "sm", 40)
	s.AddWeakBlock()
	s.Private.Initialize(0)
	s.Private.Append(chainmodel.Block{Data: "p1"})

	s.DecideNextAction(5) // length=1, lead=-4
	if s.Action != miner.Adopt {
		t.Fatalf("Action = %v, want ADOPT", s.Action)
	}
	if len(s.WeakBuffer) != 0 {
		t.Fatal("ADOPT must clear the weak buffer alongside the strong chain")
	}
}

func TestResolveImmediateTieClearsChainsAndHonestWeakBuffer(t *testing.T) {
	public := NewChain("public")
	public.Append(chainmodel.Block{Data: "h1"})

	honest := NewHonestMiner(1, "honest", 60)
	honest.AddWeakBlock()

	leader := NewSelfishMiner(42, "leader", 30)
	leader.Private.Initialize(1)
	leader.Private.Append(chainmodel.Block{Data: "p1"})

	competitor := NewSelfishMiner(43, "rival", 20)
	competitor.AddWeakBlock()
	competitor.Private.Initialize(1)
	competitor.Private.Append(chainmodel.Block{Data: "q1"})

	r := rng.New(1)
	ResolveImmediateTie(public, leader, []*SelfishMiner{leader, competitor}, honest, r)

	if !leader.Private.Empty() {
		t.Fatal("leader strong chain must be cleared")
	}
	if !competitor.Private.Empty() || len(competitor.WeakBuffer) != 0 {
		t.Fatal("non-winning competitor must have both chain and weak buffer cleared")
	}
	if len(honest.WeakBuffer) != 0 {
		t.Fatal("the honest miner's weak buffer must be cleared by the winning resolution")
	}
}
