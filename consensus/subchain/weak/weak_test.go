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

package weak

import (
	"testing"

	"github.com/abeychain/selfminer/chainmodel"
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/miner"
)

func TestEpochChainWeakSizeCountsEveryBlock(t *testing.T) {
	c := NewEpochChain("public")
	c.Initialize(0)
	c.Append(chainmodel.Block{Data: "a", IsWeak: true})
	c.Append(chainmodel.Block{Data: "b", IsWeak: true})
	if c.WeakSize() != 2 {
		t.Fatalf("WeakSize = %d, want 2", c.WeakSize())
	}
	if c.Size() != 0 {
		t.Fatalf("Size = %d, want 0 (no block in an epoch chain is ever strong)", c.Size())
	}
}

func TestSelfishMineNewBlockUsesWeakSizeForLeadTable(t *testing.T) {
	s := NewSelfishMiner(42, "sm", 40)
	s.MineNewBlock(0, false, nil)
	if s.Action != miner.Wait {
		t.Fatalf("Action = %v, want WAIT (no ongoing fork)", s.Action)
	}
	if s.Private.WeakSize() != 1 {
		t.Fatalf("WeakSize = %d, want 1", s.Private.WeakSize())
	}
}

func TestSelfishDecideNextActionUsesWeakLength(t *testing.T) {
	s := NewSelfishMiner(42, "sm", 40)
	s.Private.Initialize(0)
	s.Private.Append(chainmodel.Block{Data: "a", IsWeak: true})
	s.Private.Append(chainmodel.Block{Data: "b", IsWeak: true})

	s.DecideNextAction(0) // weak length = 2
	if s.Action != miner.Wait {
		t.Fatalf("lead=2: Action = %v, want WAIT", s.Action)
	}
	s.DecideNextAction(1) // weak length=2, public=1, lead=1
	if s.Action != miner.Override {
		t.Fatalf("lead=1: Action = %v, want OVERRIDE", s.Action)
	}
}

func TestResolveImmediateTieOverridesPublicEpochChain(t *testing.T) {
	public := NewEpochChain("public")
	public.Initialize(0)

	leader := NewSelfishMiner(42, "leader", 30)
	leader.Private.Initialize(0)
	leader.Private.Append(chainmodel.Block{Data: "p1", IsWeak: true})

	competitor := NewSelfishMiner(43, "rival", 20)
	competitor.Private.Initialize(0)
	competitor.Private.Append(chainmodel.Block{Data: "q1", IsWeak: true})

	r := rng.New(1)
	ResolveImmediateTie(public, leader, []*SelfishMiner{leader, competitor}, r)

	if !leader.Private.Empty() || !competitor.Private.Empty() {
		t.Fatal("both private epoch chains must be cleared after tie resolution")
	}
	if public.WeakSize() < 1 {
		t.Fatalf("public epoch chain should have grown, WeakSize=%d", public.WeakSize())
	}
}
