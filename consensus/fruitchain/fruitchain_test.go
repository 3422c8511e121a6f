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

package fruitchain

import (
	"testing"

	"github.com/abeychain/selfminer/chainmodel"
	"github.com/abeychain/selfminer/miner"
)

func TestSelfishMineNewFruitAndClearQueue(t *testing.T) {
	s := NewSelfishMiner(42, "sm", 40)
	s.MineNewFruit()
	s.ReceiveFruit(1)
	if s.FruitCount() != 1 {
		t.Fatalf("FruitCount = %d, want 1 (only this miner's own fruit counts)", s.FruitCount())
	}
	s.ClearFruitQueue()
	if s.FruitQueue != nil || s.PrivateQueue != nil {
		t.Fatal("ClearFruitQueue must discard both queues")
	}
}

func TestFruitSnapshotSerializesBothQueues(t *testing.T) {
	s := NewSelfishMiner(42, "sm", 40)
	s.ReceiveFruit(1)
	s.MineNewFruit()
	want := `[1,42]`
	if got := s.FruitSnapshot(); got != want {
		t.Fatalf("FruitSnapshot = %s, want %s", got, want)
	}
}

func TestSelfishDecideNextActionClearsFruitQueueOnAdopt(t *testing.T) {
	s := NewSelfishMiner(42, "sm", 40)
	s.Private.Initialize(0)
	s.Private.Append(chainmodel.Block{Data: "p1"})
	s.MineNewFruit()
	s.DecideNextAction(5) // length=1, lead = -4
	if s.Action != miner.Adopt {
		t.Fatalf("Action = %v, want ADOPT", s.Action)
	}
	if s.PrivateQueue != nil {
		t.Fatal("ADOPT must clear the fruit queue alongside the private chain")
	}
}

func TestSelfishMineNewBlockLeadTableIgnoresFruitCounts(t *testing.T) {
	baseline := NewSelfishMiner(43, "rival", 20)
	baseline.Private.Initialize(0)
	baseline.Private.Append(chainmodel.Block{Data: "b1"}) // matches s's implicit append below

	s := NewSelfishMiner(42, "sm", 40)
	s.Private.Initialize(0)
	s.MineNewFruit()
	s.MineNewFruit()
	s.MineNewFruit()

	_, needsTie := s.MineNewBlock(0, true, []*SelfishMiner{baseline})
	if s.Action != miner.Match || !needsTie {
		t.Fatalf("Action = %v needsTie=%v, want MATCH/true despite unequal fruit counts", s.Action, needsTie)
	}
}
