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
	"encoding/json"

	"github.com/abeychain/selfminer/chainmodel"
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/miner"
)

// SelfishMiner withholds mined blocks exactly like nakamoto.SelfishMiner,
// plus two fruit queues: FruitQueue holds fruits received from an honest
// mine-fruit round, kept apart from PrivateQueue, which holds fruits this
// miner mined itself while withholding. ADOPT and ClearFruitQueue discard
// both queues together.
type SelfishMiner struct {
	miner.Base
	Private      *Chain
	FruitQueue   []int
	PrivateQueue []int
	Action       miner.SelfishAction
}

// NewSelfishMiner constructs a selfish miner with an empty private chain
// and empty fruit queues.
func NewSelfishMiner(id int, name string, power float64) *SelfishMiner {
	return &SelfishMiner{
		Base:    miner.Base{ID: id, Name: name, Power: power, Role: miner.Selfish},
		Private: NewChain(name),
	}
}

// MineNewFruit records a fruit this miner mined while withholding.
func (s *SelfishMiner) MineNewFruit() { s.PrivateQueue = append(s.PrivateQueue, s.ID) }

// ReceiveFruit records a fruit observed from an honest miner's fruit round.
func (s *SelfishMiner) ReceiveFruit(minerID int) { s.FruitQueue = append(s.FruitQueue, minerID) }

// ClearFruitQueue discards both queues, called once a block sealing them
// (or superseding them) has been resolved.
func (s *SelfishMiner) ClearFruitQueue() { s.FruitQueue = nil; s.PrivateQueue = nil }

// FruitCount returns how many fruits across both queues this miner owns.
func (s *SelfishMiner) FruitCount() int {
	n := 0
	for _, id := range s.FruitQueue {
		if id == s.ID {
			n++
		}
	}
	for _, id := range s.PrivateQueue {
		if id == s.ID {
			n++
		}
	}
	return n
}

// FruitSnapshot serializes both queues concatenated, matching the source's
// fruit_to_str (json.dumps(fruit_queue + private_queue)).
func (s *SelfishMiner) FruitSnapshot() string {
	b, _ := json.Marshal(append(append([]int(nil), s.FruitQueue...), s.PrivateQueue...))
	return string(b)
}

func (s *SelfishMiner) updatePrivateBlockchain(publicLastBlockID int) {
	if s.Private.Empty() {
		s.Private.Initialize(publicLastBlockID)
	}
	s.Private.Append(chainmodel.Block{
		Data:    s.FruitSnapshot(),
		Miner:   s.Name,
		MinerID: s.ID,
	})
}

// MineNewBlock is invoked when this miner is the elected leader of a
// superblock round: the lead comparison is plain Nakamoto block-count,
// exactly as spec §4.2.4 leaves it — fruit counts only steer leader
// election and match resolution, never this decision.
func (s *SelfishMiner) MineNewBlock(publicLastBlockID int, ongoingFork bool, matchCompetitors []*SelfishMiner) (nextOngoingFork bool, needsTie bool) {
	s.updatePrivateBlockchain(publicLastBlockID)

	if !ongoingFork {
		s.Action = miner.Wait
		return false, false
	}

	baseline := matchCompetitors[0]
	lead := s.Private.Size() - baseline.Private.Size()

	switch {
	case inSet(matchCompetitors, s):
		s.Action = miner.Override
		return true, false
	case lead >= 2:
		s.Action = miner.Wait
		return true, false
	case lead == 0:
		s.Action = miner.Match
		return true, true
	default:
		s.Private.Clear()
		s.ClearFruitQueue()
		s.Action = miner.Adopt
		return true, false
	}
}

func inSet(set []*SelfishMiner, target *SelfishMiner) bool {
	for _, m := range set {
		if m == target {
			return true
		}
	}
	return false
}

// DecideNextAction re-evaluates this miner's action after any block is
// appended to the public chain, identical to the Nakamoto baseline.
func (s *SelfishMiner) DecideNextAction(publicLastBlockID int) {
	if s.Private.Empty() {
		s.Action = miner.Idle
		return
	}
	lead := s.Private.Length() - publicLastBlockID
	switch {
	case lead >= 2:
		s.Action = miner.Wait
	case lead == 1:
		s.Action = miner.Override
	case lead == 0:
		s.Action = miner.Match
	default:
		s.Private.Clear()
		s.ClearFruitQueue()
		s.Action = miner.Adopt
	}
}

// ResolveImmediateTie mirrors nakamoto.ResolveImmediateTie: a winner is
// drawn uniformly from {match_competitors ∪ public}, spliced onto the
// public chain's tail if it is not the public chain, then the public chain
// is overridden by leader's private chain and every MATCH competitor's
// private chain (and fruit queues) is cleared.
func ResolveImmediateTie(public *Chain, leader *SelfishMiner, competitors []*SelfishMiner, r *rng.Source) {
	choice := r.IntN(len(competitors) + 1)
	if choice < len(competitors) {
		winner := competitors[choice]
		if len(winner.Private.Blocks) > 0 {
			public.Append(winner.Private.Blocks[len(winner.Private.Blocks)-1])
		}
	}

	public.OverrideChainNakamoto(leader.Private)
	leader.Private.Clear()
	for _, c := range competitors {
		c.Private.Clear()
		c.ClearFruitQueue()
	}
}
