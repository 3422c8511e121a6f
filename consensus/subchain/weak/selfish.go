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
	"fmt"

	"github.com/abeychain/selfminer/chainmodel"
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/miner"
)

// SelfishMiner withholds weak sub-blocks on a private epoch chain, using
// the Nakamoto WAIT/OVERRIDE/MATCH/ADOPT decision tree with weak-block
// counts (WeakSize/WeakLength) standing in for Size/Length.
type SelfishMiner struct {
	miner.Base
	Private *EpochChain
	Action  miner.SelfishAction
}

// NewSelfishMiner constructs a selfish miner with an empty private epoch
// chain.
func NewSelfishMiner(id int, name string, power float64) *SelfishMiner {
	return &SelfishMiner{
		Base:    miner.Base{ID: id, Name: name, Power: power, Role: miner.Selfish},
		Private: NewEpochChain(name),
	}
}

func (s *SelfishMiner) updatePrivateBlockchain(publicWeakLen int) {
	if s.Private.Empty() {
		s.Private.Initialize(publicWeakLen)
	}
	s.Private.Append(chainmodel.Block{
		Data:    fmt.Sprintf("%s-weak-%d", s.Name, s.Private.WeakSize()+1),
		Miner:   s.Name,
		MinerID: s.ID,
		IsWeak:  true,
	})
}

// MineNewBlock is invoked when this miner wins a weak round. It mirrors
// nakamoto.SelfishMiner.MineNewBlock exactly, with WeakSize replacing Size
// since every block on this chain is weak.
func (s *SelfishMiner) MineNewBlock(publicWeakLen int, ongoingFork bool, matchCompetitors []*SelfishMiner) (nextOngoingFork bool, needsTie bool) {
	s.updatePrivateBlockchain(publicWeakLen)

	if !ongoingFork {
		s.Action = miner.Wait
		return false, false
	}

	baseline := matchCompetitors[0]
	lead := s.Private.WeakSize() - baseline.Private.WeakSize()

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

// DecideNextAction re-evaluates this miner's action after any block joins
// the public epoch chain, mirroring nakamoto.SelfishMiner.DecideNextAction
// with WeakLength replacing Length.
func (s *SelfishMiner) DecideNextAction(publicWeakLen int) {
	if s.Private.Empty() {
		s.Action = miner.Idle
		return
	}
	lead := s.Private.WeakLength() - publicWeakLen
	switch {
	case lead >= 2:
		s.Action = miner.Wait
	case lead == 1:
		s.Action = miner.Override
	case lead == 0:
		s.Action = miner.Match
	default:
		s.Private.Clear()
		s.Action = miner.Adopt
	}
}

// ResolveImmediateTie mirrors nakamoto.ResolveImmediateTie over epoch
// chains: a winner is drawn uniformly from {match_competitors ∪ public},
// spliced onto the public epoch chain's tail if not the public chain
// itself, then the public epoch chain is overridden by leader's private
// chain and every MATCH competitor's private chain clears.
func ResolveImmediateTie(public *EpochChain, leader *SelfishMiner, competitors []*SelfishMiner, r *rng.Source) {
	choice := r.IntN(len(competitors) + 1)
	if choice < len(competitors) {
		winner := competitors[choice]
		if len(winner.Private.Blocks) > 0 {
			public.Append(winner.Private.Blocks[len(winner.Private.Blocks)-1])
		}
	}

	public.Override(leader.Private)
	leader.Private.Clear()
	for _, c := range competitors {
		c.Private.Clear()
	}
}
