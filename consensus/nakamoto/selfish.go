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

package nakamoto

import (
	"fmt"

	"github.com/abeychain/selfminer/chainmodel"
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/miner"
)

// SelfishMiner is the baseline selfish strategy: withhold mined blocks on
// a private chain, publish only when ahead or forced by a MATCH.
type SelfishMiner struct {
	miner.Base
	Private *Chain
	Action  miner.SelfishAction
}

// NewSelfishMiner constructs a selfish miner with an empty private chain.
func NewSelfishMiner(id int, name string, power float64) *SelfishMiner {
	return &SelfishMiner{
		Base:    miner.Base{ID: id, Name: name, Power: power, Role: miner.Selfish},
		Private: NewChain(name),
	}
}

func (s *SelfishMiner) updatePrivateBlockchain(publicLastBlockID int) {
	if s.Private.Empty() {
		s.Private.Initialize(publicLastBlockID)
	}
	s.Private.Append(chainmodel.Block{
		Data:    fmt.Sprintf("%s-%d", s.Name, s.Private.Size()+1),
		Miner:   s.Name,
		MinerID: s.ID,
	})
}

// MineNewBlock is invoked when this miner is the elected leader. It
// extends the private chain, then — per the source — either keeps
// quietly WAITing (no ongoing fork) or, if a fork is already in
// progress, re-evaluates against the first MATCH competitor. needsTie is
// true exactly when this miner is not itself in the MATCH set, its lead
// over the baseline competitor is zero, and the immediate tie-break/override (ResolveImmediateTie) must
// run; the manager performs that cross-miner mutation, this method never
// does.
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
// appended to the public chain (honest publish, an OVERRIDE elsewhere, or
// a resolved MATCH). This is the generic per-round re-evaluation the
// override resolution loop drives to a fixpoint.
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
		s.Action = miner.Adopt
	}
}

// ResolveImmediateTie implements the third bullet of the source's
// ongoing-fork mine_new_block branch: when the just-elected leader's
// private chain ties the baseline MATCH competitor, a winner is drawn
// uniformly from {match_competitors ∪ public}; if the winner is not the
// public chain, its last block is spliced onto the public chain's tail
// (so override_chain sees an extra block to preserve the tie-break
// ordering), then the public chain is overridden by leader's private
// chain, every MATCH competitor's private chain is cleared and
// ongoing_fork clears. This is a free function, not a method on any one
// miner, precisely because it mutates several miners' state at once —
// the kind of cross-miner mutation the source lets a miner perform
// directly on another and this design instead pushes out to the
// manager/caller.
func ResolveImmediateTie(public *Chain, leader *SelfishMiner, competitors []*SelfishMiner, r *rng.Source) {
	// The last candidate, index len(competitors), represents the public
	// chain itself (nil winner).
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
	}
}
