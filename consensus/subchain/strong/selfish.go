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
	"fmt"

	"github.com/abeychain/selfminer/chainmodel"
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/miner"
)

// SelfishMiner grows its own unconstrained weak-block buffer between
// strong rounds and grafts it onto its private strong chain the moment it
// next wins a strong round — the graft happens before the initialize check,
// so a buffer full of weak blocks never by itself counts as "chain
// started" (Private.Size() counts strong blocks only).
type SelfishMiner struct {
	miner.Base
	Private    *Chain
	WeakBuffer []chainmodel.Block
	Action     miner.SelfishAction
}

// NewSelfishMiner constructs a selfish miner with an empty private chain
// and an empty weak buffer.
func NewSelfishMiner(id int, name string, power float64) *SelfishMiner {
	return &SelfishMiner{
		Base:    miner.Base{ID: id, Name: name, Power: power, Role: miner.Selfish},
		Private: NewChain(name),
	}
}

// AddWeakBlock appends one more weak block to the buffer.
func (s *SelfishMiner) AddWeakBlock() {
	s.WeakBuffer = append(s.WeakBuffer, chainmodel.Block{
		Data:    fmt.Sprintf("%s-weak-%d", s.Name, len(s.WeakBuffer)+1),
		Miner:   s.Name,
		MinerID: s.ID,
		IsWeak:  true,
	})
}

// ClearPrivate resets only the strong private chain, leaving the weak
// buffer untouched — used for the override/match winner, whose own buffer
// was already drained by updatePrivateBlockchain earlier this round.
func (s *SelfishMiner) ClearPrivate() { s.Private.Clear() }

// ClearAll resets both the strong private chain and the weak buffer —
// used on ADOPT and for every non-winning MATCH/OVERRIDE competitor, since
// an abandoned fork attempt abandons its pending weak blocks too.
func (s *SelfishMiner) ClearAll() {
	s.Private.Clear()
	s.WeakBuffer = nil
}

func (s *SelfishMiner) updatePrivateBlockchain(publicLastBlockID int) {
	s.Private.Blocks = append(s.Private.Blocks, s.WeakBuffer...)
	s.WeakBuffer = nil
	if s.Private.Size() == 0 {
		s.Private.Initialize(publicLastBlockID)
	}
	s.Private.Append(chainmodel.Block{
		Data:    fmt.Sprintf("%s-%d", s.Name, s.Private.Size()+1),
		Miner:   s.Name,
		MinerID: s.ID,
	})
}

// MineNewBlock is invoked when this miner wins a strong round, mirroring
// nakamoto.SelfishMiner.MineNewBlock with the weak-buffer graft folded
// into updatePrivateBlockchain.
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
		s.ClearAll()
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
// the public chain, mirroring nakamoto.SelfishMiner.DecideNextAction.
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
		s.ClearAll()
		s.Action = miner.Adopt
	}
}

// ResolveImmediateTie mirrors nakamoto.ResolveImmediateTie: a winner is
// drawn uniformly from {match_competitors ∪ public}, spliced onto the
// public chain's tail if not the public chain itself, then the public
// chain is overridden with the indexed (not fork-1) truncation policy,
// the winner's strong chain clears, and every MATCH competitor's buffers
// clear in full.
func ResolveImmediateTie(public *Chain, leader *SelfishMiner, competitors []*SelfishMiner, honest *HonestMiner, r *rng.Source) {
	choice := r.IntN(len(competitors) + 1)
	if choice < len(competitors) {
		winner := competitors[choice]
		if len(winner.Private.Blocks) > 0 {
			public.Append(winner.Private.Blocks[len(winner.Private.Blocks)-1])
		}
	}

	public.OverrideChainIndexed(leader.Private)
	leader.ClearPrivate()
	honest.ClearWeakBuffer()
	for _, c := range competitors {
		c.ClearAll()
	}
}
