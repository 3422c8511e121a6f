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
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/miner"
)

// HonestMiner mines weak sub-blocks during a weak round using the same
// gamma=0.5 network-split preemption as nakamoto.HonestMiner, and is the
// only miner who can seal an epoch on a strong round.
type HonestMiner struct {
	miner.Base
	Action miner.HonestAction
}

// NewHonestMiner constructs an honest miner with the given identity.
func NewHonestMiner(id int, name string, power float64) *HonestMiner {
	return &HonestMiner{Base: miner.Base{ID: id, Name: name, Power: power, Role: miner.Honest}}
}

// MineNewBlock is the weak-round honest decision, identical in shape to
// nakamoto.HonestMiner.MineNewBlock.
func (h *HonestMiner) MineNewBlock(ongoingFork bool, gamma float64, matchCount int, r *rng.Source) (nextOngoingFork bool, preemptWinnerIndex int) {
	h.Action = miner.Publish
	preemptWinnerIndex = -1
	if ongoingFork && gamma == 0.5 && matchCount > 0 && r.Bernoulli(0.5) {
		preemptWinnerIndex = r.IntN(matchCount)
	}
	return false, preemptWinnerIndex
}

// SelectSubchain is the epoch-finalization choice an honest strong-round
// win triggers: when no fork was in progress the public epoch chain seals
// as-is; otherwise a winner is drawn uniformly from {competitors ∪
// public}, matching the immediate-tie draw nakamoto.ResolveImmediateTie
// uses for an ordinary fork. This is a free function — the manager is the
// only thing that may choose among several miners' chains.
func SelectSubchain(ongoingFork bool, public *EpochChain, competitors []*EpochChain, r *rng.Source) *EpochChain {
	if !ongoingFork || len(competitors) == 0 {
		return public
	}
	choice := r.IntN(len(competitors) + 1)
	if choice < len(competitors) {
		return competitors[choice]
	}
	return public
}
