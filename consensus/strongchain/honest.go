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

package strongchain

import (
	"github.com/abeychain/selfminer/chainmodel"
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/miner"
)

// HonestMiner mirrors nakamoto.HonestMiner's election-time tie-break and
// publish action, plus a weak-header buffer: weak headers mined by this
// miner (or received from the network) accumulate here until the next
// strong block is sealed, and while buffered they augment every selfish
// miner's hm_pow comparison (spec §4.2.3's "augmenting hm_pow by honest
// weak headers so far / ratio").
type HonestMiner struct {
	miner.Base
	Action      miner.HonestAction
	WeakHeaders []chainmodel.WeakHeader
}

// NewHonestMiner constructs an honest miner with an empty weak buffer.
func NewHonestMiner(id int, name string, power float64) *HonestMiner {
	return &HonestMiner{Base: miner.Base{ID: id, Name: name, Power: power, Role: miner.Honest}}
}

// MineNewBlock is the strong-round honest decision: identical to the
// Nakamoto baseline's gamma=0.5 network-split preemption.
func (h *HonestMiner) MineNewBlock(ongoingFork bool, gamma float64, matchCount int, r *rng.Source) (nextOngoingFork bool, preemptWinnerIndex int) {
	h.Action = miner.Publish
	preemptWinnerIndex = -1
	if ongoingFork && gamma == 0.5 && matchCount > 0 && r.Bernoulli(0.5) {
		preemptWinnerIndex = r.IntN(matchCount)
	}
	return false, preemptWinnerIndex
}

// AddWeakHeader records a weak header mined or received this epoch.
func (h *HonestMiner) AddWeakHeader(w chainmodel.WeakHeader) {
	h.WeakHeaders = append(h.WeakHeaders, w)
}

// SealWeakHeaders returns and clears the accumulated weak headers, called
// when the honest miner's next strong block is sealed.
func (h *HonestMiner) SealWeakHeaders() []chainmodel.WeakHeader {
	out := h.WeakHeaders
	h.WeakHeaders = nil
	return out
}
