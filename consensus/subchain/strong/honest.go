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

// HonestMiner grows an unconstrained weak-block buffer between strong
// rounds (no fork bookkeeping — a weak round never contests anything) and
// grafts it onto the public chain the moment it next wins a strong round.
type HonestMiner struct {
	miner.Base
	Action     miner.HonestAction
	WeakBuffer []chainmodel.Block
}

// NewHonestMiner constructs an honest miner with an empty weak buffer.
func NewHonestMiner(id int, name string, power float64) *HonestMiner {
	return &HonestMiner{Base: miner.Base{ID: id, Name: name, Power: power, Role: miner.Honest}}
}

// AddWeakBlock appends one more weak block to the buffer — called every
// time this miner wins a weak round.
func (h *HonestMiner) AddWeakBlock() {
	h.WeakBuffer = append(h.WeakBuffer, chainmodel.Block{
		Data:    fmt.Sprintf("%s-weak-%d", h.Name, len(h.WeakBuffer)+1),
		Miner:   h.Name,
		MinerID: h.ID,
		IsWeak:  true,
	})
}

// ClearWeakBuffer discards the buffer, called once it has been grafted (by
// this miner or superseded by someone else's override/match resolution).
func (h *HonestMiner) ClearWeakBuffer() { h.WeakBuffer = nil }

// MineNewBlock is the strong-round honest decision: identical to the
// Nakamoto baseline's gamma=0.5 network-split preemption. The caller grafts
// WeakBuffer onto the public chain before invoking this.
func (h *HonestMiner) MineNewBlock(ongoingFork bool, gamma float64, matchCount int, r *rng.Source) (nextOngoingFork bool, preemptWinnerIndex int) {
	h.Action = miner.Publish
	preemptWinnerIndex = -1
	if ongoingFork && gamma == 0.5 && matchCount > 0 && r.Bernoulli(0.5) {
		preemptWinnerIndex = r.IntN(matchCount)
	}
	return false, preemptWinnerIndex
}
