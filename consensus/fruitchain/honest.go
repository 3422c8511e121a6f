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

	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/miner"
)

// HonestMiner is the baseline honest strategy plus a fruit queue: every
// fruit mined by this miner, or received from another miner's fruit-mine
// round, accumulates here until this miner's next block is sealed.
type HonestMiner struct {
	miner.Base
	Action     miner.HonestAction
	FruitQueue []int
}

// NewHonestMiner constructs an honest miner with an empty fruit queue.
func NewHonestMiner(id int, name string, power float64) *HonestMiner {
	return &HonestMiner{Base: miner.Base{ID: id, Name: name, Power: power, Role: miner.Honest}}
}

// MineNewFruit records a fruit commitment owned by this miner.
func (h *HonestMiner) MineNewFruit() { h.FruitQueue = append(h.FruitQueue, h.ID) }

// ReceiveFruit records a fruit commitment mined by another miner — every
// miner observes an honest fruit-mine round, per spec §4.2.4.
func (h *HonestMiner) ReceiveFruit(minerID int) { h.FruitQueue = append(h.FruitQueue, minerID) }

// ClearFruitQueue discards every recorded fruit, called once a block
// including them (or superseding them) has been sealed.
func (h *HonestMiner) ClearFruitQueue() { h.FruitQueue = nil }

// FruitCount returns how many fruits in the queue this miner itself owns —
// the only ones that redeem to its reward once sealed.
func (h *HonestMiner) FruitCount() int {
	n := 0
	for _, id := range h.FruitQueue {
		if id == h.ID {
			n++
		}
	}
	return n
}

// FruitSnapshot serializes the queue as it stands at seal time, matching
// the source's fruit_to_str (json.dumps of the owning-id list).
func (h *HonestMiner) FruitSnapshot() string {
	b, _ := json.Marshal(h.FruitQueue)
	return string(b)
}

// MineNewBlock is the superblock-round honest decision: identical to the
// Nakamoto baseline's gamma=0.5 network-split preemption — fruit counts
// never factor into the block-lead comparison itself, only into leader
// election and match resolution (spec §4.2.4).
func (h *HonestMiner) MineNewBlock(ongoingFork bool, gamma float64, matchCount int, r *rng.Source) (nextOngoingFork bool, preemptWinnerIndex int) {
	h.Action = miner.Publish
	preemptWinnerIndex = -1
	if ongoingFork && gamma == 0.5 && matchCount > 0 && r.Bernoulli(0.5) {
		preemptWinnerIndex = r.IntN(matchCount)
	}
	return false, preemptWinnerIndex
}
