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
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/miner"
)

// HonestMiner is the baseline honest strategy every other consensus
// family's honest miner reuses for its election-time tie-break and
// publish action.
type HonestMiner struct {
	miner.Base
	Action miner.HonestAction
}

// NewHonestMiner constructs an honest miner with the given identity.
func NewHonestMiner(id int, name string, power float64) *HonestMiner {
	return &HonestMiner{Base: miner.Base{ID: id, Name: name, Power: power, Role: miner.Honest}}
}

// MineNewBlock runs the election-time gamma=0.5 network-split tie-break
// and always sets Action to PUBLISH; actual block insertion is the
// manager's job (add_honest_block), consistent with the manager-as-sole-
// mutator design: this method never reaches into another miner's state,
// it only reports which competitor (if any, by index) the preemption
// picked, leaving the manager to splice that competitor's last block onto
// the public chain's tail, clear it and remove it from the MATCH set.
//
// matchCount is the number of selfish miners currently holding MATCH.
// The returned preemptWinnerIndex is -1 when no preemption occurred,
// otherwise an index in [0, matchCount) into the manager's own MATCH
// slice.
func (h *HonestMiner) MineNewBlock(ongoingFork bool, gamma float64, matchCount int, r *rng.Source) (nextOngoingFork bool, preemptWinnerIndex int) {
	h.Action = miner.Publish
	preemptWinnerIndex = -1
	if ongoingFork && gamma == 0.5 && matchCount > 0 && r.Bernoulli(0.5) {
		preemptWinnerIndex = r.IntN(matchCount)
	}
	return false, preemptWinnerIndex
}
