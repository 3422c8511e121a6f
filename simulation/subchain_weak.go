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

package simulation

import (
	"fmt"

	"github.com/abeychain/selfminer/actionstore"
	"github.com/abeychain/selfminer/chainmodel"
	"github.com/abeychain/selfminer/consensus/subchain/weak"
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/internal/selflog"
	"github.com/abeychain/selfminer/miner"
)

// SubchainWeakConfig is the validated, consensus-specific slice of a
// simulation entry NewSubchainWeakManager needs.
type SubchainWeakConfig struct {
	HonestPower   float64
	SelfishPowers []float64
	Gamma         float64
	Rounds        int
	Ratio         int
	Seed          int64
}

// SubchainWeakManager runs the Subchain weak-variant simulation: a weak
// round (probability Ratio/(Ratio+1)) contests the current epoch's weak
// sub-chain exactly like Nakamoto; a strong round won by the honest miner
// seals the epoch's winning weak sub-chain onto a separate strong public
// chain and resets every miner's epoch chain. A strong round won by a
// selfish miner is a no-op — per the source, only the honest miner ever
// finalizes an epoch.
type SubchainWeakManager struct {
	PublicWeak   *weak.EpochChain
	PublicStrong *weak.StrongChain
	Honest       *weak.HonestMiner
	Selfish      []*weak.SelfishMiner
	store        *actionstore.Store[*weak.SelfishMiner]
	ongoingFork  bool
	wins         map[int]int

	// WeakBlockCount/StrongBlockCount are the §9-supplemented per-miner event
	// counters exposed for the reporting adapter's extra CSV columns.
	WeakBlockCount   map[int]int
	StrongBlockCount map[int]int

	gamma   float64
	rounds  int
	ratio   int
	rng     *rng.Source
	verbose bool
}

// NewSubchainWeakManager builds a manager with run-scoped ids starting at
// 42 (honest first, then selfish miners in configuration order).
func NewSubchainWeakManager(cfg SubchainWeakConfig) *SubchainWeakManager {
	ids := miner.NewIDGenerator()
	m := &SubchainWeakManager{
		PublicWeak:       weak.NewEpochChain("public"),
		PublicStrong:     weak.NewStrongChain("public-strong"),
		Honest:           weak.NewHonestMiner(ids.Next(), "honest", cfg.HonestPower),
		gamma:            cfg.Gamma,
		rounds:           cfg.Rounds,
		ratio:            cfg.Ratio,
		rng:              rng.New(cfg.Seed),
		wins:             make(map[int]int),
		WeakBlockCount:   make(map[int]int),
		StrongBlockCount: make(map[int]int),
		store:            actionstore.New[*weak.SelfishMiner](),
	}
	for i, p := range cfg.SelfishPowers {
		m.Selfish = append(m.Selfish, weak.NewSelfishMiner(ids.Next(), fmt.Sprintf("selfish-%d", i+1), p))
	}
	return m
}

func (m *SubchainWeakManager) SetVerbose(v bool) { m.verbose = v }

// Wins returns the per-miner-id strong-round leader-win counts — weak
// rounds never count towards wins, matching Strongchain's own convention
// for the same testable property (wins track block-sealing rounds only).
func (m *SubchainWeakManager) Wins() map[int]int { return cloneCounts(m.wins) }

func (m *SubchainWeakManager) electLeaderIndex() int {
	weights := make([]float64, len(m.Selfish)+1)
	weights[0] = m.Honest.Power
	for i, sm := range m.Selfish {
		weights[i+1] = sm.Power
	}
	return m.rng.WeightedChoice(weights)
}

func (m *SubchainWeakManager) matchCompetitors() []*weak.SelfishMiner {
	return m.store.Objects(miner.Match)
}

// Run drives Rounds weak-or-strong rounds to completion and returns the
// final strong public chain.
func (m *SubchainWeakManager) Run() *weak.StrongChain {
	for round := 0; round < m.rounds; round++ {
		m.playRound()
	}
	m.resolveDanglingWait()
	if m.verbose {
		selflog.Info("subchain(weak) run complete", "epochs_sealed", m.PublicStrong.Size(), "weak_rounds", sumCounts(m.WeakBlockCount), "strong_rounds", sumCounts(m.StrongBlockCount))
	}
	return m.PublicStrong
}

func (m *SubchainWeakManager) playRound() {
	isWeak := m.rng.Bernoulli(float64(m.ratio) / float64(m.ratio+1))
	leaderIdx := m.electLeaderIndex()

	var leaderID int
	if leaderIdx == 0 {
		leaderID = m.Honest.ID
	} else {
		leaderID = m.Selfish[leaderIdx-1].ID
	}
	if isWeak {
		m.WeakBlockCount[leaderID]++
	} else {
		m.StrongBlockCount[leaderID]++
		m.wins[leaderID]++
	}

	if leaderIdx == 0 {
		if isWeak {
			m.playHonestWeak()
		} else {
			m.finalizeEpoch()
		}
		return
	}
	if isWeak {
		m.playSelfishWeak(m.Selfish[leaderIdx-1])
	}
	// a selfish strong-round win never finalizes an epoch.
}

func (m *SubchainWeakManager) playHonestWeak() {
	matches := m.matchCompetitors()
	nextFork, preemptIdx := m.Honest.MineNewBlock(m.ongoingFork, m.gamma, len(matches), m.rng)
	if preemptIdx != -1 && len(m.PublicWeak.Blocks) > 0 {
		winner := matches[preemptIdx]
		last := winner.Private.Blocks[len(winner.Private.Blocks)-1]
		m.PublicWeak.Blocks[len(m.PublicWeak.Blocks)-1] = last
		winner.Private.Clear()
	}
	m.PublicWeak.Append(chainmodel.Block{
		Data:    fmt.Sprintf("honest-weak-%d", m.PublicWeak.WeakSize()+1),
		Miner:   m.Honest.Name,
		MinerID: m.Honest.ID,
		IsWeak:  true,
	})
	for _, sm := range matches {
		if !sm.Private.Empty() && sm.Private.WeakLength() < m.PublicWeak.WeakSize() {
			sm.Private.Clear()
		}
	}
	m.ongoingFork = nextFork
	m.resolveOverrides()
	m.resolveMatch()
}

func (m *SubchainWeakManager) playSelfishWeak(leader *weak.SelfishMiner) {
	matches := m.matchCompetitors()
	nextFork, needsTie := leader.MineNewBlock(m.PublicWeak.WeakSize(), m.ongoingFork, matches)
	m.ongoingFork = nextFork

	switch leader.Action {
	case miner.Override:
		m.PublicWeak.Override(leader.Private)
		leader.Private.Clear()
		m.ongoingFork = false
		for _, c := range matches {
			c.Private.Clear()
		}
	case miner.Match:
		if needsTie {
			weak.ResolveImmediateTie(m.PublicWeak, leader, matches, m.rng)
			m.ongoingFork = false
		}
	case miner.Adopt:
	case miner.Wait:
		if !m.ongoingFork {
			return
		}
	default:
		selflog.Crit("invariant violation: subchain(weak) selfish leader ended in an unexpected action", "action", leader.Action)
	}

	m.resolveOverrides()
	m.resolveMatch()
}

func (m *SubchainWeakManager) resolveOverrides() {
	for {
		m.store.Clear()
		for _, sm := range m.Selfish {
			sm.DecideNextAction(m.PublicWeak.WeakSize())
			m.store.Add(sm.Action, sm)
		}
		overriders := m.store.Objects(miner.Override)
		if len(overriders) == 0 {
			return
		}
		attacker := overriders[0]
		if len(overriders) > 1 {
			attacker = overriders[m.rng.IntN(len(overriders))]
		}
		m.PublicWeak.Override(attacker.Private)
		attacker.Private.Clear()
		for _, mm := range m.store.Objects(miner.Match) {
			mm.Private.Clear()
		}
		m.ongoingFork = false
	}
}

func (m *SubchainWeakManager) resolveMatch() {
	matched := m.store.Objects(miner.Match)

	switch {
	case m.ongoingFork:
		idx := m.rng.IntN(len(matched) + 1)
		if idx < len(matched) {
			winner := matched[idx]
			m.PublicWeak.Override(winner.Private)
			winner.Private.Clear()
		}
		m.ongoingFork = false
	case len(matched) == 1:
		if m.gamma == 1 {
			winner := matched[0]
			m.PublicWeak.Override(winner.Private)
			winner.Private.Clear()
		} else {
			m.ongoingFork = true
		}
	case len(matched) > 1:
		m.ongoingFork = true
	}
}

func (m *SubchainWeakManager) resolveDanglingWait() {
	var candidates []*weak.SelfishMiner
	for _, sm := range m.Selfish {
		if sm.Action == miner.Wait && !sm.Private.Empty() && sm.Private.WeakLength() > m.PublicWeak.WeakSize() {
			candidates = append(candidates, sm)
		}
	}
	if len(candidates) == 0 {
		return
	}
	winner := candidates[0]
	if len(candidates) > 1 {
		winner = candidates[m.rng.IntN(len(candidates))]
	}
	m.PublicWeak.Override(winner.Private)
	winner.Private.Clear()
}

// finalizeEpoch seals the currently-winning epoch sub-chain onto the
// strong public chain and resets every miner's epoch state, matching the
// source's sim_manager.add_honest_block's strong-round branch in
// subchain/weak/simulation_manager.py.
func (m *SubchainWeakManager) finalizeEpoch() {
	matches := m.matchCompetitors()
	var competitorChains []*weak.EpochChain
	for _, sm := range matches {
		competitorChains = append(competitorChains, sm.Private)
	}
	selected := weak.SelectSubchain(m.ongoingFork, m.PublicWeak, competitorChains, m.rng)

	m.PublicStrong.Blocks = append(m.PublicStrong.Blocks, selected.Blocks...)
	m.PublicStrong.Append(chainmodel.Block{
		Data:    fmt.Sprintf("strong-%d", m.PublicStrong.Size()+1),
		Miner:   m.Honest.Name,
		MinerID: m.Honest.ID,
	})

	m.PublicWeak.Clear()
	for _, sm := range m.Selfish {
		sm.Private.Clear()
	}
	m.store.Clear()
	m.ongoingFork = false
}
