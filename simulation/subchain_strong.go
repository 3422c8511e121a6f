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
	"github.com/abeychain/selfminer/consensus/subchain/strong"
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/internal/selflog"
	"github.com/abeychain/selfminer/miner"
)

// SubchainStrongConfig is the validated, consensus-specific slice of a
// simulation entry NewSubchainStrongManager needs.
type SubchainStrongConfig struct {
	HonestPower   float64
	SelfishPowers []float64
	Gamma         float64
	Rounds        int
	Ratio         int
	Seed          int64
}

// SubchainStrongManager runs the Subchain strong-variant simulation: a
// weak round just grows whichever miner won it a private, fork-free weak
// buffer; a strong round grafts that buffer onto the winner's strong
// chain and proceeds with an ordinary Nakamoto-shaped round.
type SubchainStrongManager struct {
	Public      *strong.Chain
	Honest      *strong.HonestMiner
	Selfish     []*strong.SelfishMiner
	store       *actionstore.Store[*strong.SelfishMiner]
	ongoingFork bool
	wins        map[int]int

	WeakBlockCount   map[int]int
	StrongBlockCount map[int]int

	gamma   float64
	rounds  int
	ratio   int
	rng     *rng.Source
	verbose bool
}

// NewSubchainStrongManager builds a manager with run-scoped ids starting
// at 42 (honest first, then selfish miners in configuration order).
func NewSubchainStrongManager(cfg SubchainStrongConfig) *SubchainStrongManager {
	ids := miner.NewIDGenerator()
	m := &SubchainStrongManager{
		Public:           strong.NewChain("public"),
		Honest:           strong.NewHonestMiner(ids.Next(), "honest", cfg.HonestPower),
		gamma:            cfg.Gamma,
		rounds:           cfg.Rounds,
		ratio:            cfg.Ratio,
		rng:              rng.New(cfg.Seed),
		wins:             make(map[int]int),
		WeakBlockCount:   make(map[int]int),
		StrongBlockCount: make(map[int]int),
		store:            actionstore.New[*strong.SelfishMiner](),
	}
	for i, p := range cfg.SelfishPowers {
		m.Selfish = append(m.Selfish, strong.NewSelfishMiner(ids.Next(), fmt.Sprintf("selfish-%d", i+1), p))
	}
	return m
}

func (m *SubchainStrongManager) SetVerbose(v bool) { m.verbose = v }

// Wins returns the per-miner-id strong-round leader-win counts.
func (m *SubchainStrongManager) Wins() map[int]int { return cloneCounts(m.wins) }

func (m *SubchainStrongManager) electLeaderIndex() int {
	weights := make([]float64, len(m.Selfish)+1)
	weights[0] = m.Honest.Power
	for i, sm := range m.Selfish {
		weights[i+1] = sm.Power
	}
	return m.rng.WeightedChoice(weights)
}

func (m *SubchainStrongManager) matchCompetitors() []*strong.SelfishMiner {
	return m.store.Objects(miner.Match)
}

// Run drives Rounds weak-or-strong rounds to completion and returns the
// final public strong chain.
func (m *SubchainStrongManager) Run() *strong.Chain {
	for round := 0; round < m.rounds; round++ {
		m.playRound()
	}
	m.resolveDanglingWait()
	if m.verbose {
		selflog.Info("subchain(strong) run complete", "public_strong_blocks", m.Public.Size(), "weak_rounds", sumCounts(m.WeakBlockCount), "strong_rounds", sumCounts(m.StrongBlockCount))
	}
	return m.Public
}

func (m *SubchainStrongManager) playRound() {
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
			m.Honest.AddWeakBlock()
		} else {
			m.playHonestStrong()
		}
		return
	}
	leader := m.Selfish[leaderIdx-1]
	if isWeak {
		leader.AddWeakBlock()
		return
	}
	m.playSelfishStrong(leader)
}

func (m *SubchainStrongManager) playHonestStrong() {
	m.Public.Blocks = append(m.Public.Blocks, m.Honest.WeakBuffer...)
	m.Honest.ClearWeakBuffer()

	matches := m.matchCompetitors()
	nextFork, preemptIdx := m.Honest.MineNewBlock(m.ongoingFork, m.gamma, len(matches), m.rng)
	if preemptIdx != -1 && len(m.Public.Blocks) > 0 {
		winner := matches[preemptIdx]
		last := winner.Private.Blocks[len(winner.Private.Blocks)-1]
		m.Public.Blocks[len(m.Public.Blocks)-1] = last
		winner.ClearAll()
	}
	m.Public.Append(chainmodel.Block{
		Data:    fmt.Sprintf("honest-%d", m.Public.Size()+1),
		Miner:   m.Honest.Name,
		MinerID: m.Honest.ID,
	})
	for _, sm := range matches {
		if !sm.Private.Empty() && sm.Private.Length() < m.Public.LastBlockID {
			sm.ClearAll()
		}
	}
	m.ongoingFork = nextFork
	m.resolveOverrides()
	m.resolveMatch()
}

func (m *SubchainStrongManager) playSelfishStrong(leader *strong.SelfishMiner) {
	matches := m.matchCompetitors()
	nextFork, needsTie := leader.MineNewBlock(m.Public.LastBlockID, m.ongoingFork, matches)
	m.ongoingFork = nextFork

	switch leader.Action {
	case miner.Override:
		m.Public.OverrideChainIndexed(leader.Private)
		leader.ClearPrivate()
		m.Honest.ClearWeakBuffer()
		m.ongoingFork = false
		for _, c := range matches {
			c.ClearAll()
		}
	case miner.Match:
		if needsTie {
			strong.ResolveImmediateTie(m.Public, leader, matches, m.Honest, m.rng)
			m.ongoingFork = false
		}
	case miner.Adopt:
		// private chain and weak buffer already cleared by MineNewBlock.
	case miner.Wait:
		if !m.ongoingFork {
			return
		}
	default:
		selflog.Crit("invariant violation: subchain(strong) selfish leader ended in an unexpected action", "action", leader.Action)
	}

	m.resolveOverrides()
	m.resolveMatch()
}

func (m *SubchainStrongManager) resolveOverrides() {
	for {
		m.store.Clear()
		for _, sm := range m.Selfish {
			sm.DecideNextAction(m.Public.LastBlockID)
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
		m.Public.OverrideChainIndexed(attacker.Private)
		attacker.ClearPrivate()
		m.Honest.ClearWeakBuffer()
		for _, mm := range m.store.Objects(miner.Match) {
			mm.ClearAll()
		}
		m.ongoingFork = false
	}
}

func (m *SubchainStrongManager) resolveMatch() {
	matched := m.store.Objects(miner.Match)

	switch {
	case m.ongoingFork:
		idx := m.rng.IntN(len(matched) + 1)
		if idx < len(matched) {
			winner := matched[idx]
			m.Public.OverrideChainIndexed(winner.Private)
			winner.ClearPrivate()
			m.Honest.ClearWeakBuffer()
			for _, c := range matched {
				if c != winner {
					c.ClearAll()
				}
			}
		}
		m.ongoingFork = false
	case len(matched) == 1:
		if m.gamma == 1 {
			winner := matched[0]
			m.Public.OverrideChainIndexed(winner.Private)
			winner.ClearPrivate()
			m.Honest.ClearWeakBuffer()
		} else {
			m.ongoingFork = true
		}
	case len(matched) > 1:
		m.ongoingFork = true
	}
}

func (m *SubchainStrongManager) resolveDanglingWait() {
	var candidates []*strong.SelfishMiner
	for _, sm := range m.Selfish {
		if sm.Action == miner.Wait && !sm.Private.Empty() && sm.Private.Length() > m.Public.LastBlockID {
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
	m.Public.OverrideChainIndexed(winner.Private)
	winner.ClearPrivate()
}
