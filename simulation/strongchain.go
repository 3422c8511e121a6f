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
	"github.com/abeychain/selfminer/consensus/strongchain"
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/internal/selflog"
	"github.com/abeychain/selfminer/miner"
)

// StrongchainConfig is the validated, consensus-specific slice of a
// simulation entry NewStrongchainManager needs.
type StrongchainConfig struct {
	HonestPower   float64
	SelfishPowers []float64
	Gamma         float64
	Rounds        int
	Ratio         int
	Seed          int64
}

// StrongchainManager runs the Strongchain selfish-mining simulation: weak
// header rounds accumulate partial chain weight between strong rounds,
// which carry the real leader-election wins.
type StrongchainManager struct {
	Public      *strongchain.Chain
	Honest      *strongchain.HonestMiner
	Selfish     []*strongchain.SelfishMiner
	store       *actionstore.Store[*strongchain.SelfishMiner]
	ongoingFork bool
	wins        map[int]int

	// StrongCounts/WeakCounts are the §9-supplemented per-miner event
	// counters the source's simulation_manager.py prints at the end of a
	// run, exposed here for the reporting adapter's extra CSV columns
	// (scenario S3's weak-header-fraction assertion).
	StrongCounts map[int]int
	WeakCounts   map[int]int

	gamma   float64
	rounds  int
	ratio   int
	rng     *rng.Source
	verbose bool
}

// NewStrongchainManager builds a manager with run-scoped ids starting at
// 42 (honest first, then selfish miners in configuration order).
func NewStrongchainManager(cfg StrongchainConfig) *StrongchainManager {
	ids := miner.NewIDGenerator()
	m := &StrongchainManager{
		Public:       strongchain.NewChain("public", cfg.Ratio),
		Honest:       strongchain.NewHonestMiner(ids.Next(), "honest", cfg.HonestPower),
		gamma:        cfg.Gamma,
		rounds:       cfg.Rounds,
		ratio:        cfg.Ratio,
		rng:          rng.New(cfg.Seed),
		wins:         make(map[int]int),
		StrongCounts: make(map[int]int),
		WeakCounts:   make(map[int]int),
		store:        actionstore.New[*strongchain.SelfishMiner](),
	}
	for i, p := range cfg.SelfishPowers {
		m.Selfish = append(m.Selfish, strongchain.NewSelfishMiner(ids.Next(), fmt.Sprintf("selfish-%d", i+1), p, cfg.Ratio))
	}
	return m
}

func (m *StrongchainManager) SetVerbose(v bool) { m.verbose = v }

// Wins returns the per-miner-id strong-round leader-win counts.
func (m *StrongchainManager) Wins() map[int]int { return cloneCounts(m.wins) }

func (m *StrongchainManager) electLeaderIndex() int {
	weights := make([]float64, len(m.Selfish)+1)
	weights[0] = m.Honest.Power
	for i, sm := range m.Selfish {
		weights[i+1] = sm.Power
	}
	return m.rng.WeightedChoice(weights)
}

// Run drives Rounds weak-or-strong rounds (a weak round occurs with
// probability Ratio/(Ratio+1), consistent with Subchain's explicit
// weak-event formula — Strongchain's own spec text leaves the event-kind
// distribution implicit, so this mirrors the one sibling consensus that
// states it outright; see DESIGN.md).
func (m *StrongchainManager) Run() *strongchain.Chain {
	for round := 0; round < m.rounds; round++ {
		m.playRound()
	}
	m.resolveDanglingWait()
	if m.verbose {
		selflog.Info("strongchain run complete", "public_strong_blocks", m.Public.Size(), "weak_events", sumCounts(m.WeakCounts), "strong_events", sumCounts(m.StrongCounts))
	}
	return m.Public
}

func sumCounts(c map[int]int) int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

func (m *StrongchainManager) playRound() {
	isWeak := m.rng.Bernoulli(float64(m.ratio) / float64(m.ratio+1))
	leaderIdx := m.electLeaderIndex()

	var leaderID int
	if leaderIdx == 0 {
		leaderID = m.Honest.ID
	} else {
		leaderID = m.Selfish[leaderIdx-1].ID
	}
	if isWeak {
		m.WeakCounts[leaderID]++
	} else {
		m.StrongCounts[leaderID]++
		m.wins[leaderID]++
	}

	if leaderIdx == 0 {
		if isWeak {
			m.playHonestWeak()
		} else {
			m.playHonestStrong()
		}
		return
	}
	leader := m.Selfish[leaderIdx-1]
	if isWeak {
		leader.AddWeakHeader(chainmodel.WeakHeader{Data: fmt.Sprintf("%s-wh", leader.Name), Miner: leader.Name, MinerID: leader.ID})
		m.resolveOverrides()
		m.resolveMatch()
		return
	}
	m.playSelfishStrong(leader)
}

func (m *StrongchainManager) playHonestWeak() {
	m.Honest.AddWeakHeader(chainmodel.WeakHeader{Data: fmt.Sprintf("%s-wh", m.Honest.Name), Miner: m.Honest.Name, MinerID: m.Honest.ID})
	m.resolveOverrides()
	m.resolveMatch()
}

func (m *StrongchainManager) playHonestStrong() {
	matches := m.store.Objects(miner.Match)
	nextFork, preemptIdx := m.Honest.MineNewBlock(m.ongoingFork, m.gamma, len(matches), m.rng)
	if preemptIdx != -1 && len(m.Public.Blocks) > 0 {
		winner := matches[preemptIdx]
		last := winner.Private.Blocks[len(winner.Private.Blocks)-1]
		m.Public.Blocks[len(m.Public.Blocks)-1] = last
		winner.Private.Clear()
	}
	m.Public.Append(chainmodel.StrongBlock{
		Data:        fmt.Sprintf("honest-%d", m.Public.Size()+1),
		Miner:       m.Honest.Name,
		MinerID:     m.Honest.ID,
		WeakHeaders: m.Honest.SealWeakHeaders(),
	})
	// Per the invariant in spec §3: weak headers attached to a block
	// always point to the previous strong block, so any selfish miner
	// without an ongoing private fork has its buffer invalidated.
	for _, sm := range m.Selfish {
		if sm.Private.Empty() {
			sm.WeakBuffer = nil
		}
	}
	m.ongoingFork = nextFork
	m.resolveOverrides()
	m.resolveMatch()
}

func (m *StrongchainManager) playSelfishStrong(leader *strongchain.SelfishMiner) {
	leader.MineNewBlock(m.Public, len(m.Honest.WeakHeaders))

	switch leader.Action {
	case miner.Override:
		m.Public.OverrideChain(leader.Private)
		leader.Private.Clear()
		m.ongoingFork = false
		for _, c := range m.store.Objects(miner.Match) {
			c.Private.Clear()
		}
	case miner.Wait:
		if !m.ongoingFork {
			m.resolveOverrides()
			m.resolveMatch()
			return
		}
	case miner.Adopt:
	default:
		selflog.Crit("invariant violation: strongchain selfish leader ended in an unexpected action", "action", leader.Action)
	}
	m.resolveOverrides()
	m.resolveMatch()
}

// resolveOverrides re-evaluates every selfish miner's chains_pow
// comparison to a fixpoint, applying at most one OVERRIDE per pass with
// Strongchain's max-chains_pow tie-break (spec §4.3 step 5).
func (m *StrongchainManager) resolveOverrides() {
	honestWeak := len(m.Honest.WeakHeaders)
	for {
		m.store.Clear()
		for _, sm := range m.Selfish {
			sm.Evaluate(m.Public, honestWeak)
			m.store.Add(sm.Action, sm)
		}
		overriders := m.store.Objects(miner.Override)
		if len(overriders) == 0 {
			return
		}
		attacker := pickMaxPow(overriders)
		m.Public.OverrideChain(attacker.Private)
		attacker.Private.Clear()
		for _, mm := range m.store.Objects(miner.Match) {
			mm.Private.Clear()
		}
		m.ongoingFork = false
	}
}

func pickMaxPow(candidates []*strongchain.SelfishMiner) *strongchain.SelfishMiner {
	best := candidates[0]
	bestPow := best.Private.ChainsPow()
	for _, c := range candidates[1:] {
		if p := c.Private.ChainsPow(); p > bestPow {
			best, bestPow = c, p
		}
	}
	return best
}

func (m *StrongchainManager) resolveMatch() {
	matched := m.store.Objects(miner.Match)
	switch {
	case m.ongoingFork:
		if len(matched) > 0 {
			winner := pickMaxPow(matched)
			m.Public.OverrideChain(winner.Private)
			winner.Private.Clear()
		}
		m.ongoingFork = false
	case len(matched) == 1:
		if m.gamma == 1 {
			winner := matched[0]
			m.Public.OverrideChain(winner.Private)
			winner.Private.Clear()
		} else {
			m.ongoingFork = true
		}
	case len(matched) > 1:
		m.ongoingFork = true
	}
}

func (m *StrongchainManager) resolveDanglingWait() {
	var candidates []*strongchain.SelfishMiner
	for _, sm := range m.Selfish {
		if sm.Action == miner.Wait && !sm.Private.Empty() && sm.Private.ChainsPow() > m.Public.ChainsPowFromIndex(*sm.Private.ForkBlockID) {
			candidates = append(candidates, sm)
		}
	}
	if len(candidates) == 0 {
		return
	}
	winner := pickMaxPow(candidates)
	m.Public.OverrideChain(winner.Private)
	winner.Private.Clear()
}
