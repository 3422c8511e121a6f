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

// Package simulation holds the per-consensus simulation managers: the
// orchestrator that elects a round leader, dispatches to its strategy,
// then drives the override/match resolution loop to a fixpoint. One
// manager type per consensus family mirrors the source's one
// SimulationManager subclass per family, rather than a single manager
// parameterized over behavior — the round algorithms diverge enough
// (event-kind choice, tie-break policy, post-round bookkeeping) that a
// shared abstraction would cost more than it'd save.
package simulation

import (
	"fmt"

	"github.com/abeychain/selfminer/actionstore"
	"github.com/abeychain/selfminer/chainmodel"
	"github.com/abeychain/selfminer/consensus/nakamoto"
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/internal/selflog"
	"github.com/abeychain/selfminer/miner"
)

// NakamotoConfig is the validated, consensus-specific slice of a
// simulation entry that NewNakamotoManager needs.
type NakamotoConfig struct {
	HonestPower   float64
	SelfishPowers []float64
	Gamma         float64
	Rounds        int
	Seed          int64
}

// NakamotoManager runs the baseline selfish-mining simulation.
type NakamotoManager struct {
	Public      *nakamoto.Chain
	Honest      *nakamoto.HonestMiner
	Selfish     []*nakamoto.SelfishMiner
	store       *actionstore.Store[*nakamoto.SelfishMiner]
	ongoingFork bool
	wins        map[int]int
	gamma       float64
	rounds      int
	rng         *rng.Source
	verbose     bool
}

// NewNakamotoManager builds a manager with miners assigned run-scoped ids
// starting at 42: the honest miner first, then each selfish miner in
// configuration order.
func NewNakamotoManager(cfg NakamotoConfig) *NakamotoManager {
	ids := miner.NewIDGenerator()
	m := &NakamotoManager{
		Public: nakamoto.NewChain("public"),
		Honest: nakamoto.NewHonestMiner(ids.Next(), "honest", cfg.HonestPower),
		gamma:  cfg.Gamma,
		rounds: cfg.Rounds,
		rng:    rng.New(cfg.Seed),
		wins:   make(map[int]int),
		store:  actionstore.New[*nakamoto.SelfishMiner](),
	}
	for i, p := range cfg.SelfishPowers {
		m.Selfish = append(m.Selfish, nakamoto.NewSelfishMiner(ids.Next(), fmt.Sprintf("selfish-%d", i+1), p))
	}
	return m
}

// SetVerbose enables the final-state dump on Run.
func (m *NakamotoManager) SetVerbose(v bool) { m.verbose = v }

// Wins returns the per-miner-id election-win counts accumulated so far.
func (m *NakamotoManager) Wins() map[int]int { return cloneCounts(m.wins) }

func cloneCounts(src map[int]int) map[int]int {
	dst := make(map[int]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (m *NakamotoManager) electLeaderIndex() int {
	weights := make([]float64, len(m.Selfish)+1)
	weights[0] = m.Honest.Power
	for i, sm := range m.Selfish {
		weights[i+1] = sm.Power
	}
	return m.rng.WeightedChoice(weights)
}

// matchCompetitors returns the selfish miners the action store currently
// records under MATCH — the set carried over from the previous round's
// resolution, consulted by the honest gamma=0.5 tie-break and by a
// newly-elected selfish leader's ongoing-fork re-evaluation.
func (m *NakamotoManager) matchCompetitors() []*nakamoto.SelfishMiner {
	return m.store.Objects(miner.Match)
}

// Run drives Rounds block-mining rounds to completion and returns the
// final public chain.
func (m *NakamotoManager) Run() *nakamoto.Chain {
	for round := 0; round < m.rounds; round++ {
		m.playRound()
	}
	m.resolveDanglingWait()
	if m.verbose {
		selflog.Info("nakamoto run complete", "public_length", m.Public.Size(), "open_private_chains", m.countOpenPrivateChains())
	}
	return m.Public
}

func (m *NakamotoManager) countOpenPrivateChains() int {
	n := 0
	for _, sm := range m.Selfish {
		if !sm.Private.Empty() {
			n++
		}
	}
	return n
}

func (m *NakamotoManager) playRound() {
	leaderIdx := m.electLeaderIndex()
	if leaderIdx == 0 {
		m.wins[m.Honest.ID]++
		m.playHonestRound()
		return
	}
	leader := m.Selfish[leaderIdx-1]
	m.wins[leader.ID]++
	m.playSelfishRound(leader)
}

func (m *NakamotoManager) playHonestRound() {
	matches := m.matchCompetitors()
	nextFork, preemptIdx := m.Honest.MineNewBlock(m.ongoingFork, m.gamma, len(matches), m.rng)
	if preemptIdx != -1 && len(m.Public.Blocks) > 0 {
		winner := matches[preemptIdx]
		last := winner.Private.Blocks[len(winner.Private.Blocks)-1]
		m.Public.Blocks[len(m.Public.Blocks)-1] = last
		winner.Private.Clear()
	}
	m.Public.Append(chainmodel.Block{
		Data:    fmt.Sprintf("honest-%d", m.Public.Size()+1),
		Miner:   m.Honest.Name,
		MinerID: m.Honest.ID,
	})
	for _, sm := range matches {
		if !sm.Private.Empty() && sm.Private.Length() < m.Public.LastBlockID {
			sm.Private.Clear()
		}
	}
	m.ongoingFork = nextFork
	m.resolveOverrides()
	m.resolveMatch()
}

func (m *NakamotoManager) playSelfishRound(leader *nakamoto.SelfishMiner) {
	matches := m.matchCompetitors()
	nextFork, needsTie := leader.MineNewBlock(m.Public.LastBlockID, m.ongoingFork, matches)
	m.ongoingFork = nextFork

	switch leader.Action {
	case miner.Override:
		m.Public.OverrideChainNakamoto(leader.Private)
		leader.Private.Clear()
		m.ongoingFork = false
		for _, c := range matches {
			c.Private.Clear()
		}
	case miner.Match:
		if needsTie {
			nakamoto.ResolveImmediateTie(m.Public, leader, matches, m.rng)
			m.ongoingFork = false
		}
	case miner.Adopt:
		// private chain already cleared by MineNewBlock.
	case miner.Wait:
		if !m.ongoingFork {
			return
		}
	default:
		selflog.Crit("invariant violation: selfish leader ended in an unexpected action", "action", leader.Action)
	}

	m.resolveOverrides()
	m.resolveMatch()
}

// resolveOverrides is the fixpoint loop of spec §4.3 step 5: rebuild the
// action log from every selfish miner's re-evaluation, apply at most one
// OVERRIDE per pass (uniform tie-break among simultaneous overrides, the
// Nakamoto default), and repeat until none remain.
func (m *NakamotoManager) resolveOverrides() {
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
		m.Public.OverrideChainNakamoto(attacker.Private)
		attacker.Private.Clear()
		for _, mm := range m.store.Objects(miner.Match) {
			mm.Private.Clear()
		}
		m.ongoingFork = false
	}
}

// resolveMatch is step 6: at most one match resolution per round, reading
// the MATCH set the final (override-free) pass of resolveOverrides left
// in the action store.
func (m *NakamotoManager) resolveMatch() {
	matched := m.store.Objects(miner.Match)

	switch {
	case m.ongoingFork:
		idx := m.rng.IntN(len(matched) + 1)
		if idx < len(matched) {
			winner := matched[idx]
			m.Public.OverrideChainNakamoto(winner.Private)
			winner.Private.Clear()
		}
		m.ongoingFork = false
	case len(matched) == 1:
		if m.gamma == 1 {
			winner := matched[0]
			m.Public.OverrideChainNakamoto(winner.Private)
			winner.Private.Clear()
		} else {
			m.ongoingFork = true
		}
	case len(matched) > 1:
		m.ongoingFork = true
	}
}

// resolveDanglingWait implements spec §4.3's post-simulation cleanup: any
// selfish miner still parked in WAIT with a private chain longer than the
// public chain gets published, ties broken uniformly.
func (m *NakamotoManager) resolveDanglingWait() {
	var candidates []*nakamoto.SelfishMiner
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
	m.Public.OverrideChainNakamoto(winner.Private)
	winner.Private.Clear()
}
