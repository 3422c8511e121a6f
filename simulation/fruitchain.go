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
	"github.com/abeychain/selfminer/consensus/fruitchain"
	"github.com/abeychain/selfminer/internal/rng"
	"github.com/abeychain/selfminer/internal/selflog"
	"github.com/abeychain/selfminer/miner"
)

// FruitchainConfig is the validated, consensus-specific slice of a
// simulation entry NewFruitchainManager needs.
type FruitchainConfig struct {
	HonestPower    float64
	SelfishPowers  []float64
	Gamma          float64
	Rounds         int
	FruitMineProb  float64
	SuperblockProb float64
	Seed           int64
}

// FruitchainManager runs the Fruitchain selfish-mining simulation: most
// rounds mine a bare fruit commitment, a minority mine a superblock that
// redeems every queued fruit into reward.
type FruitchainManager struct {
	Public      *fruitchain.Chain
	Honest      *fruitchain.HonestMiner
	Selfish     []*fruitchain.SelfishMiner
	store       *actionstore.Store[*fruitchain.SelfishMiner]
	ongoingFork bool
	wins        map[int]int

	blockRounds int
	fruitRounds int

	gamma          float64
	rounds         int
	fruitMineProb  float64
	superblockProb float64
	rng            *rng.Source
	verbose        bool
}

// NewFruitchainManager builds a manager with run-scoped ids starting at 42
// (honest first, then selfish miners in configuration order).
func NewFruitchainManager(cfg FruitchainConfig) *FruitchainManager {
	ids := miner.NewIDGenerator()
	m := &FruitchainManager{
		Public:         fruitchain.NewChain("public"),
		Honest:         fruitchain.NewHonestMiner(ids.Next(), "honest", cfg.HonestPower),
		gamma:          cfg.Gamma,
		rounds:         cfg.Rounds,
		fruitMineProb:  cfg.FruitMineProb,
		superblockProb: cfg.SuperblockProb,
		rng:            rng.New(cfg.Seed),
		wins:           make(map[int]int),
		store:          actionstore.New[*fruitchain.SelfishMiner](),
	}
	for i, p := range cfg.SelfishPowers {
		m.Selfish = append(m.Selfish, fruitchain.NewSelfishMiner(ids.Next(), fmt.Sprintf("selfish-%d", i+1), p))
	}
	return m
}

// SetVerbose enables the final-state dump on Run.
func (m *FruitchainManager) SetVerbose(v bool) { m.verbose = v }

// Wins returns the per-miner-id block/superblock-round leader-win counts;
// fruit-only rounds never contribute here (spec §4.3's "block_rounds_elapsed").
func (m *FruitchainManager) Wins() map[int]int { return cloneCounts(m.wins) }

// BlockRounds and FruitRounds report how many rounds of each kind were
// played, for the reporting adapter and scenario S4's total-rounds check.
func (m *FruitchainManager) BlockRounds() int { return m.blockRounds }
func (m *FruitchainManager) FruitRounds() int { return m.fruitRounds }

func (m *FruitchainManager) electLeaderIndex() int {
	weights := make([]float64, len(m.Selfish)+1)
	weights[0] = m.Honest.Power
	for i, sm := range m.Selfish {
		weights[i+1] = sm.Power
	}
	return m.rng.WeightedChoice(weights)
}

func (m *FruitchainManager) matchCompetitors() []*fruitchain.SelfishMiner {
	return m.store.Objects(miner.Match)
}

// fruitCandidate names one contender in the leader-by-fruit-count tiebreak
// of spec §4.2.4.
type fruitCandidate struct {
	id       int
	isHonest bool
	selfish  *fruitchain.SelfishMiner
}

func (c fruitCandidate) fruitCount() int {
	if c.selfish != nil {
		return c.selfish.FruitCount()
	}
	return 0
}

// electFruitTiebreakLeader picks the round leader for a superblock round
// during an ongoing fork: every miner whose fruit count equals the overall
// maximum is a candidate, narrowed by gamma (honest-preferred at 0,
// selfish-preferred at 1, uniform at 0.5), per spec §4.2.4.
func (m *FruitchainManager) electFruitTiebreakLeader() fruitCandidate {
	honestCount := m.Honest.FruitCount()
	candidates := []fruitCandidate{{id: m.Honest.ID, isHonest: true}}
	for _, sm := range m.Selfish {
		candidates = append(candidates, fruitCandidate{id: sm.ID, selfish: sm})
	}
	fruitCountOf := func(c fruitCandidate) int {
		if c.isHonest {
			return honestCount
		}
		return c.fruitCount()
	}

	maxCount := -1
	for _, c := range candidates {
		if fc := fruitCountOf(c); fc > maxCount {
			maxCount = fc
		}
	}
	var maxSet []fruitCandidate
	for _, c := range candidates {
		if fruitCountOf(c) == maxCount {
			maxSet = append(maxSet, c)
		}
	}

	switch m.gamma {
	case 0:
		if honestOnly := filterCandidates(maxSet, true); len(honestOnly) > 0 {
			maxSet = honestOnly
		}
	case 1:
		if selfishOnly := filterCandidates(maxSet, false); len(selfishOnly) > 0 {
			maxSet = selfishOnly
		}
	}
	return maxSet[m.rng.IntN(len(maxSet))]
}

func filterCandidates(set []fruitCandidate, honest bool) []fruitCandidate {
	var out []fruitCandidate
	for _, c := range set {
		if c.isHonest == honest {
			out = append(out, c)
		}
	}
	return out
}

// Run drives block/superblock rounds to completion — Rounds counts
// superblock rounds only, fruit-mine rounds are interleaved on top per
// the Bernoulli split of fruitMineProb/superblockProb.
func (m *FruitchainManager) Run() *fruitchain.Chain {
	for m.blockRounds < m.rounds {
		m.playRound()
	}
	m.resolveDanglingWait()
	m.reconcileLongestChain()
	if m.verbose {
		selflog.Info("fruitchain run complete", "public_length", m.Public.Size(), "block_rounds", m.blockRounds, "fruit_rounds", m.fruitRounds)
	}
	return m.Public
}

func (m *FruitchainManager) playRound() {
	if m.rng.Bernoulli(m.superblockProb) {
		m.playBlockRound()
		return
	}
	m.playFruitRound()
}

func (m *FruitchainManager) playFruitRound() {
	m.fruitRounds++
	leaderIdx := m.electLeaderIndex()
	if leaderIdx == 0 {
		m.Honest.MineNewFruit()
		for _, sm := range m.Selfish {
			sm.ReceiveFruit(m.Honest.ID)
		}
		return
	}
	m.Selfish[leaderIdx-1].MineNewFruit()
}

func (m *FruitchainManager) playBlockRound() {
	m.blockRounds++
	if m.ongoingFork {
		cand := m.electFruitTiebreakLeader()
		if cand.isHonest {
			m.wins[m.Honest.ID]++
			m.playHonestBlock()
		} else {
			m.wins[cand.selfish.ID]++
			m.playSelfishBlock(cand.selfish)
		}
		return
	}
	leaderIdx := m.electLeaderIndex()
	if leaderIdx == 0 {
		m.wins[m.Honest.ID]++
		m.playHonestBlock()
		return
	}
	leader := m.Selfish[leaderIdx-1]
	m.wins[leader.ID]++
	m.playSelfishBlock(leader)
}

func (m *FruitchainManager) playHonestBlock() {
	matches := m.matchCompetitors()
	nextFork, preemptIdx := m.Honest.MineNewBlock(m.ongoingFork, m.gamma, len(matches), m.rng)
	if preemptIdx != -1 && len(m.Public.Blocks) > 0 {
		winner := matches[preemptIdx]
		last := winner.Private.Blocks[len(winner.Private.Blocks)-1]
		m.Public.Blocks[len(m.Public.Blocks)-1] = last
		winner.Private.Clear()
		winner.ClearFruitQueue()
	}
	m.Public.Append(chainmodel.Block{
		Data:    m.Honest.FruitSnapshot(),
		Miner:   m.Honest.Name,
		MinerID: m.Honest.ID,
	})
	for _, sm := range matches {
		if !sm.Private.Empty() && sm.Private.Length() < m.Public.LastBlockID {
			sm.Private.Clear()
			sm.ClearFruitQueue()
		}
	}
	m.ongoingFork = nextFork
	m.clearAllFruitQueues()
	m.resolveOverrides()
	m.resolveMatch()
}

func (m *FruitchainManager) playSelfishBlock(leader *fruitchain.SelfishMiner) {
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
		m.clearAllFruitQueues()
	case miner.Match:
		if needsTie {
			fruitchain.ResolveImmediateTie(m.Public, leader, matches, m.rng)
			m.ongoingFork = false
			m.clearAllFruitQueues()
		}
	case miner.Adopt:
		// private chain and fruit queue already cleared by MineNewBlock.
	case miner.Wait:
		if !m.ongoingFork {
			return
		}
	default:
		selflog.Crit("invariant violation: fruitchain selfish leader ended in an unexpected action", "action", leader.Action)
	}

	m.resolveOverrides()
	m.resolveMatch()
}

func (m *FruitchainManager) clearAllFruitQueues() {
	m.Honest.ClearFruitQueue()
	for _, sm := range m.Selfish {
		sm.ClearFruitQueue()
	}
}

// resolveOverrides is the fixpoint loop of spec §4.3 step 5, clearing
// every fruit queue each time a superblock override resolves.
func (m *FruitchainManager) resolveOverrides() {
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
		m.clearAllFruitQueues()
	}
}

// resolveMatch is step 6, with spec §4.2.4's fruit-count comparison
// inserted ahead of the plain gamma-driven single-MATCH rule.
func (m *FruitchainManager) resolveMatch() {
	matched := m.store.Objects(miner.Match)

	switch {
	case m.ongoingFork:
		idx := m.rng.IntN(len(matched) + 1)
		if idx < len(matched) {
			winner := matched[idx]
			m.Public.OverrideChainNakamoto(winner.Private)
			winner.Private.Clear()
			m.clearAllFruitQueues()
		}
		m.ongoingFork = false
	case len(matched) == 1:
		m.resolveSingleFruitMatch(matched[0])
	case len(matched) > 1:
		m.ongoingFork = true
	}
}

func (m *FruitchainManager) resolveSingleFruitMatch(winner *fruitchain.SelfishMiner) {
	honestCount := m.Honest.FruitCount()
	selfishCount := winner.FruitCount()

	override := func() {
		m.Public.OverrideChainNakamoto(winner.Private)
		winner.Private.Clear()
		m.clearAllFruitQueues()
	}

	switch {
	case selfishCount > honestCount:
		override()
	case selfishCount == honestCount:
		switch m.gamma {
		case 1:
			override()
		case 0.5:
			if m.rng.Bernoulli(0.5) {
				override()
			}
		default:
			m.ongoingFork = true
		}
	default:
		// Honest's fruit lead wins outright; the tied private chain stays
		// parked in MATCH and is simply re-evaluated next round.
	}
}

// resolveDanglingWait implements spec §4.3's post-simulation cleanup.
func (m *FruitchainManager) resolveDanglingWait() {
	var candidates []*fruitchain.SelfishMiner
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

// reconcileLongestChain is the §9-supplemented get_max_chain reconciliation:
// after the generic dangling-WAIT resolution, replace the public chain with
// whichever chain — public or any selfish miner's private chain — holds the
// most blocks, covering the case of a private chain left in a non-WAIT
// terminal action (e.g. IDLE with a stale but longer chain).
func (m *FruitchainManager) reconcileLongestChain() {
	longest := m.Public
	longestLen := len(m.Public.Blocks)
	for _, sm := range m.Selfish {
		if l := len(sm.Private.Blocks); l >= longestLen {
			longest = sm.Private
			longestLen = l
		}
	}
	m.Public = longest
}
