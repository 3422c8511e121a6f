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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubchainWeakWinsCountOnlyStrongBlockCount(t *testing.T) {
	m := NewSubchainWeakManager(SubchainWeakConfig{
		HonestPower:   60,
		SelfishPowers: []float64{40},
		Gamma:         0.5,
		Rounds:        2000,
		Ratio:         10,
		Seed:          1,
	})
	m.Run()

	total := 0
	for _, c := range m.Wins() {
		total += c
	}
	require.Equal(t, sumCounts(m.StrongBlockCount), total)
	require.Equal(t, 2000, sumCounts(m.WeakBlockCount)+sumCounts(m.StrongBlockCount))
}

func TestSubchainWeakStrongChainLengthMatchesRatio(t *testing.T) {
	m := NewSubchainWeakManager(SubchainWeakConfig{
		HonestPower:   70,
		SelfishPowers: []float64{30},
		Gamma:         0.5,
		Rounds:        2000,
		Ratio:         10,
		Seed:          7,
	})
	chain := m.Run()

	// ratio=10 means a strong round fires with probability 1/11 ≈ 9.1%, so
	// roughly 180 of 2000 rounds should seal an epoch — honest-only seals
	// plus selfish no-ops, so the resulting chain is at most that many
	// strong blocks and should land well inside a generous band.
	require.Greater(t, chain.Size(), 100)
	require.Less(t, chain.Size(), 260)
}

func TestSubchainWeakHonestAlwaysSealsEveryStrongBlock(t *testing.T) {
	m := NewSubchainWeakManager(SubchainWeakConfig{
		HonestPower:   90,
		SelfishPowers: []float64{10},
		Gamma:         0.5,
		Rounds:        1000,
		Ratio:         4,
		Seed:          11,
	})
	chain := m.Run()
	for _, b := range chain.Blocks {
		if !b.Weak() {
			require.Equal(t, m.Honest.Name, b.Miner, "only the honest miner ever finalizes an epoch")
		}
	}
}
