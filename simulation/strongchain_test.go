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

func TestStrongchainWinsCountOnlyStrongRounds(t *testing.T) {
	m := NewStrongchainManager(StrongchainConfig{
		HonestPower:   55,
		SelfishPowers: []float64{45},
		Gamma:         1,
		Rounds:        500,
		Ratio:         4,
		Seed:          7,
	})
	m.Run()

	total := 0
	for _, c := range m.Wins() {
		total += c
	}
	require.Equal(t, sumCounts(m.StrongCounts), total, "wins must track strong-round leaders, not weak-round leaders")
	require.Equal(t, 500, total+sumCounts(m.WeakCounts), "every round is either weak or strong, exclusively")
}

func TestStrongchainPublicChainNeverExceedsStrongRounds(t *testing.T) {
	m := NewStrongchainManager(StrongchainConfig{
		HonestPower:   55,
		SelfishPowers: []float64{45},
		Gamma:         1,
		Rounds:        2000,
		Ratio:         3,
		Seed:          11,
	})
	chain := m.Run()
	require.LessOrEqual(t, chain.Size(), sumCounts(m.StrongCounts))
}

func TestStrongchainSingleRoundChainStaysShort(t *testing.T) {
	m := NewStrongchainManager(StrongchainConfig{
		HonestPower:   60,
		SelfishPowers: []float64{40},
		Gamma:         0,
		Rounds:        1,
		Ratio:         4,
		Seed:          3,
	})
	chain := m.Run()
	require.LessOrEqual(t, chain.Size(), 1)
}

func TestStrongchainPublishedWeakHeadersNeverExceedWeakRounds(t *testing.T) {
	m := NewStrongchainManager(StrongchainConfig{
		HonestPower:   70,
		SelfishPowers: []float64{30},
		Gamma:         0.5,
		Rounds:        1000,
		Ratio:         4,
		Seed:          19,
	})
	chain := m.Run()

	totalWeak := 0
	for _, b := range chain.Blocks {
		totalWeak += len(b.WeakHeaders)
	}
	require.LessOrEqual(t, totalWeak, sumCounts(m.WeakCounts), "every published weak header was mined in some weak round")
}
