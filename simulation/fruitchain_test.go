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

func TestFruitchainWinsCountOnlyBlockRounds(t *testing.T) {
	m := NewFruitchainManager(FruitchainConfig{
		HonestPower:    60,
		SelfishPowers:  []float64{40},
		Gamma:          0.5,
		Rounds:         500,
		FruitMineProb:  0.9,
		SuperblockProb: 0.1,
		Seed:           3,
	})
	m.Run()

	total := 0
	for _, c := range m.Wins() {
		total += c
	}
	require.Equal(t, m.BlockRounds(), total, "wins must track block-round leaders only")
	require.GreaterOrEqual(t, m.BlockRounds(), 500, "run stops only once the configured block-round count is reached")
}

func TestFruitchainHighFruitProbabilityProducesFruitRounds(t *testing.T) {
	m := NewFruitchainManager(FruitchainConfig{
		HonestPower:    60,
		SelfishPowers:  []float64{40},
		Gamma:          0.5,
		Rounds:         200,
		FruitMineProb:  0.9,
		SuperblockProb: 0.1,
		Seed:           9,
	})
	m.Run()

	require.Positive(t, m.FruitRounds(), "a 0.9 fruit-mine probability should produce many fruit rounds")
}

func TestFruitchainGammaOneWinsSumToBlockRounds(t *testing.T) {
	m := NewFruitchainManager(FruitchainConfig{
		HonestPower:    55,
		SelfishPowers:  []float64{45},
		Gamma:          1,
		Rounds:         3000,
		FruitMineProb:  0.7,
		SuperblockProb: 0.3,
		Seed:           42,
	})
	chain := m.Run()
	require.NotNil(t, chain)

	total := 0
	for _, c := range m.Wins() {
		total += c
	}
	require.Equal(t, m.BlockRounds(), total)
}

func TestFruitchainPublicChainRowsCarryFruitSnapshots(t *testing.T) {
	m := NewFruitchainManager(FruitchainConfig{
		HonestPower:    60,
		SelfishPowers:  []float64{40},
		Gamma:          0,
		Rounds:         100,
		FruitMineProb:  0.8,
		SuperblockProb: 0.2,
		Seed:           5,
	})
	chain := m.Run()
	for _, b := range chain.Blocks {
		require.NotEmpty(t, b.Data, "every sealed block carries a (possibly empty-list) fruit snapshot")
	}
}
