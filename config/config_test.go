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

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseValidNakamotoEntry(t *testing.T) {
	doc := []byte(`
- nakamoto-baseline:
    consensus_name: Nakamoto
    miners:
      honest:
        mining_power: 60
      selfish:
        - mining_power: 40
    gamma: 0.5
    simulation_mining_rounds: 1000
`)
	entries, err := Parse(doc)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "nakamoto-baseline", entries[0].Label)
	require.Equal(t, consensusNakamoto, entries[0].ConsensusName)
	require.Equal(t, 60.0, entries[0].HonestPower)
	require.Equal(t, []float64{40}, entries[0].SelfishPowers)
}

func TestParseValidStrongchainEntry(t *testing.T) {
	doc := []byte(`
- strongchain-run:
    consensus_name: Strongchain
    miners:
      honest:
        mining_power: 70
      selfish:
        - mining_power: 30
    gamma: 0
    simulation_mining_rounds: 2000
    weak_to_strong_header_ratio: 10
`)
	entries, err := Parse(doc)
	require.NoError(t, err)
	require.Equal(t, 10, entries[0].Ratio)
}

func TestParseRejectsPowersNotSummingTo100(t *testing.T) {
	doc := []byte(`
- bad:
    consensus_name: Nakamoto
    miners:
      honest:
        mining_power: 60
      selfish:
        - mining_power: 30
    gamma: 0.5
    simulation_mining_rounds: 1000
`)
	_, err := Parse(doc)
	require.Error(t, err)
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
}

func TestParseRejectsSelfishPowerAtOrAbove50(t *testing.T) {
	doc := []byte(`
- bad:
    consensus_name: Nakamoto
    miners:
      honest:
        mining_power: 50
      selfish:
        - mining_power: 50
    gamma: 0.5
    simulation_mining_rounds: 1000
`)
	_, err := Parse(doc)
	require.Error(t, err)
}

func TestParseRejectsInvalidGamma(t *testing.T) {
	doc := []byte(`
- bad:
    consensus_name: Nakamoto
    miners:
      honest:
        mining_power: 60
      selfish:
        - mining_power: 40
    gamma: 0.3
    simulation_mining_rounds: 1000
`)
	_, err := Parse(doc)
	require.Error(t, err)
}

func TestParseRejectsUnknownTopLevelKey(t *testing.T) {
	doc := []byte(`
- bad:
    consensus_name: Nakamoto
    miners:
      honest:
        mining_power: 60
      selfish:
        - mining_power: 40
    gamma: 0.5
    simulation_mining_rounds: 1000
    unexpected_field: true
`)
	_, err := Parse(doc)
	require.Error(t, err)
}

func TestParseRejectsFruitchainProbabilitiesNotSummingToOne(t *testing.T) {
	doc := []byte(`
- bad:
    consensus_name: Fruitchain
    miners:
      honest:
        mining_power: 60
      selfish:
        - mining_power: 40
    gamma: 0.5
    simulation_mining_rounds: 1000
    fruit_mine_prob: 0.5
    superblock_prob: 0.3
`)
	_, err := Parse(doc)
	require.Error(t, err)
}

func TestParseRejectsSubchainRatioBelowOne(t *testing.T) {
	doc := []byte(`
- bad:
    consensus_name: Subchain
    miners:
      honest:
        mining_power: 60
      selfish:
        - mining_power: 40
    gamma: 0.5
    simulation_mining_rounds: 1000
    weak_to_strong_block_ratio: 0
`)
	_, err := Parse(doc)
	require.Error(t, err)
}

func TestCloneDoesNotShareSelfishPowersBackingArray(t *testing.T) {
	entry := Entry{
		Label:         "x",
		ConsensusName: consensusNakamoto,
		HonestPower:   60,
		SelfishPowers: []float64{40},
	}
	clone := entry.Clone()
	clone.SelfishPowers[0] = 99
	require.Equal(t, 40.0, entry.SelfishPowers[0])
}
