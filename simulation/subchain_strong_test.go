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

func TestSubchainStrongWinsCountOnlyStrongBlockCount(t *testing.T) {
	m := NewSubchainStrongManager(SubchainStrongConfig{
		HonestPower:   60,
		SelfishPowers: []float64{40},
		Gamma:         0.5,
		Rounds:        2000,
		Ratio:         6,
		Seed:          2,
	})
	m.Run()

	total := 0
	for _, c := range m.Wins() {
		total += c
	}
	require.Equal(t, sumCounts(m.StrongBlockCount), total)
	require.Equal(t, 2000, sumCounts(m.WeakBlockCount)+sumCounts(m.StrongBlockCount))
}

func TestSubchainStrongPublicChainLastBlockIDMatchesStrongSize(t *testing.T) {
	m := NewSubchainStrongManager(SubchainStrongConfig{
		HonestPower:   65,
		SelfishPowers: []float64{35},
		Gamma:         0.5,
		Rounds:        3000,
		Ratio:         3,
		Seed:          13,
	})
	chain := m.Run()
	require.Greater(t, chain.Size(), 0)
	require.Equal(t, chain.Size(), chain.LastBlockID)
}

func TestSubchainStrongWeakBuffersDoNotCountTowardSize(t *testing.T) {
	m := NewSubchainStrongManager(SubchainStrongConfig{
		HonestPower:   80,
		SelfishPowers: []float64{20},
		Gamma:         0.5,
		Rounds:        500,
		Ratio:         20,
		Seed:          4,
	})
	chain := m.Run()
	strongOnly := 0
	for _, b := range chain.Blocks {
		if !b.Weak() {
			strongOnly++
		}
	}
	require.Equal(t, strongOnly, chain.Size())
}
