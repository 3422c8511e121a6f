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

// Package strongchain layers weak headers and chain-weight comparison on
// top of the Nakamoto baseline: every block is strong, but may commit to
// zero or more weak headers sealed since the previous strong block.
package strongchain

import "github.com/abeychain/selfminer/chainmodel"

// Chain is a Strongchain chain: every entry is a strong block, each
// optionally carrying weak headers. It wraps chainmodel.Chain instead of
// reusing the Nakamoto alias because it needs the extra Ratio field and
// the ChainsPow weight functions — a second named type rather than a bare
// generic instantiation, since Go cannot attach methods to one
// instantiation of a generic type from outside its package.
type Chain struct {
	*chainmodel.Chain[chainmodel.StrongBlock]
	Ratio int
}

// NewChain returns an empty chain with the given weak/strong header ratio.
func NewChain(owner string, ratio int) *Chain {
	return &Chain{Chain: chainmodel.New[chainmodel.StrongBlock](owner), Ratio: ratio}
}

// ChainsPow is ChainsPowFromIndex(0): the total chain weight, a strong
// block contributing 1 and each of its weak headers contributing 1/Ratio.
func (c *Chain) ChainsPow() float64 { return c.ChainsPowFromIndex(0) }

// ChainsPowFromIndex restricts the weight sum to blocks[i:].
func (c *Chain) ChainsPowFromIndex(i int) float64 {
	sum := 0.0
	for _, b := range c.Blocks[i:] {
		sum += 1 + float64(len(b.WeakHeaders))/float64(c.Ratio)
	}
	return sum
}

// OverrideChain applies the Strongchain/Subchain bucket's override_chain
// policy (truncate at the divergence index itself, no off-by-one).
func (c *Chain) OverrideChain(attacker *Chain) {
	c.OverrideChainIndexed(attacker.Chain)
}
