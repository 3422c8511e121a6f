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

// Package weak implements Subchain's weak variant: between strong rounds,
// an epoch's worth of weak sub-blocks accumulates on an ordinary
// Nakamoto-shaped fork (withhold/override/match), resolved entirely among
// weak blocks; a strong round, when won by the honest miner, seals the
// epoch's winning subchain onto a separate strong public chain and resets
// every participant back to an empty epoch.
package weak

import (
	"github.com/abeychain/selfminer/chainmodel"
	"github.com/abeychain/selfminer/consensus/nakamoto"
)

// StrongChain is the separate, append-only chain of sealed epochs — every
// entry is strong, so the generic chainmodel.Chain machinery's Size/Length
// (which already count strong blocks only) apply unmodified. It reuses
// nakamoto.Chain rather than redeclaring the same generic instantiation.
type StrongChain = nakamoto.Chain

// NewStrongChain returns an empty strong chain owned by owner.
func NewStrongChain(owner string) *StrongChain { return nakamoto.NewChain(owner) }

// EpochChain holds one epoch's worth of weak sub-blocks. Every block
// appended during an epoch is weak by construction, so the chain's natural
// "how far ahead am I" metric is a count of weak blocks, not the generic
// chainmodel.Chain.Size() (which counts only strong blocks and would report
// zero for an all-weak chain throughout the entire epoch) — the same
// reason Strongchain wraps chainmodel.Chain with its own chains_pow weight
// function instead of reusing Size()/Length() directly.
type EpochChain struct {
	*chainmodel.Chain[chainmodel.Block]
}

// NewEpochChain returns an empty epoch chain owned by owner.
func NewEpochChain(owner string) *EpochChain {
	return &EpochChain{chainmodel.New[chainmodel.Block](owner)}
}

// WeakSize returns the number of weak blocks mined so far this epoch.
func (c *EpochChain) WeakSize() int { return len(c.Blocks) }

// WeakLength is WeakSize plus ForkBlockID, the effective epoch-wide
// position a private epoch chain would reach if published.
func (c *EpochChain) WeakLength() int {
	if c.ForkBlockID == nil {
		return c.WeakSize()
	}
	return c.WeakSize() + *c.ForkBlockID
}

// Override applies Nakamoto's override_chain policy (truncate at
// fork_block_id-1, or index 0 when fork_block_id is 0) — the weak-epoch
// chain shares base/blockchain.py's indexing in the source, not
// subchain/blockchain.py's indexed variant, since it is never the chain
// Strongchain/Subchain-proper's indexed rule was written for.
func (c *EpochChain) Override(attacker *EpochChain) {
	c.OverrideChainNakamoto(attacker.Chain)
}
