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

package chainmodel

// Weakling is the capability a block type needs for Chain to be able to
// tell strong blocks from weak ones without depending on which consensus
// family produced them.
type Weakling interface {
	Weak() bool
}

// Chain is an ordered, append-only sequence of blocks shared by every
// consensus family. B is Block for Nakamoto/Fruitchain/Subchain and
// StrongBlock for Strongchain — the source expresses this as a dataclass
// hierarchy that swaps out the block type while keeping the surrounding
// chain machinery; a generic type parameter is the idiomatic Go way to
// keep that machinery in one place instead of four near-identical copies.
type Chain[B Weakling] struct {
	Blocks      []B
	Owner       string
	LastBlockID int
	ForkBlockID *int
}

// New returns an empty chain owned by owner.
func New[B Weakling](owner string) *Chain[B] {
	return &Chain[B]{Owner: owner}
}

// Initialize records the public-chain index at which this (necessarily a
// selfish miner's private) chain diverged. Called exactly once, the first
// time a selfish miner mines onto an empty private chain.
func (c *Chain[B]) Initialize(forkBlockID int) {
	c.ForkBlockID = &forkBlockID
}

// Append adds a block to the chain. LastBlockID only advances for strong
// blocks — for plain Block chains every block is strong, so it always
// advances; Subchain relies on weak sub-blocks leaving it untouched.
func (c *Chain[B]) Append(b B) {
	c.Blocks = append(c.Blocks, b)
	if !b.Weak() {
		c.LastBlockID++
	}
}

// Empty reports whether the chain holds no blocks.
func (c *Chain[B]) Empty() bool { return len(c.Blocks) == 0 }

// Clear resets the chain to empty and nils ForkBlockID, maintaining the
// invariant that ForkBlockID is set exactly when the chain is non-empty
// for a selfish miner's private chain.
func (c *Chain[B]) Clear() {
	c.Blocks = nil
	c.LastBlockID = 0
	c.ForkBlockID = nil
}

// Size returns the count of strong blocks in the chain.
func (c *Chain[B]) Size() int {
	n := 0
	for _, b := range c.Blocks {
		if !b.Weak() {
			n++
		}
	}
	return n
}

// Length returns Size() plus ForkBlockID, the effective public-chain
// height a private chain would reach if published. Only meaningful when
// ForkBlockID is set.
func (c *Chain[B]) Length() int {
	if c.ForkBlockID == nil {
		return c.Size()
	}
	return c.Size() + *c.ForkBlockID
}

// overrideAt truncates the chain to its first idx blocks and appends
// attacker's blocks verbatim, then re-syncs LastBlockID to the resulting
// strong count.
func (c *Chain[B]) overrideAt(idx int, attacker *Chain[B]) {
	kept := make([]B, idx, idx+len(attacker.Blocks))
	copy(kept, c.Blocks[:idx])
	c.Blocks = append(kept, attacker.Blocks...)
	c.LastBlockID = c.Size()
}

// OverrideChainNakamoto implements the Nakamoto/Fruitchain override_chain
// policy: truncate at fork_block_id-1 (the first block after divergence),
// with fork_block_id==0 truncating from index 0.
func (c *Chain[B]) OverrideChainNakamoto(attacker *Chain[B]) {
	fork := *attacker.ForkBlockID
	idx := fork - 1
	if fork == 0 {
		idx = 0
	}
	c.overrideAt(idx, attacker)
}

// OverrideChainIndexed implements the Strongchain/Subchain override_chain
// policy: truncate at fork_block_id itself (the divergence index).
func (c *Chain[B]) OverrideChainIndexed(attacker *Chain[B]) {
	c.overrideAt(*attacker.ForkBlockID, attacker)
}
