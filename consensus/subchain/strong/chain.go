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

// Package strong implements Subchain's strong variant: each miner grows an
// unconstrained, fork-free buffer of weak sub-blocks between strong
// rounds; the moment that miner next wins a strong round, the buffer is
// grafted as a prefix onto its strong chain (private or public) and an
// ordinary Nakamoto-shaped strong block follows it.
package strong

import (
	"github.com/abeychain/selfminer/consensus/nakamoto"
)

// Chain is the strong (private or public) chain. A graft of buffered weak
// blocks never advances Size()/Length() — chainmodel.Chain already treats
// weak blocks that way — and overrides truncate at the fork index itself
// (OverrideChainIndexed), the same policy Strongchain's chain uses, not
// Nakamoto/Fruitchain's fork-1 rule. Reusing nakamoto.Chain needs no new
// type: both the block type and the strong-only Size()/Length() semantics
// are already exactly what this variant wants.
type Chain = nakamoto.Chain

// NewChain returns an empty chain owned by owner.
func NewChain(owner string) *Chain { return nakamoto.NewChain(owner) }
