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

// Package nakamoto implements the baseline selfish-mining simulation: one
// honest miner, N selfish miners, plain blocks, no weak headers, no
// fruits, no sub-blocks. Fruitchain reuses this package's Chain type
// directly since its blocks differ only in payload contents, not in chain
// machinery.
package nakamoto

import "github.com/abeychain/selfminer/chainmodel"

// Chain is a plain Nakamoto chain: no weak/strong distinction, every
// block counts toward Size().
type Chain = chainmodel.Chain[chainmodel.Block]

// NewChain returns an empty chain owned by owner.
func NewChain(owner string) *Chain { return chainmodel.New[chainmodel.Block](owner) }
