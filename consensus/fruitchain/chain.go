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

// Package fruitchain layers fruit commitments and superblocks on top of the
// Nakamoto baseline: a fruit is a bare miner-id commitment recorded in a
// queue, redeemed for reward only once its owner's queue is sealed into a
// mined block's payload. Chain machinery is identical to Nakamoto's — a
// fruitchain block differs from a Nakamoto block only in what string ends
// up in Data — so this package reuses nakamoto.Chain directly rather than
// wrapping chainmodel.Chain a second time.
package fruitchain

import "github.com/abeychain/selfminer/consensus/nakamoto"

// Chain is a plain fruitchain/superblock chain: identical machinery to
// Nakamoto's, since nothing about override_chain, size or length changes
// when blocks carry a fruit-queue snapshot instead of a counter string.
type Chain = nakamoto.Chain

// NewChain returns an empty chain owned by owner.
func NewChain(owner string) *Chain { return nakamoto.NewChain(owner) }
