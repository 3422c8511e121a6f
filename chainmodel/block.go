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

// Package chainmodel holds the block and chain primitives shared by every
// consensus family: an immutable block record and a generic append-only
// chain container with the override_chain/size/length operations common to
// all four simulators. Strongchain and Subchain layer additional weight
// and strong/weak bookkeeping on top in their own packages.
package chainmodel

// Block is a symbolic, content-free block record: no hashing, no payload
// validation, identity is purely the (Data, Miner, MinerID) triple it was
// sealed with.
type Block struct {
	Data    string
	Miner   string
	MinerID int
	IsWeak  bool
}

// Weak reports whether this block counts toward a chain's weak count
// rather than its strong count. Plain Nakamoto/Fruitchain blocks are
// never weak; Subchain sets IsWeak on its sub-blocks.
func (b Block) Weak() bool { return b.IsWeak }

// WeakHeader is a Strongchain sub-PoW artifact sealed beneath a strong
// block. Unlike Block it carries no weakness flag of its own — a weak
// header is always weak by construction.
type WeakHeader struct {
	Data    string
	Miner   string
	MinerID int
}

// StrongBlock is Strongchain's block: a strong block together with the
// weak headers it commits to. It is always strong — WeakHeaders never
// contributes to IsWeak.
type StrongBlock struct {
	Data        string
	Miner       string
	MinerID     int
	WeakHeaders []WeakHeader
}

// Weak always reports false: a StrongBlock is a strong block by
// definition, regardless of how many weak headers it seals.
func (StrongBlock) Weak() bool { return false }
