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

// Package miner holds the identity, action vocabulary and shared base type
// every per-consensus miner strategy embeds. Each consensus family (see the
// nakamoto, strongchain, fruitchain and subchain packages) defines its own
// concrete HonestMiner/SelfishMiner types on top of Base rather than
// implementing one cross-family interface: an honest miner and a selfish
// miner are shaped too differently (one holds no private chain, the other
// does) for a shared method set to earn its keep, and the simulation
// manager always addresses "the one honest miner" and "the slice of
// selfish miners" as distinct concepts, exactly as the source does.
package miner

// Role tags whether a miner runs the honest or the selfish strategy.
type Role int

const (
	Honest Role = iota
	Selfish
)

func (r Role) String() string {
	if r == Honest {
		return "honest"
	}
	return "selfish"
}

// HonestAction is the action vocabulary available to an honest miner.
type HonestAction int

// Publish is the only action an honest miner ever takes.
const Publish HonestAction = 0

func (HonestAction) String() string { return "PUBLISH" }

// SelfishAction is the action vocabulary available to a selfish miner.
type SelfishAction int

const (
	Idle SelfishAction = iota
	Adopt
	Wait
	Override
	Match
)

func (a SelfishAction) String() string {
	switch a {
	case Idle:
		return "IDLE"
	case Adopt:
		return "ADOPT"
	case Wait:
		return "WAIT"
	case Override:
		return "OVERRIDE"
	case Match:
		return "MATCH"
	default:
		return "UNKNOWN"
	}
}

// Base is the identity every concrete miner strategy embeds: a stable id
// from the run-scoped monotone counter (see IDGenerator), a display name
// and a power share. Identity is assigned once at manager construction and
// never mutated afterward.
type Base struct {
	ID    int
	Name  string
	Power float64
	Role  Role
}

// IDGenerator is a per-run monotone counter seeded at 42, matching the
// source's itertools.count(start=42). Each simulation.New*Manager
// constructor creates its own — never a package-level variable — so that running
// several simulations in one process never lets ids drift between them.
type IDGenerator struct {
	next int
}

// NewIDGenerator returns a generator whose first Next() is 42.
func NewIDGenerator() *IDGenerator { return &IDGenerator{next: 42} }

// Next returns the next id and advances the counter.
func (g *IDGenerator) Next() int {
	id := g.next
	g.next++
	return id
}
