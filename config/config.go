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

// Package config parses and validates a simulation document: a YAML list
// of one or more labelled simulation entries, one per consensus family.
package config

import (
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
)

// Error is a user-visible configuration rejection, surfaced verbatim at
// the CLI boundary per spec §7.
type Error struct {
	Label string
	Err   error
}

func (e *Error) Error() string { return fmt.Sprintf("config %q: %v", e.Label, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

func rejectf(label, format string, args ...interface{}) error {
	return &Error{Label: label, Err: errors.Errorf(format, args...)}
}

// minerPower is one `{mining_power: N}` entry.
type minerPower struct {
	MiningPower float64 `yaml:"mining_power"`
}

type minersBlock struct {
	Honest  minerPower   `yaml:"honest"`
	Selfish []minerPower `yaml:"selfish"`
}

// rawEntry is the union of every consensus family's fields: goccy/go-yaml's
// strict decoding rejects any YAML key absent from this struct, which is
// how "extra top-level keys" (spec §6) get caught. A field's absence here is
// indistinguishable from its zero value, so validate catches a missing key
// only where the zero value is itself rejected (consensus_name, miners,
// simulation_mining_rounds, the Strongchain/Subchain ratio,
// superblock_prob); a missing gamma or fruit_mine_prob reads as 0 and is
// accepted.
type rawEntry struct {
	ConsensusName          string      `yaml:"consensus_name"`
	Miners                 minersBlock `yaml:"miners"`
	Gamma                  float64     `yaml:"gamma"`
	SimulationMiningRounds int         `yaml:"simulation_mining_rounds"`

	WeakToStrongHeaderRatio int `yaml:"weak_to_strong_header_ratio,omitempty"`
	WeakToStrongBlockRatio  int `yaml:"weak_to_strong_block_ratio,omitempty"`

	FruitMineProb  float64 `yaml:"fruit_mine_prob,omitempty"`
	SuperblockProb float64 `yaml:"superblock_prob,omitempty"`
}

// Entry is one validated simulation entry, ready to build a
// simulation.*Manager from.
type Entry struct {
	Label          string
	ConsensusName  string
	HonestPower    float64
	SelfishPowers  []float64
	Gamma          float64
	Rounds         int
	Ratio          int // Strongchain header ratio, or Subchain block ratio.
	FruitMineProb  float64
	SuperblockProb float64
}

// Clone deep-copies an entry so several simulation runs built from the
// same parsed document never share backing slices — the Go expression of
// spec §5's "no process-wide mutable state" when one YAML document lists
// several entries run back-to-back in one process.
func (e Entry) Clone() Entry {
	return deepcopy.Copy(e).(Entry)
}

const (
	consensusNakamoto    = "Nakamoto"
	consensusStrongchain = "Strongchain"
	consensusFruitchain  = "Fruitchain"
	consensusSubchain    = "Subchain"
)

// Load reads and validates every simulation entry in a YAML document at
// path, in document order.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading configuration file")
	}
	return Parse(data)
}

// Parse validates every simulation entry in a YAML document's raw bytes.
func Parse(data []byte) ([]Entry, error) {
	var doc []map[string]rawEntry
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.Strict()); err != nil {
		return nil, errors.Wrap(err, "parsing configuration document")
	}

	entries := make([]Entry, 0, len(doc))
	for _, item := range doc {
		if len(item) != 1 {
			return nil, rejectf("<document>", "each simulation entry must have exactly one label key, found %d", len(item))
		}
		for label, raw := range item {
			entry, err := validate(label, raw)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func validate(label string, raw rawEntry) (Entry, error) {
	switch raw.ConsensusName {
	case consensusNakamoto, consensusStrongchain, consensusFruitchain, consensusSubchain:
	default:
		return Entry{}, rejectf(label, "unknown consensus_name %q", raw.ConsensusName)
	}

	if raw.Miners.Honest.MiningPower <= 0 {
		return Entry{}, rejectf(label, "exactly one honest miner with positive mining_power is required")
	}
	if len(raw.Miners.Selfish) == 0 {
		return Entry{}, rejectf(label, "at least one selfish miner is required")
	}

	total := raw.Miners.Honest.MiningPower
	selfish := make([]float64, 0, len(raw.Miners.Selfish))
	for _, sm := range raw.Miners.Selfish {
		if sm.MiningPower >= 50 {
			return Entry{}, rejectf(label, "selfish mining_power %v must be below 50", sm.MiningPower)
		}
		total += sm.MiningPower
		selfish = append(selfish, sm.MiningPower)
	}
	if math.Abs(total-100) > 1e-9 {
		return Entry{}, rejectf(label, "mining powers must sum to 100, got %v", total)
	}

	if raw.Gamma != 0 && raw.Gamma != 0.5 && raw.Gamma != 1 {
		return Entry{}, rejectf(label, "gamma must be one of {0, 0.5, 1}, got %v", raw.Gamma)
	}
	if raw.SimulationMiningRounds <= 0 {
		return Entry{}, rejectf(label, "simulation_mining_rounds must be positive, got %d", raw.SimulationMiningRounds)
	}

	entry := Entry{
		Label:         label,
		ConsensusName: raw.ConsensusName,
		HonestPower:   raw.Miners.Honest.MiningPower,
		SelfishPowers: selfish,
		Gamma:         raw.Gamma,
		Rounds:        raw.SimulationMiningRounds,
	}

	switch raw.ConsensusName {
	case consensusStrongchain:
		if raw.WeakToStrongHeaderRatio < 1 {
			return Entry{}, rejectf(label, "weak_to_strong_header_ratio must be >= 1, got %d", raw.WeakToStrongHeaderRatio)
		}
		entry.Ratio = raw.WeakToStrongHeaderRatio
	case consensusSubchain:
		if raw.WeakToStrongBlockRatio < 1 {
			return Entry{}, rejectf(label, "weak_to_strong_block_ratio must be >= 1, got %d", raw.WeakToStrongBlockRatio)
		}
		entry.Ratio = raw.WeakToStrongBlockRatio
	case consensusFruitchain:
		if math.Abs(raw.FruitMineProb+raw.SuperblockProb-1) > 1e-9 {
			return Entry{}, rejectf(label, "fruit_mine_prob + superblock_prob must sum to 1, got %v", raw.FruitMineProb+raw.SuperblockProb)
		}
		if raw.SuperblockProb == 0 {
			return Entry{}, rejectf(label, "superblock_prob must be > 0 or no block rounds are ever produced")
		}
		entry.FruitMineProb = raw.FruitMineProb
		entry.SuperblockProb = raw.SuperblockProb
	}

	return entry, nil
}
