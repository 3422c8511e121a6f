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

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abeychain/selfminer/config"
	"github.com/abeychain/selfminer/reporting"
	"github.com/abeychain/selfminer/simulation"
)

// seedFor derives a deterministic per-entry seed from the entry's label,
// so two entries in the same document never draw from the same stream
// while a given label always reproduces the same run.
func seedFor(label string) int64 {
	var h int64 = 1469598103934665603
	for _, r := range label {
		h ^= int64(r)
		h *= 1099511628211
	}
	if h < 0 {
		h = -h
	}
	return h
}

// entriesFor returns every entry in path whose ConsensusName matches
// family, case-insensitively, preserving document order.
func entriesFor(path, family string) ([]config.Entry, error) {
	all, err := loadConfigCached(path)
	if err != nil {
		return nil, err
	}
	var matched []config.Entry
	for _, e := range all {
		if strings.EqualFold(e.ConsensusName, family) {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("no %s entries found in %s", family, path)
	}
	return matched, nil
}

func outPathFor(base, label string, multi bool) string {
	if !multi {
		return base
	}
	return fmt.Sprintf("%s.%s.csv", strings.TrimSuffix(base, ".csv"), label)
}

func runNakamoto(entry config.Entry, verbose bool) ([]reporting.Row, int) {
	m := simulation.NewNakamotoManager(simulation.NakamotoConfig{
		HonestPower:   entry.HonestPower,
		SelfishPowers: entry.SelfishPowers,
		Gamma:         entry.Gamma,
		Rounds:        entry.Rounds,
		Seed:          seedFor(entry.Label),
	})
	m.SetVerbose(verbose)
	chain := m.Run()

	blocks := map[int]int{}
	for _, b := range chain.Blocks {
		blocks[b.MinerID]++
	}
	wins := m.Wins()
	rows := []reporting.Row{{MinerID: m.Honest.ID, Label: m.Honest.Name, Power: m.Honest.Power, Wins: wins[m.Honest.ID], Blocks: blocks[m.Honest.ID]}}
	for _, sm := range m.Selfish {
		rows = append(rows, reporting.Row{MinerID: sm.ID, Label: sm.Name, Power: sm.Power, Wins: wins[sm.ID], Blocks: blocks[sm.ID]})
	}
	return rows, entry.Rounds
}

func runStrongchain(entry config.Entry, verbose bool) ([]reporting.Row, int) {
	m := simulation.NewStrongchainManager(simulation.StrongchainConfig{
		HonestPower:   entry.HonestPower,
		SelfishPowers: entry.SelfishPowers,
		Gamma:         entry.Gamma,
		Rounds:        entry.Rounds,
		Ratio:         entry.Ratio,
		Seed:          seedFor(entry.Label),
	})
	m.SetVerbose(verbose)
	chain := m.Run()

	blocks := map[int]int{}
	for _, b := range chain.Blocks {
		blocks[b.MinerID]++
	}
	wins := m.Wins()
	row := func(id int, name string, power float64) reporting.Row {
		return reporting.Row{
			MinerID: id, Label: name, Power: power, Wins: wins[id], Blocks: blocks[id],
			Extra: map[string]int{"strong": m.StrongCounts[id], "weak": m.WeakCounts[id]},
		}
	}
	rows := []reporting.Row{row(m.Honest.ID, m.Honest.Name, m.Honest.Power)}
	for _, sm := range m.Selfish {
		rows = append(rows, row(sm.ID, sm.Name, sm.Power))
	}
	return rows, entry.Rounds
}

func runFruitchain(entry config.Entry, verbose bool) ([]reporting.Row, int) {
	m := simulation.NewFruitchainManager(simulation.FruitchainConfig{
		HonestPower:    entry.HonestPower,
		SelfishPowers:  entry.SelfishPowers,
		Gamma:          entry.Gamma,
		Rounds:         entry.Rounds,
		FruitMineProb:  entry.FruitMineProb,
		SuperblockProb: entry.SuperblockProb,
		Seed:           seedFor(entry.Label),
	})
	m.SetVerbose(verbose)
	chain := m.Run()

	blocks := map[int]int{}
	fruits := map[int]int{}
	for _, b := range chain.Blocks {
		blocks[b.MinerID]++
		var owners []int
		if err := json.Unmarshal([]byte(b.Data), &owners); err == nil {
			for _, id := range owners {
				fruits[id]++
			}
		}
	}
	wins := m.Wins()
	row := func(id int, name string, power float64) reporting.Row {
		return reporting.Row{
			MinerID: id, Label: name, Power: power, Wins: wins[id], Blocks: blocks[id],
			Extra: map[string]int{"fruits": fruits[id]},
		}
	}
	rows := []reporting.Row{row(m.Honest.ID, m.Honest.Name, m.Honest.Power)}
	for _, sm := range m.Selfish {
		rows = append(rows, row(sm.ID, sm.Name, sm.Power))
	}
	return rows, entry.Rounds
}

func runSubchainWeak(entry config.Entry, verbose bool) ([]reporting.Row, int) {
	m := simulation.NewSubchainWeakManager(simulation.SubchainWeakConfig{
		HonestPower:   entry.HonestPower,
		SelfishPowers: entry.SelfishPowers,
		Gamma:         entry.Gamma,
		Rounds:        entry.Rounds,
		Ratio:         entry.Ratio,
		Seed:          seedFor(entry.Label),
	})
	m.SetVerbose(verbose)
	chain := m.Run()

	blocks := map[int]int{}
	for _, b := range chain.Blocks {
		blocks[b.MinerID]++
	}
	wins := m.Wins()
	row := func(id int, name string, power float64) reporting.Row {
		return reporting.Row{
			MinerID: id, Label: name, Power: power, Wins: wins[id], Blocks: blocks[id],
			Extra: map[string]int{"weak_rounds": m.WeakBlockCount[id], "strong_rounds": m.StrongBlockCount[id]},
		}
	}
	rows := []reporting.Row{row(m.Honest.ID, m.Honest.Name, m.Honest.Power)}
	for _, sm := range m.Selfish {
		rows = append(rows, row(sm.ID, sm.Name, sm.Power))
	}
	return rows, entry.Rounds
}

func runSubchainStrong(entry config.Entry, verbose bool) ([]reporting.Row, int) {
	m := simulation.NewSubchainStrongManager(simulation.SubchainStrongConfig{
		HonestPower:   entry.HonestPower,
		SelfishPowers: entry.SelfishPowers,
		Gamma:         entry.Gamma,
		Rounds:        entry.Rounds,
		Ratio:         entry.Ratio,
		Seed:          seedFor(entry.Label),
	})
	m.SetVerbose(verbose)
	chain := m.Run()

	blocks := map[int]int{}
	for _, b := range chain.Blocks {
		if !b.Weak() {
			blocks[b.MinerID]++
		}
	}
	wins := m.Wins()
	row := func(id int, name string, power float64) reporting.Row {
		return reporting.Row{
			MinerID: id, Label: name, Power: power, Wins: wins[id], Blocks: blocks[id],
			Extra: map[string]int{"weak_rounds": m.WeakBlockCount[id], "strong_rounds": m.StrongBlockCount[id]},
		}
	}
	rows := []reporting.Row{row(m.Honest.ID, m.Honest.Name, m.Honest.Power)}
	for _, sm := range m.Selfish {
		rows = append(rows, row(sm.ID, sm.Name, sm.Power))
	}
	return rows, entry.Rounds
}
