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

// Package reporting turns a finished simulation run into the two output
// shapes spec.md §6 asks for: a per-miner CSV file and a stdout histogram.
package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// Row is one miner's attribution for a finished run. Extra carries the
// §9-supplemented per-consensus columns (Strongchain's strong/weak event
// counts, Subchain's weak/strong block counts) that only some families
// produce; callers of WriteCSV/PrintHistogram leave it nil when a family
// has nothing extra to report.
type Row struct {
	MinerID int
	Label   string
	Power   float64
	Wins    int
	Blocks  int
	Extra   map[string]int
}

func extraKeys(rows []Row) []string {
	seen := map[string]bool{}
	for _, r := range rows {
		for k := range r.Extra {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteCSV writes one row per miner — miner_id, label, power, wins, blocks,
// plus any Extra columns present on at least one row — to path.
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating report file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	extras := extraKeys(rows)

	header := append([]string{"miner_id", "label", "power", "wins", "blocks"}, extras...)
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "writing report header")
	}
	for _, r := range rows {
		record := []string{
			fmt.Sprintf("%d", r.MinerID),
			r.Label,
			fmt.Sprintf("%g", r.Power),
			fmt.Sprintf("%d", r.Wins),
			fmt.Sprintf("%d", r.Blocks),
		}
		for _, k := range extras {
			record = append(record, fmt.Sprintf("%d", r.Extra[k]))
		}
		if err := w.Write(record); err != nil {
			return errors.Wrap(err, "writing report row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "flushing report file")
	}
	return nil
}

// PrintHistogram renders the (miner_label, percentage, win_count,
// block_count) stdout table spec.md §6 asks for, with wins expressed as a
// percentage of totalRounds, in a fixed-width table via fmt.Fprintf —
// matching the teacher's own preference for plain status printing over a
// table-rendering library.
func PrintHistogram(w io.Writer, rows []Row, totalRounds int) error {
	if _, err := fmt.Fprintf(w, "%-16s %10s %10s %10s\n", "miner", "percent", "wins", "blocks"); err != nil {
		return err
	}
	for _, r := range rows {
		pct := 0.0
		if totalRounds > 0 {
			pct = float64(r.Wins) / float64(totalRounds) * 100
		}
		if _, err := fmt.Fprintf(w, "%-16s %9.2f%% %10d %10d\n", r.Label, pct, r.Wins, r.Blocks); err != nil {
			return err
		}
	}
	return nil
}

// PrintSummary is a convenience wrapper around PrintHistogram writing to
// stdout, used by cmd/selfminer after a run completes.
func PrintSummary(rows []Row, totalRounds int) error {
	return PrintHistogram(os.Stdout, rows, totalRounds)
}
