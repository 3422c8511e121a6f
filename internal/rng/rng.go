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

// Package rng wraps a single seeded math/rand source so every random draw
// within one simulation run (leader election, MATCH ties, gamma=0.5
// preemption, event-kind Bernoulli trials) is reproducible from that run's
// seed alone, per the no-shared-randomness-source requirement of a
// deterministic discrete-event core.
package rng

import "math/rand"

// Source is a per-run random generator. It is never shared across runs.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded deterministically from seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Uniform returns a uniformly distributed float64 in [0, 1).
func (s *Source) Uniform() float64 { return s.r.Float64() }

// Bernoulli reports true with probability p.
func (s *Source) Bernoulli(p float64) bool { return s.r.Float64() < p }

// IntN returns a uniformly distributed integer in [0, n).
func (s *Source) IntN(n int) int { return s.r.Intn(n) }

// Choice picks a uniformly random element of items. It panics on an empty
// slice — callers are expected to have already established non-emptiness.
func Choice[T any](s *Source, items []T) T {
	if len(items) == 0 {
		panic("rng: Choice on empty slice")
	}
	return items[s.r.Intn(len(items))]
}

// WeightedChoice picks an index into weights with probability proportional
// to weights[i], mirroring the stake-weighted committee draw the election
// package performs for consensus membership, simplified to flat weights.
// Weights need not sum to 1; they are normalized internally.
func (s *Source) WeightedChoice(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		panic("rng: WeightedChoice with non-positive total weight")
	}
	draw := s.r.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if draw < cum {
			return i
		}
	}
	return len(weights) - 1
}
