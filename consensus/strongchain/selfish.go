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

package strongchain

import (
	"fmt"

	"github.com/abeychain/selfminer/chainmodel"
	"github.com/abeychain/selfminer/miner"
)

// SelfishMiner withholds strong blocks (each optionally carrying weak
// headers) on a private chain, switching the baseline lead comparison for
// a chain-weight (chains_pow) comparison.
type SelfishMiner struct {
	miner.Base
	Private    *Chain
	WeakBuffer []chainmodel.WeakHeader
	Action     miner.SelfishAction
}

// NewSelfishMiner constructs a selfish miner with an empty private chain
// at the given weak/strong header ratio.
func NewSelfishMiner(id int, name string, power float64, ratio int) *SelfishMiner {
	return &SelfishMiner{
		Base:    miner.Base{ID: id, Name: name, Power: power, Role: miner.Selfish},
		Private: NewChain(name, ratio),
	}
}

// AddWeakHeader buffers a weak header this miner mined, to be attached to
// its next strong block.
func (s *SelfishMiner) AddWeakHeader(w chainmodel.WeakHeader) {
	s.WeakBuffer = append(s.WeakBuffer, w)
}

func (s *SelfishMiner) updatePrivateBlockchain(publicLastBlockID int) {
	if s.Private.Empty() {
		s.Private.Initialize(publicLastBlockID)
	}
	s.Private.Append(chainmodel.StrongBlock{
		Data:        fmt.Sprintf("%s-%d", s.Name, s.Private.Size()+1),
		Miner:       s.Name,
		MinerID:     s.ID,
		WeakHeaders: s.WeakBuffer,
	})
	s.WeakBuffer = nil
}

// MineNewBlock extends the private chain with a freshly mined strong
// block (sealing any buffered weak headers beneath it) and applies the
// chains_pow comparison of spec §4.2.3.
func (s *SelfishMiner) MineNewBlock(public *Chain, honestWeakSoFar int) {
	s.updatePrivateBlockchain(public.LastBlockID)
	s.evaluate(public, honestWeakSoFar)
}

// Evaluate re-applies the chains_pow comparison without mining — the
// mid-epoch escalation path for a selfish miner with already-buffered
// weak headers on a weak-header round (spec §4.2.3, second paragraph).
func (s *SelfishMiner) Evaluate(public *Chain, honestWeakSoFar int) {
	s.evaluate(public, honestWeakSoFar)
}

func (s *SelfishMiner) evaluate(public *Chain, honestWeakSoFar int) {
	if s.Private.Empty() {
		s.Action = miner.Idle
		return
	}
	smPow := s.Private.ChainsPow()
	hmPow := public.ChainsPowFromIndex(*s.Private.ForkBlockID) + float64(honestWeakSoFar)/float64(public.Ratio)
	switch {
	case smPow > hmPow && smPow > 1.5 && smPow-1 <= hmPow:
		s.Action = miner.Override
	case smPow > hmPow:
		s.Action = miner.Wait
	default:
		s.Private.Clear()
		s.Action = miner.Adopt
	}
}
