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

// Package actionstore is the multimap from a selfish action tag to the
// set of selfish miners currently holding it, rebuilt every round by the
// simulation manager's override resolution loop.
package actionstore

import "github.com/abeychain/selfminer/miner"

// Store maps miner.SelfishAction to the objects (normally *SelfishMiner,
// but kept generic so every consensus family's concrete miner type can use
// the same store) currently recorded under it. T must be comparable so
// Remove can find an object by value equality — every consensus package
// stores pointers here, so this reduces to identity comparison.
type Store[T comparable] struct {
	objects map[miner.SelfishAction][]T
	actions []miner.SelfishAction
}

// New returns an empty Store.
func New[T comparable]() *Store[T] {
	return &Store[T]{objects: make(map[miner.SelfishAction][]T)}
}

// Add records obj under action, preserving insertion order within that
// action's object list, and appends action to the action log (with
// multiplicity — get_actions/Actions reflects every Add, not distinct
// tags).
func (s *Store[T]) Add(action miner.SelfishAction, obj T) {
	s.objects[action] = append(s.objects[action], obj)
	s.actions = append(s.actions, action)
}

// Remove deletes the first occurrence of obj recorded under action. It is
// a no-op, not an error, when obj is not present under action.
func (s *Store[T]) Remove(action miner.SelfishAction, obj T) {
	objs := s.objects[action]
	for i, o := range objs {
		if o == obj {
			s.objects[action] = append(objs[:i:i], objs[i+1:]...)
			return
		}
	}
}

// Objects returns a stable snapshot of the objects currently recorded
// under action, possibly empty.
func (s *Store[T]) Objects(action miner.SelfishAction) []T {
	return append([]T(nil), s.objects[action]...)
}

// Actions returns every action ever Add-ed since the last Clear, with
// multiplicity and in insertion order.
func (s *Store[T]) Actions() []miner.SelfishAction {
	return append([]miner.SelfishAction(nil), s.actions...)
}

// Clear resets the store to empty.
func (s *Store[T]) Clear() {
	s.objects = make(map[miner.SelfishAction][]T)
	s.actions = nil
}
