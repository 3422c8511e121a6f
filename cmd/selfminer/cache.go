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
	"crypto/sha256"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru"

	"github.com/abeychain/selfminer/config"
)

// configCache memoizes config.Load by a hash of the raw file bytes, so
// selecting several entries out of the same large multi-entry document in
// one process run never re-parses and re-validates the same YAML twice.
var configCache *lru.Cache

func init() {
	c, err := lru.New(8)
	if err != nil {
		panic(err)
	}
	configCache = c
}

func loadConfigCached(path string) ([]config.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	key := fmt.Sprintf("%s:%x", path, sum)

	if cached, ok := configCache.Get(key); ok {
		return cached.([]config.Entry), nil
	}

	entries, err := config.Parse(data)
	if err != nil {
		return nil, err
	}
	configCache.Add(key, entries)
	return entries, nil
}
