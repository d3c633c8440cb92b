// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package storage opens the key-value database that holds governance state.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/leveldb"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/log"
)

const namespace = "daogov/db/"

// Open opens the database described by config. The caller closes it.
func Open(config *Config) (ethdb.KeyValueStore, error) {
	if config == nil {
		config = DefaultConfig()
	}
	switch config.Backend {
	case BackendMemory:
		log.Warn("Using in-memory governance database, state is lost on exit")
		return memorydb.New(), nil

	case BackendLevelDB, "":
		if config.DataPath == "" {
			return nil, ErrNoDataPath
		}
		path := filepath.Join(config.DataPath, "governance")
		db, err := leveldb.New(path, config.CacheSize, config.Handles, namespace, config.ReadOnly)
		if err != nil {
			return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
		}
		log.Info("Opened governance database", "path", path, "cache", config.CacheSize, "handles", config.Handles, "readonly", config.ReadOnly)
		return db, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, config.Backend)
	}
}
