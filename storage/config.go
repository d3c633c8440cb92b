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

package storage

import "errors"

// Supported database backends
const (
	BackendMemory  = "memory"  // 内存数据库（测试用，不持久化）
	BackendLevelDB = "leveldb" // LevelDB 持久化存储
)

var (
	ErrUnknownBackend = errors.New("unknown database backend")
	ErrNoDataPath     = errors.New("data path required for persistent backend")
)

// Config defines configuration for the governance state database
type Config struct {
	Backend   string // 数据库类型
	DataPath  string // 数据目录
	CacheSize int    // 缓存大小（MB）
	Handles   int    // 文件句柄数
	ReadOnly  bool   // 只读模式
}

// DefaultConfig returns the default storage configuration
func DefaultConfig() *Config {
	return &Config{
		Backend:   BackendLevelDB,
		DataPath:  "daogov-data",
		CacheSize: 16,
		Handles:   16,
	}
}
