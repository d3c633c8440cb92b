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

package governance

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Clock supplies the current time in seconds. Successive calls never go backwards.
type Clock interface {
	Now() uint64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current unix time in seconds.
func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// StakeWeightOracle supplies the stake asset figures used to weigh votes. Both
// values are read at vote time, not snapshotted at proposal creation.
type StakeWeightOracle interface {
	// BalanceOf returns the stake held by the given account
	BalanceOf(ctx context.Context, account common.Address) (*uint256.Int, error)

	// TotalSupply returns the total supply of the stake asset
	TotalSupply(ctx context.Context) (*uint256.Int, error)
}

// StakeReader is implemented by oracles that can read a balance and the total
// supply from one consistent state. The governor prefers it over two separate
// StakeWeightOracle calls.
type StakeReader interface {
	StakeOf(ctx context.Context, account common.Address) (balance, supply *uint256.Int, err error)
}
