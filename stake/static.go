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

// Package stake implements the stake weight oracles consulted by the governor.
package stake

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// StaticOracle is an in-memory stake ledger. It is used by tests and by
// deployments that mirror balances from an off-chain source.
type StaticOracle struct {
	mu       sync.RWMutex
	balances map[common.Address]*uint256.Int
	supply   *uint256.Int
}

// NewStaticOracle creates a ledger with the given total supply and balances.
func NewStaticOracle(supply *uint256.Int, balances map[common.Address]*uint256.Int) *StaticOracle {
	o := &StaticOracle{
		balances: make(map[common.Address]*uint256.Int, len(balances)),
		supply:   new(uint256.Int),
	}
	o.supply.Set(orZero(supply))
	for addr, balance := range balances {
		o.balances[addr] = orZero(balance).Clone()
	}
	return o
}

// orZero maps a missing value to zero.
func orZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}

// SetBalance overrides the balance of account. A nil balance is zero.
func (o *StaticOracle) SetBalance(account common.Address, balance *uint256.Int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.balances[account] = orZero(balance).Clone()
}

// SetTotalSupply overrides the total supply. A nil supply is zero.
func (o *StaticOracle) SetTotalSupply(supply *uint256.Int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.supply = orZero(supply).Clone()
}

// BalanceOf returns the balance of account, zero if unknown.
func (o *StaticOracle) BalanceOf(ctx context.Context, account common.Address) (*uint256.Int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if balance, ok := o.balances[account]; ok {
		return balance.Clone(), nil
	}
	return new(uint256.Int), nil
}

// TotalSupply returns the configured total supply.
func (o *StaticOracle) TotalSupply(ctx context.Context) (*uint256.Int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.supply.Clone(), nil
}
