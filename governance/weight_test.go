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
	"errors"
	"testing"

	"github.com/holiman/uint256"
)

func TestVoteWeight(t *testing.T) {
	maxU256 := new(uint256.Int).SetAllOne()
	half := new(uint256.Int).Rsh(maxU256, 1)

	tests := []struct {
		balance *uint256.Int
		supply  *uint256.Int
		want    uint64
	}{
		{uint256.NewInt(10), uint256.NewInt(10), 100},
		{uint256.NewInt(0), uint256.NewInt(10), 0},
		{nil, uint256.NewInt(10), 0},
		{uint256.NewInt(1), uint256.NewInt(3), 33},
		{uint256.NewInt(2), uint256.NewInt(3), 66},
		{uint256.NewInt(999), uint256.NewInt(1000), 99},
		{uint256.NewInt(1), uint256.NewInt(101), 0},
		{uint256.NewInt(5), uint256.NewInt(100), 5},
		{maxU256, maxU256, 100},
		{half, maxU256, 49},
	}
	for i, tt := range tests {
		have, err := VoteWeight(tt.balance, tt.supply)
		if err != nil {
			t.Errorf("test %d: unexpected error: %v", i, err)
			continue
		}
		if have != tt.want {
			t.Errorf("test %d: weight mismatch: have %d, want %d", i, have, tt.want)
		}
	}
}

func TestVoteWeight_InvalidOracleState(t *testing.T) {
	if _, err := VoteWeight(uint256.NewInt(1), new(uint256.Int)); !errors.Is(err, ErrInvalidOracleState) {
		t.Errorf("zero supply: expected %v, got %v", ErrInvalidOracleState, err)
	}
	if _, err := VoteWeight(uint256.NewInt(1), nil); !errors.Is(err, ErrInvalidOracleState) {
		t.Errorf("nil supply: expected %v, got %v", ErrInvalidOracleState, err)
	}
	if _, err := VoteWeight(uint256.NewInt(11), uint256.NewInt(10)); !errors.Is(err, ErrInvalidOracleState) {
		t.Errorf("balance above supply: expected %v, got %v", ErrInvalidOracleState, err)
	}
}
