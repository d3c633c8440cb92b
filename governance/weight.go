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
	"fmt"

	"github.com/holiman/uint256"
)

var hundred = uint256.NewInt(100)

// VoteWeight converts a stake balance into an integer percentage of the total
// supply: floor(balance * 100 / totalSupply). Fractions below one percentage point
// are discarded. The product is computed in 512 bits, so it cannot overflow.
func VoteWeight(balance, totalSupply *uint256.Int) (uint64, error) {
	if totalSupply == nil || totalSupply.IsZero() {
		return 0, fmt.Errorf("%w: zero total supply", ErrInvalidOracleState)
	}
	if balance == nil {
		return 0, nil
	}
	if balance.Gt(totalSupply) {
		return 0, fmt.Errorf("%w: balance %s exceeds total supply %s", ErrInvalidOracleState, balance.Dec(), totalSupply.Dec())
	}
	weight, _ := new(uint256.Int).MulDivOverflow(balance, hundred, totalSupply)
	return weight.Uint64(), nil
}
