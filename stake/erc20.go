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

package stake

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

// DefaultCallTimeout bounds a single token contract call.
const DefaultCallTimeout = 5 * time.Second

var (
	ErrNoContractCode = errors.New("no contract code at token address")
	ErrBadResult      = errors.New("unexpected token call result")
)

// ContractCaller executes read-only contract calls. *ethclient.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// BlockNumberReader reports the current head block. Callers implementing it let
// StakeOf pin both of its reads to the same block.
type BlockNumberReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

// ERC20Oracle reads stake balances from an ERC-20 token contract.
type ERC20Oracle struct {
	caller  ContractCaller
	token   common.Address
	abi     abi.ABI
	timeout time.Duration
	client  *ethclient.Client // set when the oracle owns the connection
}

// NewERC20Oracle creates an oracle reading the token at the given address
// through caller.
func NewERC20Oracle(caller ContractCaller, token common.Address) (*ERC20Oracle, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, err
	}
	return &ERC20Oracle{
		caller:  caller,
		token:   token,
		abi:     parsed,
		timeout: DefaultCallTimeout,
	}, nil
}

// DialERC20Oracle connects to the JSON-RPC endpoint at rawurl and creates an
// oracle for token. Close releases the connection.
func DialERC20Oracle(ctx context.Context, rawurl string, token common.Address) (*ERC20Oracle, error) {
	client, err := ethclient.DialContext(ctx, rawurl)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rawurl, err)
	}
	oracle, err := NewERC20Oracle(client, token)
	if err != nil {
		client.Close()
		return nil, err
	}
	oracle.client = client
	log.Info("Connected stake oracle", "endpoint", rawurl, "token", token)
	return oracle, nil
}

// SetTimeout changes the per-call timeout. Zero disables it.
func (o *ERC20Oracle) SetTimeout(timeout time.Duration) {
	o.timeout = timeout
}

// Token returns the stake token address.
func (o *ERC20Oracle) Token() common.Address {
	return o.token
}

// BalanceOf calls balanceOf(account) on the token contract.
func (o *ERC20Oracle) BalanceOf(ctx context.Context, account common.Address) (*uint256.Int, error) {
	return o.call(ctx, nil, "balanceOf", account)
}

// TotalSupply calls totalSupply() on the token contract.
func (o *ERC20Oracle) TotalSupply(ctx context.Context) (*uint256.Int, error) {
	return o.call(ctx, nil, "totalSupply")
}

// StakeOf reads the balance of account and the total supply at the same block,
// so the pair never straddles a state change. Without a BlockNumberReader both
// calls go to the latest block.
func (o *ERC20Oracle) StakeOf(ctx context.Context, account common.Address) (*uint256.Int, *uint256.Int, error) {
	var block *big.Int
	if reader, ok := o.caller.(BlockNumberReader); ok {
		number, err := o.blockNumber(ctx, reader)
		if err != nil {
			return nil, nil, err
		}
		block = new(big.Int).SetUint64(number)
	}
	balance, err := o.call(ctx, block, "balanceOf", account)
	if err != nil {
		return nil, nil, err
	}
	supply, err := o.call(ctx, block, "totalSupply")
	if err != nil {
		return nil, nil, err
	}
	return balance, supply, nil
}

// Close releases the RPC connection if the oracle dialled it.
func (o *ERC20Oracle) Close() {
	if o.client != nil {
		o.client.Close()
	}
}

func (o *ERC20Oracle) blockNumber(ctx context.Context, reader BlockNumberReader) (uint64, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	number, err := reader.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("block number: %w", err)
	}
	return number, nil
}

func (o *ERC20Oracle) call(ctx context.Context, block *big.Int, method string, args ...interface{}) (*uint256.Int, error) {
	data, err := o.abi.Pack(method, args...)
	if err != nil {
		return nil, err
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	out, err := o.caller.CallContract(ctx, ethereum.CallMsg{To: &o.token, Data: data}, block)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoContractCode, o.token.Hex())
	}
	res, err := o.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResult, err)
	}
	if len(res) != 1 {
		return nil, fmt.Errorf("%w: %d values", ErrBadResult, len(res))
	}
	value, ok := res[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrBadResult, res[0])
	}
	result, overflow := uint256.FromBig(value)
	if overflow {
		return nil, fmt.Errorf("%w: value overflows 256 bits", ErrBadResult)
	}
	return result, nil
}
