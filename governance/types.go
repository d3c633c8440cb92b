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

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ProposalID identifies a proposal. IDs are assigned sequentially starting at zero
// and are never reused.
type ProposalID uint64

// VoteType represents the direction of a vote
type VoteType uint8

const (
	VoteFor     VoteType = 0x01 // 赞成
	VoteAgainst VoteType = 0x02 // 反对
)

// Valid reports whether v is a known vote direction.
func (v VoteType) Valid() bool {
	return v == VoteFor || v == VoteAgainst
}

func (v VoteType) String() string {
	switch v {
	case VoteFor:
		return "for"
	case VoteAgainst:
		return "against"
	default:
		return fmt.Sprintf("VoteType(%d)", uint8(v))
	}
}

// ParseVoteType converts "for"/"against" into a VoteType.
func ParseVoteType(s string) (VoteType, error) {
	switch s {
	case "for", "yes":
		return VoteFor, nil
	case "against", "no":
		return VoteAgainst, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidVoteType, s)
}

// ProposalState is derived from the stored proposal fields and the current time.
// It is never persisted.
type ProposalState uint8

const (
	StatePending  ProposalState = 0x00 // 未开始
	StateActive   ProposalState = 0x01 // 投票中
	StateClosed   ProposalState = 0x02 // 投票结束，未执行
	StateExecuted ProposalState = 0x03 // 已执行
)

func (s ProposalState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	case StateExecuted:
		return "executed"
	default:
		return fmt.Sprintf("ProposalState(%d)", uint8(s))
	}
}

// Proposal represents a request to transfer funds to a recipient
type Proposal struct {
	Recipient common.Address // 收款地址
	Amount    *uint256.Int   // 转账金额
	VoteStart uint64         // 投票开始时间
	VoteEnd   uint64         // 投票截止时间
	Executed  bool           // 是否已执行
}

// StateAt derives the lifecycle state of the proposal at time now.
func (p *Proposal) StateAt(now uint64) ProposalState {
	switch {
	case p.Executed:
		return StateExecuted
	case now < p.VoteStart:
		return StatePending
	case now > p.VoteEnd:
		return StateClosed
	default:
		return StateActive
	}
}

// Tally holds the weighted vote sums of a proposal. Each voter contributes at most
// 100 weight units, so uint64 holds the sum for any realistic electorate.
type Tally struct {
	For     uint64 // 赞成权重
	Against uint64 // 反对权重
}

// Total returns the combined participation weight, saturating at the maximum uint64.
func (t *Tally) Total() uint64 {
	sum := t.For + t.Against
	if sum < t.For {
		return ^uint64(0)
	}
	return sum
}

// ExecutedEvent is posted when a proposal passes and is marked executed. Moving
// the funds is left to the subscriber.
type ExecutedEvent struct {
	ID        ProposalID
	Recipient common.Address
	Amount    *uint256.Int
}

// Config holds the governor configuration. It is fixed once the governor is created.
type Config struct {
	QuorumThreshold     uint8       // 法定人数（总权重百分比，0-100）
	ExecuteAfterVoteEnd bool        // 仅允许在投票结束后执行
	Domain              common.Hash // separates vote signatures of different deployments
}

// DefaultConfig returns the default governor configuration
func DefaultConfig() *Config {
	return &Config{
		QuorumThreshold:     50,
		ExecuteAfterVoteEnd: false,
	}
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.QuorumThreshold > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuorum, c.QuorumThreshold)
	}
	return nil
}
