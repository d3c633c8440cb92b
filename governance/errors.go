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
	"fmt"
)

// Proposal errors
var (
	ErrAmountShouldNotBeZero   = errors.New("proposal amount should not be zero")
	ErrDuration                = errors.New("invalid voting duration")
	ErrDurationOverflow        = fmt.Errorf("%w: vote end overflows", ErrDuration)
	ErrProposalNotFound        = errors.New("proposal not found")
	ErrProposalAlreadyExecuted = errors.New("proposal already executed")
)

// Voting errors
var (
	ErrVotePeriodEnded    = errors.New("voting period has ended")
	ErrAlreadyVoted       = errors.New("voter has already voted on this proposal")
	ErrInvalidVoteType    = errors.New("invalid vote type")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrTallyOverflow      = errors.New("vote tally overflow")
	ErrOracleUnavailable  = errors.New("stake weight oracle unavailable")
	ErrInvalidOracleState = errors.New("invalid stake oracle state")
)

// Execution errors
var (
	ErrQuorumNotReached    = errors.New("quorum not reached")
	ErrProposalNotAccepted = errors.New("proposal not accepted")
	ErrVotingNotClosed     = errors.New("voting period has not ended")
)

// Configuration errors
var (
	ErrInvalidQuorum = errors.New("quorum threshold must be between 0 and 100")
	ErrNoOracle      = errors.New("stake weight oracle not configured")
)
