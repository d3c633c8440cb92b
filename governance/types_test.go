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
	"math"
	"testing"

	"github.com/holiman/uint256"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.QuorumThreshold != 50 {
		t.Errorf("expected default quorum 50, got %d", config.QuorumThreshold)
	}
	if config.ExecuteAfterVoteEnd {
		t.Error("early execution should be allowed by default")
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestProposalStateAt(t *testing.T) {
	proposal := &Proposal{Amount: uint256.NewInt(1), VoteStart: 10, VoteEnd: 20}

	tests := []struct {
		now  uint64
		want ProposalState
	}{
		{9, StatePending},
		{10, StateActive},
		{20, StateActive},
		{21, StateClosed},
	}
	for _, tt := range tests {
		if have := proposal.StateAt(tt.now); have != tt.want {
			t.Errorf("StateAt(%d) = %v, want %v", tt.now, have, tt.want)
		}
	}
	proposal.Executed = true
	if have := proposal.StateAt(15); have != StateExecuted {
		t.Errorf("expected %v, got %v", StateExecuted, have)
	}
}

func TestTallyTotalSaturates(t *testing.T) {
	tally := &Tally{For: math.MaxUint64, Against: 1}
	if tally.Total() != math.MaxUint64 {
		t.Errorf("expected saturated total, got %d", tally.Total())
	}
	tally = &Tally{For: 30, Against: 25}
	if tally.Total() != 55 {
		t.Errorf("expected 55, got %d", tally.Total())
	}
}

func TestVoteTypeString(t *testing.T) {
	if VoteFor.String() != "for" || VoteAgainst.String() != "against" {
		t.Errorf("unexpected names %q %q", VoteFor, VoteAgainst)
	}
	if VoteType(7).Valid() {
		t.Error("unknown vote type should be invalid")
	}
}
