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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var testDomain = NewDomain("treasury", common.HexToAddress("0x70ce"))

func TestRecoverVoter(t *testing.T) {
	key, _ := crypto.GenerateKey()
	addr := crypto.PubkeyToAddress(key.PublicKey)

	sig, err := SignVote(testDomain, 3, VoteAgainst, key)
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	voter, err := RecoverVoter(testDomain, 3, VoteAgainst, sig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if voter != addr {
		t.Errorf("expected %v, got %v", addr, voter)
	}
	// The same signature replayed on another proposal or direction names someone else.
	if other, _ := RecoverVoter(testDomain, 4, VoteAgainst, sig); other == addr {
		t.Error("signature should be bound to the proposal id")
	}
	if other, _ := RecoverVoter(testDomain, 3, VoteFor, sig); other == addr {
		t.Error("signature should be bound to the vote direction")
	}
	if other, _ := RecoverVoter(common.Hash{}, 3, VoteAgainst, sig); other == addr {
		t.Error("signature should be bound to the domain")
	}
	if _, err := RecoverVoter(testDomain, 3, VoteAgainst, nil); err != ErrInvalidSignature {
		t.Errorf("expected error %v, got %v", ErrInvalidSignature, err)
	}
	bad := append([]byte{}, sig...)
	bad[64] = 9
	if _, err := RecoverVoter(testDomain, 3, VoteAgainst, bad); err != ErrInvalidSignature {
		t.Errorf("expected error %v, got %v", ErrInvalidSignature, err)
	}
}

func TestVoteDigestDistinct(t *testing.T) {
	if VoteDigest(testDomain, 1, VoteFor) == VoteDigest(testDomain, 1, VoteAgainst) {
		t.Error("digests of opposite votes must differ")
	}
	if VoteDigest(testDomain, 1, VoteFor) == VoteDigest(testDomain, 2, VoteFor) {
		t.Error("digests of different proposals must differ")
	}
	other := NewDomain("treasury", common.HexToAddress("0x70cf"))
	if VoteDigest(testDomain, 1, VoteFor) == VoteDigest(other, 1, VoteFor) {
		t.Error("digests of different domains must differ")
	}
	if NewDomain("a", common.Address{}) == NewDomain("b", common.Address{}) {
		t.Error("domains of different names must differ")
	}
}

func TestParseVoteType(t *testing.T) {
	for in, want := range map[string]VoteType{"for": VoteFor, "yes": VoteFor, "against": VoteAgainst, "no": VoteAgainst} {
		have, err := ParseVoteType(in)
		if err != nil || have != want {
			t.Errorf("ParseVoteType(%q) = %v, %v; want %v", in, have, err, want)
		}
	}
	if _, err := ParseVoteType("abstain"); err == nil {
		t.Error("expected error for unknown vote type")
	}
}
