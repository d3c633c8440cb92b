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
	"crypto/ecdsa"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var voteTag = []byte("daogov-vote")

// NewDomain derives the signing domain of a deployment from its name and stake
// token. Signatures made for one domain do not verify in another.
func NewDomain(name string, token common.Address) common.Hash {
	return crypto.Keccak256Hash([]byte("daogov-domain"), []byte(name), token.Bytes())
}

// VoteDigest returns the hash a voter signs to cast kind on proposal id within
// domain.
func VoteDigest(domain common.Hash, id ProposalID, kind VoteType) common.Hash {
	data := make([]byte, 0, len(voteTag)+common.HashLength+9)
	data = append(data, voteTag...)
	data = append(data, domain.Bytes()...)
	data = binary.BigEndian.AppendUint64(data, uint64(id))
	data = append(data, byte(kind))
	return crypto.Keccak256Hash(data)
}

// SignVote signs the vote digest with key.
func SignVote(domain common.Hash, id ProposalID, kind VoteType, key *ecdsa.PrivateKey) ([]byte, error) {
	return crypto.Sign(VoteDigest(domain, id, kind).Bytes(), key)
}

// RecoverVoter recovers the address that produced sig over the vote digest.
func RecoverVoter(domain common.Hash, id ProposalID, kind VoteType, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrInvalidSignature
	}
	pubkey, err := crypto.SigToPub(VoteDigest(domain, id, kind).Bytes(), sig)
	if err != nil {
		return common.Address{}, ErrInvalidSignature
	}
	return crypto.PubkeyToAddress(*pubkey), nil
}
