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
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/rlp"
)

var (
	// Storage key prefixes
	proposalPrefix = []byte("p") // proposalPrefix + id (uint64 big endian) -> RLP(Proposal)
	tallyPrefix    = []byte("t") // tallyPrefix + id -> RLP(Tally)
	votePrefix     = []byte("v") // votePrefix + id + voter -> presence marker

	nextProposalIDKey = []byte("NextProposalID")

	voteMarker = []byte{0x01}

	errCorruptCounter = errors.New("corrupt proposal id counter")
)

func encodeProposalID(id ProposalID) []byte {
	enc := make([]byte, 8)
	binary.BigEndian.PutUint64(enc, uint64(id))
	return enc
}

func proposalKey(id ProposalID) []byte {
	return append(append([]byte{}, proposalPrefix...), encodeProposalID(id)...)
}

func tallyKey(id ProposalID) []byte {
	return append(append([]byte{}, tallyPrefix...), encodeProposalID(id)...)
}

func voteKey(id ProposalID, voter common.Address) []byte {
	key := make([]byte, 0, len(votePrefix)+8+common.AddressLength)
	key = append(key, votePrefix...)
	key = append(key, encodeProposalID(id)...)
	return append(key, voter.Bytes()...)
}

// readValue retrieves the value stored under key, nil if the key is absent. Any
// other store failure is returned.
func readValue(db ethdb.KeyValueReader, key []byte) ([]byte, error) {
	ok, err := db.Has(key)
	if err != nil || !ok {
		return nil, err
	}
	return db.Get(key)
}

// readNextProposalID retrieves the id counter, zero if it was never written.
func readNextProposalID(db ethdb.KeyValueReader) (ProposalID, error) {
	data, err := readValue(db, nextProposalIDKey)
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, nil
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("%w: %d bytes", errCorruptCounter, len(data))
	}
	return ProposalID(binary.BigEndian.Uint64(data)), nil
}

func writeNextProposalID(db ethdb.KeyValueWriter, id ProposalID) error {
	return db.Put(nextProposalIDKey, encodeProposalID(id))
}

// readProposal retrieves a proposal, nil if it does not exist.
func readProposal(db ethdb.KeyValueReader, id ProposalID) (*Proposal, error) {
	data, err := readValue(db, proposalKey(id))
	if err != nil || data == nil {
		return nil, err
	}
	proposal := new(Proposal)
	if err := rlp.DecodeBytes(data, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

func writeProposal(db ethdb.KeyValueWriter, id ProposalID, proposal *Proposal) error {
	data, err := rlp.EncodeToBytes(proposal)
	if err != nil {
		return err
	}
	return db.Put(proposalKey(id), data)
}

// readTally retrieves the vote tally of a proposal, nil if nobody voted yet.
func readTally(db ethdb.KeyValueReader, id ProposalID) (*Tally, error) {
	data, err := readValue(db, tallyKey(id))
	if err != nil || data == nil {
		return nil, err
	}
	tally := new(Tally)
	if err := rlp.DecodeBytes(data, tally); err != nil {
		return nil, err
	}
	return tally, nil
}

func writeTally(db ethdb.KeyValueWriter, id ProposalID, tally *Tally) error {
	data, err := rlp.EncodeToBytes(tally)
	if err != nil {
		return err
	}
	return db.Put(tallyKey(id), data)
}

func hasVoteRecord(db ethdb.KeyValueReader, id ProposalID, voter common.Address) (bool, error) {
	return db.Has(voteKey(id, voter))
}

func writeVoteRecord(db ethdb.KeyValueWriter, id ProposalID, voter common.Address) error {
	return db.Put(voteKey(id, voter), voteMarker)
}
