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
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// ProposalRegistry stores proposal records and owns the id sequence. It performs
// no validation; the governor checks inputs before calling Create.
type ProposalRegistry struct {
	db ethdb.KeyValueStore

	mu   sync.Mutex // guards next
	next ProposalID
}

// NewProposalRegistry creates a registry on top of db, resuming the id sequence
// from whatever was persisted before.
func NewProposalRegistry(db ethdb.KeyValueStore) (*ProposalRegistry, error) {
	next, err := readNextProposalID(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposal id counter: %w", err)
	}
	return &ProposalRegistry{db: db, next: next}, nil
}

// Create stores a new proposal under the next sequential id. The record and the
// advanced counter are written in one batch.
func (r *ProposalRegistry) Create(recipient common.Address, amount *uint256.Int, voteStart, voteEnd uint64) (ProposalID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.next
	proposal := &Proposal{
		Recipient: recipient,
		Amount:    amount.Clone(),
		VoteStart: voteStart,
		VoteEnd:   voteEnd,
	}
	batch := r.db.NewBatch()
	if err := writeProposal(batch, id, proposal); err != nil {
		return 0, err
	}
	if err := writeNextProposalID(batch, id+1); err != nil {
		return 0, err
	}
	if err := batch.Write(); err != nil {
		return 0, err
	}
	r.next = id + 1
	return id, nil
}

// Get returns a copy of the proposal, or ErrProposalNotFound.
func (r *ProposalRegistry) Get(id ProposalID) (*Proposal, error) {
	proposal, err := readProposal(r.db, id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrProposalNotFound
	}
	return proposal, nil
}

// MarkExecuted flips the executed flag of an existing proposal.
func (r *ProposalRegistry) MarkExecuted(id ProposalID) error {
	proposal, err := r.Get(id)
	if err != nil {
		return err
	}
	proposal.Executed = true
	return writeProposal(r.db, id, proposal)
}

// NextID returns the id the next Create call will assign.
func (r *ProposalRegistry) NextID() ProposalID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next
}

// Iterate calls fn for every stored proposal in ascending id order until fn
// returns false.
func (r *ProposalRegistry) Iterate(fn func(ProposalID, *Proposal) bool) error {
	it := r.db.NewIterator(proposalPrefix, nil)
	defer it.Release()

	for it.Next() {
		key := it.Key()
		if len(key) != len(proposalPrefix)+8 {
			continue
		}
		proposal := new(Proposal)
		if err := rlp.DecodeBytes(it.Value(), proposal); err != nil {
			return err
		}
		if !fn(ProposalID(binary.BigEndian.Uint64(key[len(proposalPrefix):])), proposal) {
			break
		}
	}
	return it.Error()
}
