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
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
)

const lockStripes = 64

// VoteTally owns the per-proposal vote accumulators and the vote records that
// enforce one vote per voter per proposal.
type VoteTally struct {
	db    ethdb.KeyValueStore
	locks [lockStripes]sync.Mutex // striped by proposal id
}

// NewVoteTally creates a vote tally on top of db.
func NewVoteTally(db ethdb.KeyValueStore) *VoteTally {
	return &VoteTally{db: db}
}

// RecordVote inserts the vote record of voter and adds weight to the matching side
// of the proposal's tally, creating the tally on first use. The duplicate check,
// the record and the tally update happen under the proposal's lock and are
// committed in a single batch.
func (t *VoteTally) RecordVote(id ProposalID, voter common.Address, kind VoteType, weight uint64) error {
	if !kind.Valid() {
		return ErrInvalidVoteType
	}
	lock := &t.locks[uint64(id)%lockStripes]
	lock.Lock()
	defer lock.Unlock()

	voted, err := hasVoteRecord(t.db, id, voter)
	if err != nil {
		return err
	}
	if voted {
		return ErrAlreadyVoted
	}
	tally, err := readTally(t.db, id)
	if err != nil {
		return err
	}
	if tally == nil {
		tally = new(Tally)
	}
	switch kind {
	case VoteFor:
		if tally.For+weight < tally.For {
			return ErrTallyOverflow
		}
		tally.For += weight
	case VoteAgainst:
		if tally.Against+weight < tally.Against {
			return ErrTallyOverflow
		}
		tally.Against += weight
	}
	batch := t.db.NewBatch()
	if err := writeVoteRecord(batch, id, voter); err != nil {
		return err
	}
	if err := writeTally(batch, id, tally); err != nil {
		return err
	}
	return batch.Write()
}

// GetTally returns the tally of a proposal, or nil if no vote was ever cast on it.
func (t *VoteTally) GetTally(id ProposalID) (*Tally, error) {
	return readTally(t.db, id)
}

// HasVoted reports whether voter already has a vote record for the proposal.
func (t *VoteTally) HasVoted(id ProposalID, voter common.Address) (bool, error) {
	return hasVoteRecord(t.db, id, voter)
}
