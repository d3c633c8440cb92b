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
	"context"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"golang.org/x/sync/errgroup"
)

func TestGovernor_ConcurrentVotesSameVoter(t *testing.T) {
	gov, _, _ := newTestGovernor(t, nil)
	id, _ := gov.Propose(django, uint256.NewInt(100), 10)

	var (
		eg        errgroup.Group
		succeeded atomic.Int32
		duplicate atomic.Int32
	)
	for i := 0; i < 32; i++ {
		kind := VoteFor
		if i%2 == 1 {
			kind = VoteAgainst
		}
		eg.Go(func() error {
			switch err := gov.Vote(context.Background(), alice, id, kind); err {
			case nil:
				succeeded.Add(1)
			case ErrAlreadyVoted:
				duplicate.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if succeeded.Load() != 1 || duplicate.Load() != 31 {
		t.Fatalf("expected 1 success and 31 duplicates, got %d/%d", succeeded.Load(), duplicate.Load())
	}
	tally, _ := gov.GetTally(id)
	if tally.Total() != 100 {
		t.Errorf("expected exactly one weight contribution, got %+v", tally)
	}
}

func TestGovernor_ConcurrentVotesManyVoters(t *testing.T) {
	gov, oracle, _ := newTestGovernor(t, nil)
	oracle.supply = uint256.NewInt(100)
	voters := make([]common.Address, 60)
	for i := range voters {
		voters[i] = common.BigToAddress(uint256.NewInt(uint64(1000 + i)).ToBig())
		oracle.SetBalance(voters[i], 1)
	}
	id, _ := gov.Propose(django, uint256.NewInt(100), 10)

	var eg errgroup.Group
	for i, voter := range voters {
		kind := VoteFor
		if i%3 == 0 {
			kind = VoteAgainst
		}
		voter := voter
		eg.Go(func() error {
			return gov.Vote(context.Background(), voter, id, kind)
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tally, _ := gov.GetTally(id)
	if tally.For != 40 || tally.Against != 20 {
		t.Errorf("expected tally 40/20, got %d/%d", tally.For, tally.Against)
	}
}

func TestGovernor_ConcurrentExecute(t *testing.T) {
	gov, _, _ := newTestGovernor(t, nil)
	id, _ := gov.Propose(django, uint256.NewInt(100), 10)
	gov.Vote(context.Background(), alice, id, VoteFor)

	var (
		eg        errgroup.Group
		succeeded atomic.Int32
	)
	for i := 0; i < 16; i++ {
		eg.Go(func() error {
			switch err := gov.Execute(id); err {
			case nil:
				succeeded.Add(1)
			case ErrProposalAlreadyExecuted:
			default:
				return err
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if succeeded.Load() != 1 {
		t.Errorf("expected exactly one execution, got %d", succeeded.Load())
	}
}

func TestGovernor_ConcurrentPropose(t *testing.T) {
	gov, _, _ := newTestGovernor(t, nil)

	const n = 20
	ids := make([]ProposalID, n)
	var eg errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			id, err := gov.Propose(django, uint256.NewInt(uint64(i+1)), 10)
			ids[i] = id
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := make(map[ProposalID]bool)
	for _, id := range ids {
		if id >= n || seen[id] {
			t.Fatalf("ids are not a permutation of 0..%d: %v", n-1, ids)
		}
		seen[id] = true
	}
	if next := gov.NextProposalID(); next != n {
		t.Errorf("expected next id %d, got %d", n, next)
	}
}
