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
	"fmt"
	"math/bits"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/holiman/uint256"
)

var (
	proposalCounter  = metrics.NewRegisteredCounter("governance/proposals", nil)
	voteCounter      = metrics.NewRegisteredCounter("governance/votes", nil)
	executionCounter = metrics.NewRegisteredCounter("governance/executions", nil)
	rejectionCounter = metrics.NewRegisteredCounter("governance/rejections", nil)
)

// Governor drives the proposal lifecycle: it validates requests, weighs votes
// using the stake oracle and applies the quorum and majority rule on execution.
type Governor struct {
	config Config
	oracle StakeWeightOracle
	clock  Clock

	registry *ProposalRegistry
	tally    *VoteTally

	// locks serialise Vote and Execute on the same proposal
	locks [lockStripes]sync.Mutex

	executedFeed event.Feed
	scope        event.SubscriptionScope

	log log.Logger
}

// NewGovernor creates a governor persisting its state in db. A nil config selects
// DefaultConfig and a nil clock selects SystemClock.
func NewGovernor(config *Config, db ethdb.KeyValueStore, oracle StakeWeightOracle, clock Clock) (*Governor, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if oracle == nil {
		return nil, ErrNoOracle
	}
	if clock == nil {
		clock = SystemClock{}
	}
	registry, err := NewProposalRegistry(db)
	if err != nil {
		return nil, err
	}
	g := &Governor{
		config:   *config,
		oracle:   oracle,
		clock:    clock,
		registry: registry,
		tally:    NewVoteTally(db),
		log:      log.New("module", "governance"),
	}
	g.log.Debug("Governor initialised", "quorum", config.QuorumThreshold,
		"executeAfterVoteEnd", config.ExecuteAfterVoteEnd, "nextProposal", g.registry.NextID())
	return g, nil
}

// Config returns a copy of the governor configuration.
func (g *Governor) Config() Config {
	return g.config
}

func (g *Governor) lock(id ProposalID) *sync.Mutex {
	return &g.locks[uint64(id)%lockStripes]
}

// Propose creates a proposal to send amount to recipient, open for voting from now
// until now+duration.
func (g *Governor) Propose(recipient common.Address, amount *uint256.Int, duration uint64) (ProposalID, error) {
	if amount == nil || amount.IsZero() {
		return 0, ErrAmountShouldNotBeZero
	}
	if duration == 0 {
		return 0, ErrDuration
	}
	now := g.clock.Now()
	voteEnd, carry := bits.Add64(now, duration, 0)
	if carry != 0 {
		return 0, ErrDurationOverflow
	}
	id, err := g.registry.Create(recipient, amount, now, voteEnd)
	if err != nil {
		return 0, fmt.Errorf("failed to store proposal: %w", err)
	}
	proposalCounter.Inc(1)
	g.log.Info("Created proposal", "id", id, "recipient", recipient, "amount", amount, "voteStart", now, "voteEnd", voteEnd)
	return id, nil
}

// Vote casts the vote of voter on proposal id. The voter's weight is its share of
// the stake asset supply at the time of the call.
func (g *Governor) Vote(ctx context.Context, voter common.Address, id ProposalID, kind VoteType) error {
	if !kind.Valid() {
		return ErrInvalidVoteType
	}
	lock := g.lock(id)
	lock.Lock()
	defer lock.Unlock()

	proposal, err := g.registry.Get(id)
	if err != nil {
		return err
	}
	if proposal.Executed {
		return ErrProposalAlreadyExecuted
	}
	if now := g.clock.Now(); now > proposal.VoteEnd {
		g.log.Debug("Rejected late vote", "id", id, "voter", voter, "now", now, "voteEnd", proposal.VoteEnd)
		return ErrVotePeriodEnded
	}
	// Checked again by RecordVote; doing it here spares an oracle round trip.
	voted, err := g.tally.HasVoted(id, voter)
	if err != nil {
		return err
	}
	if voted {
		return ErrAlreadyVoted
	}
	weight, err := g.voteWeight(ctx, voter)
	if err != nil {
		g.log.Debug("Failed to weigh vote", "id", id, "voter", voter, "err", err)
		return err
	}
	if err := g.tally.RecordVote(id, voter, kind, weight); err != nil {
		return err
	}
	voteCounter.Inc(1)
	g.log.Info("Vote recorded", "id", id, "voter", voter, "vote", kind, "weight", weight)
	return nil
}

// VoteSigned casts a vote on behalf of the account that signed
// VoteDigest(domain, id, kind) with the governor's configured domain.
func (g *Governor) VoteSigned(ctx context.Context, id ProposalID, kind VoteType, sig []byte) (common.Address, error) {
	voter, err := RecoverVoter(g.config.Domain, id, kind, sig)
	if err != nil {
		return common.Address{}, err
	}
	return voter, g.Vote(ctx, voter, id, kind)
}

func (g *Governor) voteWeight(ctx context.Context, voter common.Address) (uint64, error) {
	if reader, ok := g.oracle.(StakeReader); ok {
		balance, supply, err := reader.StakeOf(ctx, voter)
		if err != nil {
			return 0, fmt.Errorf("%w: stake of %s: %w", ErrOracleUnavailable, voter.Hex(), err)
		}
		return VoteWeight(balance, supply)
	}
	balance, err := g.oracle.BalanceOf(ctx, voter)
	if err != nil {
		return 0, fmt.Errorf("%w: balance of %s: %w", ErrOracleUnavailable, voter.Hex(), err)
	}
	supply, err := g.oracle.TotalSupply(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: total supply: %w", ErrOracleUnavailable, err)
	}
	return VoteWeight(balance, supply)
}

// Execute marks proposal id executed if the combined vote weight reaches the
// quorum and the for side strictly outweighs the against side.
func (g *Governor) Execute(id ProposalID) error {
	proposal, err := g.execute(id)
	if err != nil {
		return err
	}
	executionCounter.Inc(1)
	g.log.Info("Proposal executed", "id", id, "recipient", proposal.Recipient, "amount", proposal.Amount)
	g.executedFeed.Send(ExecutedEvent{ID: id, Recipient: proposal.Recipient, Amount: proposal.Amount})
	return nil
}

func (g *Governor) execute(id ProposalID) (*Proposal, error) {
	lock := g.lock(id)
	lock.Lock()
	defer lock.Unlock()

	proposal, err := g.registry.Get(id)
	if err != nil {
		return nil, err
	}
	if proposal.Executed {
		return nil, ErrProposalAlreadyExecuted
	}
	if g.config.ExecuteAfterVoteEnd && g.clock.Now() <= proposal.VoteEnd {
		return nil, ErrVotingNotClosed
	}
	tally, err := g.tally.GetTally(id)
	if err != nil {
		return nil, err
	}
	if tally == nil || tally.Total() < uint64(g.config.QuorumThreshold) {
		rejectionCounter.Inc(1)
		g.log.Debug("Quorum not reached", "id", id, "quorum", g.config.QuorumThreshold)
		return nil, ErrQuorumNotReached
	}
	// Ties are rejected: the for side needs a strict majority.
	if tally.For <= tally.Against {
		rejectionCounter.Inc(1)
		g.log.Debug("Proposal not accepted", "id", id, "for", tally.For, "against", tally.Against)
		return nil, ErrProposalNotAccepted
	}
	if err := g.registry.MarkExecuted(id); err != nil {
		return nil, err
	}
	proposal.Executed = true
	return proposal, nil
}

// GetProposal returns a copy of proposal id.
func (g *Governor) GetProposal(id ProposalID) (*Proposal, error) {
	return g.registry.Get(id)
}

// NextProposalID returns the id the next successful Propose will assign.
func (g *Governor) NextProposalID() ProposalID {
	return g.registry.NextID()
}

// GetTally returns the vote tally of proposal id, nil if nobody voted yet.
func (g *Governor) GetTally(id ProposalID) (*Tally, error) {
	if _, err := g.registry.Get(id); err != nil {
		return nil, err
	}
	return g.tally.GetTally(id)
}

// HasVoted reports whether voter already voted on proposal id.
func (g *Governor) HasVoted(id ProposalID, voter common.Address) (bool, error) {
	return g.tally.HasVoted(id, voter)
}

// State returns the lifecycle state of proposal id at the current time.
func (g *Governor) State(id ProposalID) (ProposalState, error) {
	proposal, err := g.registry.Get(id)
	if err != nil {
		return 0, err
	}
	return proposal.StateAt(g.clock.Now()), nil
}

// ActiveProposals returns the ids of the proposals currently open for voting.
func (g *Governor) ActiveProposals() ([]ProposalID, error) {
	var (
		now    = g.clock.Now()
		active []ProposalID
	)
	err := g.registry.Iterate(func(id ProposalID, proposal *Proposal) bool {
		if proposal.StateAt(now) == StateActive {
			active = append(active, id)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return active, nil
}

// SubscribeExecuted registers a subscription for executed proposals.
//
// Delivery is synchronous: Execute returns only after every subscribed channel
// has accepted the event, so subscribers must keep draining ch. Unsubscribing,
// or closing the governor, releases an Execute blocked on delivery. The
// proposal itself is already marked executed at that point.
func (g *Governor) SubscribeExecuted(ch chan<- ExecutedEvent) event.Subscription {
	return g.scope.Track(g.executedFeed.Subscribe(ch))
}

// Close terminates all event subscriptions. The underlying database is owned by
// the caller and left open.
func (g *Governor) Close() {
	g.scope.Close()
}
