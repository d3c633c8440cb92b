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

package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/vampik33/Investment-dao/governance"
	"github.com/vampik33/Investment-dao/internal/config"
	"github.com/vampik33/Investment-dao/stake"
	"github.com/vampik33/Investment-dao/storage"
)

var (
	proposeCommand = &cli.Command{
		Name:   "propose",
		Usage:  "Propose a transfer of treasury funds",
		Action: propose,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "to", Usage: "Recipient address", Required: true},
			&cli.StringFlag{Name: "amount", Usage: "Amount to transfer (decimal or 0x hex)", Required: true},
			&cli.DurationFlag{Name: "duration", Usage: "Length of the voting window", Required: true},
		},
	}
	voteCommand = &cli.Command{
		Name:   "vote",
		Usage:  "Vote on a proposal",
		Action: vote,
		Flags: []cli.Flag{
			idFlag,
			&cli.StringFlag{Name: "vote", Usage: "Vote direction (for, against)", Required: true},
			&cli.StringFlag{Name: "from", Usage: "Voter address"},
			&cli.StringFlag{Name: "key", Usage: "Hex private key; the voter is derived from its signature"},
		},
	}
	executeCommand = &cli.Command{
		Name:   "execute",
		Usage:  "Execute a proposal that reached quorum and majority",
		Action: execute,
		Flags:  []cli.Flag{idFlag},
	}
	showCommand = &cli.Command{
		Name:   "show",
		Usage:  "Print a proposal with its tally and state",
		Action: show,
		Flags:  []cli.Flag{idFlag},
	}
	listCommand = &cli.Command{
		Name:   "list",
		Usage:  "List the proposals open for voting",
		Action: list,
	}
	statusCommand = &cli.Command{
		Name:   "status",
		Usage:  "Print the governor configuration and the next proposal id",
		Action: status,
	}
)

// loadConfig layers the command line flags on top of Load.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String(configFlag.Name))
	if err != nil {
		return nil, err
	}
	if ctx.IsSet(dataDirFlag.Name) {
		cfg.DataDir = ctx.String(dataDirFlag.Name)
	}
	if ctx.IsSet(dbEngineFlag.Name) {
		cfg.Backend = ctx.String(dbEngineFlag.Name)
	}
	if ctx.IsSet(quorumFlag.Name) {
		quorum := ctx.Uint(quorumFlag.Name)
		if quorum > 100 {
			return nil, fmt.Errorf("%w: got %d", governance.ErrInvalidQuorum, quorum)
		}
		cfg.Quorum = uint8(quorum)
	}
	if ctx.IsSet(rpcFlag.Name) {
		cfg.Oracle.RPCURL = ctx.String(rpcFlag.Name)
	}
	if ctx.IsSet(tokenFlag.Name) {
		cfg.Oracle.Token = ctx.String(tokenFlag.Name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// makeGovernor opens the database and oracle and assembles a governor. The
// returned function releases them.
func makeGovernor(ctx *cli.Context) (*governance.Governor, func(), error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(cfg.StorageConfig())
	if err != nil {
		return nil, nil, err
	}
	oracle, closeOracle, err := makeOracle(ctx.Context, cfg)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	gov, err := governance.NewGovernor(cfg.GovernorConfig(), db, oracle, nil)
	if err != nil {
		closeOracle()
		db.Close()
		return nil, nil, err
	}
	return gov, func() {
		gov.Close()
		closeOracle()
		closeDatabase(db)
	}, nil
}

func makeOracle(ctx context.Context, cfg *config.Config) (governance.StakeWeightOracle, func(), error) {
	if cfg.Oracle.RPCURL != "" {
		token, err := cfg.TokenAddress()
		if err != nil {
			return nil, nil, err
		}
		oracle, err := stake.DialERC20Oracle(ctx, cfg.Oracle.RPCURL, token)
		if err != nil {
			return nil, nil, err
		}
		return oracle, oracle.Close, nil
	}
	supply, balances, err := cfg.StaticLedger()
	if err != nil {
		return nil, nil, err
	}
	log.Debug("Using static stake ledger", "supply", supply, "holders", len(balances))
	return stake.NewStaticOracle(supply, balances), func() {}, nil
}

func closeDatabase(db ethdb.KeyValueStore) {
	if err := db.Close(); err != nil {
		log.Error("Failed to close database", "err", err)
	}
}

func propose(ctx *cli.Context) error {
	recipient, err := config.ParseAddress(ctx.String("to"))
	if err != nil {
		return err
	}
	amount, err := config.ParseQuantity(ctx.String("amount"))
	if err != nil {
		return err
	}
	duration := ctx.Duration("duration")
	if duration < time.Second {
		return fmt.Errorf("%w: %v is shorter than one second", governance.ErrDuration, duration)
	}
	gov, release, err := makeGovernor(ctx)
	if err != nil {
		return err
	}
	defer release()

	id, err := gov.Propose(recipient, amount, uint64(duration/time.Second))
	if err != nil {
		return err
	}
	fmt.Printf("Proposal %d created\n", id)
	return nil
}

func vote(ctx *cli.Context) error {
	kind, err := governance.ParseVoteType(strings.ToLower(ctx.String("vote")))
	if err != nil {
		return err
	}
	if ctx.IsSet("from") == ctx.IsSet("key") {
		return fmt.Errorf("exactly one of --from and --key is required")
	}
	gov, release, err := makeGovernor(ctx)
	if err != nil {
		return err
	}
	defer release()

	id := governance.ProposalID(ctx.Uint64(idFlag.Name))
	if ctx.IsSet("key") {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(ctx.String("key"), "0x"))
		if err != nil {
			return fmt.Errorf("invalid key: %w", err)
		}
		sig, err := governance.SignVote(gov.Config().Domain, id, kind, key)
		if err != nil {
			return err
		}
		voter, err := gov.VoteSigned(ctx.Context, id, kind, sig)
		if err != nil {
			return err
		}
		fmt.Printf("Voted %s on proposal %d as %s (signature 0x%s)\n", kind, id, voter.Hex(), hex.EncodeToString(sig))
		return nil
	}
	voter, err := config.ParseAddress(ctx.String("from"))
	if err != nil {
		return err
	}
	if err := gov.Vote(ctx.Context, voter, id, kind); err != nil {
		return err
	}
	fmt.Printf("Voted %s on proposal %d as %s\n", kind, id, voter.Hex())
	return nil
}

func execute(ctx *cli.Context) error {
	gov, release, err := makeGovernor(ctx)
	if err != nil {
		return err
	}
	defer release()

	id := governance.ProposalID(ctx.Uint64(idFlag.Name))
	if err := gov.Execute(id); err != nil {
		return err
	}
	fmt.Printf("Proposal %d executed\n", id)
	return nil
}

func show(ctx *cli.Context) error {
	gov, release, err := makeGovernor(ctx)
	if err != nil {
		return err
	}
	defer release()

	id := governance.ProposalID(ctx.Uint64(idFlag.Name))
	proposal, err := gov.GetProposal(id)
	if err != nil {
		return err
	}
	state, err := gov.State(id)
	if err != nil {
		return err
	}
	tally, err := gov.GetTally(id)
	if err != nil {
		return err
	}
	if tally == nil {
		tally = new(governance.Tally)
	}
	fmt.Printf("Proposal:   %d\n", id)
	fmt.Printf("State:      %s\n", state)
	fmt.Printf("Recipient:  %s\n", proposal.Recipient.Hex())
	fmt.Printf("Amount:     %s\n", proposal.Amount.Dec())
	fmt.Printf("Vote start: %s\n", time.Unix(int64(proposal.VoteStart), 0).UTC().Format(time.RFC3339))
	fmt.Printf("Vote end:   %s\n", time.Unix(int64(proposal.VoteEnd), 0).UTC().Format(time.RFC3339))
	fmt.Printf("For:        %d\n", tally.For)
	fmt.Printf("Against:    %d\n", tally.Against)
	return nil
}

func status(ctx *cli.Context) error {
	gov, release, err := makeGovernor(ctx)
	if err != nil {
		return err
	}
	defer release()

	cfg := gov.Config()
	fmt.Printf("Quorum:                 %d%%\n", cfg.QuorumThreshold)
	fmt.Printf("Execute after vote end: %t\n", cfg.ExecuteAfterVoteEnd)
	fmt.Printf("Signing domain:         %s\n", cfg.Domain.Hex())
	fmt.Printf("Next proposal id:       %d\n", gov.NextProposalID())
	return nil
}

func list(ctx *cli.Context) error {
	gov, release, err := makeGovernor(ctx)
	if err != nil {
		return err
	}
	defer release()

	active, err := gov.ActiveProposals()
	if err != nil {
		return err
	}
	for _, id := range active {
		proposal, err := gov.GetProposal(id)
		if err != nil {
			return err
		}
		fmt.Printf("%d\t%s\t%s\tends %s\n", id, proposal.Recipient.Hex(), proposal.Amount.Dec(),
			time.Unix(int64(proposal.VoteEnd), 0).UTC().Format(time.RFC3339))
	}
	return nil
}
