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
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/vampik33/Investment-dao/governance"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	return app.Run(append([]string{"daogov", "--verbosity", "0"}, args...))
}

func TestLifecycle(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := crypto.PubkeyToAddress(key.PublicKey)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "daogov.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
quorum = 50

[oracle]
total_supply = "100"

[oracle.balances]
"0x00000000000000000000000000000000000a11ce" = "30"
"`+signer.Hex()+`" = "40"
"0x0000000000000000000000000000000000000b0b" = "30"
`), 0o600))
	base := []string{"--config", cfgPath, "--datadir", filepath.Join(dir, "data")}
	with := func(args ...string) []string { return append(append([]string{}, base...), args...) }

	require.NoError(t, run(t, with("propose", "--to", "0x000000000000000000000000000000000000d7a9", "--amount", "500", "--duration", "1h")...))
	require.NoError(t, run(t, with("vote", "--id", "0", "--vote", "for", "--from", "0x00000000000000000000000000000000000a11ce")...))
	require.ErrorIs(t, run(t, with("vote", "--id", "0", "--vote", "for", "--from", "0x00000000000000000000000000000000000a11ce")...), governance.ErrAlreadyVoted)
	require.ErrorIs(t, run(t, with("execute", "--id", "0")...), governance.ErrQuorumNotReached)

	require.NoError(t, run(t, with("vote", "--id", "0", "--vote", "for", "--key", hex.EncodeToString(crypto.FromECDSA(key)))...))
	require.NoError(t, run(t, with("vote", "--id", "0", "--vote", "against", "--from", "0x0000000000000000000000000000000000000b0b")...))
	require.NoError(t, run(t, with("show", "--id", "0")...))
	require.NoError(t, run(t, with("list")...))
	require.NoError(t, run(t, with("execute", "--id", "0")...))
	require.ErrorIs(t, run(t, with("execute", "--id", "0")...), governance.ErrProposalAlreadyExecuted)
	require.NoError(t, run(t, with("status")...))
}

func TestInvalidArguments(t *testing.T) {
	base := []string{"--db.engine", "memory"}
	with := func(args ...string) []string { return append(append([]string{}, base...), args...) }

	require.ErrorIs(t, run(t, with("propose", "--to", "0x000000000000000000000000000000000000d7a9", "--amount", "0", "--duration", "1h")...), governance.ErrAmountShouldNotBeZero)
	require.ErrorIs(t, run(t, with("propose", "--to", "0x000000000000000000000000000000000000d7a9", "--amount", "5", "--duration", "10ms")...), governance.ErrDuration)
	require.ErrorIs(t, run(t, with("vote", "--id", "0", "--vote", "maybe", "--from", "0x000000000000000000000000000000000000d7a9")...), governance.ErrInvalidVoteType)
	require.ErrorIs(t, run(t, append([]string{"--quorum", "101"}, with("status")...)...), governance.ErrInvalidQuorum)
	require.ErrorIs(t, run(t, with("show", "--id", "3")...), governance.ErrProposalNotFound)
}
