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

// Package config loads the daogov configuration. Values are layered with
// increasing priority: built-in defaults, the TOML file, DAOGOV_* environment
// variables and finally command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pelletier/go-toml/v2"

	"github.com/vampik33/Investment-dao/governance"
	"github.com/vampik33/Investment-dao/storage"
)

var (
	ErrInvalidAddress  = errors.New("invalid address")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrMissingToken    = errors.New("stake token address required when an RPC endpoint is set")
)

// Config is the complete daogov configuration
type Config struct {
	DataDir             string       `toml:"datadir"`
	Backend             string       `toml:"backend"`
	Cache               int          `toml:"cache"`
	Handles             int          `toml:"handles"`
	Quorum              uint8        `toml:"quorum"`
	ExecuteAfterVoteEnd bool         `toml:"execute_after_vote_end"`
	Domain              string       `toml:"domain"` // deployment name bound into vote signatures
	Oracle              OracleConfig `toml:"oracle"`
}

// OracleConfig selects the stake weight oracle. With RPCURL set the balances are
// read from the ERC-20 contract at Token, otherwise TotalSupply and Balances form
// a static ledger.
type OracleConfig struct {
	RPCURL      string            `toml:"rpc_url"`
	Token       string            `toml:"token"`
	TotalSupply string            `toml:"total_supply"`
	Balances    map[string]string `toml:"balances"`
}

// Default returns the built-in configuration
func Default() *Config {
	storageCfg := storage.DefaultConfig()
	govCfg := governance.DefaultConfig()
	return &Config{
		DataDir:             storageCfg.DataPath,
		Backend:             storageCfg.Backend,
		Cache:               storageCfg.CacheSize,
		Handles:             storageCfg.Handles,
		Quorum:              govCfg.QuorumThreshold,
		ExecuteAfterVoteEnd: govCfg.ExecuteAfterVoteEnd,
		Domain:              "daogov",
	}
}

// Load builds the configuration from defaults, the optional TOML file at path and
// the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// applyEnv overrides file values with DAOGOV_* environment variables
func applyEnv(cfg *Config) error {
	cfg.DataDir = getEnvOrDefault("DAOGOV_DATADIR", cfg.DataDir)
	cfg.Backend = getEnvOrDefault("DAOGOV_DB_ENGINE", cfg.Backend)
	cfg.Oracle.RPCURL = getEnvOrDefault("DAOGOV_RPC_URL", cfg.Oracle.RPCURL)
	cfg.Oracle.Token = getEnvOrDefault("DAOGOV_TOKEN", cfg.Oracle.Token)
	cfg.Domain = getEnvOrDefault("DAOGOV_DOMAIN", cfg.Domain)
	if v := os.Getenv("DAOGOV_QUORUM"); v != "" {
		quorum, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return fmt.Errorf("DAOGOV_QUORUM: %w", err)
		}
		cfg.Quorum = uint8(quorum)
	}
	return nil
}

// getEnvOrDefault retrieves an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate checks value ranges and that addresses and quantities parse.
func (c *Config) Validate() error {
	if err := c.GovernorConfig().Validate(); err != nil {
		return err
	}
	if c.Oracle.RPCURL != "" {
		if c.Oracle.Token == "" {
			return ErrMissingToken
		}
		if _, err := c.TokenAddress(); err != nil {
			return err
		}
		return nil
	}
	_, _, err := c.StaticLedger()
	return err
}

// GovernorConfig returns the governor part of the configuration. The signing
// domain combines the deployment name with the stake token, if one is set.
func (c *Config) GovernorConfig() *governance.Config {
	var token common.Address
	if common.IsHexAddress(c.Oracle.Token) {
		token = common.HexToAddress(c.Oracle.Token)
	}
	return &governance.Config{
		QuorumThreshold:     c.Quorum,
		ExecuteAfterVoteEnd: c.ExecuteAfterVoteEnd,
		Domain:              governance.NewDomain(c.Domain, token),
	}
}

// StorageConfig returns the database part of the configuration.
func (c *Config) StorageConfig() *storage.Config {
	return &storage.Config{
		Backend:   c.Backend,
		DataPath:  c.DataDir,
		CacheSize: c.Cache,
		Handles:   c.Handles,
	}
}

// TokenAddress parses the stake token address.
func (c *Config) TokenAddress() (common.Address, error) {
	return ParseAddress(c.Oracle.Token)
}

// StaticLedger parses the static total supply and balances.
func (c *Config) StaticLedger() (*uint256.Int, map[common.Address]*uint256.Int, error) {
	supply := new(uint256.Int)
	if c.Oracle.TotalSupply != "" {
		var err error
		if supply, err = ParseQuantity(c.Oracle.TotalSupply); err != nil {
			return nil, nil, fmt.Errorf("total_supply: %w", err)
		}
	}
	balances := make(map[common.Address]*uint256.Int, len(c.Oracle.Balances))
	for account, value := range c.Oracle.Balances {
		addr, err := ParseAddress(account)
		if err != nil {
			return nil, nil, fmt.Errorf("balances: %w", err)
		}
		balance, err := ParseQuantity(value)
		if err != nil {
			return nil, nil, fmt.Errorf("balances[%s]: %w", account, err)
		}
		balances[addr] = balance
	}
	return supply, balances, nil
}

// ParseAddress parses a hex account address.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

// ParseQuantity parses a decimal or 0x-prefixed hex quantity.
func ParseQuantity(s string) (*uint256.Int, error) {
	var (
		v   *uint256.Int
		err error
	)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		v, err = uint256.FromHex(s)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidQuantity, s, err)
	}
	return v, nil
}
