package application

import (
	"github.com/tdex-network/hd-keyring/internal/core/domain"
	"github.com/tdex-network/hd-keyring/pkg/ethaddress"
	"github.com/tdex-network/hd-keyring/pkg/hdkeyring"
)

// KeyringConfig holds the settings shared by all keyrings of the service
type KeyringConfig struct {
	// HDPath is used for keyrings created without an explicit path
	HDPath string
	// MaxDerivations bounds prefix and byte range searches
	MaxDerivations int
	// Normalizer renders the addresses of every keyring
	Normalizer ethaddress.Normalizer
	// CostFactor of the scrypt key derivation that protects mnemonics
	CostFactor int
}

func (c KeyringConfig) keyringOpts(state hdkeyring.SerializedState) hdkeyring.Opts {
	opts := state.Opts()
	opts.MaxDerivations = c.MaxDerivations
	opts.Normalizer = c.Normalizer
	return opts
}

// CreateKeyringOpts is the struct given to CreateKeyring. The mnemonic is
// generated if empty. At most one of NumberOfAccounts, BytePrefixes and
// ByteRange drives the initial derivation, see hdkeyring.Opts.
type CreateKeyringOpts struct {
	Name             string
	Mnemonic         string
	Passphrase       string
	HDPath           string
	NumberOfAccounts int
	BytePrefixes     []string
	ByteRange        *hdkeyring.ByteRange
}

// KeyringInfo describes a stored keyring without exposing its secrets
type KeyringInfo struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	HDPath           string `json:"hdPath"`
	NumberOfAccounts int    `json:"numberOfAccounts"`
	CreatedAt        int64  `json:"createdAt"`
	Locked           bool   `json:"locked"`
}

func newKeyringInfo(v domain.Vault, locked bool) KeyringInfo {
	return KeyringInfo{
		ID:               v.ID,
		Name:             v.Name,
		Type:             hdkeyring.Type,
		HDPath:           v.HDPath,
		NumberOfAccounts: v.NumberOfAccounts,
		CreatedAt:        v.CreatedAt,
		Locked:           locked,
	}
}
