package hdkeyring

import (
	"encoding/hex"
	"strings"

	"github.com/tdex-network/hd-keyring/pkg/ethaddress"
	"github.com/tdex-network/hd-keyring/pkg/wallet"
)

const (
	// Type identifies HD keyrings among the variants a host may register.
	Type = "HD Key Tree"
	// DefaultHDPath is the derivation path template accounts are children of.
	DefaultHDPath = wallet.DefaultDerivationPath
	// DefaultMaxDerivations is the number of children a prefix or byte range
	// search probes before giving up.
	DefaultMaxDerivations = 1 << 16
)

// DefaultBytePrefixes returns the leading bytes targeted by
// AddAccountsWithPrefixes when none are given.
func DefaultBytePrefixes() []string {
	return []string{
		"00", "0a", "0b", "0c",
		"1a", "2a", "3a",
		"1b", "2b", "3b",
		"1c", "2c", "3c",
	}
}

// DefaultByteRange returns the range used by AddAccountsWithByteRange when
// none is given.
func DefaultByteRange() ByteRange {
	return ByteRange{Start: "00", End: "81"}
}

// ByteRange is an inclusive range of address leading bytes, each bound
// being a 2 hex digits string.
type ByteRange struct {
	Start string
	End   string
}

// IsZero returns whether neither bound is set
func (r ByteRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

func (r ByteRange) bounds() (byte, byte, error) {
	start, err := parseByte(r.Start)
	if err != nil {
		return 0, 0, ErrInvalidByteRange
	}
	end, err := parseByte(r.End)
	if err != nil {
		return 0, 0, ErrInvalidByteRange
	}
	if start > end {
		return 0, 0, ErrInvalidByteRange
	}
	return start, end, nil
}

// Opts is the struct given to New and Deserialize. At most one of
// NumberOfAccounts, BytePrefixes and ByteRange is honored, in this order.
type Opts struct {
	// Mnemonic, if set, initializes the root node right away.
	Mnemonic string
	// HDPath defaults to DefaultHDPath.
	HDPath string
	// NumberOfAccounts triggers the sequential derivation of that many
	// accounts.
	NumberOfAccounts int
	// BytePrefixes, if not nil, triggers a prefix set derivation. An empty
	// non-nil list targets DefaultBytePrefixes.
	BytePrefixes []string
	// ByteRange, if not nil, triggers a byte range derivation. A zero range
	// means DefaultByteRange.
	ByteRange *ByteRange
	// MaxDerivations defaults to DefaultMaxDerivations.
	MaxDerivations int
	// Normalizer defaults to ethaddress.Lowercase.
	Normalizer ethaddress.Normalizer
}

func (o Opts) validate() error {
	if o.HDPath != "" {
		if _, err := wallet.ParseDerivationPath(o.HDPath); err != nil {
			return err
		}
	}
	if o.NumberOfAccounts < 0 {
		return ErrInvalidNumberOfAccounts
	}
	if o.MaxDerivations < 0 {
		return ErrInvalidMaxDerivations
	}
	if o.NumberOfAccounts > 0 {
		return nil
	}
	if o.BytePrefixes != nil {
		_, err := parsePrefixes(o.BytePrefixes)
		return err
	}
	if o.ByteRange != nil && !o.ByteRange.IsZero() {
		_, _, err := o.ByteRange.bounds()
		return err
	}
	return nil
}

// SerializedState is the only durable artifact of a keyring. Deserializing
// it regenerates the same accounts.
type SerializedState struct {
	Mnemonic         string `json:"mnemonic"`
	NumberOfAccounts int    `json:"numberOfAccounts"`
	HDPath           string `json:"hdPath"`
}

// Opts converts the state back into the options that recreate the keyring.
func (s SerializedState) Opts() Opts {
	return Opts{
		Mnemonic:         s.Mnemonic,
		HDPath:           s.HDPath,
		NumberOfAccounts: s.NumberOfAccounts,
	}
}

// parsePrefixes returns the set of targeted leading bytes. Duplicates
// collapse and an empty list means DefaultBytePrefixes.
func parsePrefixes(prefixes []string) (map[byte]struct{}, error) {
	if len(prefixes) <= 0 {
		prefixes = DefaultBytePrefixes()
	}

	targets := make(map[byte]struct{}, len(prefixes))
	for _, p := range prefixes {
		b, err := parseByte(p)
		if err != nil {
			return nil, ErrInvalidBytePrefix
		}
		targets[b] = struct{}{}
	}
	return targets, nil
}

func parseByte(str string) (byte, error) {
	if len(str) != 2 {
		return 0, hex.ErrLength
	}
	buf, err := hex.DecodeString(strings.ToLower(str))
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}
