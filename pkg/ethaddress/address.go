// Package ethaddress turns secp256k1 public keys into Ethereum addresses and
// renders them in a canonical textual form.
package ethaddress

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	// ErrNullPublicKey ...
	ErrNullPublicKey = errors.New("public key must not be null")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address must be a 20 byte hex string")
	// ErrUnknownFormat ...
	ErrUnknownFormat = errors.New("unknown address format")
)

const (
	// LowercaseFormat renders addresses as 0x-prefixed lowercase hex
	LowercaseFormat = "lowercase"
	// ChecksumFormat renders addresses with the EIP-55 mixed-case checksum
	ChecksumFormat = "checksum"
)

// Normalizer maps a raw address to its textual representation. The same
// address must always map to the same string.
type Normalizer func(addr common.Address) string

// Lowercase renders the address as 0x followed by 40 lowercase hex digits.
func Lowercase(addr common.Address) string {
	return "0x" + hex.EncodeToString(addr.Bytes())
}

// Checksum renders the address in EIP-55 mixed-case checksum encoding.
func Checksum(addr common.Address) string {
	return addr.Hex()
}

// NormalizerForFormat returns the Normalizer registered for the given format
// name.
func NormalizerForFormat(format string) (Normalizer, error) {
	switch strings.ToLower(format) {
	case "", LowercaseFormat:
		return Lowercase, nil
	case ChecksumFormat:
		return Checksum, nil
	default:
		return nil, ErrUnknownFormat
	}
}

// FromPublicKey returns the address of the public key, that is the last 20
// bytes of the Keccak-256 hash of its uncompressed serialization, prefix
// byte excluded.
func FromPublicKey(pubkey *btcec.PublicKey) (common.Address, error) {
	if pubkey == nil {
		return common.Address{}, ErrNullPublicKey
	}
	hash := crypto.Keccak256(pubkey.SerializeUncompressed()[1:])
	return common.BytesToAddress(hash[12:]), nil
}

// Parse accepts an address with or without 0x prefix, in any case.
func Parse(str string) (common.Address, error) {
	if !common.IsHexAddress(str) {
		return common.Address{}, ErrInvalidAddress
	}
	return common.HexToAddress(str), nil
}

// LeadingByte returns the first byte of the address.
func LeadingByte(addr common.Address) byte {
	return addr[0]
}
