// Package keyring defines the contract shared by every keyring variant and
// provides the generic signing capability they delegate to.
package keyring

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	// ErrNullPrivateKey ...
	ErrNullPrivateKey = errors.New("private key must not be null")
	// ErrNullTransaction ...
	ErrNullTransaction = errors.New("transaction must not be null")
	// ErrNullChainID ...
	ErrNullChainID = errors.New("chain id must not be null")
	// ErrUnknownAccount is returned when asked to sign with an address the
	// keyring does not hold the key for.
	ErrUnknownAccount = errors.New("account not found in keyring")
)

// SigningCapability authorizes transactions and messages with the private
// keys of already derived accounts, without exposing them.
type SigningCapability interface {
	// SignTransaction signs the transaction with the key of the given account
	// using the latest signer for the chain id.
	SignTransaction(
		addr common.Address, tx *types.Transaction, chainID *big.Int,
	) (*types.Transaction, error)
	// SignPersonalMessage returns the 65 bytes [R || S || V] EIP-191
	// signature of msg, V being 27 or 28.
	SignPersonalMessage(addr common.Address, msg []byte) ([]byte, error)
}

// Keyring is implemented by every keyring variant a host can register.
type Keyring interface {
	SigningCapability
	// Type is the static identifier of the keyring variant.
	Type() string
	// GetAccounts returns the normalized addresses held by the keyring.
	GetAccounts() []string
}
