package keyring

import (
	"crypto/ecdsa"
	"math/big"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tdex-network/hd-keyring/pkg/ethaddress"
)

// SimpleKeyringType identifies keyrings made of independent key pairs.
const SimpleKeyringType = "Simple Key Pair"

// SimpleKeyring holds a list of key pairs indexed by address, in insertion
// order, and signs on their behalf.
type SimpleKeyring struct {
	lock      sync.RWMutex
	keys      map[common.Address]*ecdsa.PrivateKey
	accounts  []common.Address
	normalize ethaddress.Normalizer
}

// NewSimpleKeyring returns an empty keyring rendering addresses with the
// given normalizer, ethaddress.Lowercase if nil.
func NewSimpleKeyring(normalize ethaddress.Normalizer) *SimpleKeyring {
	if normalize == nil {
		normalize = ethaddress.Lowercase
	}
	return &SimpleKeyring{
		keys:      make(map[common.Address]*ecdsa.PrivateKey),
		accounts:  make([]common.Address, 0),
		normalize: normalize,
	}
}

// Type implements Keyring
func (k *SimpleKeyring) Type() string {
	return SimpleKeyringType
}

// AddKey adds the key pair to the keyring and returns its address. Adding a
// key twice is a no-op.
func (k *SimpleKeyring) AddKey(privateKey *btcec.PrivateKey) (common.Address, error) {
	if privateKey == nil {
		return common.Address{}, ErrNullPrivateKey
	}

	addr, err := ethaddress.FromPublicKey(privateKey.PubKey())
	if err != nil {
		return common.Address{}, err
	}
	key, err := crypto.ToECDSA(privateKey.Serialize())
	if err != nil {
		return common.Address{}, err
	}

	k.lock.Lock()
	defer k.lock.Unlock()

	if _, ok := k.keys[addr]; ok {
		return addr, nil
	}
	k.keys[addr] = key
	k.accounts = append(k.accounts, addr)
	return addr, nil
}

// HasAccount returns whether the keyring holds the key of the address
func (k *SimpleKeyring) HasAccount(addr common.Address) bool {
	k.lock.RLock()
	defer k.lock.RUnlock()

	_, ok := k.keys[addr]
	return ok
}

// GetAccounts implements Keyring
func (k *SimpleKeyring) GetAccounts() []string {
	k.lock.RLock()
	defer k.lock.RUnlock()

	accounts := make([]string, 0, len(k.accounts))
	for _, addr := range k.accounts {
		accounts = append(accounts, k.normalize(addr))
	}
	return accounts
}

// SignTransaction implements SigningCapability
func (k *SimpleKeyring) SignTransaction(
	addr common.Address, tx *types.Transaction, chainID *big.Int,
) (*types.Transaction, error) {
	if tx == nil {
		return nil, ErrNullTransaction
	}
	if chainID == nil {
		return nil, ErrNullChainID
	}
	key, err := k.getKey(addr)
	if err != nil {
		return nil, err
	}

	return types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
}

// SignPersonalMessage implements SigningCapability
func (k *SimpleKeyring) SignPersonalMessage(
	addr common.Address, msg []byte,
) ([]byte, error) {
	key, err := k.getKey(addr)
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

func (k *SimpleKeyring) getKey(addr common.Address) (*ecdsa.PrivateKey, error) {
	k.lock.RLock()
	defer k.lock.RUnlock()

	key, ok := k.keys[addr]
	if !ok {
		return nil, ErrUnknownAccount
	}
	return key, nil
}
