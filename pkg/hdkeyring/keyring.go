// Package hdkeyring derives an ordered, append-only list of Ethereum
// accounts from a single BIP39 mnemonic.
//
// Accounts are the non-hardened children of the node found at the keyring's
// HD path, the i-th account being child i. Besides plain sequential
// derivation, accounts can be added until their addresses cover a set of
// leading bytes or until one falls into a range of leading bytes. Every
// probed child is kept so that the i-th account is always child i, and the
// list can be regenerated from the serialized state alone.
//
// Signing is delegated to a keyring.SimpleKeyring holding the derived key
// pairs. Private keys are never returned.
package hdkeyring

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/tdex-network/hd-keyring/pkg/ethaddress"
	"github.com/tdex-network/hd-keyring/pkg/keyring"
	"github.com/tdex-network/hd-keyring/pkg/wallet"
)

// Keyring is an HD keyring. All methods are safe for concurrent use; each
// call returns only once its changes to the account list are complete.
type Keyring struct {
	lock  sync.Mutex
	state *state
}

// New returns a keyring configured with the given options, see Deserialize.
func New(ctx context.Context, opts Opts) (*Keyring, error) {
	k := &Keyring{state: newState(Opts{})}
	if _, err := k.Deserialize(ctx, opts); err != nil {
		return nil, err
	}
	return k, nil
}

// Type implements keyring.Keyring
func (k *Keyring) Type() string {
	return Type
}

// HasAccount returns whether the address is one of the derived accounts
func (k *Keyring) HasAccount(addr common.Address) bool {
	return k.signer().HasAccount(addr)
}

// Serialize returns the state needed to regenerate the keyring.
func (k *Keyring) Serialize() SerializedState {
	k.lock.Lock()
	defer k.lock.Unlock()

	return SerializedState{
		Mnemonic:         k.state.mnemonic,
		NumberOfAccounts: len(k.state.accounts),
		HDPath:           k.state.hdPath,
	}
}

// Deserialize wipes the keyring and configures it from scratch: the root
// node is initialized if a mnemonic is given, then either NumberOfAccounts,
// BytePrefixes or ByteRange (the first set, in this order) triggers an
// initial batch of accounts, whose addresses are returned. If anything
// fails, the keyring is left as it was.
func (k *Keyring) Deserialize(ctx context.Context, opts Opts) ([]string, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	next := newState(opts)
	if opts.Mnemonic != "" {
		root, err := next.newRoot(opts.Mnemonic)
		if err != nil {
			return nil, err
		}
		next.mnemonic, next.root = opts.Mnemonic, root
	}

	var (
		accounts []string
		err      error
	)
	switch {
	case opts.NumberOfAccounts > 0:
		accounts, err = next.addAccounts(ctx, opts.NumberOfAccounts)
	case opts.BytePrefixes != nil:
		accounts, err = next.addAccountsWithPrefixes(ctx, opts.BytePrefixes)
	case opts.ByteRange != nil:
		accounts, err = next.addAccountsWithByteRange(ctx, *opts.ByteRange)
	default:
		accounts = []string{}
	}
	if err != nil {
		return nil, err
	}

	k.lock.Lock()
	defer k.lock.Unlock()

	k.state = next
	return accounts, nil
}

// AddAccounts derives the next numberOfAccounts accounts and returns their
// addresses. A zero value means one account. A mnemonic is generated if the
// keyring has none yet.
func (k *Keyring) AddAccounts(
	ctx context.Context, numberOfAccounts int,
) ([]string, error) {
	if numberOfAccounts < 0 {
		return nil, ErrInvalidNumberOfAccounts
	}
	if numberOfAccounts == 0 {
		numberOfAccounts = 1
	}

	k.lock.Lock()
	defer k.lock.Unlock()

	return k.state.addAccounts(ctx, numberOfAccounts)
}

// AddAccountsWithPrefixes derives accounts until, for every given prefix,
// at least one of them has an address starting with it. Prefixes are
// 2 hex digits strings, DefaultBytePrefixes is used if none is given. All
// derived accounts are kept and returned, matching or not.
func (k *Keyring) AddAccountsWithPrefixes(
	ctx context.Context, prefixes []string,
) ([]string, error) {
	if _, err := parsePrefixes(prefixes); err != nil {
		return nil, err
	}

	k.lock.Lock()
	defer k.lock.Unlock()

	return k.state.addAccountsWithPrefixes(ctx, prefixes)
}

// AddAccountsWithByteRange derives accounts until the last one has an
// address whose leading byte is in the given inclusive range,
// DefaultByteRange if zero. All derived accounts are kept and returned.
func (k *Keyring) AddAccountsWithByteRange(
	ctx context.Context, byteRange ByteRange,
) ([]string, error) {
	if !byteRange.IsZero() {
		if _, _, err := byteRange.bounds(); err != nil {
			return nil, err
		}
	}

	k.lock.Lock()
	defer k.lock.Unlock()

	return k.state.addAccountsWithByteRange(ctx, byteRange)
}

// GetAccounts implements keyring.Keyring
func (k *Keyring) GetAccounts() []string {
	k.lock.Lock()
	defer k.lock.Unlock()

	accounts := make([]string, 0, len(k.state.accounts))
	for _, addr := range k.state.accounts {
		accounts = append(accounts, k.state.normalize(addr))
	}
	return accounts
}

// SignTransaction implements keyring.SigningCapability
func (k *Keyring) SignTransaction(
	addr common.Address, tx *types.Transaction, chainID *big.Int,
) (*types.Transaction, error) {
	return k.signer().SignTransaction(addr, tx, chainID)
}

// SignPersonalMessage implements keyring.SigningCapability
func (k *Keyring) SignPersonalMessage(
	addr common.Address, msg []byte,
) ([]byte, error) {
	return k.signer().SignPersonalMessage(addr, msg)
}

func (k *Keyring) signer() *keyring.SimpleKeyring {
	k.lock.Lock()
	defer k.lock.Unlock()

	return k.state.signer
}

// state is everything Deserialize resets. It is not safe for concurrent use.
type state struct {
	mnemonic       string
	hdPath         string
	root           *wallet.Node
	accounts       []common.Address
	signer         *keyring.SimpleKeyring
	maxDerivations int
	normalize      ethaddress.Normalizer
}

func newState(opts Opts) *state {
	hdPath := opts.HDPath
	if hdPath == "" {
		hdPath = DefaultHDPath
	}
	maxDerivations := opts.MaxDerivations
	if maxDerivations == 0 {
		maxDerivations = DefaultMaxDerivations
	}
	normalize := opts.Normalizer
	if normalize == nil {
		normalize = ethaddress.Lowercase
	}

	return &state{
		hdPath:         hdPath,
		accounts:       make([]common.Address, 0),
		signer:         keyring.NewSimpleKeyring(normalize),
		maxDerivations: maxDerivations,
		normalize:      normalize,
	}
}

type derivedAccount struct {
	address    common.Address
	privateKey *btcec.PrivateKey
}

// batch collects the accounts derived by a single call. Nothing is visible
// in the state until commit.
type batch struct {
	mnemonic string
	root     *wallet.Node
	start    int
	accounts []derivedAccount
}

func (s *state) newRoot(mnemonic string) (*wallet.Node, error) {
	return wallet.NewRootNode(wallet.NewRootNodeOpts{
		Mnemonic:       mnemonic,
		DerivationPath: s.hdPath,
	})
}

// newBatch starts a batch from the current end of the account list,
// generating a mnemonic if the root node is missing.
func (s *state) newBatch() (*batch, error) {
	b := &batch{
		mnemonic: s.mnemonic,
		root:     s.root,
		start:    len(s.accounts),
	}
	if b.root != nil {
		return b, nil
	}

	mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{})
	if err != nil {
		return nil, err
	}
	root, err := s.newRoot(mnemonic)
	if err != nil {
		return nil, err
	}
	b.mnemonic, b.root = mnemonic, root
	return b, nil
}

// next derives the child following the last one of the batch.
func (b *batch) next() (derivedAccount, error) {
	index := b.start + len(b.accounts)
	if index > wallet.MaxNonHardenedIndex {
		return derivedAccount{}, wallet.ErrOutOfRangeChildIndex
	}

	child, err := b.root.DeriveChild(uint32(index))
	if err != nil {
		return derivedAccount{}, err
	}
	privateKey, publicKey, err := child.KeyPair()
	if err != nil {
		return derivedAccount{}, err
	}
	addr, err := ethaddress.FromPublicKey(publicKey)
	if err != nil {
		return derivedAccount{}, err
	}

	account := derivedAccount{addr, privateKey}
	b.accounts = append(b.accounts, account)
	return account, nil
}

// commit appends the batch to the account list and hands the key pairs to
// the signer, then returns the normalized addresses of the batch.
func (s *state) commit(b *batch) ([]string, error) {
	for _, a := range b.accounts {
		if _, err := s.signer.AddKey(a.privateKey); err != nil {
			return nil, err
		}
	}

	if s.root == nil {
		s.mnemonic, s.root = b.mnemonic, b.root
	}

	addresses := make([]string, 0, len(b.accounts))
	for _, a := range b.accounts {
		s.accounts = append(s.accounts, a.address)
		addresses = append(addresses, s.normalize(a.address))
	}
	return addresses, nil
}

func (s *state) addAccounts(
	ctx context.Context, numberOfAccounts int,
) ([]string, error) {
	b, err := s.newBatch()
	if err != nil {
		return nil, err
	}

	for i := 0; i < numberOfAccounts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := b.next(); err != nil {
			return nil, err
		}
	}

	return s.commit(b)
}

func (s *state) addAccountsWithPrefixes(
	ctx context.Context, prefixes []string,
) ([]string, error) {
	pending, err := parsePrefixes(prefixes)
	if err != nil {
		return nil, err
	}
	b, err := s.newBatch()
	if err != nil {
		return nil, err
	}

	for len(pending) > 0 {
		if len(b.accounts) >= s.maxDerivations {
			return nil, fmt.Errorf(
				"%w: %d prefixes not found after %d derivations",
				ErrSearchExhausted, len(pending), len(b.accounts),
			)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		account, err := b.next()
		if err != nil {
			return nil, err
		}
		delete(pending, ethaddress.LeadingByte(account.address))
	}

	return s.commit(b)
}

func (s *state) addAccountsWithByteRange(
	ctx context.Context, byteRange ByteRange,
) ([]string, error) {
	if byteRange.IsZero() {
		byteRange = DefaultByteRange()
	}
	start, end, err := byteRange.bounds()
	if err != nil {
		return nil, err
	}
	b, err := s.newBatch()
	if err != nil {
		return nil, err
	}

	for {
		if len(b.accounts) >= s.maxDerivations {
			return nil, fmt.Errorf(
				"%w: no leading byte in [%s, %s] after %d derivations",
				ErrSearchExhausted, byteRange.Start, byteRange.End, len(b.accounts),
			)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		account, err := b.next()
		if err != nil {
			return nil, err
		}
		if lead := ethaddress.LeadingByte(account.address); lead >= start && lead <= end {
			break
		}
	}

	return s.commit(b)
}
