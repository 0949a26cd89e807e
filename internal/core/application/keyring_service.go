package application

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/hd-keyring/internal/core/domain"
	"github.com/tdex-network/hd-keyring/internal/core/ports"
	"github.com/tdex-network/hd-keyring/pkg/ethaddress"
	"github.com/tdex-network/hd-keyring/pkg/hdkeyring"
	"github.com/tdex-network/hd-keyring/pkg/wallet"
)

type KeyringService interface {
	GenSeed(ctx context.Context) (string, error)
	CreateKeyring(
		ctx context.Context, opts CreateKeyringOpts,
	) (*KeyringInfo, []string, error)
	UnlockKeyring(ctx context.Context, id, passphrase string) error
	LockKeyring(ctx context.Context, id string) error
	ChangePassphrase(
		ctx context.Context, id, currentPassphrase, newPassphrase string,
	) error
	ListKeyrings(ctx context.Context) ([]KeyringInfo, error)
	GetAccounts(ctx context.Context, id string) ([]string, error)
	AddAccounts(
		ctx context.Context, id string, numberOfAccounts int,
	) ([]string, error)
	AddAccountsWithPrefixes(
		ctx context.Context, id string, prefixes []string,
	) ([]string, error)
	AddAccountsWithByteRange(
		ctx context.Context, id string, byteRange hdkeyring.ByteRange,
	) ([]string, error)
	SignPersonalMessage(
		ctx context.Context, id, address string, msg []byte,
	) ([]byte, error)
	SignTransaction(
		ctx context.Context,
		id, address string,
		tx *types.Transaction,
		chainID *big.Int,
	) (*types.Transaction, error)
	ExportKeyring(ctx context.Context, id string) (*hdkeyring.SerializedState, error)
}

// unlockedKeyring serializes the operations that grow a keyring with the
// update of its vault.
type unlockedKeyring struct {
	*hdkeyring.Keyring
	lock sync.Mutex
}

type keyringService struct {
	repoManager ports.RepoManager
	cfg         KeyringConfig

	lock     *sync.RWMutex
	keyrings map[string]*unlockedKeyring
}

func NewKeyringService(
	repoManager ports.RepoManager, cfg KeyringConfig,
) KeyringService {
	return newKeyringService(repoManager, cfg)
}

func newKeyringService(
	repoManager ports.RepoManager, cfg KeyringConfig,
) *keyringService {
	if cfg.HDPath == "" {
		cfg.HDPath = hdkeyring.DefaultHDPath
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = ethaddress.Lowercase
	}
	if cfg.CostFactor > 0 {
		domain.EncrypterManager = domain.NewEncrypter(cfg.CostFactor)
	}

	return &keyringService{
		repoManager: repoManager,
		cfg:         cfg,
		lock:        &sync.RWMutex{},
		keyrings:    make(map[string]*unlockedKeyring),
	}
}

func (s *keyringService) GenSeed(_ context.Context) (string, error) {
	return wallet.NewMnemonic(wallet.NewMnemonicOpts{EntropySize: seedEntropySize})
}

func (s *keyringService) CreateKeyring(
	ctx context.Context, opts CreateKeyringOpts,
) (*KeyringInfo, []string, error) {
	if len(opts.Passphrase) <= 0 {
		return nil, nil, ErrNullPassphrase
	}

	mnemonic := opts.Mnemonic
	if mnemonic == "" {
		var err error
		if mnemonic, err = s.GenSeed(ctx); err != nil {
			return nil, nil, err
		}
	}
	if !wallet.IsMnemonicValid(mnemonic) {
		return nil, nil, wallet.ErrInvalidMnemonic
	}
	hdPath := opts.HDPath
	if hdPath == "" {
		hdPath = s.cfg.HDPath
	}

	kr, err := hdkeyring.New(ctx, hdkeyring.Opts{
		Mnemonic:         mnemonic,
		HDPath:           hdPath,
		NumberOfAccounts: opts.NumberOfAccounts,
		BytePrefixes:     opts.BytePrefixes,
		ByteRange:        opts.ByteRange,
		MaxDerivations:   s.cfg.MaxDerivations,
		Normalizer:       s.cfg.Normalizer,
	})
	if err != nil {
		return nil, nil, err
	}

	vault, err := domain.NewVault(domain.NewVaultOpts{
		Name:       opts.Name,
		Mnemonic:   mnemonic,
		Passphrase: opts.Passphrase,
		HDPath:     hdPath,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := vault.SetNumberOfAccounts(kr.Serialize().NumberOfAccounts); err != nil {
		return nil, nil, err
	}

	if err := s.repoManager.VaultRepository().AddVault(ctx, vault); err != nil {
		return nil, nil, err
	}

	s.lock.Lock()
	s.keyrings[vault.ID] = &unlockedKeyring{Keyring: kr}
	s.lock.Unlock()

	log.WithField("keyring", vault.ID).Infof(
		"keyring created with %d accounts", vault.NumberOfAccounts,
	)

	info := newKeyringInfo(*vault, false)
	return &info, kr.GetAccounts(), nil
}

func (s *keyringService) UnlockKeyring(
	ctx context.Context, id, passphrase string,
) error {
	vault, err := s.getVault(ctx, id)
	if err != nil {
		return err
	}

	if _, ok := s.getKeyring(id); ok {
		return nil
	}

	state, err := vault.Unlock(passphrase)
	if err != nil {
		return err
	}
	kr, err := hdkeyring.New(ctx, s.cfg.keyringOpts(*state))
	if err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.keyrings[id]; !ok {
		s.keyrings[id] = &unlockedKeyring{Keyring: kr}
		log.WithField("keyring", id).Info("keyring unlocked")
	}
	return nil
}

func (s *keyringService) LockKeyring(ctx context.Context, id string) error {
	if _, err := s.getVault(ctx, id); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if kr, ok := s.keyrings[id]; ok {
		// wait for any pending growth to be persisted
		kr.lock.Lock()
		delete(s.keyrings, id)
		kr.lock.Unlock()
		log.WithField("keyring", id).Info("keyring locked")
	}
	return nil
}

func (s *keyringService) ChangePassphrase(
	ctx context.Context, id, currentPassphrase, newPassphrase string,
) error {
	if _, err := s.getVault(ctx, id); err != nil {
		return err
	}
	if _, ok := s.getKeyring(id); ok {
		return ErrKeyringMustBeLocked
	}

	return s.repoManager.VaultRepository().UpdateVault(
		ctx,
		id,
		func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.ChangePassphrase(currentPassphrase, newPassphrase); err != nil {
				return nil, err
			}
			return v, nil
		},
	)
}

func (s *keyringService) ListKeyrings(ctx context.Context) ([]KeyringInfo, error) {
	vaults, err := s.repoManager.VaultRepository().GetAllVaults(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(vaults, func(i, j int) bool {
		return vaults[i].CreatedAt < vaults[j].CreatedAt
	})

	infos := make([]KeyringInfo, 0, len(vaults))
	for _, v := range vaults {
		_, unlocked := s.getKeyring(v.ID)
		infos = append(infos, newKeyringInfo(v, !unlocked))
	}
	return infos, nil
}

func (s *keyringService) GetAccounts(
	ctx context.Context, id string,
) ([]string, error) {
	kr, err := s.getUnlockedKeyring(ctx, id)
	if err != nil {
		return nil, err
	}
	return kr.GetAccounts(), nil
}

func (s *keyringService) AddAccounts(
	ctx context.Context, id string, numberOfAccounts int,
) ([]string, error) {
	return s.grow(ctx, id, func(kr *hdkeyring.Keyring) ([]string, error) {
		return kr.AddAccounts(ctx, numberOfAccounts)
	})
}

func (s *keyringService) AddAccountsWithPrefixes(
	ctx context.Context, id string, prefixes []string,
) ([]string, error) {
	return s.grow(ctx, id, func(kr *hdkeyring.Keyring) ([]string, error) {
		return kr.AddAccountsWithPrefixes(ctx, prefixes)
	})
}

func (s *keyringService) AddAccountsWithByteRange(
	ctx context.Context, id string, byteRange hdkeyring.ByteRange,
) ([]string, error) {
	return s.grow(ctx, id, func(kr *hdkeyring.Keyring) ([]string, error) {
		return kr.AddAccountsWithByteRange(ctx, byteRange)
	})
}

func (s *keyringService) SignPersonalMessage(
	ctx context.Context, id, address string, msg []byte,
) ([]byte, error) {
	kr, err := s.getUnlockedKeyring(ctx, id)
	if err != nil {
		return nil, err
	}
	addr, err := s.parseAccount(kr, address)
	if err != nil {
		return nil, err
	}
	return kr.SignPersonalMessage(addr, msg)
}

func (s *keyringService) SignTransaction(
	ctx context.Context,
	id, address string,
	tx *types.Transaction,
	chainID *big.Int,
) (*types.Transaction, error) {
	kr, err := s.getUnlockedKeyring(ctx, id)
	if err != nil {
		return nil, err
	}
	addr, err := s.parseAccount(kr, address)
	if err != nil {
		return nil, err
	}
	return kr.SignTransaction(addr, tx, chainID)
}

func (s *keyringService) ExportKeyring(
	ctx context.Context, id string,
) (*hdkeyring.SerializedState, error) {
	kr, err := s.getUnlockedKeyring(ctx, id)
	if err != nil {
		return nil, err
	}
	state := kr.Serialize()
	return &state, nil
}

// grow runs addFn against the unlocked keyring and stores the new number of
// accounts in its vault.
func (s *keyringService) grow(
	ctx context.Context,
	id string,
	addFn func(kr *hdkeyring.Keyring) ([]string, error),
) ([]string, error) {
	kr, err := s.getUnlockedKeyring(ctx, id)
	if err != nil {
		return nil, err
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	accounts, err := addFn(kr.Keyring)
	if err != nil {
		return nil, err
	}

	numberOfAccounts := kr.Serialize().NumberOfAccounts
	if err := s.repoManager.VaultRepository().UpdateVault(
		ctx,
		id,
		func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.SetNumberOfAccounts(numberOfAccounts); err != nil {
				return nil, err
			}
			return v, nil
		},
	); err != nil {
		log.WithError(err).WithField("keyring", id).Warnf(
			"failed to persist %d accounts", numberOfAccounts,
		)
		return nil, fmt.Errorf("failed to persist new accounts: %w", err)
	}

	log.WithField("keyring", id).Infof("%d accounts added", len(accounts))
	return accounts, nil
}

// parseAccount returns the address only if it belongs to the keyring.
func (s *keyringService) parseAccount(
	kr *unlockedKeyring, address string,
) (common.Address, error) {
	addr, err := ethaddress.Parse(address)
	if err != nil {
		return common.Address{}, err
	}
	if !kr.HasAccount(addr) {
		return common.Address{}, ErrUnknownAccount
	}
	return addr, nil
}

func (s *keyringService) getVault(
	ctx context.Context, id string,
) (*domain.Vault, error) {
	vault, err := s.repoManager.VaultRepository().GetVault(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrVaultNotFound) {
			return nil, ErrKeyringNotFound
		}
		return nil, err
	}
	return vault, nil
}

func (s *keyringService) getKeyring(id string) (*unlockedKeyring, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	kr, ok := s.keyrings[id]
	return kr, ok
}

func (s *keyringService) getUnlockedKeyring(
	ctx context.Context, id string,
) (*unlockedKeyring, error) {
	if kr, ok := s.getKeyring(id); ok {
		return kr, nil
	}
	if _, err := s.getVault(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrKeyringLocked
}
