package dbbadger

import (
	"context"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/tdex-network/hd-keyring/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type vaultRepositoryImpl struct {
	store *badgerhold.Store
}

// NewVaultRepositoryImpl returns a VaultRepository backed by the given store
func NewVaultRepositoryImpl(store *badgerhold.Store) domain.VaultRepository {
	return &vaultRepositoryImpl{store}
}

func (r *vaultRepositoryImpl) AddVault(
	_ context.Context, vault *domain.Vault,
) error {
	if err := r.store.Insert(vault.ID, vault); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrVaultAlreadyExists
		}
		return err
	}
	return nil
}

func (r *vaultRepositoryImpl) GetVault(
	_ context.Context, id string,
) (*domain.Vault, error) {
	var vault domain.Vault
	if err := r.store.Get(id, &vault); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrVaultNotFound
		}
		return nil, err
	}
	return &vault, nil
}

func (r *vaultRepositoryImpl) GetAllVaults(
	_ context.Context,
) ([]domain.Vault, error) {
	var vaults []domain.Vault
	if err := r.store.Find(&vaults, nil); err != nil {
		return nil, err
	}

	sort.SliceStable(vaults, func(i, j int) bool {
		if vaults[i].CreatedAt == vaults[j].CreatedAt {
			return vaults[i].ID < vaults[j].ID
		}
		return vaults[i].CreatedAt < vaults[j].CreatedAt
	})
	return vaults, nil
}

func (r *vaultRepositoryImpl) UpdateVault(
	_ context.Context,
	id string,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	return r.store.Badger().Update(func(tx *badger.Txn) error {
		var vault domain.Vault
		if err := r.store.TxGet(tx, id, &vault); err != nil {
			if err == badgerhold.ErrNotFound {
				return domain.ErrVaultNotFound
			}
			return err
		}

		updatedVault, err := updateFn(&vault)
		if err != nil {
			return err
		}

		return r.store.TxUpdate(tx, id, updatedVault)
	})
}
