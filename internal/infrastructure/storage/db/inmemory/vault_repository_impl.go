package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tdex-network/hd-keyring/internal/core/domain"
)

// VaultRepositoryImpl represents an in memory storage
type VaultRepositoryImpl struct {
	vaults map[string]domain.Vault
	locker *sync.RWMutex
}

// NewVaultRepositoryImpl returns a new empty VaultRepositoryImpl
func NewVaultRepositoryImpl() domain.VaultRepository {
	return &VaultRepositoryImpl{
		vaults: make(map[string]domain.Vault),
		locker: &sync.RWMutex{},
	}
}

func (r *VaultRepositoryImpl) AddVault(
	_ context.Context, vault *domain.Vault,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if _, ok := r.vaults[vault.ID]; ok {
		return domain.ErrVaultAlreadyExists
	}
	r.vaults[vault.ID] = copyVault(*vault)
	return nil
}

func (r *VaultRepositoryImpl) GetVault(
	_ context.Context, id string,
) (*domain.Vault, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	vault, ok := r.vaults[id]
	if !ok {
		return nil, domain.ErrVaultNotFound
	}
	vault = copyVault(vault)
	return &vault, nil
}

func (r *VaultRepositoryImpl) GetAllVaults(
	_ context.Context,
) ([]domain.Vault, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	vaults := make([]domain.Vault, 0, len(r.vaults))
	for _, v := range r.vaults {
		vaults = append(vaults, copyVault(v))
	}
	sort.SliceStable(vaults, func(i, j int) bool {
		if vaults[i].CreatedAt == vaults[j].CreatedAt {
			return vaults[i].ID < vaults[j].ID
		}
		return vaults[i].CreatedAt < vaults[j].CreatedAt
	})
	return vaults, nil
}

// UpdateVault updates data to the Vault passing an update function
func (r *VaultRepositoryImpl) UpdateVault(
	_ context.Context,
	id string,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	vault, ok := r.vaults[id]
	if !ok {
		return domain.ErrVaultNotFound
	}
	vault = copyVault(vault)

	updatedVault, err := updateFn(&vault)
	if err != nil {
		return err
	}

	r.vaults[id] = copyVault(*updatedVault)
	return nil
}

// copyVault prevents callers from mutating the stored vault through the
// shared passphrase hash slice.
func copyVault(v domain.Vault) domain.Vault {
	v.PassphraseHash = append([]byte(nil), v.PassphraseHash...)
	return v
}
