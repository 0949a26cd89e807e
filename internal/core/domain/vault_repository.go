package domain

import "context"

// VaultRepository is the abstraction for any kind of database intended to
// persist Vaults.
type VaultRepository interface {
	// AddVault persists a new vault, failing with ErrVaultAlreadyExists if
	// its id is taken.
	AddVault(ctx context.Context, vault *Vault) error
	// GetVault returns the vault with the given id or ErrVaultNotFound.
	GetVault(ctx context.Context, id string) (*Vault, error)
	// GetAllVaults returns every stored vault, oldest first.
	GetAllVaults(ctx context.Context) ([]Vault, error)
	// UpdateVault applies updateFn to the vault with the given id and
	// persists the result.
	UpdateVault(
		ctx context.Context,
		id string,
		updateFn func(v *Vault) (*Vault, error),
	) error
}
