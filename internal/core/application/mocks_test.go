package application_test

import (
	"context"
	"strings"

	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/hd-keyring/internal/core/domain"
)

// **** RepoManager ****

type mockRepoManager struct {
	vaultRepository domain.VaultRepository
}

func (m *mockRepoManager) VaultRepository() domain.VaultRepository {
	return m.vaultRepository
}

func (m *mockRepoManager) Close() {}

// **** VaultRepository ****

type mockVaultRepository struct {
	mock.Mock
}

func (m *mockVaultRepository) AddVault(ctx context.Context, vault *domain.Vault) error {
	args := m.Called(ctx, vault)
	return args.Error(0)
}

func (m *mockVaultRepository) GetVault(
	ctx context.Context, id string,
) (*domain.Vault, error) {
	args := m.Called(ctx, id)

	var res *domain.Vault
	if a := args.Get(0); a != nil {
		res = a.(*domain.Vault)
	}
	return res, args.Error(1)
}

func (m *mockVaultRepository) GetAllVaults(
	ctx context.Context,
) ([]domain.Vault, error) {
	args := m.Called(ctx)

	var res []domain.Vault
	if a := args.Get(0); a != nil {
		res = a.([]domain.Vault)
	}
	return res, args.Error(1)
}

func (m *mockVaultRepository) UpdateVault(
	ctx context.Context,
	id string,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	args := m.Called(ctx, id, updateFn)
	return args.Error(0)
}

func splitWords(mnemonic string) []string {
	return strings.Fields(mnemonic)
}
