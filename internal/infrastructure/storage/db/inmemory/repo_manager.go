package inmemory

import (
	"github.com/tdex-network/hd-keyring/internal/core/domain"
	"github.com/tdex-network/hd-keyring/internal/core/ports"
)

type repoManager struct {
	vaultRepository domain.VaultRepository
}

func NewRepoManager() ports.RepoManager {
	return &repoManager{
		vaultRepository: NewVaultRepositoryImpl(),
	}
}

func (r *repoManager) VaultRepository() domain.VaultRepository {
	return r.vaultRepository
}

func (r *repoManager) Close() {}
