package ports

import "github.com/tdex-network/hd-keyring/internal/core/domain"

// RepoManager interface defines the methods to access the repositories of
// the application and to release the underlying database.
type RepoManager interface {
	VaultRepository() domain.VaultRepository

	Close()
}
