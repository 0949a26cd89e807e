package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/hd-keyring/internal/core/domain"
	"github.com/tdex-network/hd-keyring/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const (
	vaultDir = "vaults"

	gcInterval     = 30 * time.Minute
	gcDiscardRatio = 0.5
)

type repoManager struct {
	store           *badgerhold.Store
	vaultRepository domain.VaultRepository
	stopGC          chan struct{}
}

// NewRepoManager opens (or creates if not exists) the badger store in the
// given base directory. The store is kept in memory if the directory is an
// empty string. It accepts an optional logger.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, vaultDir)
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening vault db: %w", err)
	}

	r := &repoManager{
		store:           store,
		vaultRepository: NewVaultRepositoryImpl(store),
		stopGC:          make(chan struct{}),
	}
	if len(dbDir) > 0 {
		go r.runValueLogGC()
	}
	return r, nil
}

func (r *repoManager) VaultRepository() domain.VaultRepository {
	return r.vaultRepository
}

func (r *repoManager) Close() {
	close(r.stopGC)
	if err := r.store.Close(); err != nil {
		log.WithError(err).Warn("failed to close vault db")
	}
}

func (r *repoManager) runValueLogGC() {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopGC:
			return
		case <-ticker.C:
			if err := r.store.Badger().RunValueLogGC(gcDiscardRatio); err != nil &&
				err != badger.ErrNoRewrite {
				log.Error(err)
			}
		}
	}
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
