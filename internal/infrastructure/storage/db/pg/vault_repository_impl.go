package postgresdb

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/tdex-network/hd-keyring/internal/core/domain"
)

const (
	insertVaultQuery = `
INSERT INTO vault (
	id, name, encrypted_mnemonic, passphrase_hash, hd_path,
	number_of_accounts, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	selectVaultColumns = `
SELECT id, name, encrypted_mnemonic, passphrase_hash, hd_path,
	number_of_accounts, created_at
FROM vault`

	getVaultQuery     = selectVaultColumns + ` WHERE id = $1`
	getVaultForUpdate = getVaultQuery + ` FOR UPDATE`
	getAllVaultsQuery = selectVaultColumns + ` ORDER BY created_at, id`

	updateVaultQuery = `
UPDATE vault SET
	name = $2, encrypted_mnemonic = $3, passphrase_hash = $4, hd_path = $5,
	number_of_accounts = $6, created_at = $7
WHERE id = $1`
)

type vaultRepositoryImpl struct {
	pgxPool *pgxpool.Pool
	execTx  func(ctx context.Context, txBody func(pgx.Tx) error) error
}

// NewVaultRepositoryImpl returns a VaultRepository storing vaults in the
// vault table. Updates run in the transactions opened by execTx.
func NewVaultRepositoryImpl(
	pgxPool *pgxpool.Pool,
	execTx func(ctx context.Context, txBody func(pgx.Tx) error) error,
) domain.VaultRepository {
	return &vaultRepositoryImpl{pgxPool, execTx}
}

func (r *vaultRepositoryImpl) AddVault(
	ctx context.Context, vault *domain.Vault,
) error {
	if _, err := r.pgxPool.Exec(
		ctx, insertVaultQuery, vaultArgs(vault)...,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrVaultAlreadyExists
		}
		return err
	}
	return nil
}

func (r *vaultRepositoryImpl) GetVault(
	ctx context.Context, id string,
) (*domain.Vault, error) {
	return scanVault(r.pgxPool.QueryRow(ctx, getVaultQuery, id))
}

func (r *vaultRepositoryImpl) GetAllVaults(
	ctx context.Context,
) ([]domain.Vault, error) {
	rows, err := r.pgxPool.Query(ctx, getAllVaultsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vaults := make([]domain.Vault, 0)
	for rows.Next() {
		vault, err := scanVault(rows)
		if err != nil {
			return nil, err
		}
		vaults = append(vaults, *vault)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vaults, nil
}

func (r *vaultRepositoryImpl) UpdateVault(
	ctx context.Context,
	id string,
	updateFn func(v *domain.Vault) (*domain.Vault, error),
) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		vault, err := scanVault(tx.QueryRow(ctx, getVaultForUpdate, id))
		if err != nil {
			return err
		}

		updatedVault, err := updateFn(vault)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, updateVaultQuery, vaultArgs(updatedVault)...)
		return err
	})
}

func vaultArgs(v *domain.Vault) []interface{} {
	return []interface{}{
		v.ID,
		v.Name,
		v.EncryptedMnemonic,
		v.PassphraseHash,
		v.HDPath,
		v.NumberOfAccounts,
		v.CreatedAt,
	}
}

func scanVault(row pgx.Row) (*domain.Vault, error) {
	var v domain.Vault
	if err := row.Scan(
		&v.ID,
		&v.Name,
		&v.EncryptedMnemonic,
		&v.PassphraseHash,
		&v.HDPath,
		&v.NumberOfAccounts,
		&v.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVaultNotFound
		}
		return nil, err
	}
	return &v, nil
}
