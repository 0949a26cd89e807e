package domain_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/hd-keyring/internal/core/domain"
	"github.com/tdex-network/hd-keyring/pkg/hdkeyring"
	"github.com/tdex-network/hd-keyring/pkg/wallet"
)

const (
	testMnemonic   = "test test test test test test test test test test test junk"
	testPassphrase = "pass"
)

func TestNewVault(t *testing.T) {
	domain.EncrypterManager = domain.NewEncrypter(wallet.MinCostFactor)

	v, err := domain.NewVault(domain.NewVaultOpts{
		Name:       "main",
		Mnemonic:   testMnemonic,
		Passphrase: testPassphrase,
	})
	require.NoError(t, err)
	require.NotNil(t, v)

	_, err = uuid.Parse(v.ID)
	require.NoError(t, err)
	require.Equal(t, "main", v.Name)
	require.Equal(t, hdkeyring.DefaultHDPath, v.HDPath)
	require.Zero(t, v.NumberOfAccounts)
	require.NotZero(t, v.CreatedAt)
	require.Equal(t, btcutil.Hash160([]byte(testPassphrase)), v.PassphraseHash)
	require.NotEmpty(t, v.EncryptedMnemonic)

	v, err = domain.NewVault(domain.NewVaultOpts{
		Mnemonic:   testMnemonic,
		Passphrase: testPassphrase,
	})
	require.NoError(t, err)
	require.Regexp(t, "^keyring-[0-9a-f]{8}$", v.Name)
}

func TestFailingNewVault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		opts          domain.NewVaultOpts
		expectedError error
	}{
		{
			"missing mnemonic",
			domain.NewVaultOpts{Passphrase: testPassphrase},
			domain.ErrVaultNullMnemonicOrPassphrase,
		},
		{
			"missing passphrase",
			domain.NewVaultOpts{Mnemonic: testMnemonic},
			domain.ErrVaultNullMnemonicOrPassphrase,
		},
		{
			"invalid mnemonic",
			domain.NewVaultOpts{
				Mnemonic:   "test test test test test test test test test test test test",
				Passphrase: testPassphrase,
			},
			wallet.ErrInvalidMnemonic,
		},
		{
			"malformed hd path",
			domain.NewVaultOpts{
				Mnemonic:   testMnemonic,
				Passphrase: testPassphrase,
				HDPath:     "m/",
			},
			wallet.ErrMalformedDerivationPath,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			v, err := domain.NewVault(tt.opts)
			require.Nil(t, v)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}
