package domain_test

import (
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/hd-keyring/internal/core/domain"
	"github.com/tdex-network/hd-keyring/pkg/hdkeyring"
)

func TestUnlock(t *testing.T) {
	v := newTestVault()
	domain.EncrypterManager = mockedCryptoHandler{
		decrypt: func(_, _ string) (string, error) {
			return testMnemonic, nil
		},
	}

	state, err := v.Unlock(testPassphrase)
	require.NoError(t, err)
	require.Equal(t, &hdkeyring.SerializedState{
		Mnemonic:         testMnemonic,
		NumberOfAccounts: 2,
		HDPath:           hdkeyring.DefaultHDPath,
	}, state)
}

func TestFailingUnlock(t *testing.T) {
	v := newTestVault()

	expectedErr := errors.New("something went wrong")
	domain.EncrypterManager = mockedCryptoHandler{
		decrypt: func(_, _ string) (string, error) {
			return "", expectedErr
		},
	}

	state, err := v.Unlock("wrongpass")
	require.EqualError(t, err, domain.ErrVaultInvalidPassphrase.Error())
	require.Nil(t, state)

	state, err = v.Unlock(testPassphrase)
	require.EqualError(t, err, expectedErr.Error())
	require.Nil(t, state)
}

func TestChangePasshprase(t *testing.T) {
	v := newTestVault()
	domain.EncrypterManager = mockedCryptoHandler{
		encrypt: func(_, _ string) (string, error) {
			return "newcypher", nil
		},
		decrypt: func(_, _ string) (string, error) {
			return testMnemonic, nil
		},
	}

	newPassphrase := "newpass"
	expectedPassphraseHash := btcutil.Hash160([]byte(newPassphrase))

	err := v.ChangePassphrase(testPassphrase, newPassphrase)
	require.NoError(t, err)
	require.Equal(t, expectedPassphraseHash, v.PassphraseHash)
	require.Equal(t, "newcypher", v.EncryptedMnemonic)
}

func TestFailingChangePassphrase(t *testing.T) {
	newPassphrase := "newpass"
	expectedErr := errors.New("something went wrong")

	t.Run("invalid_passphrase", func(t *testing.T) {
		v := newTestVault()
		err := v.ChangePassphrase("wrongpass", newPassphrase)
		require.EqualError(t, err, domain.ErrVaultInvalidPassphrase.Error())
	})

	t.Run("null_new_passphrase", func(t *testing.T) {
		v := newTestVault()
		err := v.ChangePassphrase(testPassphrase, "")
		require.EqualError(t, err, domain.ErrVaultNullMnemonicOrPassphrase.Error())
	})

	t.Run("failing_decrypt", func(t *testing.T) {
		v := newTestVault()
		domain.EncrypterManager = mockedCryptoHandler{
			decrypt: func(_, _ string) (string, error) {
				return "", expectedErr
			},
		}

		err := v.ChangePassphrase(testPassphrase, newPassphrase)
		require.EqualError(t, err, expectedErr.Error())
	})

	t.Run("failing_encrypt", func(t *testing.T) {
		v := newTestVault()
		domain.EncrypterManager = mockedCryptoHandler{
			encrypt: func(_, _ string) (string, error) {
				return "", expectedErr
			},
			decrypt: func(_, _ string) (string, error) {
				return testMnemonic, nil
			},
		}

		err := v.ChangePassphrase(testPassphrase, newPassphrase)
		require.EqualError(t, err, expectedErr.Error())
		require.Equal(t, "cypher", v.EncryptedMnemonic)
	})
}

func TestSetNumberOfAccounts(t *testing.T) {
	v := newTestVault()

	require.NoError(t, v.SetNumberOfAccounts(2))
	require.NoError(t, v.SetNumberOfAccounts(5))
	require.Equal(t, 5, v.NumberOfAccounts)

	err := v.SetNumberOfAccounts(4)
	require.EqualError(t, err, domain.ErrVaultInvalidNumberOfAccounts.Error())
	require.Equal(t, 5, v.NumberOfAccounts)
}

func newTestVault() *domain.Vault {
	return &domain.Vault{
		ID:                "c9d2f0b4-5c2a-4a8e-9a38-3f5d6c1e2b7a",
		EncryptedMnemonic: "cypher",
		PassphraseHash:    btcutil.Hash160([]byte(testPassphrase)),
		HDPath:            hdkeyring.DefaultHDPath,
		NumberOfAccounts:  2,
	}
}
