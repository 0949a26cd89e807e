package domain

import (
	"bytes"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/tdex-network/hd-keyring/pkg/hdkeyring"
)

// Unlock attempts to decrypt the mnemonic with the provided passphrase and
// returns the state the keyring of the vault is restored from.
func (v *Vault) Unlock(passphrase string) (*hdkeyring.SerializedState, error) {
	if !v.isValidPassphrase(passphrase) {
		return nil, ErrVaultInvalidPassphrase
	}

	mnemonic, err := EncrypterManager.Decrypt(v.EncryptedMnemonic, passphrase)
	if err != nil {
		return nil, err
	}

	return &hdkeyring.SerializedState{
		Mnemonic:         mnemonic,
		NumberOfAccounts: v.NumberOfAccounts,
		HDPath:           v.HDPath,
	}, nil
}

// ChangePassphrase re-encrypts the mnemonic with the new passphrase
func (v *Vault) ChangePassphrase(currentPassphrase, newPassphrase string) error {
	if len(newPassphrase) <= 0 {
		return ErrVaultNullMnemonicOrPassphrase
	}
	if !v.isValidPassphrase(currentPassphrase) {
		return ErrVaultInvalidPassphrase
	}

	mnemonic, err := EncrypterManager.Decrypt(v.EncryptedMnemonic, currentPassphrase)
	if err != nil {
		return err
	}

	encryptedMnemonic, err := EncrypterManager.Encrypt(mnemonic, newPassphrase)
	if err != nil {
		return err
	}

	v.EncryptedMnemonic = encryptedMnemonic
	v.PassphraseHash = btcutil.Hash160([]byte(newPassphrase))
	return nil
}

// SetNumberOfAccounts keeps the vault in sync with the account list of its
// keyring, which can only grow.
func (v *Vault) SetNumberOfAccounts(numberOfAccounts int) error {
	if numberOfAccounts < v.NumberOfAccounts {
		return ErrVaultInvalidNumberOfAccounts
	}
	v.NumberOfAccounts = numberOfAccounts
	return nil
}

func (v *Vault) isValidPassphrase(passphrase string) bool {
	return bytes.Equal(v.PassphraseHash, btcutil.Hash160([]byte(passphrase)))
}
