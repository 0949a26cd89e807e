package domain

import "errors"

var (
	// ErrVaultMustBeLocked is thrown when trying to change the passphrase of a
	// vault whose keyring is unlocked
	ErrVaultMustBeLocked = errors.New("vault must be locked to perform this operation")
	// ErrVaultMustBeUnlocked is thrown when trying to make an operation that
	// requires the keyring of the vault to be unlocked
	ErrVaultMustBeUnlocked = errors.New("vault must be unlocked to perform this operation")
	// ErrVaultInvalidPassphrase ...
	ErrVaultInvalidPassphrase = errors.New("passphrase is not valid")
	// ErrVaultNullMnemonicOrPassphrase ...
	ErrVaultNullMnemonicOrPassphrase = errors.New("mnemonic and/or passphrase must not be null")
	// ErrVaultInvalidNumberOfAccounts is thrown when trying to shrink the
	// account list of a vault
	ErrVaultInvalidNumberOfAccounts = errors.New(
		"number of accounts must not be lower than the current one",
	)
	// ErrVaultNotFound ...
	ErrVaultNotFound = errors.New("vault not found")
	// ErrVaultAlreadyExists ...
	ErrVaultAlreadyExists = errors.New("vault already exists")
)
