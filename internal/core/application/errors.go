package application

import (
	"errors"

	"github.com/tdex-network/hd-keyring/internal/core/domain"
	"github.com/tdex-network/hd-keyring/pkg/keyring"
)

var (
	// ErrKeyringNotFound is returned when no vault exists for the given id
	ErrKeyringNotFound = errors.New("keyring not found")
	// ErrKeyringLocked is returned when attempting an operation that requires
	// the keyring to be unlocked
	ErrKeyringLocked = domain.ErrVaultMustBeUnlocked
	// ErrKeyringMustBeLocked is returned when attempting to change the
	// passphrase of an unlocked keyring
	ErrKeyringMustBeLocked = domain.ErrVaultMustBeLocked
	// ErrInvalidPassphrase ...
	ErrInvalidPassphrase = domain.ErrVaultInvalidPassphrase
	// ErrUnknownAccount is returned when signing with an address the keyring
	// has not derived
	ErrUnknownAccount = keyring.ErrUnknownAccount
	// ErrNullPassphrase ...
	ErrNullPassphrase = errors.New("passphrase must not be null")
)
