package domain

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/google/uuid"
	"github.com/thanhpk/randstr"
	"github.com/tdex-network/hd-keyring/pkg/hdkeyring"
	"github.com/tdex-network/hd-keyring/pkg/wallet"
)

// Vault is the persisted form of an HD keyring: its serialized state with
// the mnemonic encrypted by the owner's passphrase.
type Vault struct {
	ID                string
	Name              string
	EncryptedMnemonic string
	PassphraseHash    []byte
	HDPath            string
	NumberOfAccounts  int
	CreatedAt         int64
}

const defaultNamePrefix = "keyring-"

// NewVaultOpts is the struct given to NewVault
type NewVaultOpts struct {
	Name       string
	Mnemonic   string
	Passphrase string
	HDPath     string
}

func (o NewVaultOpts) validate() error {
	if len(o.Mnemonic) <= 0 || len(o.Passphrase) <= 0 {
		return ErrVaultNullMnemonicOrPassphrase
	}
	if !wallet.IsMnemonicValid(o.Mnemonic) {
		return wallet.ErrInvalidMnemonic
	}
	if o.HDPath != "" {
		if _, err := wallet.ParseDerivationPath(o.HDPath); err != nil {
			return err
		}
	}
	return nil
}

// NewVault encrypts the provided mnemonic with the passphrase and returns a new
// Vault initialized with the encrypted mnemonic and the hash of the passphrase.
// The vault has no accounts yet and is given a random name if none is set.
func NewVault(opts NewVaultOpts) (*Vault, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	encryptedMnemonic, err := EncrypterManager.Encrypt(
		opts.Mnemonic, opts.Passphrase,
	)
	if err != nil {
		return nil, err
	}

	hdPath := opts.HDPath
	if hdPath == "" {
		hdPath = hdkeyring.DefaultHDPath
	}
	name := opts.Name
	if name == "" {
		name = defaultNamePrefix + randstr.Hex(4)
	}

	return &Vault{
		ID:                uuid.New().String(),
		Name:              name,
		EncryptedMnemonic: encryptedMnemonic,
		PassphraseHash:    btcutil.Hash160([]byte(opts.Passphrase)),
		HDPath:            hdPath,
		CreatedAt:         time.Now().Unix(),
	}, nil
}

// Encrypter is used to encrypt and decrypt the mnemonic of a vault
type Encrypter interface {
	Encrypt(mnemonic, passphrase string) (string, error)
	Decrypt(encryptedMnemonic, passphrase string) (string, error)
}

// EncrypterManager is the Encrypter used by every vault
var EncrypterManager Encrypter = NewEncrypter(wallet.DefaultCostFactor)

type encrypter struct {
	costFactor int
}

// NewEncrypter returns an Encrypter that stretches passphrases with scrypt
// at the given cost factor and encrypts with AES-256-GCM.
func NewEncrypter(costFactor int) Encrypter {
	return encrypter{costFactor}
}

func (e encrypter) Encrypt(mnemonic, passphrase string) (string, error) {
	return wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  mnemonic,
		Passphrase: passphrase,
		CostFactor: e.costFactor,
	})
}

func (e encrypter) Decrypt(encryptedMnemonic, passphrase string) (string, error) {
	return wallet.Decrypt(wallet.DecryptOpts{
		CypherText: encryptedMnemonic,
		Passphrase: passphrase,
	})
}
