package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/scrypt"
)

const (
	// DefaultCostFactor is log2 of the scrypt N parameter. 2^20 = 1048576 is
	// the recommended value for key-stretching, check the doc for others:
	// https://godoc.org/golang.org/x/crypto/scrypt
	DefaultCostFactor = 20
	// MinCostFactor ...
	MinCostFactor = 10
	// MaxCostFactor ...
	MaxCostFactor = 24

	saltLen = 32
)

// EncryptOpts is the struct given to Encrypt method
type EncryptOpts struct {
	PlainText  string
	Passphrase string
	// CostFactor is optional, DefaultCostFactor is used if zero.
	CostFactor int
}

func (o EncryptOpts) validate() error {
	if len(o.PlainText) <= 0 {
		return ErrNullPlainText
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	if o.CostFactor != 0 &&
		(o.CostFactor < MinCostFactor || o.CostFactor > MaxCostFactor) {
		return ErrInvalidCostFactor
	}
	return nil
}

// Encrypt encrypts (with AES-256-GCM) a plaintext with the provided
// passphrase. The cypher is base64(nonce|ciphertext|salt|costFactor).
func Encrypt(opts EncryptOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	if opts.CostFactor == 0 {
		opts.CostFactor = DefaultCostFactor
	}

	key, salt, err := DeriveKey([]byte(opts.Passphrase), nil, opts.CostFactor)
	if err != nil {
		return "", err
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(opts.PlainText), nil)
	ciphertext = append(ciphertext, salt...)
	ciphertext = append(ciphertext, byte(opts.CostFactor))

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptOpts is the struct given to Decrypt method
type DecryptOpts struct {
	CypherText string
	Passphrase string
}

func (o DecryptOpts) validate() error {
	if len(o.CypherText) <= 0 {
		return ErrNullCypherText
	}
	data, err := base64.StdEncoding.DecodeString(o.CypherText)
	if err != nil {
		return ErrInvalidCypherText
	}
	// nonce (12) + tag (16) + salt + cost factor
	if len(data) < 12+16+saltLen+1 {
		return ErrInvalidCypherText
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	return nil
}

// Decrypt decrypts a cypher produced by Encrypt with the provided passphrase
func Decrypt(opts DecryptOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	data, _ := base64.StdEncoding.DecodeString(opts.CypherText)
	costFactor := int(data[len(data)-1])
	data = data[:len(data)-1]
	salt, data := data[len(data)-saltLen:], data[:len(data)-saltLen]

	if costFactor < MinCostFactor || costFactor > MaxCostFactor {
		return "", ErrInvalidCypherText
	}

	key, _, err := DeriveKey([]byte(opts.Passphrase), salt, costFactor)
	if err != nil {
		return "", err
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	nonce, text := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, text, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// DeriveKey derives a 32 byte array key from a custom passhprase. A random
// salt is generated if none is given.
func DeriveKey(passphrase, salt []byte, costFactor int) ([]byte, []byte, error) {
	if salt == nil {
		salt = make([]byte, saltLen)
		if _, err := rand.Read(salt); err != nil {
			return nil, nil, err
		}
	}
	key, err := scrypt.Key(passphrase, salt, 1<<costFactor, 8, 1, 32)
	if err != nil {
		return nil, nil, err
	}
	return key, salt, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(blockCipher)
}
