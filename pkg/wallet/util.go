package wallet

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/tyler-smith/go-bip39"
)

const (
	// MaxNonHardenedIndex is the greatest index a non-hardened child can have
	MaxNonHardenedIndex = hdkeychain.HardenedKeyStart - 1
)

func generateMnemonic(entropySize int) (string, error) {
	entropy, err := bip39.NewEntropy(entropySize)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// generateSeedFromMnemonic returns the BIP39 seed (empty password) of the
// given mnemonic. The error of the seed provider is returned untouched.
func generateSeedFromMnemonic(mnemonic string) ([]byte, error) {
	return bip39.NewSeedWithErrorChecking(normalizeMnemonic(mnemonic), "")
}

func isMnemonicValid(mnemonic string) bool {
	return bip39.IsMnemonicValid(normalizeMnemonic(mnemonic))
}

func normalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}
