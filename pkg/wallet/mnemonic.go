package wallet

// DefaultEntropySize is the number of entropy bits of a generated mnemonic
// (12 words).
const DefaultEntropySize = 128

type NewMnemonicOpts struct {
	EntropySize int
}

func (o NewMnemonicOpts) validate() error {
	if o.EntropySize > 0 {
		if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
			return ErrInvalidEntropySize
		}
	}
	if o.EntropySize < 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewMnemonic returns a new space separated BIP39 mnemonic
func NewMnemonic(opts NewMnemonicOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	if opts.EntropySize == 0 {
		opts.EntropySize = DefaultEntropySize
	}

	return generateMnemonic(opts.EntropySize)
}

// IsMnemonicValid returns whether the given phrase is a valid BIP39 mnemonic,
// checksum included
func IsMnemonicValid(mnemonic string) bool {
	return isMnemonicValid(mnemonic)
}
