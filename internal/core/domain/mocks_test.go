package domain_test

type mockedCryptoHandler struct {
	encrypt func(mnemonic, passphrase string) (string, error)
	decrypt func(encryptedMnemonic, passphrase string) (string, error)
}

func (c mockedCryptoHandler) Encrypt(mnemonic, passpharse string) (string, error) {
	return c.encrypt(mnemonic, passpharse)
}

func (c mockedCryptoHandler) Decrypt(encryptedMnemonic, passpharse string) (string, error) {
	return c.decrypt(encryptedMnemonic, passpharse)
}
