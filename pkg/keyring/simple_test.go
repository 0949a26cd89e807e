package keyring_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/hd-keyring/pkg/ethaddress"
	"github.com/tdex-network/hd-keyring/pkg/keyring"
)

const (
	testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress    = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

var _ keyring.Keyring = (*keyring.SimpleKeyring)(nil)

func TestSimpleKeyringAddKey(t *testing.T) {
	kr := keyring.NewSimpleKeyring(nil)
	assert.Equal(t, keyring.SimpleKeyringType, kr.Type())
	assert.Empty(t, kr.GetAccounts())

	prvkey := newTestPrivateKey(t)
	addr, err := kr.AddKey(prvkey)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), addr)
	assert.True(t, kr.HasAccount(addr))

	// adding the same key twice does not duplicate the account
	_, err = kr.AddKey(prvkey)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"}, kr.GetAccounts())

	_, err = kr.AddKey(nil)
	assert.Equal(t, keyring.ErrNullPrivateKey, err)

	checksummed := keyring.NewSimpleKeyring(ethaddress.Checksum)
	_, err = checksummed.AddKey(prvkey)
	require.NoError(t, err)
	assert.Equal(t, []string{testAddress}, checksummed.GetAccounts())
}

func TestSimpleKeyringSignPersonalMessage(t *testing.T) {
	kr := keyring.NewSimpleKeyring(nil)
	addr, err := kr.AddKey(newTestPrivateKey(t))
	require.NoError(t, err)

	msg := []byte("hello keyring")
	sig, err := kr.SignPersonalMessage(addr, msg)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.Contains(t, []byte{27, 28}, sig[64])

	recoverable := make([]byte, len(sig))
	copy(recoverable, sig)
	recoverable[64] -= 27
	pubkey, err := crypto.SigToPub(accounts.TextHash(msg), recoverable)
	require.NoError(t, err)
	assert.Equal(t, addr, crypto.PubkeyToAddress(*pubkey))

	_, err = kr.SignPersonalMessage(common.Address{}, msg)
	assert.Equal(t, keyring.ErrUnknownAccount, err)
}

func TestSimpleKeyringSignTransaction(t *testing.T) {
	kr := keyring.NewSimpleKeyring(nil)
	addr, err := kr.AddKey(newTestPrivateKey(t))
	require.NoError(t, err)

	chainID := big.NewInt(1)
	to := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     0,
		GasTipCap: big.NewInt(1e9),
		GasFeeCap: big.NewInt(30e9),
		Gas:       21000,
		To:        &to,
		Value:     big.NewInt(1e18),
	})

	signedTx, err := kr.SignTransaction(addr, tx, chainID)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(chainID), signedTx)
	require.NoError(t, err)
	assert.Equal(t, addr, sender)

	tests := []struct {
		name    string
		addr    common.Address
		tx      *types.Transaction
		chainID *big.Int
		err     error
	}{
		{"null tx", addr, nil, chainID, keyring.ErrNullTransaction},
		{"null chain id", addr, tx, nil, keyring.ErrNullChainID},
		{"unknown account", to, tx, chainID, keyring.ErrUnknownAccount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := kr.SignTransaction(tt.addr, tt.tx, tt.chainID)
			assert.Equal(t, tt.err, err)
		})
	}
}

func newTestPrivateKey(t *testing.T) *btcec.PrivateKey {
	buf, err := hex.DecodeString(testPrivateKey)
	require.NoError(t, err)
	prvkey, _ := btcec.PrivKeyFromBytes(buf)
	return prvkey
}
