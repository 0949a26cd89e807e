package ethaddress_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/hd-keyring/pkg/ethaddress"
	"github.com/tdex-network/hd-keyring/pkg/wallet"
)

func TestFromPublicKey(t *testing.T) {
	tests := []struct {
		mnemonic string
		index    uint32
		address  string
	}{
		{
			mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
			index:    0,
			address:  "0x9858EfFD232B4033E47d90003D41EC34EcaEda94",
		},
		{
			mnemonic: "test test test test test test test test test test test junk",
			index:    0,
			address:  "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		},
		{
			mnemonic: "test test test test test test test test test test test junk",
			index:    1,
			address:  "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		},
	}
	for _, tt := range tests {
		root, err := wallet.NewRootNode(wallet.NewRootNodeOpts{
			Mnemonic:       tt.mnemonic,
			DerivationPath: wallet.DefaultDerivationPath,
		})
		require.NoError(t, err)
		child, err := root.DeriveChild(tt.index)
		require.NoError(t, err)
		_, pubkey, err := child.KeyPair()
		require.NoError(t, err)

		addr, err := ethaddress.FromPublicKey(pubkey)
		require.NoError(t, err)
		assert.Equal(t, tt.address, ethaddress.Checksum(addr))
	}

	_, err := ethaddress.FromPublicKey(nil)
	assert.Equal(t, ethaddress.ErrNullPublicKey, err)
}

func TestNormalizers(t *testing.T) {
	addr := common.HexToAddress("0x9858EfFD232B4033E47d90003D41EC34EcaEda94")

	assert.Equal(t, "0x9858effd232b4033e47d90003d41ec34ecaeda94", ethaddress.Lowercase(addr))
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", ethaddress.Checksum(addr))
	assert.Equal(t, byte(0x98), ethaddress.LeadingByte(addr))

	tests := []struct {
		format string
		want   string
		err    error
	}{
		{"", "0x9858effd232b4033e47d90003d41ec34ecaeda94", nil},
		{"lowercase", "0x9858effd232b4033e47d90003d41ec34ecaeda94", nil},
		{"CHECKSUM", "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", nil},
		{"base58", "", ethaddress.ErrUnknownFormat},
	}
	for _, tt := range tests {
		normalize, err := ethaddress.NormalizerForFormat(tt.format)
		if tt.err != nil {
			assert.Equal(t, tt.err, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, normalize(addr))
	}
}

func TestParse(t *testing.T) {
	want := common.HexToAddress("0x9858EfFD232B4033E47d90003D41EC34EcaEda94")

	for _, str := range []string{
		"0x9858effd232b4033e47d90003d41ec34ecaeda94",
		"9858EFFD232B4033E47D90003D41EC34ECAEDA94",
		"0x9858EfFD232B4033E47d90003D41EC34EcaEda94",
	} {
		addr, err := ethaddress.Parse(str)
		require.NoError(t, err)
		assert.Equal(t, want, addr)
	}

	_, err := ethaddress.Parse("0x1234")
	assert.Equal(t, ethaddress.ErrInvalidAddress, err)
}
