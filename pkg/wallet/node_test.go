package wallet

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestNewRootNode(t *testing.T) {
	root, err := NewRootNode(NewRootNodeOpts{
		Mnemonic:       testMnemonic,
		DerivationPath: DefaultDerivationPath,
	})
	require.NoError(t, err)

	other, err := NewRootNode(NewRootNodeOpts{
		Mnemonic:       testMnemonic,
		DerivationPath: DefaultDerivationPath,
	})
	require.NoError(t, err)

	for i := uint32(0); i < 3; i++ {
		child, err := root.DeriveChild(i)
		require.NoError(t, err)
		otherChild, err := other.DeriveChild(i)
		require.NoError(t, err)

		prvkey, pubkey, err := child.KeyPair()
		require.NoError(t, err)
		otherPrvkey, otherPubkey, err := otherChild.KeyPair()
		require.NoError(t, err)

		assert.Equal(t, prvkey.Serialize(), otherPrvkey.Serialize())
		assert.Equal(t, pubkey.SerializeCompressed(), otherPubkey.SerializeCompressed())
	}
}

func TestDeriveChildMatchesFullPath(t *testing.T) {
	master, err := NewMasterNode(NewMasterNodeOpts{Mnemonic: testMnemonic})
	require.NoError(t, err)
	basePath, err := ParseDerivationPath(DefaultDerivationPath)
	require.NoError(t, err)

	fromMaster, err := master.DerivePath(basePath.Child(777))
	require.NoError(t, err)

	root, err := master.DerivePath(basePath)
	require.NoError(t, err)
	fromRoot, err := root.DeriveChild(777)
	require.NoError(t, err)

	prvkey, _, err := fromMaster.KeyPair()
	require.NoError(t, err)
	otherPrvkey, _, err := fromRoot.KeyPair()
	require.NoError(t, err)

	assert.Equal(t, prvkey.Serialize(), otherPrvkey.Serialize())
	assert.Equal(
		t,
		"b1ec885280602151c894fb7c17d076a2469ae59161d3b418c08e2ce0b2f2ef21",
		hex.EncodeToString(prvkey.Serialize()),
	)
}

func TestFailingNewRootNode(t *testing.T) {
	tests := []struct {
		name string
		opts NewRootNodeOpts
		err  error
	}{
		{
			name: "null mnemonic",
			opts: NewRootNodeOpts{DerivationPath: DefaultDerivationPath},
			err:  ErrNullMnemonic,
		},
		{
			name: "null path",
			opts: NewRootNodeOpts{Mnemonic: testMnemonic},
			err:  ErrNullDerivationPath,
		},
		{
			name: "malformed path",
			opts: NewRootNodeOpts{Mnemonic: testMnemonic, DerivationPath: "m/"},
			err:  ErrMalformedDerivationPath,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRootNode(tt.opts)
			assert.Equal(t, tt.err, err)
		})
	}

	_, err := NewRootNode(NewRootNodeOpts{
		Mnemonic:       "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
		DerivationPath: DefaultDerivationPath,
	})
	assert.Error(t, err)
}

func TestFailingDeriveChild(t *testing.T) {
	root, err := NewRootNode(NewRootNodeOpts{
		Mnemonic:       testMnemonic,
		DerivationPath: DefaultDerivationPath,
	})
	require.NoError(t, err)

	_, err = root.DeriveChild(MaxNonHardenedIndex + 1)
	assert.Equal(t, ErrOutOfRangeChildIndex, err)

	var nilNode *Node
	_, err = nilNode.DeriveChild(0)
	assert.Equal(t, ErrNullNode, err)
	_, _, err = nilNode.KeyPair()
	assert.Equal(t, ErrNullNode, err)
}
