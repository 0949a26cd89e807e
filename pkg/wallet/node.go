package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// Node is a BIP32 extended private key
type Node struct {
	key *hdkeychain.ExtendedKey
}

// NewMasterNodeOpts is the struct given to the NewMasterNode method
type NewMasterNodeOpts struct {
	Mnemonic string
}

func (o NewMasterNodeOpts) validate() error {
	if len(o.Mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	return nil
}

// NewMasterNode converts the mnemonic into its BIP39 seed and returns the
// BIP32 master node of that seed. Errors of the seed provider are returned
// as they are.
func NewMasterNode(opts NewMasterNodeOpts) (*Node, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	seed, err := generateSeedFromMnemonic(opts.Mnemonic)
	if err != nil {
		return nil, err
	}
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	return &Node{key: key}, nil
}

// NewRootNodeOpts is the struct given to the NewRootNode method
type NewRootNodeOpts struct {
	Mnemonic       string
	DerivationPath string
}

func (o NewRootNodeOpts) validate() error {
	if len(o.Mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if _, err := ParseDerivationPath(o.DerivationPath); err != nil {
		return err
	}
	return nil
}

// NewRootNode derives the master node of the mnemonic and walks it down to
// the given derivation path
func NewRootNode(opts NewRootNodeOpts) (*Node, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	master, err := NewMasterNode(NewMasterNodeOpts{Mnemonic: opts.Mnemonic})
	if err != nil {
		return nil, err
	}
	path, _ := ParseDerivationPath(opts.DerivationPath)
	return master.DerivePath(path)
}

// DerivePath returns the node found by following every step of the given
// path, relative to the current node
func (n *Node) DerivePath(path DerivationPath) (*Node, error) {
	if n == nil || n.key == nil {
		return nil, ErrNullNode
	}

	node := n
	for _, step := range path {
		key, err := node.key.Derive(step)
		if err != nil {
			return nil, err
		}
		node = &Node{key: key}
	}
	return node, nil
}

// DeriveChild returns the non-hardened child at the given index
func (n *Node) DeriveChild(index uint32) (*Node, error) {
	if index > MaxNonHardenedIndex {
		return nil, ErrOutOfRangeChildIndex
	}
	return n.DerivePath(DerivationPath{index})
}

// KeyPair materializes the secp256k1 key pair of the node
func (n *Node) KeyPair() (*btcec.PrivateKey, *btcec.PublicKey, error) {
	if n == nil || n.key == nil {
		return nil, nil, ErrNullNode
	}

	privateKey, err := n.key.ECPrivKey()
	if err != nil {
		return nil, nil, err
	}
	return privateKey, privateKey.PubKey(), nil
}
