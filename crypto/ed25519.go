// Package crypto holds the ed25519 keys used to sign transactions and the
// conditions derived from them.
package crypto

import (
	"bytes"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() vault.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil {
		return false
	}
	if len(p.Ed25519) != ed25519.PublicKeySize || len(sig.Ed25519) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a vault condition
func (p *PublicKey) Condition() vault.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return vault.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address is a shortcut for the address of the key condition.
func (p *PublicKey) Address() vault.Address {
	return p.Condition().Address()
}

// Equals compares two public keys.
func (p *PublicKey) Equals(o *PublicKey) bool {
	if p == nil || o == nil {
		return p == o
	}
	return bytes.Equal(p.Ed25519, o.Ed25519)
}

// Validate checks the key has the expected length.
func (p *PublicKey) Validate() error {
	if p == nil {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key length %d", len(p.Ed25519))
	}
	return nil
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid private key")
	}
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	pub := privateKey.Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}
