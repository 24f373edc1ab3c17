package vaulttest

import (
	"crypto/sha256"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
)

// NewKey returns a random signing key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a condition of a random signing key.
func NewCondition() vault.Condition {
	return NewKey().PublicKey().Condition()
}

// SeedKey returns a signing key derived from the given name. The same name
// always gives the same key.
func SeedKey(name string) *crypto.PrivateKey {
	seed := sha256.Sum256([]byte(name))
	return crypto.PrivKeyEd25519FromSeed(seed[:])
}

// SeedAddress returns the address of SeedKey(name).
func SeedAddress(name string) vault.Address {
	return SeedKey(name).PublicKey().Address()
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation.
func ParseAddress(t testing.TB, encodedAddress string) vault.Address {
	t.Helper()

	addr, err := vault.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
