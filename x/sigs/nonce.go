package sigs

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// NextNonce returns the sequence the next signature of signer must
// carry. Unknown signers start at zero.
func NextNonce(db vault.ReadOnlyKVStore, signer vault.Address) (int64, error) {
	var user UserData
	err := NewBucket().One(db, signer, &user)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return user.Sequence, nil
}

// RegisterQuery exposes signer sequences under /sigs, keyed by the
// signer address.
func RegisterQuery(qr vault.QueryRouter) {
	NewBucket().Register("sigs", qr)
}
