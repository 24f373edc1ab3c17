package sigs

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// BucketName is where we store the signer sequences
const BucketName = "sigs"

// maxSequence is the greatest nonce a javascript client can represent.
const maxSequence = (1 << 53) - 1

// UserData holds the public key of a signer and the sequence the next
// signature of this key must carry.
type UserData struct {
	Pubkey   []byte `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64  `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

var _ orm.Model = (*UserData)(nil)

// Validate ensures the sequence is in range and bound to a key.
func (m *UserData) Validate() error {
	if m.Sequence < 0 || m.Sequence > maxSequence {
		return errors.Wrapf(ErrInvalidSequence, "sequence %d", m.Sequence)
	}
	if len(m.Pubkey) == 0 {
		return errors.Wrap(errors.ErrEmpty, "pubkey")
	}
	return nil
}

// CheckAndIncrementSequence increments the sequence if it equals
// expected.
func (m *UserData) CheckAndIncrementSequence(expected int64) error {
	if m.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", m.Sequence, expected)
	}
	next := m.Sequence + 1
	if next <= 0 || next > maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	m.Sequence = next
	return nil
}

// Bucket stores one UserData per signer address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns the bucket of signer sequences.
func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName)}
}

// GetOrCreate loads the data of the key, or a fresh one with sequence 0.
func (b Bucket) GetOrCreate(db vault.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var user UserData
	err := b.One(db, pubkey.Address(), &user)
	switch {
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey.Ed25519}, nil
	case err != nil:
		return nil, err
	case !bytes.Equal(user.Pubkey, pubkey.Ed25519):
		return nil, errors.Wrap(errors.ErrUnauthorized, "public key does not match the address")
	}
	return &user, nil
}

// Save stores the data under the address of its key.
func (b Bucket) Save(db vault.KVStore, user *UserData) error {
	pub := &crypto.PublicKey{Ed25519: user.Pubkey}
	return b.Put(db, pub.Address(), user)
}
