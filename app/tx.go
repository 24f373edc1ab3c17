package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/sigs"
)

// Tx is the transaction format of the application: one message and the
// signatures of its signers. The first signer is the caller.
type Tx struct {
	Msg        vault.Msg
	Signatures []*sigs.StdSignature
}

var _ vault.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single msg of this transaction.
func (tx *Tx) GetMsg() (vault.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "msg")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures on this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	bz, err := cdc.MarshalBinaryBare(unsigned)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return bz, nil
}

// Marshal serializes the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(*tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return bz, nil
}

// Unmarshal loads a serialized transaction.
func (tx *Tx) Unmarshal(bz []byte) error {
	if err := cdc.UnmarshalBinaryBare(bz, tx); err != nil {
		return errors.Wrap(errors.ErrMsg, err.Error())
	}
	return nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (vault.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}
