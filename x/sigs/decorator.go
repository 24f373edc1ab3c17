/*
Package sigs provides basic authentication
middleware to verify the ed25519 signatures on the transaction.
Every signature carries the sequence of its key, which is incremented
once the signature is accepted, so a delivered transaction cannot be
replayed. The first signer is the caller of every wallet operation.
*/
package sigs

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Decorator verifies the signatures and adds them to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ vault.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator,
// which appends the chainID before checking the signature,
// and requires at least one signature to be present
func NewDecorator() Decorator {
	return Decorator{
		allowMissingSigs: false,
	}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	ctx, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) authenticate(ctx vault.Context, store vault.KVStore, tx vault.Tx) (vault.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}

	chainID := vault.GetChainID(ctx)
	signers, err := VerifyTxSignatures(store, stx, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
