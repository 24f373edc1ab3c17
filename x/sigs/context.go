package sigs

import (
	"context"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx vault.Context, signers []vault.Condition) vault.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// WithoutSigners returns a context where no signature is verified. Use it
// when a message is processed on behalf of someone other than the
// signers of the transaction.
func WithoutSigners(ctx vault.Context) vault.Context {
	return withSigners(ctx, nil)
}

// Authenticate gives access to the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context.
// May be empty
func (a Authenticate) GetConditions(ctx vault.Context) []vault.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]vault.Condition)
	return val
}

// HasAddress returns true if the given address signed the current Context.
func (a Authenticate) HasAddress(ctx vault.Context, addr vault.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
