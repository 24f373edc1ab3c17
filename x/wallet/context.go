package wallet

import (
	"context"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/x"
)

type contextKey int // local to the wallet module

const (
	contextKeyWallet contextKey = iota
)

// withWallet is private, only the Engine can act as the wallet.
func withWallet(ctx vault.Context, cond vault.Condition) vault.Context {
	return context.WithValue(ctx, contextKeyWallet, cond)
}

// Authenticate reveals the wallet condition while the Engine dispatches
// one of its transactions.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the wallet condition, if the context was created
// by a dispatch.
func (a Authenticate) GetConditions(ctx vault.Context) []vault.Condition {
	val, ok := ctx.Value(contextKeyWallet).(vault.Condition)
	if !ok {
		return nil
	}
	return []vault.Condition{val}
}

// HasAddress returns true if the dispatching wallet has this address.
func (a Authenticate) HasAddress(ctx vault.Context, addr vault.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
