/*
Package x contains the pieces shared by all extensions: the
Authenticator abstraction handlers use to find out who
authorized the current request, and helpers on top of it.
*/
package x

import (
	"github.com/iov-one/vault"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(vault.Context) []vault.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(vault.Context, vault.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx vault.Context) []vault.Condition {
	var res []vault.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx vault.Context, addr vault.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx vault.Context, auth Authenticator) []vault.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]vault.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx vault.Context, auth Authenticator) vault.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// MainSignerAddress returns the address of MainSigner, nil if there is no
// signer.
func MainSignerAddress(ctx vault.Context, auth Authenticator) vault.Address {
	return MainSigner(ctx, auth).Address()
}
