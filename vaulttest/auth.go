/*
Package vaulttest provides helpers for testing extensions: mock
authenticators, deterministic keys, transaction stubs and handlers
that record how they were called.
*/
package vaulttest

import (
	"context"
	"fmt"

	"github.com/iov-one/vault"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. Each time all signers (regardless which attribute) are
// considered, Signer goes first.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer vault.Condition

	// Signers represents an authentication of multiple signers.
	Signers []vault.Condition
}

// GetConditions returns all declared signers.
func (a *Auth) GetConditions(vault.Context) []vault.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]vault.Condition{a.Signer}, a.Signers...)
}

// HasAddress returns true if any declared signer has the given address.
func (a *Auth) HasAddress(ctx vault.Context, addr vault.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convinience only string type keys are allowed.
	Key string
}

// SetConditions returns a context with the given permissions set
func (a *CtxAuth) SetConditions(ctx vault.Context, permissions ...vault.Condition) vault.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

// GetConditions returns permissions previously set on this context
func (a *CtxAuth) GetConditions(ctx vault.Context) []vault.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]vault.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []vault.Condition got %T", ctx.Value(a.Key)))
	}
	return conds
}

// HasAddress returns true iff this address is in GetConditions
func (a *CtxAuth) HasAddress(ctx vault.Context, addr vault.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
