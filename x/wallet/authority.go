package wallet

import (
	"github.com/iov-one/vault"
)

// Authority is the capability required by administrative operations. It
// is only created by the Engine while it executes a transaction that the
// wallet addressed to itself, so a zero or nil Authority is never
// accepted.
type Authority struct {
	wallet vault.Address
}

// permits returns true if the authority was issued for the given wallet.
func (a *Authority) permits(wallet vault.Address) bool {
	return a != nil && !a.wallet.IsNull() && a.wallet.Equals(wallet)
}
