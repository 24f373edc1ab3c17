package wallet

import (
	"github.com/iov-one/vault"
)

// TokenLedger gives the Engine access to balances of the gas token.
type TokenLedger interface {
	BalanceOf(db vault.ReadOnlyKVStore, token, holder vault.Address) (int64, error)
}

// Dispatcher performs the call described by an executed transaction.
//
// Dispatch runs on a savepoint that is discarded when it returns an
// error or panics. The context authenticates the wallet, so any value
// moved or message routed is done on behalf of the wallet address.
type Dispatcher interface {
	Dispatch(ctx vault.Context, db vault.KVStore, wallet, destination vault.Address, value int64, payload []byte) error
}

// DispatcherFunc turns a function into a Dispatcher.
type DispatcherFunc func(ctx vault.Context, db vault.KVStore, wallet, destination vault.Address, value int64, payload []byte) error

// Dispatch calls the function.
func (fn DispatcherFunc) Dispatch(ctx vault.Context, db vault.KVStore, wallet, destination vault.Address, value int64, payload []byte) error {
	return fn(ctx, db, wallet, destination, value, payload)
}
