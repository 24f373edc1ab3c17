package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/sigs"
	"github.com/iov-one/vault/x/token"
	"github.com/iov-one/vault/x/wallet"
)

// Dispatcher performs the calls of executed wallet transactions that
// are not addressed to the wallet itself.
//
// The value is moved from the wallet to the destination on the native
// token. A non empty payload must be a message registered with the
// application codec. It is routed as if the wallet had signed it.
type Dispatcher struct {
	router vault.Handler
	tokens token.BaseController
	native vault.Address
}

var _ wallet.Dispatcher = Dispatcher{}

// NewDispatcher returns a dispatcher routing payloads through router
// and moving value on the token with the given ticker. Without a native
// token only calls with zero value succeed.
func NewDispatcher(router vault.Handler, tokens token.BaseController, nativeTicker string) Dispatcher {
	d := Dispatcher{router: router, tokens: tokens}
	if nativeTicker != "" {
		d.native = token.Address(nativeTicker)
	}
	return d
}

// Dispatch implements wallet.Dispatcher.
func (d Dispatcher) Dispatch(ctx vault.Context, db vault.KVStore, from, destination vault.Address, value int64, payload []byte) error {
	if value > 0 {
		if d.native == nil {
			return errors.Wrap(errors.ErrState, "no native token")
		}
		if err := d.tokens.Transfer(db, d.native, from, destination, value); err != nil {
			return errors.Wrap(err, "value transfer")
		}
	}
	if len(payload) == 0 {
		return nil
	}

	msg, err := DecodeMsg(payload)
	if err != nil {
		return errors.Wrap(errors.ErrMsg, err.Error())
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	// signatures of the outer transaction never authorize the call
	ctx = sigs.WithoutSigners(ctx)
	_, err = d.router.Deliver(ctx, db, &Tx{Msg: msg})
	return err
}
