package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder vault.TxDecoder
	handler vault.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder vault.TxDecoder,
	handler vault.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.loadTx(txBytes)
	if err != nil {
		return vault.DeliverTxError(err, b.debug)
	}

	ctx := vault.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", txPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return vault.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.loadTx(txBytes)
	if err != nil {
		return vault.CheckTxError(err, b.debug)
	}

	ctx := vault.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", txPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return vault.CheckOrError(res, err, b.debug)
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx vault.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}

// txPath returns the path of the message, or an empty string when the
// message cannot be read. The error is reported by the handler.
func txPath(tx vault.Tx) string {
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return ""
	}
	return msg.Path()
}
