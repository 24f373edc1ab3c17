package utils

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Recovery turns a panic raised by a wallet or token handler into an
// ErrPanic failure of that single transaction. The panic is logged with
// the message path and the block height so the offending transaction
// can be found.
type Recovery struct{}

var _ vault.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check implements vault.Decorator.
func (r Recovery) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Checker) (_ *vault.CheckResult, err error) {
	defer r.handlePanic(ctx, tx, "check", &err)
	return next.Check(ctx, store, tx)
}

// Deliver implements vault.Decorator.
func (r Recovery) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Deliverer) (_ *vault.DeliverResult, err error) {
	defer r.handlePanic(ctx, tx, "deliver", &err)
	return next.Deliver(ctx, store, tx)
}

// handlePanic must be deferred directly.
func (Recovery) handlePanic(ctx vault.Context, tx vault.Tx, phase string, err *error) {
	p := recover()
	if p == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", p)

	height, _ := vault.GetHeight(ctx)
	vault.GetLogger(ctx).Error("Handler panic",
		"phase", phase,
		"path", msgPath(tx),
		"height", height,
		"panic", p)
}

// msgPath returns the route of the message carried by tx, if any.
func msgPath(tx vault.Tx) string {
	if tx == nil {
		return ""
	}
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return ""
	}
	return msg.Path()
}
