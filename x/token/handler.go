package token

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x"
)

const (
	createTokenCost = 100
	transferCost    = 100
	mintCost        = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package. When issuer is set, only the issuer can register new tokens.
func RegisterRoutes(r vault.Registry, auth x.Authenticator, issuer vault.Address, control BaseController) {
	r.Handle(pathCreateTokenMsg, CreateTokenHandler{auth: auth, issuer: issuer, control: control})
	r.Handle(pathTransferMsg, TransferHandler{auth: auth, control: control})
	r.Handle(pathMintMsg, MintHandler{auth: auth, control: control})
}

// RegisterQuery will register the token bucket as "/tokens" and the
// balances bucket as "/balances".
func RegisterQuery(qr vault.QueryRouter) {
	NewTokenBucket().Register("tokens", qr)
	NewBalanceBucket().Register("balances", qr)
}

// CreateTokenHandler registers new tokens.
type CreateTokenHandler struct {
	auth    x.Authenticator
	issuer  vault.Address
	control BaseController
}

var _ vault.Handler = CreateTokenHandler{}

// Check verifies the message and the permission of the signer.
func (h CreateTokenHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{GasAllocated: createTokenCost}, nil
}

// Deliver stores the token, owned by the main signer.
func (h CreateTokenHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	t := &Token{Ticker: msg.Ticker, Name: msg.Name, Issuer: signer}
	if err := h.control.Register(db, t); err != nil {
		return nil, err
	}
	return &vault.DeliverResult{Data: Address(msg.Ticker)}, nil
}

func (h CreateTokenHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*CreateTokenMsg, vault.Address, error) {
	var msg CreateTokenMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSignerAddress(ctx, h.auth)
	if signer.IsNull() {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	if h.issuer != nil && !h.auth.HasAddress(ctx, h.issuer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "issuer signature missing")
	}
	// Token can be registered only once and must not be updated.
	if _, err := h.control.Token(db, Address(msg.Ticker)); err == nil {
		return nil, nil, errors.Wrapf(ErrDuplicateToken, "ticker %s", msg.Ticker)
	} else if !ErrUnknownToken.Is(err) {
		return nil, nil, err
	}
	return &msg, signer, nil
}

// TransferHandler moves tokens between holders.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ vault.Handler = TransferHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h TransferHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{GasAllocated: transferCost}, nil
}

// Deliver moves the tokens from source to destination if
// all preconditions are met
func (h TransferHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(db, msg.Token, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &vault.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx vault.Context, tx vault.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}

// MintHandler creates new tokens on behalf of the token issuer.
type MintHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ vault.Handler = MintHandler{}

// Check verifies the issuer signed the transaction.
func (h MintHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{GasAllocated: mintCost}, nil
}

// Deliver mints the tokens.
func (h MintHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Mint(db, msg.Token, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &vault.DeliverResult{}, nil
}

func (h MintHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*MintMsg, error) {
	var msg MintMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	t, err := h.control.Token(db, msg.Token)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, t.Issuer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "issuer signature missing")
	}
	return &msg, nil
}
