package wallet

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x"
)

const (
	submitCost  = 100
	confirmCost = 50
	executeCost = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r vault.Registry, auth x.Authenticator, engine *Engine) {
	r.Handle(pathSubmitMsg, SubmitHandler{auth: auth, engine: engine})
	r.Handle(pathSubmitWithGasTokenMsg, SubmitHandler{auth: auth, engine: engine})
	r.Handle(pathConfirmMsg, ConfirmHandler{auth: auth, engine: engine})
	r.Handle(pathRevokeMsg, RevokeHandler{auth: auth, engine: engine})
	r.Handle(pathExecuteMsg, ExecuteHandler{auth: auth, engine: engine})

	admin := AdminHandler{engine: engine}
	r.Handle(pathAddOwnerMsg, admin)
	r.Handle(pathRemoveOwnerMsg, admin)
	r.Handle(pathReplaceOwnerMsg, admin)
	r.Handle(pathChangeRequirementMsg, admin)
	r.Handle(pathAddGasTokenMsg, admin)
}

// caller returns the main signer if it is one of the owners.
func caller(ctx vault.Context, db vault.ReadOnlyKVStore, auth x.Authenticator, engine *Engine) (vault.Address, error) {
	signer := x.MainSignerAddress(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	if _, err := engine.owner(db, signer); err != nil {
		return nil, err
	}
	return signer, nil
}

// SubmitHandler stores new transactions, with or without a gas token
// reservation.
type SubmitHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ vault.Handler = SubmitHandler{}

// Check verifies the message and that an owner signed it.
func (h SubmitHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{GasAllocated: submitCost}, nil
}

// Deliver submits the transaction and returns its key.
func (h SubmitHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	var id int64
	switch m := msg.(type) {
	case *SubmitMsg:
		id, err = h.engine.SubmitTransaction(ctx, db, signer, m.Destination, m.Value, m.Payload)
	case *SubmitWithGasTokenMsg:
		id, err = h.engine.SubmitTransactionWithGasToken(ctx, db, signer, m.Destination, m.Value, m.Payload, m.GasTokenAmount)
	}
	if err != nil {
		return nil, err
	}
	return &vault.DeliverResult{Data: TransactionKey(id)}, nil
}

func (h SubmitHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (vault.Msg, vault.Address, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot get msg")
	}
	switch m := msg.(type) {
	case *SubmitMsg, *SubmitWithGasTokenMsg:
		if err := m.Validate(); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, errors.WithType(errors.ErrMsg, msg)
	}
	signer, err := caller(ctx, db, h.auth, h.engine)
	if err != nil {
		return nil, nil, err
	}
	return msg, signer, nil
}

// ConfirmHandler adds the confirmation of the signer.
type ConfirmHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ vault.Handler = ConfirmHandler{}

// Check verifies the message and that an owner signed it.
func (h ConfirmHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	var msg ConfirmMsg
	if _, err := loadOwnerMsg(ctx, db, tx, &msg, h.auth, h.engine); err != nil {
		return nil, err
	}
	return &vault.CheckResult{GasAllocated: confirmCost}, nil
}

// Deliver confirms the transaction, executing it if the quorum is met.
func (h ConfirmHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	var msg ConfirmMsg
	signer, err := loadOwnerMsg(ctx, db, tx, &msg, h.auth, h.engine)
	if err != nil {
		return nil, err
	}
	if err := h.engine.ConfirmTransaction(ctx, db, signer, msg.TransactionID); err != nil {
		return nil, err
	}
	return &vault.DeliverResult{}, nil
}

// RevokeHandler removes the confirmation of the signer.
type RevokeHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ vault.Handler = RevokeHandler{}

// Check verifies the message and that an owner signed it.
func (h RevokeHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	var msg RevokeMsg
	if _, err := loadOwnerMsg(ctx, db, tx, &msg, h.auth, h.engine); err != nil {
		return nil, err
	}
	return &vault.CheckResult{GasAllocated: confirmCost}, nil
}

// Deliver revokes the confirmation.
func (h RevokeHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	var msg RevokeMsg
	signer, err := loadOwnerMsg(ctx, db, tx, &msg, h.auth, h.engine)
	if err != nil {
		return nil, err
	}
	if err := h.engine.RevokeConfirmation(ctx, db, signer, msg.TransactionID); err != nil {
		return nil, err
	}
	return &vault.DeliverResult{}, nil
}

// ExecuteHandler executes transactions that reached the quorum.
type ExecuteHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ vault.Handler = ExecuteHandler{}

// Check verifies the message and that an owner signed it.
func (h ExecuteHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	var msg ExecuteMsg
	if _, err := loadOwnerMsg(ctx, db, tx, &msg, h.auth, h.engine); err != nil {
		return nil, err
	}
	return &vault.CheckResult{GasAllocated: executeCost}, nil
}

// Deliver executes the transaction. A failed dispatch is not an error.
func (h ExecuteHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	var msg ExecuteMsg
	signer, err := loadOwnerMsg(ctx, db, tx, &msg, h.auth, h.engine)
	if err != nil {
		return nil, err
	}
	if err := h.engine.ExecuteTransaction(ctx, db, signer, msg.TransactionID); err != nil {
		return nil, err
	}
	return &vault.DeliverResult{}, nil
}

func loadOwnerMsg(ctx vault.Context, db vault.KVStore, tx vault.Tx, msg vault.Msg, auth x.Authenticator, engine *Engine) (vault.Address, error) {
	if err := vault.LoadMsg(tx, msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return caller(ctx, db, auth, engine)
}

// AdminHandler refuses administrative calls sent directly. The wallet
// can only reconfigure itself by executing a transaction addressed to
// itself.
type AdminHandler struct {
	engine *Engine
}

var _ vault.Handler = AdminHandler{}

// Check always fails.
func (h AdminHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

// Deliver always fails.
func (h AdminHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	if err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.DeliverResult{}, nil
}

func (h AdminHandler) apply(ctx vault.Context, db vault.KVStore, tx vault.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get msg")
	}
	return h.engine.Apply(ctx, db, msg)
}
