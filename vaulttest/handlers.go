package vaulttest

import "github.com/iov-one/vault"

// Handler counts calls and returns preconfigured results. When
// WriteKey is set the value is written to the store before returning,
// also on failure, so savepoint behaviour can be observed.
type Handler struct {
	checkCall   int
	CheckResult vault.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult vault.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte
}

var _ vault.Handler = (*Handler)(nil)

// Check counts the call and returns CheckResult or CheckErr.
func (h *Handler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

// Deliver counts the call and returns DeliverResult or DeliverErr.
func (h *Handler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) write(db vault.KVStore) error {
	if h.WriteKey == nil {
		return nil
	}
	return db.Set(h.WriteKey, h.WriteValue)
}

// CheckCallCount returns how many times Check was called.
func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

// DeliverCallCount returns how many times Deliver was called.
func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

// CallCount returns the total number of calls.
func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

var _ vault.Handler = PanicHandler{}

// Check panics.
func (p PanicHandler) Check(vault.Context, vault.KVStore, vault.Tx) (*vault.CheckResult, error) {
	panic(p.Msg)
}

// Deliver panics.
func (p PanicHandler) Deliver(vault.Context, vault.KVStore, vault.Tx) (*vault.DeliverResult, error) {
	panic(p.Msg)
}

// Decorate wraps a handler with a decorator.
func Decorate(h vault.Handler, d vault.Decorator) vault.Handler {
	return decorated{h: h, d: d}
}

type decorated struct {
	h vault.Handler
	d vault.Decorator
}

func (w decorated) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	return w.d.Check(ctx, db, tx, w.h)
}

func (w decorated) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	return w.d.Deliver(ctx, db, tx, w.h)
}
