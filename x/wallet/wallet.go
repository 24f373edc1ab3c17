package wallet

import (
	"sync"

	"github.com/iov-one/vault"
)

// Wallet runs the Engine on its own store outside of an application.
// Every operation holds a single lock and either applies all its changes
// and events or none of them.
type Wallet struct {
	mu     sync.Mutex
	db     vault.CacheableKVStore
	engine *Engine
}

// New initializes a wallet with the given quorum and optional gas token
// on db.
func New(db vault.CacheableKVStore, q *Quorum, gasToken vault.Address, tokens TokenLedger, dispatcher Dispatcher) (*Wallet, error) {
	w := &Wallet{db: db, engine: NewEngine(tokens, dispatcher)}
	cache := db.CacheWrap()
	if err := w.engine.Init(cache, q, gasToken); err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, err
	}
	return w, nil
}

// atomic runs fn on a savepoint. Events are passed to the event log of
// ctx only when fn succeeds.
func (w *Wallet) atomic(ctx vault.Context, fn func(vault.Context, vault.KVStore) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	cache := w.db.CacheWrap()
	nested, events := vault.WithEventLog(ctx)
	if err := fn(nested, cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return err
	}
	vault.Emit(ctx, events.Events()...)
	return nil
}

// SubmitTransaction see Engine.SubmitTransaction.
func (w *Wallet) SubmitTransaction(ctx vault.Context, caller, destination vault.Address, value int64, payload []byte) (int64, error) {
	var id int64
	err := w.atomic(ctx, func(ctx vault.Context, db vault.KVStore) error {
		var err error
		id, err = w.engine.SubmitTransaction(ctx, db, caller, destination, value, payload)
		return err
	})
	return id, err
}

// SubmitTransactionWithGasToken see Engine.SubmitTransactionWithGasToken.
func (w *Wallet) SubmitTransactionWithGasToken(ctx vault.Context, caller, destination vault.Address, value int64, payload []byte, amount int64) (int64, error) {
	var id int64
	err := w.atomic(ctx, func(ctx vault.Context, db vault.KVStore) error {
		var err error
		id, err = w.engine.SubmitTransactionWithGasToken(ctx, db, caller, destination, value, payload, amount)
		return err
	})
	return id, err
}

// ConfirmTransaction see Engine.ConfirmTransaction.
func (w *Wallet) ConfirmTransaction(ctx vault.Context, caller vault.Address, id int64) error {
	return w.atomic(ctx, func(ctx vault.Context, db vault.KVStore) error {
		return w.engine.ConfirmTransaction(ctx, db, caller, id)
	})
}

// RevokeConfirmation see Engine.RevokeConfirmation.
func (w *Wallet) RevokeConfirmation(ctx vault.Context, caller vault.Address, id int64) error {
	return w.atomic(ctx, func(ctx vault.Context, db vault.KVStore) error {
		return w.engine.RevokeConfirmation(ctx, db, caller, id)
	})
}

// ExecuteTransaction see Engine.ExecuteTransaction.
func (w *Wallet) ExecuteTransaction(ctx vault.Context, caller vault.Address, id int64) error {
	return w.atomic(ctx, func(ctx vault.Context, db vault.KVStore) error {
		return w.engine.ExecuteTransaction(ctx, db, caller, id)
	})
}

// AddOwner is refused unless called by the wallet itself.
func (w *Wallet) AddOwner(ctx vault.Context, owner vault.Address) error {
	return w.apply(ctx, &AddOwnerMsg{Owner: owner})
}

// RemoveOwner is refused unless called by the wallet itself.
func (w *Wallet) RemoveOwner(ctx vault.Context, owner vault.Address) error {
	return w.apply(ctx, &RemoveOwnerMsg{Owner: owner})
}

// ReplaceOwner is refused unless called by the wallet itself.
func (w *Wallet) ReplaceOwner(ctx vault.Context, owner, newOwner vault.Address) error {
	return w.apply(ctx, &ReplaceOwnerMsg{Owner: owner, NewOwner: newOwner})
}

// ChangeRequirement is refused unless called by the wallet itself.
func (w *Wallet) ChangeRequirement(ctx vault.Context, required int32) error {
	return w.apply(ctx, &ChangeRequirementMsg{Required: required})
}

// AddGasToken is refused unless called by the wallet itself.
func (w *Wallet) AddGasToken(ctx vault.Context, token vault.Address) error {
	return w.apply(ctx, &AddGasTokenMsg{Token: token})
}

func (w *Wallet) apply(ctx vault.Context, msg vault.Msg) error {
	return w.atomic(ctx, func(ctx vault.Context, db vault.KVStore) error {
		return w.engine.Apply(ctx, db, msg)
	})
}

// Address returns the identity of the wallet.
func (w *Wallet) Address() vault.Address {
	w.mu.Lock()
	defer w.mu.Unlock()
	q, err := w.engine.Quorum(w.db)
	if err != nil {
		return nil
	}
	return q.Address()
}

// Owners see Engine.Owners.
func (w *Wallet) Owners() ([]vault.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.Owners(w.db)
}

// Required see Engine.Required.
func (w *Wallet) Required() (int32, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.Required(w.db)
}

// IsOwner see Engine.IsOwner.
func (w *Wallet) IsOwner(addr vault.Address) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.IsOwner(w.db, addr)
}

// Transaction see Engine.Transaction.
func (w *Wallet) Transaction(id int64) (*Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.Transaction(w.db, id)
}

// TransactionCount see Engine.TransactionCount.
func (w *Wallet) TransactionCount(pending, executed bool) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.TransactionCount(w.db, pending, executed)
}

// TransactionIDs see Engine.TransactionIDs.
func (w *Wallet) TransactionIDs(from, to int64, pending, executed bool) ([]int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.TransactionIDs(w.db, from, to, pending, executed)
}

// Confirmations see Engine.Confirmations.
func (w *Wallet) Confirmations(id int64) ([]vault.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.Confirmations(w.db, id)
}

// ConfirmationCount see Engine.ConfirmationCount.
func (w *Wallet) ConfirmationCount(id int64) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.ConfirmationCount(w.db, id)
}

// IsConfirmed see Engine.IsConfirmed.
func (w *Wallet) IsConfirmed(id int64) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.IsConfirmed(w.db, id)
}

// GasToken see Engine.GasToken.
func (w *Wallet) GasToken() (vault.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.GasToken(w.db)
}

// ReservedGasToken see Engine.ReservedGasToken.
func (w *Wallet) ReservedGasToken() (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.ReservedGasToken(w.db)
}
