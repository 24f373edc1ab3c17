package wallet

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
)

// Engine drives transactions from submission to execution. It is the
// only place that can issue an Authority.
type Engine struct {
	registry     Registry
	ledger       Ledger
	reservations Reservations
	tokens       TokenLedger
	dispatcher   Dispatcher
}

// NewEngine returns an engine that checks gas token balances on tokens
// and hands executed transactions to dispatcher.
func NewEngine(tokens TokenLedger, dispatcher Dispatcher) *Engine {
	return &Engine{
		registry:     NewRegistry(),
		ledger:       NewLedger(),
		reservations: NewReservations(),
		tokens:       tokens,
		dispatcher:   dispatcher,
	}
}

// Init stores the initial quorum and optionally the gas token.
func (e *Engine) Init(db vault.KVStore, q *Quorum, gasToken vault.Address) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if err := e.registry.Init(db, q); err != nil {
		return err
	}
	if gasToken.IsNull() {
		return nil
	}
	if err := gasToken.Validate(); err != nil {
		return errors.Wrap(err, "gas token")
	}
	return e.reservations.save(db, &Reservation{GasToken: gasToken})
}

// owner returns the quorum if caller is one of the owners.
func (e *Engine) owner(db vault.ReadOnlyKVStore, caller vault.Address) (*Quorum, error) {
	q, err := e.registry.Load(db)
	if err != nil {
		return nil, err
	}
	if !q.IsOwner(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller)
	}
	return q, nil
}

// SubmitTransaction stores a new transaction confirmed by caller and
// executes it when that confirmation is enough.
func (e *Engine) SubmitTransaction(ctx vault.Context, db vault.KVStore, caller, destination vault.Address, value int64, payload []byte) (int64, error) {
	q, err := e.owner(db, caller)
	if err != nil {
		return 0, err
	}
	tx := &Transaction{
		Destination: destination,
		Value:       value,
		Payload:     payload,
	}
	if err := tx.Validate(); err != nil {
		return 0, err
	}
	return e.submit(ctx, db, q, caller, tx)
}

// SubmitTransactionWithGasToken works like SubmitTransaction, but
// reserves amount of the gas token until the transaction is executed.
func (e *Engine) SubmitTransactionWithGasToken(ctx vault.Context, db vault.KVStore, caller, destination vault.Address, value int64, payload []byte, amount int64) (int64, error) {
	q, err := e.owner(db, caller)
	if err != nil {
		return 0, err
	}
	tx := &Transaction{
		Destination:    destination,
		Value:          value,
		Payload:        payload,
		GasTokenAmount: amount,
	}
	if err := tx.Validate(); err != nil {
		return 0, err
	}
	res, err := e.reservations.Load(db)
	if err != nil {
		return 0, err
	}
	if res.GasToken.IsNull() {
		return 0, errors.Wrap(ErrGasTokenNotConfigured, "cannot reserve")
	}
	balance, err := e.tokens.BalanceOf(db, res.GasToken, q.Address())
	if err != nil {
		return 0, errors.Wrap(err, "gas token balance")
	}
	if err := e.reservations.reserve(db, amount, balance); err != nil {
		return 0, err
	}
	return e.submit(ctx, db, q, caller, tx)
}

func (e *Engine) submit(ctx vault.Context, db vault.KVStore, q *Quorum, caller vault.Address, tx *Transaction) (int64, error) {
	id, err := e.ledger.Create(db, tx)
	if err != nil {
		return 0, err
	}
	vault.Emit(ctx, submissionEvent(id))
	if err := e.confirm(ctx, db, q, caller, id, tx); err != nil {
		return 0, err
	}
	return id, nil
}

// ConfirmTransaction adds the confirmation of caller and executes the
// transaction once enough owners confirmed it.
func (e *Engine) ConfirmTransaction(ctx vault.Context, db vault.KVStore, caller vault.Address, id int64) error {
	q, err := e.owner(db, caller)
	if err != nil {
		return err
	}
	tx, err := e.ledger.Get(db, id)
	if err != nil {
		return err
	}
	if tx.Executed {
		return errors.Wrapf(ErrAlreadyExecuted, "transaction %d", id)
	}
	if tx.IsConfirmedBy(caller) {
		return errors.Wrapf(ErrAlreadyConfirmed, "transaction %d by %s", id, caller)
	}
	return e.confirm(ctx, db, q, caller, id, tx)
}

func (e *Engine) confirm(ctx vault.Context, db vault.KVStore, q *Quorum, caller vault.Address, id int64, tx *Transaction) error {
	tx.Confirmations = append(tx.Confirmations, caller)
	if err := e.ledger.Save(db, id, tx); err != nil {
		return err
	}
	vault.Emit(ctx, confirmationEvent(caller, id))
	if !isConfirmed(q, tx) {
		return nil
	}
	return e.execute(ctx, db, q, id, tx)
}

// RevokeConfirmation withdraws the confirmation of caller from a pending
// transaction.
func (e *Engine) RevokeConfirmation(ctx vault.Context, db vault.KVStore, caller vault.Address, id int64) error {
	if _, err := e.owner(db, caller); err != nil {
		return err
	}
	tx, err := e.ledger.Get(db, id)
	if err != nil {
		return err
	}
	if !tx.IsConfirmedBy(caller) {
		return errors.Wrapf(ErrNotConfirmed, "transaction %d by %s", id, caller)
	}
	if tx.Executed {
		return errors.Wrapf(ErrAlreadyExecuted, "transaction %d", id)
	}
	confirmed := make([]vault.Address, 0, len(tx.Confirmations)-1)
	for _, c := range tx.Confirmations {
		if !c.Equals(caller) {
			confirmed = append(confirmed, c)
		}
	}
	tx.Confirmations = confirmed
	if err := e.ledger.Save(db, id, tx); err != nil {
		return err
	}
	vault.Emit(ctx, revocationEvent(caller, id))
	return nil
}

// ExecuteTransaction executes a pending transaction that reached the
// quorum, for example after the requirement was lowered.
func (e *Engine) ExecuteTransaction(ctx vault.Context, db vault.KVStore, caller vault.Address, id int64) error {
	q, err := e.owner(db, caller)
	if err != nil {
		return err
	}
	tx, err := e.ledger.Get(db, id)
	if err != nil {
		return err
	}
	if tx.Executed {
		return errors.Wrapf(ErrAlreadyExecuted, "transaction %d", id)
	}
	if !isConfirmed(q, tx) {
		return errors.Wrapf(ErrQuorumNotMet, "%d of %d", len(confirmations(q, tx)), q.Required)
	}
	return e.execute(ctx, db, q, id, tx)
}

// execute marks the transaction as executed before dispatching it. A
// dispatch failure is recorded on the transaction and reported with an
// ExecutionFailure event, it is not returned.
func (e *Engine) execute(ctx vault.Context, db vault.KVStore, q *Quorum, id int64, tx *Transaction) error {
	tx.Executed = true
	if err := e.ledger.Save(db, id, tx); err != nil {
		return err
	}

	dispatchErr := e.dispatch(ctx, db, q, tx)

	if tx.GasTokenAmount > 0 {
		if err := e.reservations.release(db, tx.GasTokenAmount); err != nil {
			return err
		}
	}
	tx.Succeeded = dispatchErr == nil
	if err := e.ledger.Save(db, id, tx); err != nil {
		return err
	}
	vault.Emit(ctx, executionEvent(id, tx.Succeeded))

	logger := vault.GetLogger(ctx).With("wallet", q.Name, "transaction", id)
	if dispatchErr != nil {
		logger.Error("wallet transaction failed", "err", dispatchErr)
	} else {
		logger.Info("wallet transaction executed", "destination", tx.Destination)
	}
	return nil
}

// dispatch runs the call on a savepoint with its own event log. Both are
// kept only if the call succeeds.
func (e *Engine) dispatch(ctx vault.Context, db vault.KVStore, q *Quorum, tx *Transaction) error {
	cstore, ok := db.(vault.CacheableKVStore)
	if !ok {
		cstore = store.BTreeCacheable{KVStore: db}
	}
	cache := cstore.CacheWrap()

	nested, events := vault.WithEventLog(ctx)
	nested = withWallet(nested, Condition(q.Name))
	if err := e.call(nested, cache, q.Address(), tx); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing dispatch")
	}
	vault.Emit(ctx, events.Events()...)
	return nil
}

func (e *Engine) call(ctx vault.Context, db vault.KVStore, wallet vault.Address, tx *Transaction) (err error) {
	defer errors.Recover(&err)
	if tx.Destination.Equals(wallet) {
		return e.selfCall(ctx, db, wallet, tx.Payload)
	}
	return e.dispatcher.Dispatch(ctx, db, wallet, tx.Destination, tx.Value, tx.Payload)
}

// selfCall applies an administrative call with the wallet authority. An
// empty payload does nothing.
func (e *Engine) selfCall(ctx vault.Context, db vault.KVStore, wallet vault.Address, payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	msg, err := DecodeCall(payload)
	if err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return e.apply(ctx, db, &Authority{wallet: wallet}, msg)
}

// Apply handles an administrative call received directly rather than
// from the wallet itself. It never holds an Authority, so every call is
// refused.
func (e *Engine) Apply(ctx vault.Context, db vault.KVStore, msg vault.Msg) error {
	return e.apply(ctx, db, nil, msg)
}

func (e *Engine) apply(ctx vault.Context, db vault.KVStore, auth *Authority, msg vault.Msg) error {
	switch m := msg.(type) {
	case *AddOwnerMsg:
		return e.registry.AddOwner(ctx, db, auth, m.Owner)
	case *RemoveOwnerMsg:
		return e.registry.RemoveOwner(ctx, db, auth, m.Owner)
	case *ReplaceOwnerMsg:
		return e.registry.ReplaceOwner(ctx, db, auth, m.Owner, m.NewOwner)
	case *ChangeRequirementMsg:
		return e.registry.ChangeRequirement(ctx, db, auth, m.Required)
	case *AddGasTokenMsg:
		q, err := e.registry.Load(db)
		if err != nil {
			return err
		}
		return e.reservations.SetGasToken(ctx, db, auth, q.Address(), m.Token)
	default:
		return errors.Wrapf(errors.ErrMsg, "%T is not a wallet call", msg)
	}
}

// Quorum returns the current owners and requirement.
func (e *Engine) Quorum(db vault.ReadOnlyKVStore) (*Quorum, error) {
	return e.registry.Load(db)
}

// Owners returns the owners in the order they were added.
func (e *Engine) Owners(db vault.ReadOnlyKVStore) ([]vault.Address, error) {
	q, err := e.registry.Load(db)
	if err != nil {
		return nil, err
	}
	return q.Owners, nil
}

// Required returns the number of confirmations needed for execution.
func (e *Engine) Required(db vault.ReadOnlyKVStore) (int32, error) {
	q, err := e.registry.Load(db)
	if err != nil {
		return 0, err
	}
	return q.Required, nil
}

// IsOwner returns true if addr is an owner.
func (e *Engine) IsOwner(db vault.ReadOnlyKVStore, addr vault.Address) (bool, error) {
	q, err := e.registry.Load(db)
	if err != nil {
		return false, err
	}
	return q.IsOwner(addr), nil
}

// Transaction returns the transaction with the given id.
func (e *Engine) Transaction(db vault.ReadOnlyKVStore, id int64) (*Transaction, error) {
	return e.ledger.Get(db, id)
}

// TransactionCount returns the number of pending and/or executed
// transactions.
func (e *Engine) TransactionCount(db vault.ReadOnlyKVStore, pending, executed bool) (int64, error) {
	return e.ledger.Count(db, pending, executed)
}

// TransactionIDs returns a page of ids of pending and/or executed
// transactions.
func (e *Engine) TransactionIDs(db vault.ReadOnlyKVStore, from, to int64, pending, executed bool) ([]int64, error) {
	return e.ledger.IDs(db, from, to, pending, executed)
}

// Confirmations returns the current owners that confirmed a transaction.
func (e *Engine) Confirmations(db vault.ReadOnlyKVStore, id int64) ([]vault.Address, error) {
	q, err := e.registry.Load(db)
	if err != nil {
		return nil, err
	}
	tx, err := e.ledger.Get(db, id)
	if err != nil {
		return nil, err
	}
	return confirmations(q, tx), nil
}

// ConfirmationCount returns the number of current owners that confirmed
// a transaction.
func (e *Engine) ConfirmationCount(db vault.ReadOnlyKVStore, id int64) (int, error) {
	c, err := e.Confirmations(db, id)
	return len(c), err
}

// IsConfirmed returns true if a transaction reached the quorum.
func (e *Engine) IsConfirmed(db vault.ReadOnlyKVStore, id int64) (bool, error) {
	q, err := e.registry.Load(db)
	if err != nil {
		return false, err
	}
	tx, err := e.ledger.Get(db, id)
	if err != nil {
		return false, err
	}
	return isConfirmed(q, tx), nil
}

// GasToken returns the configured gas token, nil if none.
func (e *Engine) GasToken(db vault.ReadOnlyKVStore) (vault.Address, error) {
	res, err := e.reservations.Load(db)
	if err != nil {
		return nil, err
	}
	return res.GasToken, nil
}

// ReservedGasToken returns the amount of gas token held by pending
// transactions.
func (e *Engine) ReservedGasToken(db vault.ReadOnlyKVStore) (int64, error) {
	res, err := e.reservations.Load(db)
	if err != nil {
		return 0, err
	}
	return res.Reserved, nil
}
