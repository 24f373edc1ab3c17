package wallet

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// TransactionKey returns the key a transaction is stored under. Keys
// sort in the order of ids.
func TransactionKey(id int64) []byte {
	return orm.EncodeSequence(id)
}

// Ledger is the append only table of submitted transactions.
type Ledger struct {
	bucket orm.ModelBucket
	seq    orm.Sequence
}

// NewLedger returns a ledger using the default bucket.
func NewLedger() Ledger {
	b := orm.NewModelBucket("wallet_tx")
	return Ledger{
		bucket: b,
		seq:    b.Sequence("id"),
	}
}

// Create stores a new transaction and returns its id. Ids start at 0.
func (l Ledger) Create(db vault.KVStore, tx *Transaction) (int64, error) {
	next, err := l.seq.NextInt(db)
	if err != nil {
		return 0, err
	}
	id := next - 1
	if err := l.bucket.Put(db, TransactionKey(id), tx); err != nil {
		return 0, err
	}
	return id, nil
}

// Get returns the transaction with the given id.
func (l Ledger) Get(db vault.ReadOnlyKVStore, id int64) (*Transaction, error) {
	if id < 0 {
		return nil, errors.Wrapf(ErrUnknownTransaction, "id %d", id)
	}
	var tx Transaction
	if err := l.bucket.One(db, TransactionKey(id), &tx); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrUnknownTransaction, "id %d", id)
		}
		return nil, err
	}
	return &tx, nil
}

// Save overwrites an existing transaction.
func (l Ledger) Save(db vault.KVStore, id int64, tx *Transaction) error {
	return l.bucket.Put(db, TransactionKey(id), tx)
}

// Len returns the number of transactions ever submitted.
func (l Ledger) Len(db vault.ReadOnlyKVStore) (int64, error) {
	return l.seq.Latest(db)
}

// Iterate calls fn for every transaction in ascending id order.
func (l Ledger) Iterate(db vault.ReadOnlyKVStore, fn func(id int64, tx *Transaction) error) error {
	return l.bucket.Iterate(db, nil, func(key, raw []byte) error {
		id, err := orm.DecodeSequence(key)
		if err != nil {
			return err
		}
		var tx Transaction
		if err := orm.Unmarshal(raw, &tx); err != nil {
			return err
		}
		return fn(id, &tx)
	})
}

// IDs returns the ids of transactions matching the filter, sliced to
// [from, to) over the filtered sequence.
func (l Ledger) IDs(db vault.ReadOnlyKVStore, from, to int64, pending, executed bool) ([]int64, error) {
	var ids []int64
	err := l.Iterate(db, func(id int64, tx *Transaction) error {
		if (pending && !tx.Executed) || (executed && tx.Executed) {
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if from < 0 {
		from = 0
	}
	if to > int64(len(ids)) {
		to = int64(len(ids))
	}
	if from >= to {
		return []int64{}, nil
	}
	return ids[from:to], nil
}

// Count returns the number of transactions matching the filter.
func (l Ledger) Count(db vault.ReadOnlyKVStore, pending, executed bool) (int64, error) {
	if pending && executed {
		return l.Len(db)
	}
	var n int64
	err := l.Iterate(db, func(id int64, tx *Transaction) error {
		if (pending && !tx.Executed) || (executed && tx.Executed) {
			n++
		}
		return nil
	})
	return n, err
}

// confirmations returns the current owners that confirmed the
// transaction, in the order of owners. Confirmations of removed owners
// do not count.
func confirmations(q *Quorum, tx *Transaction) []vault.Address {
	res := make([]vault.Address, 0, len(tx.Confirmations))
	for _, o := range q.Owners {
		if tx.IsConfirmedBy(o) {
			res = append(res, o)
		}
	}
	return res
}

// isConfirmed returns true if the transaction has enough confirmations
// from current owners.
func isConfirmed(q *Quorum, tx *Transaction) bool {
	return len(confirmations(q, tx)) >= int(q.Required)
}
