package wallet

import (
	"encoding/json"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// RegisterQuery exposes the wallet state:
//
//   /wallet        quorum and gas token reservation
//   /wallet/tx     transactions by key, see TransactionKey
//   /wallet/txids  a page of transactions, see PageQuery
func RegisterQuery(qr vault.QueryRouter) {
	qr.Register("/wallet", stateQuery{registry: NewRegistry(), reservations: NewReservations()})
	l := NewLedger()
	l.bucket.Register("wallet/tx", qr)
	qr.Register("/wallet/txids", pageQuery{ledger: l})
}

type stateQuery struct {
	registry     Registry
	reservations Reservations
}

// Query returns the quorum followed by the reservation, if any.
func (h stateQuery) Query(db vault.ReadOnlyKVStore, mod string, data []byte) ([]vault.Model, error) {
	if mod != vault.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	res, err := h.registry.bucket.Query(db, mod, quorumKey)
	if err != nil {
		return nil, err
	}
	gas, err := h.reservations.bucket.Query(db, mod, reservationKey)
	if err != nil {
		return nil, err
	}
	return append(res, gas...), nil
}

// PageQuery selects transaction ids the way TransactionIDs does.
type PageQuery struct {
	From     int64 `json:"from"`
	To       int64 `json:"to"`
	Pending  bool  `json:"pending"`
	Executed bool  `json:"executed"`
}

type pageQuery struct {
	ledger Ledger
}

// Query returns the selected transactions keyed by TransactionKey.
func (h pageQuery) Query(db vault.ReadOnlyKVStore, mod string, data []byte) ([]vault.Model, error) {
	if mod != vault.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	var page PageQuery
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "page: %s", err)
	}
	ids, err := h.ledger.IDs(db, page.From, page.To, page.Pending, page.Executed)
	if err != nil {
		return nil, err
	}
	res := make([]vault.Model, 0, len(ids))
	for _, id := range ids {
		key := TransactionKey(id)
		raw, err := db.Get(h.ledger.bucket.DBKey(key))
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		res = append(res, vault.Pair(key, raw))
	}
	return res, nil
}
