package app

import (
	"bytes"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// RegisterQuery exposes the raw store under "/". It supports key and
// prefix queries on the full database key.
func RegisterQuery(qr vault.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db vault.ReadOnlyKVStore, mod string, data []byte) ([]vault.Model, error) {
	switch mod {
	case vault.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if value == nil {
			return nil, nil
		}
		return []vault.Model{vault.Pair(data, value)}, nil
	case vault.PrefixQueryMod:
		var start, end []byte
		if len(data) > 0 {
			start, end = orm.PrefixRange(data)
		}
		it, err := db.Iterator(start, end)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		defer it.Close()

		var res []vault.Model
		for it.Valid() {
			res = append(res, vault.Pair(it.Key(), it.Value()))
			if err := it.Next(); err != nil {
				return nil, errors.Wrap(errors.ErrDatabase, err.Error())
			}
		}
		return res, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// ABCIStore exposes the abci.Query interface as a ReadOnlyKVStore.
// It reads the committed state of the application through the raw
// store query, so it can be wrapped with a bucket to reuse key and
// parse logic on the client side.
type ABCIStore struct {
	app abci.Application
}

var _ vault.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore returns a store reading from the given application.
func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get will query for exactly one value over the abci store.
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	query := a.app.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	if query.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(query.Code, query.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(query.Value); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "unmarshal result set")
	}
	switch len(value.Results) {
	case 0:
		return nil, nil
	case 1:
		return value.Results[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrState, "%d results for one key", len(value.Results))
	}
}

// Has returns true if the given key in in the abci app store
func (a *ABCIStore) Has(key []byte) (bool, error) {
	v, err := a.Get(key)
	return v != nil, err
}

// Iterator lists the keys between start and end. Only ranges that
// cover a whole prefix can be expressed as an abci query, as returned
// by orm.PrefixRange, or the entire store when both are nil.
func (a *ABCIStore) Iterator(start, end []byte) (vault.Iterator, error) {
	models, err := a.prefixQuery(start, end)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

// ReverseIterator is Iterator in descending key order.
func (a *ABCIStore) ReverseIterator(start, end []byte) (vault.Iterator, error) {
	models, err := a.prefixQuery(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}

func (a *ABCIStore) prefixQuery(start, end []byte) ([]vault.Model, error) {
	if start != nil || end != nil {
		_, want := orm.PrefixRange(start)
		if !bytes.Equal(want, end) {
			return nil, errors.Wrapf(errors.ErrInput, "range %X-%X is not a prefix", start, end)
		}
	}

	query := a.app.Query(abci.RequestQuery{
		Path: "/?prefix",
		Data: start,
	})
	if query.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(query.Code, query.Log)
	}
	return toModels(query.Key, query.Value)
}

func toModels(keys, values []byte) ([]vault.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot unmarshal keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot unmarshal values")
	}
	return JoinResults(&k, &v)
}
