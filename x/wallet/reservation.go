package wallet

import (
	"math"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

var reservationKey = []byte("self")

// Reservations keeps the configured gas token and the amount of it
// reserved by pending transactions.
type Reservations struct {
	bucket orm.ModelBucket
}

// NewReservations returns a reservation ledger using the default bucket.
func NewReservations() Reservations {
	return Reservations{bucket: orm.NewModelBucket("gastoken")}
}

// Load returns the current state. An unconfigured ledger is empty.
func (r Reservations) Load(db vault.ReadOnlyKVStore) (*Reservation, error) {
	var res Reservation
	switch err := r.bucket.One(db, reservationKey, &res); {
	case err == nil:
		return &res, nil
	case errors.ErrNotFound.Is(err):
		return &Reservation{}, nil
	default:
		return nil, err
	}
}

func (r Reservations) save(db vault.KVStore, res *Reservation) error {
	return r.bucket.Put(db, reservationKey, res)
}

// SetGasToken configures the gas token of the given wallet. It can be
// done only once.
func (r Reservations) SetGasToken(ctx vault.Context, db vault.KVStore, auth *Authority, wallet, token vault.Address) error {
	if !auth.permits(wallet) {
		return errors.Wrap(errors.ErrUnauthorized, "only the wallet can set its gas token")
	}
	res, err := r.Load(db)
	if err != nil {
		return err
	}
	if !res.GasToken.IsNull() {
		return errors.Wrapf(ErrAlreadySet, "gas token %s", res.GasToken)
	}
	if err := token.Validate(); err != nil {
		return errors.Wrap(err, "gas token")
	}
	res.GasToken = token
	if err := r.save(db, res); err != nil {
		return err
	}
	vault.Emit(ctx, gasTokenAdditionEvent(token))
	return nil
}

// reserve adds amount to the reserved counter as long as the total stays
// within balance.
func (r Reservations) reserve(db vault.KVStore, amount, balance int64) error {
	res, err := r.Load(db)
	if err != nil {
		return err
	}
	if res.GasToken.IsNull() {
		return errors.Wrap(ErrGasTokenNotConfigured, "cannot reserve")
	}
	if amount < 0 || res.Reserved > math.MaxInt64-amount || res.Reserved+amount > balance {
		return errors.Wrapf(ErrInsufficientGasTokenBalance,
			"reserved %d, requested %d, balance %d", res.Reserved, amount, balance)
	}
	res.Reserved += amount
	return r.save(db, res)
}

// release removes amount from the reserved counter.
func (r Reservations) release(db vault.KVStore, amount int64) error {
	res, err := r.Load(db)
	if err != nil {
		return err
	}
	if amount < 0 || amount > res.Reserved {
		return errors.Wrapf(errors.ErrState, "release %d of %d reserved", amount, res.Reserved)
	}
	res.Reserved -= amount
	return r.save(db, res)
}
