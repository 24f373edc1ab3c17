package token

import (
	"math"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// Controller is the functionality needed by handlers and other
// extensions to work with token balances.
type Controller interface {
	// Token returns the token registered under the given address.
	Token(db vault.ReadOnlyKVStore, token vault.Address) (*Token, error)
	// BalanceOf returns how many units of the token holder has.
	BalanceOf(db vault.ReadOnlyKVStore, token, holder vault.Address) (int64, error)
	// Transfer moves amount units of the token from one holder to
	// another.
	Transfer(db vault.KVStore, token, from, to vault.Address, amount int64) error
	// Mint creates amount new units owned by dest.
	Mint(db vault.KVStore, token, dest vault.Address, amount int64) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	tokens   tokenBucket
	balances balanceBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default buckets.
func NewController() BaseController {
	return BaseController{
		tokens:   tokenBucket{NewTokenBucket()},
		balances: balanceBucket{NewBalanceBucket()},
	}
}

// Token implements Controller.
func (c BaseController) Token(db vault.ReadOnlyKVStore, token vault.Address) (*Token, error) {
	return c.tokens.Get(db, token)
}

// Register stores a new token. A token can be registered only once.
func (c BaseController) Register(db vault.KVStore, t *Token) error {
	addr := Address(t.Ticker)
	ok, err := c.tokens.bucket.Has(db, addr)
	if err != nil {
		return err
	}
	if ok {
		return errors.Wrapf(ErrDuplicateToken, "ticker %s", t.Ticker)
	}
	return c.tokens.bucket.Put(db, addr, t)
}

// BalanceOf implements Controller. An unknown holder has a zero balance,
// an unknown token is an error.
func (c BaseController) BalanceOf(db vault.ReadOnlyKVStore, token, holder vault.Address) (int64, error) {
	if _, err := c.tokens.Get(db, token); err != nil {
		return 0, err
	}
	return c.balances.Get(db, token, holder)
}

// Transfer implements Controller.
func (c BaseController) Transfer(db vault.KVStore, token, from, to vault.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non positive transfer %d", amount)
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	have, err := c.BalanceOf(db, token, from)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "have %d, need %d", have, amount)
	}
	if from.Equals(to) {
		return nil
	}
	got, err := c.balances.Get(db, token, to)
	if err != nil {
		return err
	}
	if got > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}
	if err := c.balances.Put(db, token, from, have-amount); err != nil {
		return err
	}
	return c.balances.Put(db, token, to, got+amount)
}

// Mint implements Controller. Authorization is up to the caller.
func (c BaseController) Mint(db vault.KVStore, token, dest vault.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non positive mint %d", amount)
	}
	if _, err := c.tokens.Get(db, token); err != nil {
		return err
	}
	have, err := c.balances.Get(db, token, dest)
	if err != nil {
		return err
	}
	if have > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	return c.balances.Put(db, token, dest, have+amount)
}

type tokenBucket struct {
	bucket orm.ModelBucket
}

func (b tokenBucket) Get(db vault.ReadOnlyKVStore, token vault.Address) (*Token, error) {
	var t Token
	if err := b.bucket.One(db, token, &t); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrUnknownToken, "address %s", token)
		}
		return nil, err
	}
	return &t, nil
}

type balanceBucket struct {
	bucket orm.ModelBucket
}

func (b balanceBucket) Get(db vault.ReadOnlyKVStore, token, holder vault.Address) (int64, error) {
	var bal Balance
	switch err := b.bucket.One(db, balanceKey(token, holder), &bal); {
	case err == nil:
		return bal.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

func (b balanceBucket) Put(db vault.KVStore, token, holder vault.Address, amount int64) error {
	return b.bucket.Put(db, balanceKey(token, holder), &Balance{Amount: amount})
}
