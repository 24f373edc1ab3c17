package token

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

const optKey = "tokens"

// GenesisToken is used to parse the json from genesis file.
type GenesisToken struct {
	Ticker string        `json:"ticker"`
	Name   string        `json:"name"`
	Issuer vault.Address `json:"issuer"`
}

// GenesisBalance is the initial balance of one holder.
type GenesisBalance struct {
	Ticker  string        `json:"ticker"`
	Address vault.Address `json:"address"`
	Amount  int64         `json:"amount"`
}

// Genesis is the "tokens" section of the app_state.
type Genesis struct {
	Tokens   []GenesisToken   `json:"tokens"`
	Balances []GenesisBalance `json:"balances"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ vault.Initializer = Initializer{}

// FromGenesis registers all tokens and mints the initial balances.
func (Initializer) FromGenesis(opts vault.Options, db vault.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}

	control := NewController()
	for _, t := range gen.Tokens {
		tok := &Token{Ticker: t.Ticker, Name: t.Name, Issuer: t.Issuer}
		if err := control.Register(db, tok); err != nil {
			return errors.Wrapf(err, "token %s", t.Ticker)
		}
	}
	for _, b := range gen.Balances {
		if err := b.Address.Validate(); err != nil {
			return errors.Wrapf(err, "balance of %s", b.Ticker)
		}
		if err := control.Mint(db, Address(b.Ticker), b.Address, b.Amount); err != nil {
			return errors.Wrapf(err, "balance of %s", b.Ticker)
		}
	}
	return nil
}
