package wallet

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

const optKey = "wallet"

// Genesis is the "wallet" section of the app_state.
type Genesis struct {
	Name      string          `json:"name"`
	Owners    []vault.Address `json:"owners"`
	Required  int32           `json:"required"`
	MaxOwners int32           `json:"max_owners"`
	GasToken  vault.Address   `json:"gas_token"`
}

// Quorum returns the initial quorum described by the genesis.
func (g Genesis) Quorum() *Quorum {
	max := g.MaxOwners
	if max == 0 {
		max = DefaultMaxOwners
	}
	return &Quorum{
		Name:      g.Name,
		Owners:    g.Owners,
		Required:  g.Required,
		MaxOwners: max,
	}
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ vault.Initializer = Initializer{}

// FromGenesis stores the wallet quorum and its gas token. A missing
// section leaves the wallet uninitialized.
func (Initializer) FromGenesis(opts vault.Options, db vault.KVStore) error {
	var gen *Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	if gen == nil {
		return nil
	}
	if err := NewEngine(nil, nil).Init(db, gen.Quorum(), gen.GasToken); err != nil {
		return errors.Wrap(err, "wallet genesis")
	}
	return nil
}
