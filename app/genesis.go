package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Genesis is the part of the tendermint genesis file the application
// reads. The rest of the file belongs to tendermint.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState json.RawMessage `json:"app_state"`
}

// loadGenesis tries to load a given file into a Genesis struct
func loadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	bytes, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := json.Unmarshal(bytes, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "genesis file: %s", err)
	}
	return gen, nil
}

//------- storing chainID ---------

// _vl: is a prefix for vault internal data
const chainIDKey = "_vl:chainID"

// mustLoadChainID returns the chain id stored if any
// panics on db error
func mustLoadChainID(kv vault.ReadOnlyKVStore) string {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		panic(err)
	}
	return string(v)
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv vault.KVStore, chainID string) error {
	if !vault.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
