package main

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/x/token"
	"github.com/iov-one/vault/x/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenAppState(t *testing.T) {
	alice := vaulttest.SeedAddress("alice")
	bob := vaulttest.SeedAddress("bob")

	raw, err := genAppState("treasury", []vault.Address{alice, bob}, 2, 0, "GAS")
	require.NoError(t, err)

	var opts vault.Options
	require.NoError(t, json.Unmarshal(raw, &opts))
	db := store.MemStore()
	init := vault.ChainInitializers(token.Initializer{}, wallet.Initializer{})
	require.NoError(t, init.FromGenesis(opts, db))

	engine := wallet.NewEngine(nil, nil)
	owners, err := engine.Owners(db)
	require.NoError(t, err)
	assert.Equal(t, []vault.Address{alice, bob}, owners)
	gas, err := engine.GasToken(db)
	require.NoError(t, err)
	assert.Equal(t, token.Address("GAS"), gas)
	tok, err := token.NewController().Token(db, gas)
	require.NoError(t, err)
	assert.Equal(t, alice, tok.Issuer)

	_, err = genAppState("treasury", []vault.Address{alice}, 2, 0, "")
	assert.True(t, wallet.ErrInvalidRequirement.Is(err), "%+v", err)
}

func TestAddGenesisOptions(t *testing.T) {
	dir, err := ioutil.TempDir("", "vaultd")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	genFile := filepath.Join(dir, "genesis.json")
	err = addGenesisOptions(genFile, json.RawMessage(`{}`))
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)

	orig := `{"chain_id": "test-chain-AbCdEf", "validators": [{"power": "10"}]}`
	require.NoError(t, ioutil.WriteFile(genFile, []byte(orig), 0600))
	require.NoError(t, addGenesisOptions(genFile, json.RawMessage(`{"wallet": {"name": "x"}}`)))

	bz, err := ioutil.ReadFile(genFile)
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))
	assert.JSONEq(t, `"test-chain-AbCdEf"`, string(doc["chain_id"]))
	assert.JSONEq(t, `[{"power": "10"}]`, string(doc["validators"]))
	assert.JSONEq(t, `{"wallet": {"name": "x"}}`, string(doc["app_state"]))
}

func TestGenerateKey(t *testing.T) {
	dir, err := ioutil.TempDir("", "vaultd")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	key, err := generateKey(dir, "owner-0")
	require.NoError(t, err)

	loaded, err := loadKey(dir, "owner-0")
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey().Address(), loaded.PublicKey().Address())

	_, err = generateKey(dir, "owner-0")
	assert.True(t, errors.ErrDuplicate.Is(err), "%+v", err)

	_, err = loadKey(dir, "owner-1")
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)
}
