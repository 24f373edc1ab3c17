package token

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	issuer := vaulttest.SeedAddress("issuer")
	wallet := vaulttest.SeedAddress("wallet")

	genesis := `{
		"tokens": {
			"tokens": [
				{"ticker": "GST", "name": "Gas Token", "issuer": "` + issuer.String() + `"},
				{"ticker": "VLT", "name": "Vault Coin", "issuer": "` + issuer.String() + `"}
			],
			"balances": [
				{"ticker": "GST", "address": "` + wallet.String() + `", "amount": 100},
				{"ticker": "VLT", "address": "` + wallet.String() + `", "amount": 7}
			]
		}
	}`
	var opts vault.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController()
	bal, err := ctrl.BalanceOf(db, Address("GST"), wallet)
	require.NoError(t, err)
	assert.Equal(t, int64(100), bal)
	bal, err = ctrl.BalanceOf(db, Address("VLT"), wallet)
	require.NoError(t, err)
	assert.Equal(t, int64(7), bal)

	tok, err := ctrl.Token(db, Address("VLT"))
	require.NoError(t, err)
	assert.Equal(t, "Vault Coin", tok.Name)
}

func TestGenesisErrors(t *testing.T) {
	issuer := vaulttest.SeedAddress("issuer")

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"bad ticker": {
			genesis: `{"tokens": {"tokens": [{"ticker": "gst", "name": "Gas Token", "issuer": "` + issuer.String() + `"}]}}`,
			wantErr: ErrInvalidTicker,
		},
		"balance of unknown token": {
			genesis: `{"tokens": {"balances": [{"ticker": "GST", "address": "` + issuer.String() + `", "amount": 1}]}}`,
			wantErr: ErrUnknownToken,
		},
		"balance without holder": {
			genesis: `{"tokens": {"balances": [{"ticker": "GST", "amount": 1}]}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts vault.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))
			err := Initializer{}.FromGenesis(opts, store.MemStore())
			assert.True(t, tc.wantErr.Is(err), "%+v", err)
		})
	}
}
