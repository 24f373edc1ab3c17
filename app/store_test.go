package app

import (
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/sigs"
	"github.com/iov-one/vault/x/token"
	"github.com/iov-one/vault/x/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestInfo(t *testing.T) {
	myApp := newTestApp(t)

	info := myApp.Info(abci.RequestInfo{})
	assert.Equal(t, "vault", info.Data)
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.NotEmpty(t, info.LastBlockAppHash)
}

func TestQuery(t *testing.T) {
	myApp := newTestApp(t)

	cases := map[string]struct {
		path     string
		data     []byte
		wantCode uint32
		wantKeys [][]byte
	}{
		"wallet state": {
			path:     "/wallet",
			wantKeys: [][]byte{[]byte("quorum:self"), []byte("gastoken:self")},
		},
		"one transaction that does not exist": {
			path:     "/wallet/tx",
			data:     wallet.TransactionKey(0),
			wantKeys: [][]byte{},
		},
		"unknown path": {
			path:     "/nothing",
			wantCode: errors.ErrNotFound.ABCICode(),
		},
		"unknown modifier": {
			path:     "/wallet?prefix",
			wantCode: errors.ErrInput.ABCICode(),
		},
		"bad page": {
			path:     "/wallet/txids",
			data:     []byte("{"),
			wantCode: errors.ErrInput.ABCICode(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res := myApp.Query(abci.RequestQuery{Path: tc.path, Data: tc.data})
			require.Equal(t, tc.wantCode, res.Code, res.Log)
			if tc.wantCode != errors.SuccessABCICode {
				return
			}
			assert.Equal(t, int64(1), res.Height)
			models, err := toModels(res.Key, res.Value)
			require.NoError(t, err)
			keys := make([][]byte, len(models))
			for i, m := range models {
				keys[i] = m.Key
			}
			assert.Equal(t, tc.wantKeys, keys)
		})
	}
}

func TestSplitPath(t *testing.T) {
	cases := map[string]struct {
		path     string
		wantPath string
		wantMod  string
	}{
		"plain":    {path: "/wallet", wantPath: "/wallet"},
		"prefix":   {path: "/tokens?prefix", wantPath: "/tokens", wantMod: "prefix"},
		"root":     {path: "/?prefix", wantPath: "/", wantMod: "prefix"},
		"only mod": {path: "?x", wantPath: "", wantMod: "x"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			path, mod := splitPath(tc.path)
			assert.Equal(t, tc.wantPath, path)
			assert.Equal(t, tc.wantMod, mod)
		})
	}
}

func TestQueryReadsCommittedState(t *testing.T) {
	myApp := newTestApp(t)

	myApp.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{ChainID: testChainID, Height: 2}})
	deliver(t, myApp, signedTx(t, myApp, &wallet.SubmitMsg{Destination: carol, Value: 5}, aliceKey))

	// nothing is visible before the commit
	res := myApp.Query(abci.RequestQuery{Path: "/wallet/tx", Data: wallet.TransactionKey(0)})
	require.Equal(t, uint32(errors.SuccessABCICode), res.Code, res.Log)
	var missing wallet.Transaction
	require.NoError(t, UnmarshalOneResult(res.Value, &missing))
	assert.Nil(t, missing.Destination)

	myApp.EndBlock(abci.RequestEndBlock{})
	myApp.Commit()

	res = myApp.Query(abci.RequestQuery{Path: "/wallet/tx", Data: wallet.TransactionKey(0)})
	require.Equal(t, uint32(errors.SuccessABCICode), res.Code, res.Log)
	assert.Equal(t, int64(2), res.Height)
	var tx wallet.Transaction
	require.NoError(t, UnmarshalOneResult(res.Value, &tx))
	assert.Equal(t, carol, tx.Destination)
	assert.Equal(t, int64(5), tx.Value)
	assert.False(t, tx.Executed)

	res = myApp.Query(abci.RequestQuery{Path: "/sigs", Data: alice})
	require.Equal(t, uint32(errors.SuccessABCICode), res.Code, res.Log)
	var user sigs.UserData
	require.NoError(t, UnmarshalOneResult(res.Value, &user))
	assert.Equal(t, int64(1), user.Sequence)

	res = myApp.Query(abci.RequestQuery{Path: "/balances?prefix", Data: token.Address("GAS")})
	require.Equal(t, uint32(errors.SuccessABCICode), res.Code, res.Log)
	models, err := toModels(res.Key, res.Value)
	require.NoError(t, err)
	require.Len(t, models, 1)
	var b token.Balance
	require.NoError(t, UnmarshalOneResult(res.Value, &b))
	assert.Equal(t, int64(100), b.Amount)
}
