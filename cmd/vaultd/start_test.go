package main

import (
	"testing"

	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestServe(t *testing.T) {
	application := app.Application(iavl.NewMemCommitStore(), app.Options{Name: dbName})

	svr, err := serve(log.NewNopLogger(), "tcp://127.0.0.1:0", application)
	require.NoError(t, err)
	assert.True(t, svr.IsRunning())
	require.NoError(t, svr.Stop())
	assert.False(t, svr.IsRunning())

	_, err = serve(log.NewNopLogger(), "no-protocol", application)
	assert.True(t, errors.ErrState.Is(err), "%+v", err)
}
