package wallet

import (
	"context"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservations(t *testing.T) {
	db := store.MemStore()
	r := NewReservations()
	treasury := Condition("treasury").Address()
	auth := &Authority{wallet: treasury}
	gas := shop

	res, err := r.Load(db)
	require.NoError(t, err)
	assert.Nil(t, res.GasToken)
	assert.Equal(t, int64(0), res.Reserved)

	err = r.reserve(db, 0, 10)
	assert.True(t, ErrGasTokenNotConfigured.Is(err), "%+v", err)

	ctx, events := vault.WithEventLog(context.Background())
	err = r.SetGasToken(ctx, db, auth, treasury, vault.Address{1, 2})
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)
	require.NoError(t, r.SetGasToken(ctx, db, auth, treasury, gas))
	err = r.SetGasToken(ctx, db, auth, treasury, gas)
	assert.True(t, ErrAlreadySet.Is(err), "%+v", err)
	assert.Equal(t, []string{EventGasTokenAddition}, events.Names())

	require.NoError(t, r.reserve(db, 6, 10))
	require.NoError(t, r.reserve(db, 4, 10))
	err = r.reserve(db, 1, 10)
	assert.True(t, ErrInsufficientGasTokenBalance.Is(err), "%+v", err)

	require.NoError(t, r.release(db, 6))
	err = r.release(db, 5)
	assert.True(t, errors.ErrState.Is(err), "%+v", err)

	res, err = r.Load(db)
	require.NoError(t, err)
	assert.Equal(t, gas, res.GasToken)
	assert.Equal(t, int64(4), res.Reserved)
}
