package app

import (
	"context"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := NewRouter()
	good, bad, missing := "test/good", "test/bad", "test/missing"

	counter := &vaulttest.Handler{}
	r.Handle(good, counter)
	r.Handle(bad, &vaulttest.Handler{CheckErr: errors.ErrAmount, DeliverErr: errors.ErrAmount})

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle(good, counter) })
	assert.Panics(t, func() { r.Handle("l:7", counter) })
	assert.Panics(t, func() { r.Handle("nopath", counter) })

	ctx := context.Background()
	tx := func(path string) *vaulttest.Tx {
		return &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, nil, tx(good))
	require.NoError(t, err)
	_, err = r.Deliver(ctx, nil, tx(good))
	require.NoError(t, err)
	assert.Equal(t, 2, counter.CallCount())

	_, err = r.Deliver(ctx, nil, tx(bad))
	assert.True(t, errors.ErrAmount.Is(err))
	assert.Equal(t, 2, counter.CallCount())

	_, err = r.Deliver(ctx, nil, tx(missing))
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Check(ctx, nil, tx(missing))
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = r.Check(ctx, nil, &vaulttest.Tx{Err: errors.ErrMsg})
	assert.True(t, errors.ErrMsg.Is(err))
}
