package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecovery(t *testing.T) {
	h := vaulttest.PanicHandler{Msg: "boom"}
	r := NewRecovery()

	ctx := context.Background()
	s := store.MemStore()

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { _, _ = h.Check(ctx, s, nil) })
	assert.Panics(t, func() { _, _ = h.Deliver(ctx, s, nil) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))

	_, err = r.Deliver(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestRecoveryLogsTheTransaction(t *testing.T) {
	var buf bytes.Buffer
	ctx := vault.WithLogger(context.Background(), log.NewTMLogger(&buf))
	ctx = vault.WithHeight(ctx, 42)
	tx := &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "wallet/confirm"}}

	_, err := NewRecovery().Deliver(ctx, store.MemStore(), tx, vaulttest.PanicHandler{Msg: "boom"})
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "boom")

	out := buf.String()
	assert.Contains(t, out, "Handler panic")
	assert.Contains(t, out, "phase=deliver")
	assert.Contains(t, out, "path=wallet/confirm")
	assert.Contains(t, out, "height=42")

	buf.Reset()
	_, err = NewRecovery().Check(ctx, store.MemStore(), tx, &vaulttest.Handler{})
	assert.NoError(t, err)
	assert.Empty(t, buf.String())
}
