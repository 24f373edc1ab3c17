package utils_test

import (
	"context"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

// emitter emits a fixed set of events before returning.
type emitter struct {
	vaulttest.Handler
	events []vault.Event
}

func (e *emitter) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	vault.Emit(ctx, e.events...)
	return e.Handler.Deliver(ctx, db, tx)
}

func TestEventTagger(t *testing.T) {
	tx := &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "wallet/confirm"}}
	events := []vault.Event{
		vault.NewEvent("Confirmation", "sender", "A1", "transactionId", "0"),
		vault.NewEvent("Execution", "transactionId", "0"),
	}

	h := &emitter{events: events}
	stack := vaulttest.Decorate(h, utils.NewEventTagger())
	res, err := stack.Deliver(context.Background(), store.MemStore(), tx)
	require.NoError(t, err)

	want := []common.KVPair{
		stringTag("event", "Confirmation"),
		stringTag("Confirmation.sender", "A1"),
		stringTag("Confirmation.transactionId", "0"),
		stringTag("event", "Execution"),
		stringTag("Execution.transactionId", "0"),
	}
	assert.Equal(t, want, res.Tags)

	// nothing is exported when delivery fails
	h = &emitter{events: events, Handler: vaulttest.Handler{DeliverErr: errors.ErrHuman}}
	stack = vaulttest.Decorate(h, utils.NewEventTagger())
	res, err = stack.Deliver(context.Background(), store.MemStore(), tx)
	assert.True(t, errors.ErrHuman.Is(err))
	assert.Nil(t, res)
}
