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

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		handler vault.Handler
		tx      vault.Tx
		err     *errors.Error
		tags    []common.KVPair
	}{
		"simple call": {
			handler: &vaulttest.Handler{},
			tx:      &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "wallet/submit"}},
			tags: []common.KVPair{
				stringTag(utils.ActionKey, "wallet/submit"),
				stringTag(utils.ModuleKey, "wallet"),
			},
		},
		"passes through error": {
			handler: &vaulttest.Handler{DeliverErr: errors.ErrHuman},
			tx:      &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "wallet/submit"}},
			err:     errors.ErrHuman,
		},
		"broken transaction fails early": {
			handler: &vaulttest.Handler{},
			tx:      &vaulttest.Tx{Err: errors.ErrMsg},
			err:     errors.ErrMsg,
		},
		"tags are additive": {
			handler: &vaulttest.Handler{
				DeliverResult: vault.DeliverResult{Tags: []common.KVPair{stringTag(utils.ActionKey, "random")}},
			},
			tx:   &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "wallet/confirm"}},
			tags: []common.KVPair{
				stringTag(utils.ActionKey, "random"),
				stringTag(utils.ActionKey, "wallet/confirm"),
				stringTag(utils.ModuleKey, "wallet"),
			},
		},
		"token module": {
			handler: &vaulttest.Handler{},
			tx:      &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "token/transfer"}},
			tags: []common.KVPair{
				stringTag(utils.ActionKey, "token/transfer"),
				stringTag(utils.ModuleKey, "token"),
			},
		},
		"path without module": {
			handler: &vaulttest.Handler{},
			tx:      &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "ping"}},
			tags:    []common.KVPair{stringTag(utils.ActionKey, "ping")},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			stack := vaulttest.Decorate(tc.handler, utils.NewActionTagger())

			res, err := stack.Deliver(context.Background(), store.MemStore(), tc.tx)
			if tc.err != nil {
				if !tc.err.Is(err) {
					t.Fatalf("unexpected error type returned: %v", err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.tags, res.Tags)
		})
	}
}
