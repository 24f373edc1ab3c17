package x

import (
	"context"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/vaulttest"
	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	a := vaulttest.NewCondition()
	b := vaulttest.NewCondition()
	c := vaulttest.NewCondition()

	ctx1 := &vaulttest.CtxAuth{Key: "foo"}
	ctx2 := &vaulttest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          vault.Context
		auth         Authenticator
		mainSigner   vault.Condition
		wantInCtx    vault.Condition
		wantNotInCtx vault.Condition
		wantAll      []vault.Condition
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &vaulttest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &vaulttest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []vault.Condition{a},
		},
		"signer b": {
			ctx: context.Background(),
			auth: ChainAuth(
				&vaulttest.Auth{Signer: b},
				&vaulttest.Auth{Signer: a}),
			mainSigner:   b,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []vault.Condition{b, a},
		},
		"ctxAuth checks what is set by same key": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx1,
			mainSigner:   a,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []vault.Condition{a, b},
		},
		"ctxAuth with different key sees nothing": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx2,
			wantNotInCtx: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.mainSigner, MainSigner(tc.ctx, tc.auth))
			if tc.wantInCtx != nil && !tc.auth.HasAddress(tc.ctx, tc.wantInCtx.Address()) {
				t.Fatal("condition address that was expected in context not found")
			}
			if tc.wantNotInCtx != nil && tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx.Address()) {
				t.Fatal("condition address that was expected not to be in context found")
			}

			all := tc.auth.GetConditions(tc.ctx)
			assert.Equal(t, tc.wantAll, all)

			addrs := GetAddresses(tc.ctx, tc.auth)
			assert.Len(t, addrs, len(all))
			for i, cond := range all {
				assert.Equal(t, cond.Address(), addrs[i])
			}
		})
	}
}

func TestMainSignerAddress(t *testing.T) {
	a := vaulttest.NewCondition()

	got := MainSignerAddress(context.Background(), &vaulttest.Auth{})
	assert.True(t, got.IsNull())

	got = MainSignerAddress(context.Background(), &vaulttest.Auth{Signers: []vault.Condition{a}})
	assert.Equal(t, a.Address(), got)
}
