package sigs

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stdTx is a minimal signed transaction carrying raw sign bytes.
type stdTx struct {
	vaulttest.Tx
	payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*stdTx)(nil)
var _ vault.Tx = (*stdTx)(nil)

func newStdTx(payload []byte) *stdTx {
	return &stdTx{
		Tx:      vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "test/sigs"}},
		payload: payload,
	}
}

func (tx *stdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *stdTx) GetSignBytes() ([]byte, error) {
	return tx.payload, nil
}

func TestSignBytes(t *testing.T) {
	bz := []byte("foobar")
	tx := newStdTx(bz)
	bz2 := []byte("blast")

	// make sure sign bytes match tx
	chainID := "test-sign-bytes"
	c1, err := BuildSignBytesTx(tx, chainID, 17)
	require.NoError(t, err)
	c1a, err := BuildSignBytes(bz, chainID, 17)
	require.NoError(t, err)
	assert.Equal(t, c1, c1a)
	assert.NotEqual(t, bz, c1)
	assert.Len(t, c1, 64)

	// make sure sign bytes change on tx, chain_id and sequence
	ct, err := BuildSignBytes(bz2, chainID, 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, ct)
	c2, err := BuildSignBytes(bz, chainID+"2", 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c2)
	c3, err := BuildSignBytes(bz, chainID, 18)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c3)

	_, err = BuildSignBytes(bz, "no", 17)
	assert.True(t, errors.ErrInput.Is(err))
	_, err = BuildSignBytes(bz, chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
}

func TestVerifySignature(t *testing.T) {
	db := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()

	chainID := "emo-music-2345"
	tx := newStdTx([]byte("my special valentine"))
	bz, err := tx.GetSignBytes()
	require.NoError(t, err)

	sig0, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	// signing should be deterministic
	again, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	assert.Equal(t, sig0, again)

	// sequence must start at zero
	_, err = VerifySignature(db, sig1, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "%+v", err)

	cond, err := VerifySignature(db, sig0, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, pub.Condition(), cond)

	nonce, err := NextNonce(db, pub.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(1), nonce)

	// the same signature cannot be used twice
	_, err = VerifySignature(db, sig0, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "%+v", err)

	_, err = VerifySignature(db, sig1, bz, chainID)
	require.NoError(t, err)

	// wrong chain
	other, err := SignTx(priv, tx, "other-chain", 2)
	require.NoError(t, err)
	_, err = VerifySignature(db, other, bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// empty sig
	_, err = VerifySignature(db, new(StdSignature), bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// key swapped
	sig2, err := SignTx(priv, tx, chainID, 2)
	require.NoError(t, err)
	swapped := &StdSignature{Pubkey: crypto.GenPrivKeyEd25519().PublicKey(), Signature: sig2.Signature, Sequence: 2}
	_, err = VerifySignature(db, swapped, bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// failed verifications do not move the sequence
	nonce, err = NextNonce(db, pub.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(2), nonce)
}

func TestVerifyTxSignatures(t *testing.T) {
	priv := crypto.GenPrivKeyEd25519()
	priv2 := crypto.GenPrivKeyEd25519()
	chainID := "hot_summer_days"

	tx := newStdTx([]byte("sign me"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig2, err := SignTx(priv2, tx, chainID, 0)
	require.NoError(t, err)
	wrongChain, err := SignTx(priv2, tx, "other-chain", 0)
	require.NoError(t, err)

	cases := map[string]struct {
		sigs    []*StdSignature
		signers []vault.Condition
		wantErr *errors.Error
	}{
		"no signatures": {
			signers: []vault.Condition{},
		},
		"one signature": {
			sigs:    []*StdSignature{sig},
			signers: []vault.Condition{priv.PublicKey().Condition()},
		},
		"order of signers is kept": {
			sigs:    []*StdSignature{sig2, sig},
			signers: []vault.Condition{priv2.PublicKey().Condition(), priv.PublicKey().Condition()},
		},
		"one bad signature fails all": {
			sigs:    []*StdSignature{sig, wrongChain},
			wantErr: errors.ErrUnauthorized,
		},
		"same signature twice": {
			sigs:    []*StdSignature{sig, sig},
			wantErr: ErrInvalidSequence,
		},
		"nil signature": {
			sigs:    []*StdSignature{nil},
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			tx.Signatures = tc.sigs
			signers, err := VerifyTxSignatures(store.MemStore(), tx, chainID)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.signers, signers)
		})
	}
}

func TestCheckAndIncrementSequence(t *testing.T) {
	user := &UserData{Pubkey: []byte("key"), Sequence: 5}
	assert.True(t, ErrInvalidSequence.Is(user.CheckAndIncrementSequence(4)))
	require.NoError(t, user.CheckAndIncrementSequence(5))
	assert.Equal(t, int64(6), user.Sequence)

	user.Sequence = maxSequence
	assert.True(t, errors.ErrOverflow.Is(user.CheckAndIncrementSequence(maxSequence)))
	assert.Equal(t, int64(maxSequence), user.Sequence)
}
