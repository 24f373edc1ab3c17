package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	// cases share the store and run in order
	cases := []struct {
		testName   string
		bucket     string
		name       string
		init       int64
		increments int64
	}{
		{testName: "fresh sequence", bucket: "wallet", name: "tx", init: 0, increments: 22},
		{testName: "second sequence", bucket: "wallet", name: "other", init: 0, increments: 11},
		{testName: "continue first sequence", bucket: "wallet", name: "tx", init: 22, increments: 18},
		{testName: "same name, another bucket", bucket: "token", name: "tx", init: 0, increments: 7},
		{testName: "continue second sequence", bucket: "wallet", name: "other", init: 11, increments: 248},
	}

	for _, tc := range cases {
		t.Run(tc.testName, func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			orig, err := s.Latest(db)
			require.NoError(t, err)
			assert.Equal(t, tc.init, orig)

			var val int64
			for i := int64(0); i < tc.increments; i++ {
				val, err = s.NextInt(db)
				require.NoError(t, err)
			}
			assert.Equal(t, tc.init+tc.increments, val)

			// raw bytes keep the numeric order
			assert.Equal(t, 1, bytes.Compare(EncodeSequence(val), EncodeSequence(orig)))
		})
	}
}

func TestDecodeSequence(t *testing.T) {
	val, err := DecodeSequence(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), val)

	val, err = DecodeSequence(EncodeSequence(1 << 40))
	require.NoError(t, err)
	assert.Equal(t, int64(1<<40), val)

	_, err = DecodeSequence([]byte{1, 2})
	assert.True(t, errors.ErrState.Is(err))
}
