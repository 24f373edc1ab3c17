package bech32

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownEncoding(t *testing.T) {
	// bech32 -e -h tiov 746573742d7061796c6f6164
	const text = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`
	want, err := hex.DecodeString("746573742d7061796c6f6164")
	require.NoError(t, err)

	hrp, payload, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(t, "tiov", hrp)
	assert.Equal(t, want, payload)

	got, err := Encode(hrp, payload)
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestDecodeAddress(t *testing.T) {
	owner := bytes.Repeat([]byte{0xab}, 20)
	text, err := Encode("vlt", owner)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(text, "vlt1"), text)

	short, err := Encode("vlt", owner[:8])
	require.NoError(t, err)
	other, err := Encode("tiov", owner)
	require.NoError(t, err)

	// flipping a single character must break the checksum
	broken := []byte(text)
	if last := len(broken) - 1; broken[last] == 'q' {
		broken[last] = 'p'
	} else {
		broken[last] = 'q'
	}

	cases := map[string]struct {
		text    string
		want    []byte
		wantErr *errors.Error
	}{
		"owner address":     {text: text, want: owner},
		"wrong prefix":      {text: other, wantErr: errors.ErrInput},
		"wrong length":      {text: short, wantErr: errors.ErrInput},
		"corrupted":         {text: string(broken), wantErr: errors.ErrInput},
		"not bech32 at all": {text: "vlt1notvalid", wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := DecodeAddress(tc.text, "vlt", 20)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
