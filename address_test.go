package vault_test

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		addr := vault.NewAddress([]byte("ABCD123456LHB"))

		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(addr)))
		So(vault.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("test condition printing", t, func() {
		cond := vault.NewCondition("wallet", "self", []byte{0xca, 0xfe})

		So(cond.String(), ShouldEqual, "wallet/self/CAFE")
		So(vault.Condition("nonsense").String(), ShouldStartWith, "Invalid Condition")
	})
}

func TestConditionParse(t *testing.T) {
	cond := vault.NewCondition("sigs", "ed25519", []byte("key\nwith newline"))
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte("key\nwith newline"), data)
	assert.NoError(t, cond.Validate())

	_, _, _, err = vault.Condition("x/y").Parse()
	assert.True(t, errors.ErrInput.Is(err))
	assert.True(t, errors.ErrInput.Is(vault.Condition("ab/cd/ef").Validate()))
}

func TestAddress(t *testing.T) {
	a := vault.NewCondition("wallet", "self", []byte("main")).Address()
	require.NoError(t, a.Validate())
	assert.Len(t, a, vault.AddressLength)
	assert.False(t, a.IsNull())
	assert.True(t, vault.Address(nil).IsNull())
	assert.Nil(t, vault.NewAddress(nil))

	c := a.Clone()
	assert.True(t, a.Equals(c))
	c[0]++
	assert.False(t, a.Equals(c))

	assert.True(t, errors.ErrInput.Is(vault.Address([]byte("short")).Validate()))
}

func TestAddressBech32(t *testing.T) {
	a := vault.NewAddress([]byte("some owner"))
	enc, err := a.Bech32()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, vault.AddressHRP+"1"), enc)

	// autodetected and explicit form must both decode
	got, err := vault.ParseAddress(enc)
	require.NoError(t, err)
	assert.Equal(t, a, got)
	got, err = vault.ParseAddress("bech32:" + enc)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestAddressUnmarshalJSON(t *testing.T) {
	owner := vault.NewAddress([]byte("owner"))
	ownerHex := hex.EncodeToString(owner)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr vault.Address
	}{
		"default decoding": {
			json:     `"` + ownerHex + `"`,
			wantAddr: owner,
		},
		"hex decoding": {
			json:     `"hex:` + ownerHex + `"`,
			wantAddr: owner,
		},
		"hex of invalid length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: vault.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"invalid bech32": {
			json:    `"bech32:vlt1notvalid"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a vault.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !tc.wantAddr.Equals(a) {
				t.Fatalf("got address %q, want %q", a, tc.wantAddr)
			}
		})
	}
}

func TestAddressMarshalJSON(t *testing.T) {
	a := vault.NewAddress([]byte("marshal"))
	raw, err := json.Marshal(a)
	require.NoError(t, err)

	var back vault.Address
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, a, back)
}
