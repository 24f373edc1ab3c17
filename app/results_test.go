package app

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinResults(t *testing.T) {
	models := []vault.Model{
		vault.Pair([]byte("a"), []byte("1")),
		vault.Pair([]byte("b"), []byte("2")),
	}
	joined, err := JoinResults(ResultsFromKeys(models), ResultsFromValues(models))
	require.NoError(t, err)
	assert.Equal(t, models, joined)

	_, err = JoinResults(ResultsFromKeys(models), ResultsFromValues(models[:1]))
	assert.Error(t, err)
}

func TestUnmarshalOneResult(t *testing.T) {
	tok := &token.Token{Ticker: "ETH", Name: "Native token", Issuer: alice}
	raw, err := orm.Marshal(tok)
	require.NoError(t, err)
	bz, err := ResultsFromValues([]vault.Model{vault.Pair(nil, raw)}).Marshal()
	require.NoError(t, err)

	var got token.Token
	require.NoError(t, UnmarshalOneResult(bz, &got))
	assert.Equal(t, "ETH", got.Ticker)
	assert.Equal(t, alice, got.Issuer)

	// an empty set leaves the model untouched
	empty, err := (&ResultSet{}).Marshal()
	require.NoError(t, err)
	var untouched token.Token
	require.NoError(t, UnmarshalOneResult(empty, &untouched))
	assert.Equal(t, "", untouched.Ticker)
}

func TestResultSetEncoding(t *testing.T) {
	set := &ResultSet{Results: [][]byte{[]byte("k"), []byte("value")}}
	bz, err := set.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x01, 'k', 0x0a, 0x05, 'v', 'a', 'l', 'u', 'e'}, bz)

	var got ResultSet
	require.NoError(t, got.Unmarshal(bz))
	assert.Equal(t, set.Results, got.Results)

	// the proto package uses the same encoding
	viaProto, err := proto.Marshal(set)
	require.NoError(t, err)
	assert.Equal(t, bz, viaProto)

	cases := map[string][]byte{
		"unknown field":  {0x12, 0x01, 'k'},
		"truncated":      {0x0a, 0x05, 'k'},
		"missing length": {0x0a},
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			var rs ResultSet
			err := rs.Unmarshal(raw)
			assert.True(t, errors.ErrInput.Is(err), "%+v", err)
		})
	}
}
