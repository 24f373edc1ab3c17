package orm

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Name  string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Count int64  `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *counter) Reset()         { *m = counter{} }
func (m *counter) String() string { return proto.CompactTextString(m) }
func (*counter) ProtoMessage()    {}

func (m *counter) Validate() error {
	if m.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

func TestModelBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("counters")

	var c counter
	err := b.One(db, []byte("a"), &c)
	require.True(t, errors.ErrNotFound.Is(err), "%+v", err)

	require.NoError(t, b.Put(db, []byte("a"), &counter{Name: "alpha", Count: 7}))
	require.NoError(t, b.One(db, []byte("a"), &c))
	assert.Equal(t, counter{Name: "alpha", Count: 7}, c)

	ok, err := b.Has(db, []byte("a"))
	require.NoError(t, err)
	assert.True(t, ok)

	// invalid models are refused
	err = b.Put(db, []byte("b"), &counter{Count: 1})
	assert.True(t, errors.ErrEmpty.Is(err), "%+v", err)

	require.NoError(t, b.Delete(db, []byte("a")))
	err = b.Delete(db, []byte("a"))
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)
}

func TestModelBucketIterate(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("counters")
	other := NewModelBucket("countersx")

	for _, k := range []string{"b2", "a1", "b1", "c"} {
		require.NoError(t, b.Put(db, []byte(k), &counter{Name: k}))
	}
	// a bucket sharing the name prefix must not leak in
	require.NoError(t, other.Put(db, []byte("a0"), &counter{Name: "other"}))

	var keys []string
	err := b.Iterate(db, nil, func(key, raw []byte) error {
		var c counter
		if err := Unmarshal(raw, &c); err != nil {
			return err
		}
		assert.Equal(t, string(key), c.Name)
		keys = append(keys, string(key))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "b1", "b2", "c"}, keys)

	keys = nil
	err = b.Iterate(db, []byte("b"), func(key, raw []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, keys)

	stop := errors.Wrap(errors.ErrHuman, "stop")
	err = b.Iterate(db, nil, func(key, raw []byte) error { return stop })
	assert.True(t, errors.ErrHuman.Is(err))
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("counters")
	require.NoError(t, b.Put(db, []byte("k1"), &counter{Name: "one"}))
	require.NoError(t, b.Put(db, []byte("k2"), &counter{Name: "two"}))

	qr := vault.NewQueryRouter()
	b.Register("", qr)
	h := qr.Handler("/counters")
	require.NotNil(t, h)

	res, err := h.Query(db, vault.KeyQueryMod, []byte("k1"))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []byte("counters:k1"), res[0].Key)

	res, err = h.Query(db, vault.KeyQueryMod, []byte("missing"))
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = h.Query(db, vault.PrefixQueryMod, []byte("k"))
	require.NoError(t, err)
	assert.Len(t, res, 2)

	_, err = h.Query(db, "range", nil)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestBucketNameValidation(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("UPPER") })
	assert.Panics(t, func() { NewModelBucket("ab") })
	assert.NotPanics(t, func() { NewModelBucket("wallet_tx") })
}

func TestPrefixRange(t *testing.T) {
	start, end := PrefixRange([]byte{1, 0xff})
	assert.Equal(t, []byte{1, 0xff}, start)
	assert.Equal(t, []byte{2}, end)

	_, end = PrefixRange([]byte{0xff, 0xff})
	assert.Nil(t, end)
}
