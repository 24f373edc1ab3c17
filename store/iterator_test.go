package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheIteratorCloseBeforeWrite(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("A")))
	cache := db.CacheWrap()

	it, err := cache.Iterator([]byte("a"), []byte("z"))
	require.NoError(t, err)
	// Close must be a synchronous operation.
	it.Close()
	require.NoError(t, db.Delete([]byte("a")))

	it, err = cache.ReverseIterator([]byte("a"), []byte("z"))
	require.NoError(t, err)
	require.False(t, it.Valid())
	it.Close()
}
