package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/vault/errors"
)

// freeListSize bounds the nodes kept for reuse between cache wraps.
const freeListSize = btree.DefaultFreeListSize

// BTreeCacheable gives any KVStore a btree backed CacheWrap. Handlers
// use it to run a wallet execution or a token transfer on a savepoint.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a savepoint that writes into the wrapped store.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a simple in-memory store. It backs the wallet library
// facade and all tests. There is no persistence here.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap keeps pending writes in a btree in front of a read only
// store. Writes are mirrored to a batch that is applied on Write.
type BTreeCacheWrap struct {
	pending *btree.BTree
	free    *btree.FreeList
	back    ReadOnlyKVStore
	batch   Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap places a cache over kv. All writes go through batch.
// A nil free list allocates a new one.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(freeListSize)
	}
	return BTreeCacheWrap{
		pending: btree.NewWithFreeList(2, free),
		free:    free,
		back:    kv,
		batch:   batch,
	}
}

// CacheWrap nests another savepoint that shares the free list.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a batch that writes into this cache.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write applies the pending changes to the backing store and empties
// the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all pending changes.
func (b BTreeCacheWrap) Discard() {
	b.pending.Clear(true)
	if r, ok := b.batch.(resetter); ok {
		r.Reset()
	}
}

// Set implements KVStore.
func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.pending.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

// Delete implements KVStore. The key is shadowed until Write.
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.pending.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

// lookup returns the pending entry for key, if any.
func (b BTreeCacheWrap) lookup(key []byte) (entry, bool, error) {
	item := b.pending.Get(entry{key: key})
	if item == nil {
		return entry{}, false, nil
	}
	e, ok := item.(entry)
	if !ok {
		return entry{}, false, errors.Wrapf(errors.ErrDatabase, "unknown cache item %T", item)
	}
	return e, true, nil
}

// Get reads the pending value, else the backing store.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	e, ok, err := b.lookup(key)
	switch {
	case err != nil:
		return nil, err
	case !ok:
		return b.back.Get(key)
	case e.deleted:
		return nil, nil
	default:
		return e.value, nil
	}
}

// Has reports a pending value, else asks the backing store.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	e, ok, err := b.lookup(key)
	switch {
	case err != nil:
		return false, err
	case !ok:
		return b.back.Has(key)
	default:
		return !e.deleted, nil
	}
}

// Iterator walks [start, end) in ascending order over the pending
// changes merged with the backing store.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(collectEntries(b.pending, start, end, true), parent, true)
}

// ReverseIterator walks [start, end) in descending order.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(collectEntries(b.pending, start, end, false), parent, false)
}

// entry is a pending write. A deleted entry hides the key of the
// backing store.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

// Less orders entries by key.
func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
