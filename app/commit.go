package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// CommitStore keeps the state of the wallet chain in three views. Deliver
// collects the writes of the current block, check validates incoming
// transactions against the mempool state and queries read the committed
// state only.
type CommitStore struct {
	committed vault.CommitKVStore
	head      vault.CommitID
	deliver   vault.KVCacheWrap
	check     vault.KVCacheWrap
}

// NewCommitStore loads the latest version of store and opens fresh
// deliver and check views on top of it.
func NewCommitStore(store vault.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	head, err := store.LatestVersion()
	if err != nil {
		return nil, errors.Wrap(err, "latest version")
	}
	cs := &CommitStore{committed: store, head: head}
	cs.reopen()
	return cs, nil
}

func (cs *CommitStore) reopen() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// Head returns the height and hash of the last commit.
func (cs *CommitStore) Head() vault.CommitID {
	return cs.head
}

// Commit writes the block collected in the deliver view and persists a
// new version. Transactions only checked against the mempool are
// dropped. Callers serialize access, see StoreApp.
func (cs *CommitStore) Commit() (vault.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return vault.CommitID{}, err
	}
	cs.check.Discard()

	head, err := cs.committed.Commit()
	if err != nil {
		return head, err
	}
	cs.head = head
	cs.reopen()
	return head, nil
}

// CheckStore returns the view used by CheckTx.
func (cs *CommitStore) CheckStore() vault.CacheableKVStore {
	return cs.check
}

// DeliverStore returns the view used by DeliverTx and genesis.
func (cs *CommitStore) DeliverStore() vault.CacheableKVStore {
	return cs.deliver
}

// Committed returns a read view of the last commit together with its
// height. Pending deliver writes are not visible through it.
func (cs *CommitStore) Committed() (vault.ReadOnlyKVStore, vault.CommitID) {
	return cs.committed.CacheWrap(), cs.head
}
