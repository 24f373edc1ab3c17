package store

import (
	"bytes"

	"github.com/google/btree"
)

// collectEntries copies the pending entries within [start, end) out of
// the tree, ascending or descending. Cache wraps live for a single
// request, so a copy keeps the iterator free of goroutines.
func collectEntries(bt *btree.BTree, start, end []byte, ascending bool) []entry {
	var out []entry
	if ascending {
		visit := func(item btree.Item) bool {
			e := item.(entry)
			if end != nil && bytes.Compare(e.key, end) >= 0 {
				return false
			}
			out = append(out, e)
			return true
		}
		if start == nil {
			bt.Ascend(visit)
		} else {
			bt.AscendGreaterOrEqual(entry{key: start}, visit)
		}
		return out
	}

	visit := func(item btree.Item) bool {
		e := item.(entry)
		if start != nil && bytes.Compare(e.key, start) < 0 {
			return false
		}
		// end is exclusive
		if end != nil && bytes.Equal(e.key, end) {
			return true
		}
		out = append(out, e)
		return true
	}
	if end == nil {
		bt.Descend(visit)
	} else {
		bt.DescendLessOrEqual(entry{key: end}, visit)
	}
	return out
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// mergeIterator joins our cached items with those of the parent,
// taking into consideration overwrites and deletes.
type mergeIterator struct {
	items     []entry
	idx       int
	ascending bool
	parent    Iterator
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []entry, parent Iterator, ascending bool) (*mergeIterator, error) {
	iter := &mergeIterator{
		items:     items,
		ascending: ascending,
		parent:    parent,
	}
	if err := iter.skipAllDeleted(); err != nil {
		iter.Close()
		return nil, err
	}
	return iter, nil
}

// Valid implements Iterator and returns true iff it can be read
func (i *mergeIterator) Valid() bool {
	return i.usValid() || i.parentValid()
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *mergeIterator) Next() error {
	switch i.firstKey() {
	case us:
		i.idx++
	case both:
		i.idx++
		fallthrough
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		panic("Advanced past the end!")
	}
	return i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *mergeIterator) Key() (key []byte) {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].key
	case parent:
		return i.parent.Key()
	default:
		panic("Advanced past the end!")
	}
}

// Value returns the value of the cursor.
func (i *mergeIterator) Value() (value []byte) {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].value
	case parent:
		return i.parent.Value()
	default:
		panic("Advanced past the end!")
	}
}

// Close releases the Iterator.
func (i *mergeIterator) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.items = nil
}

// skipAllDeleted moves over deleted cache items, together with the
// parent entry they shadow.
func (i *mergeIterator) skipAllDeleted() error {
	for {
		src := i.firstKey()
		if src != us && src != both {
			return nil
		}
		if !i.items[i.idx].deleted {
			return nil
		}
		i.idx++
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// firstKey selects the iterator that holds the next key in order.
func (i *mergeIterator) firstKey() source {
	if !i.parentValid() {
		if !i.usValid() {
			return none
		}
		return us
	} else if !i.usValid() {
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.items[i.idx].key)
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

func (i *mergeIterator) usValid() bool {
	return i.idx < len(i.items)
}

// makes sure the parent is non-nil before checking if it is valid
func (i *mergeIterator) parentValid() bool {
	return (i.parent != nil) && i.parent.Valid()
}
