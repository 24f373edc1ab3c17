/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket contains only one type of model, serialized
with protobuf, and keyed by a primary key chosen by the
caller. Buckets can hand out sequences and answer
key and prefix queries through the QueryRouter.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Model is impelemented by any entity that can be stored using ModelBucket.
// Models are plain protobuf messages with a validation method.
type Model interface {
	proto.Message
	Validate() error
}

// ModelBucket stores models of a single type under a common prefix.
type ModelBucket struct {
	name   string
	prefix []byte
}

var _ vault.QueryHandler = ModelBucket{}

// NewModelBucket returns a bucket for the given name. Name must be
// lowercase letters or underscores, between 3 and 10 characters.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return ModelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the bucket name.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b ModelBucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// One query the database for a single model instance. Lookup is done
// by the primary index key. Result is loaded into given destination
// model.
// This method returns ErrNotFound if the entity does not exist in the
// database.
func (b ModelBucket) One(db vault.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	return Unmarshal(raw, dest)
}

// Has returns true if an entity with the given key exists.
func (b ModelBucket) Has(db vault.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Put saves given model in the database.
func (b ModelBucket) Put(db vault.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db vault.KVStore, key []byte) error {
	ok, err := b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s key %X", b.name, key)
	}
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Iterate calls fn with the primary key and the serialized value of every
// entity whose key starts with the given prefix, in ascending key order.
// Iteration stops at the first error returned by fn.
func (b ModelBucket) Iterate(db vault.ReadOnlyKVStore, prefix []byte, fn func(key, raw []byte) error) error {
	start, end := PrefixRange(b.DBKey(prefix))
	it, err := db.Iterator(start, end)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Close()

	for it.Valid() {
		key := it.Key()[len(b.prefix):]
		if err := fn(key, it.Value()); err != nil {
			return err
		}
		if err := it.Next(); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return nil
}

// Sequence returns a Sequence by name
func (b ModelBucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// Register registers this bucket for queries under /<name>.
func (b ModelBucket) Register(name string, r vault.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter
func (b ModelBucket) Query(db vault.ReadOnlyKVStore, mod string, data []byte) ([]vault.Model, error) {
	switch mod {
	case vault.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []vault.Model{vault.Pair(key, value)}, nil
	case vault.PrefixQueryMod:
		var res []vault.Model
		err := b.Iterate(db, data, func(key, raw []byte) error {
			res = append(res, vault.Pair(b.DBKey(key), raw))
			return nil
		})
		return res, err
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// Marshal serializes a model with protobuf.
func Marshal(m Model) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", m, err)
	}
	return raw, nil
}

// Unmarshal loads protobuf data into the destination model.
func Unmarshal(raw []byte, dest Model) error {
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", dest, err)
	}
	return nil
}

// PrefixRange turns a prefix into a [start, end) key range.
func PrefixRange(prefix []byte) ([]byte, []byte) {
	start := make([]byte, len(prefix))
	copy(start, prefix)

	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return start, end[:i+1]
		}
	}
	// all bytes were 0xff, iterate to the end
	return start, nil
}
