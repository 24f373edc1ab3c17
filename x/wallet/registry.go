package wallet

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

var quorumKey = []byte("self")

// Registry keeps the owners of the wallet and the confirmation
// threshold. All mutations require an Authority.
type Registry struct {
	bucket orm.ModelBucket
}

// NewRegistry returns a registry using the default bucket.
func NewRegistry() Registry {
	return Registry{bucket: orm.NewModelBucket("quorum")}
}

// Load returns the current quorum. It fails with errors.ErrNotFound if
// the wallet was never initialized.
func (r Registry) Load(db vault.ReadOnlyKVStore) (*Quorum, error) {
	var q Quorum
	if err := r.bucket.One(db, quorumKey, &q); err != nil {
		return nil, errors.Wrap(err, "wallet quorum")
	}
	return &q, nil
}

// Init stores the initial quorum. It can be called only once.
func (r Registry) Init(db vault.KVStore, q *Quorum) error {
	ok, err := r.bucket.Has(db, quorumKey)
	if err != nil {
		return err
	}
	if ok {
		return errors.Wrap(ErrAlreadySet, "wallet quorum")
	}
	return r.bucket.Put(db, quorumKey, q)
}

func (r Registry) save(db vault.KVStore, q *Quorum) error {
	return r.bucket.Put(db, quorumKey, q)
}

// load returns the quorum if the authority was issued for this wallet.
func (r Registry) load(db vault.KVStore, auth *Authority) (*Quorum, error) {
	q, err := r.Load(db)
	if err != nil {
		return nil, err
	}
	if !auth.permits(q.Address()) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the wallet can change its owners")
	}
	return q, nil
}

// AddOwner appends a new owner.
func (r Registry) AddOwner(ctx vault.Context, db vault.KVStore, auth *Authority, owner vault.Address) error {
	q, err := r.load(db, auth)
	if err != nil {
		return err
	}
	if owner.IsNull() || owner.Validate() != nil {
		return errors.Wrapf(ErrInvalidOwner, "%s", owner)
	}
	if q.IsOwner(owner) {
		return errors.Wrapf(ErrInvalidOwner, "%s is already an owner", owner)
	}
	if len(q.Owners) >= int(q.MaxOwners) {
		return errors.Wrapf(ErrTooManyOwners, "limit is %d", q.MaxOwners)
	}
	q.Owners = append(q.Owners, owner)
	if err := r.save(db, q); err != nil {
		return err
	}
	vault.Emit(ctx, ownerAdditionEvent(owner))
	return nil
}

// RemoveOwner removes an owner. The requirement is lowered to the number
// of remaining owners when needed.
func (r Registry) RemoveOwner(ctx vault.Context, db vault.KVStore, auth *Authority, owner vault.Address) error {
	q, err := r.load(db, auth)
	if err != nil {
		return err
	}
	idx := q.ownerIndex(owner)
	if idx < 0 {
		return errors.Wrapf(ErrUnknownOwner, "%s", owner)
	}
	if len(q.Owners) == 1 {
		return errors.Wrap(ErrInvalidRequirement, "cannot remove the last owner")
	}
	q.Owners = append(q.Owners[:idx:idx], q.Owners[idx+1:]...)
	clamped := int(q.Required) > len(q.Owners)
	if clamped {
		q.Required = int32(len(q.Owners))
	}
	if err := r.save(db, q); err != nil {
		return err
	}
	vault.Emit(ctx, ownerRemovalEvent(owner))
	if clamped {
		vault.Emit(ctx, requirementChangeEvent(q.Required))
	}
	return nil
}

// ReplaceOwner puts a new owner in place of an existing one, keeping its
// position.
func (r Registry) ReplaceOwner(ctx vault.Context, db vault.KVStore, auth *Authority, old, owner vault.Address) error {
	q, err := r.load(db, auth)
	if err != nil {
		return err
	}
	idx := q.ownerIndex(old)
	if idx < 0 {
		return errors.Wrapf(ErrUnknownOwner, "%s", old)
	}
	if owner.IsNull() || owner.Validate() != nil {
		return errors.Wrapf(ErrInvalidOwner, "%s", owner)
	}
	if q.IsOwner(owner) {
		return errors.Wrapf(ErrDuplicateOwner, "%s", owner)
	}
	q.Owners[idx] = owner
	if err := r.save(db, q); err != nil {
		return err
	}
	vault.Emit(ctx, ownerRemovalEvent(old), ownerAdditionEvent(owner))
	return nil
}

// ChangeRequirement sets the number of confirmations required to execute
// a transaction.
func (r Registry) ChangeRequirement(ctx vault.Context, db vault.KVStore, auth *Authority, required int32) error {
	q, err := r.load(db, auth)
	if err != nil {
		return err
	}
	if required < 1 || int(required) > len(q.Owners) {
		return errors.Wrapf(ErrInvalidRequirement, "%d of %d", required, len(q.Owners))
	}
	q.Required = required
	if err := r.save(db, q); err != nil {
		return err
	}
	vault.Emit(ctx, requirementChangeEvent(required))
	return nil
}
