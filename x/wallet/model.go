package wallet

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// DefaultMaxOwners is used when the genesis does not declare a bound.
const DefaultMaxOwners = 50

// Condition returns the condition that identifies the wallet with the
// given name when it acts as a signer.
func Condition(name string) vault.Condition {
	return vault.NewCondition("wallet", "self", []byte(name))
}

// Quorum holds the owners of the wallet and the number of confirmations
// required to execute a transaction.
type Quorum struct {
	Name      string          `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Owners    []vault.Address `protobuf:"bytes,2,rep,name=owners,proto3,casttype=github.com/iov-one/vault.Address" json:"owners,omitempty"`
	Required  int32           `protobuf:"varint,3,opt,name=required,proto3" json:"required,omitempty"`
	MaxOwners int32           `protobuf:"varint,4,opt,name=max_owners,json=maxOwners,proto3" json:"max_owners,omitempty"`
}

func (m *Quorum) Reset()         { *m = Quorum{} }
func (m *Quorum) String() string { return proto.CompactTextString(m) }
func (*Quorum) ProtoMessage()    {}

var _ orm.Model = (*Quorum)(nil)

// Validate ensures the registry invariants hold.
func (m *Quorum) Validate() error {
	if m.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	if m.MaxOwners <= 0 {
		return errors.Wrapf(errors.ErrModel, "max owners %d", m.MaxOwners)
	}
	if len(m.Owners) == 0 {
		return errors.Wrap(ErrInvalidRequirement, "no owners")
	}
	if len(m.Owners) > int(m.MaxOwners) {
		return errors.Wrapf(ErrTooManyOwners, "%d > %d", len(m.Owners), m.MaxOwners)
	}
	if m.Required < 1 || int(m.Required) > len(m.Owners) {
		return errors.Wrapf(ErrInvalidRequirement, "%d of %d", m.Required, len(m.Owners))
	}
	for i, o := range m.Owners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(ErrInvalidOwner, "owner %d: %s", i, err)
		}
		for _, prev := range m.Owners[:i] {
			if prev.Equals(o) {
				return errors.Wrapf(ErrDuplicateOwner, "%s", o)
			}
		}
	}
	return nil
}

// Address returns the identity of the wallet.
func (m *Quorum) Address() vault.Address {
	return Condition(m.Name).Address()
}

// IsOwner returns true if addr is one of the owners.
func (m *Quorum) IsOwner(addr vault.Address) bool {
	return m.ownerIndex(addr) >= 0
}

func (m *Quorum) ownerIndex(addr vault.Address) int {
	if addr.IsNull() {
		return -1
	}
	for i, o := range m.Owners {
		if o.Equals(addr) {
			return i
		}
	}
	return -1
}

// Transaction is a call submitted to the wallet.
type Transaction struct {
	Destination    vault.Address `protobuf:"bytes,1,opt,name=destination,proto3,casttype=github.com/iov-one/vault.Address" json:"destination,omitempty"`
	Value          int64         `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
	Payload        []byte        `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
	GasTokenAmount int64         `protobuf:"varint,4,opt,name=gas_token_amount,json=gasTokenAmount,proto3" json:"gas_token_amount,omitempty"`
	Executed       bool          `protobuf:"varint,5,opt,name=executed,proto3" json:"executed,omitempty"`
	// Succeeded is the outcome of the dispatch, set together with Executed.
	Succeeded     bool            `protobuf:"varint,6,opt,name=succeeded,proto3" json:"succeeded,omitempty"`
	Confirmations []vault.Address `protobuf:"bytes,7,rep,name=confirmations,proto3,casttype=github.com/iov-one/vault.Address" json:"confirmations,omitempty"`
}

func (m *Transaction) Reset()         { *m = Transaction{} }
func (m *Transaction) String() string { return proto.CompactTextString(m) }
func (*Transaction) ProtoMessage()    {}

var _ orm.Model = (*Transaction)(nil)

// Validate checks the transaction content.
func (m *Transaction) Validate() error {
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Value < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative value %d", m.Value)
	}
	if m.GasTokenAmount < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative gas token amount %d", m.GasTokenAmount)
	}
	if m.Succeeded && !m.Executed {
		return errors.Wrap(errors.ErrState, "succeeded before executed")
	}
	for i, c := range m.Confirmations {
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "confirmation %d", i)
		}
		for _, prev := range m.Confirmations[:i] {
			if prev.Equals(c) {
				return errors.Wrapf(errors.ErrDuplicate, "confirmation %s", c)
			}
		}
	}
	return nil
}

// IsConfirmedBy returns true if addr confirmed this transaction.
func (m *Transaction) IsConfirmedBy(addr vault.Address) bool {
	for _, c := range m.Confirmations {
		if c.Equals(addr) {
			return true
		}
	}
	return false
}

// Reservation holds the configured gas token and the amount reserved
// by pending transactions.
type Reservation struct {
	GasToken vault.Address `protobuf:"bytes,1,opt,name=gas_token,json=gasToken,proto3,casttype=github.com/iov-one/vault.Address" json:"gas_token,omitempty"`
	Reserved int64         `protobuf:"varint,2,opt,name=reserved,proto3" json:"reserved,omitempty"`
}

func (m *Reservation) Reset()         { *m = Reservation{} }
func (m *Reservation) String() string { return proto.CompactTextString(m) }
func (*Reservation) ProtoMessage()    {}

var _ orm.Model = (*Reservation)(nil)

// Validate ensures the reservation counter is consistent.
func (m *Reservation) Validate() error {
	if m.Reserved < 0 {
		return errors.Wrapf(errors.ErrState, "negative reservation %d", m.Reserved)
	}
	if m.GasToken.IsNull() {
		if m.Reserved != 0 {
			return errors.Wrap(errors.ErrState, "reservation without gas token")
		}
		return nil
	}
	return errors.Wrap(m.GasToken.Validate(), "gas token")
}
