package token

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

var (
	isTicker    = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString
	isTokenName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString
)

// Address returns the identity of a token with the given ticker.
func Address(ticker string) vault.Address {
	return vault.NewCondition("token", "ticker", []byte(ticker)).Address()
}

// Token describes a registered fungible token.
type Token struct {
	Ticker string        `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Name   string        `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Issuer vault.Address `protobuf:"bytes,3,opt,name=issuer,proto3,casttype=github.com/iov-one/vault.Address" json:"issuer,omitempty"`
}

func (m *Token) Reset()         { *m = Token{} }
func (m *Token) String() string { return proto.CompactTextString(m) }
func (*Token) ProtoMessage()    {}

var _ orm.Model = (*Token)(nil)

// Validate ensures the token is well formed.
func (m *Token) Validate() error {
	if !isTicker(m.Ticker) {
		return errors.Wrapf(ErrInvalidTicker, "%q", m.Ticker)
	}
	if !isTokenName(m.Name) {
		return errors.Wrapf(errors.ErrModel, "invalid token name %q", m.Name)
	}
	if err := m.Issuer.Validate(); err != nil {
		return errors.Wrap(err, "issuer")
	}
	return nil
}

// Balance is the amount of a single token held by a single address.
type Balance struct {
	Amount int64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

var _ orm.Model = (*Balance)(nil)

// Validate refuses negative balances.
func (m *Balance) Validate() error {
	if m.Amount < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative balance %d", m.Amount)
	}
	return nil
}

// NewTokenBucket returns a bucket storing tokens by their address.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokens")
}

// NewBalanceBucket returns a bucket storing balances by token and holder
// address.
func NewBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("balances")
}

// balanceKey groups all balances of a token under the token address.
func balanceKey(token, holder vault.Address) []byte {
	key := make([]byte, 0, len(token)+len(holder))
	key = append(key, token...)
	return append(key, holder...)
}
