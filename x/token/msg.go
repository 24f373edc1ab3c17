package token

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

const (
	pathCreateTokenMsg = "token/create"
	pathTransferMsg    = "token/transfer"
	pathMintMsg        = "token/mint"
)

// CreateTokenMsg registers a new token. The signer becomes the issuer.
type CreateTokenMsg struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

var _ vault.Msg = (*CreateTokenMsg)(nil)

// Path returns the routing path for this message.
func (CreateTokenMsg) Path() string {
	return pathCreateTokenMsg
}

// Validate ensures the message is well formed.
func (m *CreateTokenMsg) Validate() error {
	if !isTicker(m.Ticker) {
		return errors.Wrapf(ErrInvalidTicker, "%q", m.Ticker)
	}
	if !isTokenName(m.Name) {
		return errors.Wrapf(errors.ErrMsg, "invalid token name %q", m.Name)
	}
	return nil
}

// TransferMsg moves tokens from the source to the destination. The source
// must authorize the transaction.
type TransferMsg struct {
	Token       vault.Address `json:"token"`
	Source      vault.Address `json:"source"`
	Destination vault.Address `json:"destination"`
	Amount      int64         `json:"amount"`
}

var _ vault.Msg = (*TransferMsg)(nil)

// Path returns the routing path for this message.
func (TransferMsg) Path() string {
	return pathTransferMsg
}

// Validate ensures the message is well formed.
func (m *TransferMsg) Validate() error {
	if err := m.Token.Validate(); err != nil {
		return errors.Wrap(err, "token")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non positive amount %d", m.Amount)
	}
	return nil
}

// MintMsg creates new units of a token. Only the token issuer can mint.
type MintMsg struct {
	Token       vault.Address `json:"token"`
	Destination vault.Address `json:"destination"`
	Amount      int64         `json:"amount"`
}

var _ vault.Msg = (*MintMsg)(nil)

// Path returns the routing path for this message.
func (MintMsg) Path() string {
	return pathMintMsg
}

// Validate ensures the message is well formed.
func (m *MintMsg) Validate() error {
	if err := m.Token.Validate(); err != nil {
		return errors.Wrap(err, "token")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non positive amount %d", m.Amount)
	}
	return nil
}
