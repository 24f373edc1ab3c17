package wallet

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

const (
	pathSubmitMsg             = "wallet/submit"
	pathSubmitWithGasTokenMsg = "wallet/submit_gas"
	pathConfirmMsg            = "wallet/confirm"
	pathRevokeMsg             = "wallet/revoke"
	pathExecuteMsg            = "wallet/execute"
	pathAddOwnerMsg           = "wallet/add_owner"
	pathRemoveOwnerMsg        = "wallet/remove_owner"
	pathReplaceOwnerMsg       = "wallet/replace_owner"
	pathChangeRequirementMsg  = "wallet/change_requirement"
	pathAddGasTokenMsg        = "wallet/add_gas_token"
)

// SubmitMsg submits a new transaction. The signer confirms it.
type SubmitMsg struct {
	Destination vault.Address `json:"destination"`
	Value       int64         `json:"value"`
	Payload     []byte        `json:"payload"`
}

// Path returns the routing path for this message.
func (SubmitMsg) Path() string { return pathSubmitMsg }

// Validate ensures the message is well formed.
func (m *SubmitMsg) Validate() error {
	return validateCall(m.Destination, m.Value)
}

// SubmitWithGasTokenMsg submits a new transaction that reserves an amount
// of the gas token until it is executed.
type SubmitWithGasTokenMsg struct {
	Destination    vault.Address `json:"destination"`
	Value          int64         `json:"value"`
	Payload        []byte        `json:"payload"`
	GasTokenAmount int64         `json:"gas_token_amount"`
}

// Path returns the routing path for this message.
func (SubmitWithGasTokenMsg) Path() string { return pathSubmitWithGasTokenMsg }

// Validate ensures the message is well formed.
func (m *SubmitWithGasTokenMsg) Validate() error {
	if m.GasTokenAmount < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative gas token amount %d", m.GasTokenAmount)
	}
	return validateCall(m.Destination, m.Value)
}

func validateCall(dest vault.Address, value int64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if value < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative value %d", value)
	}
	return nil
}

// ConfirmMsg confirms a pending transaction.
type ConfirmMsg struct {
	TransactionID int64 `json:"transaction_id"`
}

// Path returns the routing path for this message.
func (ConfirmMsg) Path() string { return pathConfirmMsg }

// Validate ensures the message is well formed.
func (m *ConfirmMsg) Validate() error { return validateID(m.TransactionID) }

// RevokeMsg revokes a confirmation of a pending transaction.
type RevokeMsg struct {
	TransactionID int64 `json:"transaction_id"`
}

// Path returns the routing path for this message.
func (RevokeMsg) Path() string { return pathRevokeMsg }

// Validate ensures the message is well formed.
func (m *RevokeMsg) Validate() error { return validateID(m.TransactionID) }

// ExecuteMsg executes a confirmed transaction.
type ExecuteMsg struct {
	TransactionID int64 `json:"transaction_id"`
}

// Path returns the routing path for this message.
func (ExecuteMsg) Path() string { return pathExecuteMsg }

// Validate ensures the message is well formed.
func (m *ExecuteMsg) Validate() error { return validateID(m.TransactionID) }

func validateID(id int64) error {
	if id < 0 {
		return errors.Wrapf(ErrUnknownTransaction, "id %d", id)
	}
	return nil
}

// AddOwnerMsg is an administrative call adding an owner.
type AddOwnerMsg struct {
	Owner vault.Address `json:"owner"`
}

// Path returns the routing path for this message.
func (AddOwnerMsg) Path() string { return pathAddOwnerMsg }

// Validate ensures the message is well formed.
func (m *AddOwnerMsg) Validate() error { return validateOwner(m.Owner) }

// RemoveOwnerMsg is an administrative call removing an owner.
type RemoveOwnerMsg struct {
	Owner vault.Address `json:"owner"`
}

// Path returns the routing path for this message.
func (RemoveOwnerMsg) Path() string { return pathRemoveOwnerMsg }

// Validate ensures the message is well formed.
func (m *RemoveOwnerMsg) Validate() error {
	if m.Owner.IsNull() {
		return errors.Wrap(ErrUnknownOwner, "null owner")
	}
	return nil
}

// ReplaceOwnerMsg is an administrative call replacing Owner with NewOwner.
type ReplaceOwnerMsg struct {
	Owner    vault.Address `json:"owner"`
	NewOwner vault.Address `json:"new_owner"`
}

// Path returns the routing path for this message.
func (ReplaceOwnerMsg) Path() string { return pathReplaceOwnerMsg }

// Validate ensures the message is well formed.
func (m *ReplaceOwnerMsg) Validate() error {
	if m.Owner.IsNull() {
		return errors.Wrap(ErrUnknownOwner, "null owner")
	}
	return validateOwner(m.NewOwner)
}

func validateOwner(a vault.Address) error {
	if err := a.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidOwner, "%s", err)
	}
	return nil
}

// ChangeRequirementMsg is an administrative call setting the number of
// required confirmations.
type ChangeRequirementMsg struct {
	Required int32 `json:"required"`
}

// Path returns the routing path for this message.
func (ChangeRequirementMsg) Path() string { return pathChangeRequirementMsg }

// Validate ensures the message is well formed.
func (m *ChangeRequirementMsg) Validate() error {
	if m.Required < 1 {
		return errors.Wrapf(ErrInvalidRequirement, "%d", m.Required)
	}
	return nil
}

// AddGasTokenMsg is an administrative call configuring the gas token.
type AddGasTokenMsg struct {
	Token vault.Address `json:"token"`
}

// Path returns the routing path for this message.
func (AddGasTokenMsg) Path() string { return pathAddGasTokenMsg }

// Validate ensures the message is well formed.
func (m *AddGasTokenMsg) Validate() error {
	if err := m.Token.Validate(); err != nil {
		return errors.Wrap(err, "gas token")
	}
	return nil
}
