package wallet

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*vault.Msg)(nil), nil)
	RegisterAmino(cdc)
	cdc.Seal()
}

// RegisterAmino registers all wallet messages. Payloads of self
// addressed transactions are decoded with the same names, so an
// application codec that registered these messages can encode them.
func RegisterAmino(cdc *amino.Codec) {
	cdc.RegisterConcrete(&SubmitMsg{}, "wallet/SubmitMsg", nil)
	cdc.RegisterConcrete(&SubmitWithGasTokenMsg{}, "wallet/SubmitWithGasTokenMsg", nil)
	cdc.RegisterConcrete(&ConfirmMsg{}, "wallet/ConfirmMsg", nil)
	cdc.RegisterConcrete(&RevokeMsg{}, "wallet/RevokeMsg", nil)
	cdc.RegisterConcrete(&ExecuteMsg{}, "wallet/ExecuteMsg", nil)
	cdc.RegisterConcrete(&AddOwnerMsg{}, "wallet/AddOwnerMsg", nil)
	cdc.RegisterConcrete(&RemoveOwnerMsg{}, "wallet/RemoveOwnerMsg", nil)
	cdc.RegisterConcrete(&ReplaceOwnerMsg{}, "wallet/ReplaceOwnerMsg", nil)
	cdc.RegisterConcrete(&ChangeRequirementMsg{}, "wallet/ChangeRequirementMsg", nil)
	cdc.RegisterConcrete(&AddGasTokenMsg{}, "wallet/AddGasTokenMsg", nil)
}

// EncodeCall serializes an administrative call into a transaction
// payload.
func EncodeCall(msg vault.Msg) ([]byte, error) {
	if !isAdminCall(msg) {
		return nil, errors.Wrapf(errors.ErrMsg, "%T is not a wallet call", msg)
	}
	bz, err := cdc.MarshalBinaryBare(msg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return bz, nil
}

// DecodeCall deserializes a transaction payload into an administrative
// call.
func DecodeCall(payload []byte) (vault.Msg, error) {
	var msg vault.Msg
	if err := cdc.UnmarshalBinaryBare(payload, &msg); err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	if !isAdminCall(msg) {
		return nil, errors.Wrapf(errors.ErrMsg, "%T is not a wallet call", msg)
	}
	return msg, nil
}

func isAdminCall(msg vault.Msg) bool {
	switch msg.(type) {
	case *AddOwnerMsg, *RemoveOwnerMsg, *ReplaceOwnerMsg, *ChangeRequirementMsg, *AddGasTokenMsg:
		return true
	}
	return false
}
