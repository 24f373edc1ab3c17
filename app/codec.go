package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/x/token"
	"github.com/iov-one/vault/x/wallet"
	amino "github.com/tendermint/go-amino"
)

// cdc encodes transactions and the messages carried by wallet
// transaction payloads.
var cdc = amino.NewCodec()

func init() {
	RegisterAmino(cdc)
	cdc.Seal()
}

// RegisterAmino registers the message interface and every message the
// application routes.
func RegisterAmino(cdc *amino.Codec) {
	cdc.RegisterInterface((*vault.Msg)(nil), nil)
	token.RegisterAmino(cdc)
	wallet.RegisterAmino(cdc)
}

// EncodeMsg serializes a message so it can be used as the payload of a
// wallet transaction.
func EncodeMsg(msg vault.Msg) ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

// DecodeMsg is the inverse of EncodeMsg.
func DecodeMsg(payload []byte) (vault.Msg, error) {
	var msg vault.Msg
	if err := cdc.UnmarshalBinaryBare(payload, &msg); err != nil {
		return nil, err
	}
	return msg, nil
}
