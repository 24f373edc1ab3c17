package token

import (
	amino "github.com/tendermint/go-amino"
)

// RegisterAmino registers all token messages so they can be sent in a
// transaction or as the payload of a wallet call.
func RegisterAmino(cdc *amino.Codec) {
	cdc.RegisterConcrete(&CreateTokenMsg{}, "token/CreateTokenMsg", nil)
	cdc.RegisterConcrete(&TransferMsg{}, "token/TransferMsg", nil)
	cdc.RegisterConcrete(&MintMsg{}, "token/MintMsg", nil)
}
