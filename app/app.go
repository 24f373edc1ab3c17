/*
Package app wires the wallet and token modules into an ABCI
application: signed transactions are decoded, authenticated, routed to
their handler on a savepoint and their events are exported as tags.
*/
package app

import (
	"context"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/x"
	"github.com/iov-one/vault/x/sigs"
	"github.com/iov-one/vault/x/token"
	"github.com/iov-one/vault/x/utils"
	"github.com/iov-one/vault/x/wallet"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the authentication used by every handler. A
// wallet executing a transaction signs the messages it dispatches.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, wallet.Authenticate{})
}

// Chain returns the decorators every transaction passes before it is
// routed.
func Chain() Decorators {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewEventTagger(),
		utils.NewActionTagger(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// AppRouter returns a router with all token and wallet handlers. The
// wallet dispatches executed transactions through the same router.
func AppRouter(nativeTicker string) *Router {
	r := NewRouter()
	auth := Authenticator()
	tokens := token.NewController()
	token.RegisterRoutes(r, auth, nil, tokens)

	engine := wallet.NewEngine(tokens, NewDispatcher(r, tokens, nativeTicker))
	wallet.RegisterRoutes(r, auth, engine)
	return r
}

// Stack wires up a standard router with the standard decorators.
func Stack(nativeTicker string) vault.Handler {
	return Chain().WithHandler(AppRouter(nativeTicker))
}

// QueryRouter returns a router with the raw store, signer sequence,
// token and wallet queries.
func QueryRouter() vault.QueryRouter {
	r := vault.NewQueryRouter()
	r.RegisterAll(
		RegisterQuery,
		sigs.RegisterQuery,
		token.RegisterQuery,
		wallet.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all modules.
func Initializers() vault.Initializer {
	return vault.ChainInitializers(
		token.Initializer{},
		wallet.Initializer{},
	)
}

// Options configure an Application.
type Options struct {
	// Name is returned by abci.Info.
	Name string
	// NativeTicker is the token moved by the value of wallet
	// transactions. Empty means only zero value calls succeed.
	NativeTicker string
	// Debug returns full error information in responses.
	Debug bool
	Logger log.Logger
}

// Application constructs the ABCI application over the given store.
func Application(store vault.CommitKVStore, opts Options) BaseApp {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	s := NewStoreApp(opts.Name, store, QueryRouter(), context.Background()).
		WithInit(Initializers()).
		WithLogger(logger)
	return NewBaseApp(s, TxDecoder, Stack(opts.NativeTicker), opts.Debug)
}
