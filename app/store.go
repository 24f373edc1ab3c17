package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp contains a data store and all info needed
// to perform queries and handshakes.
//
// It should be embedded in another struct for CheckTx,
// DeliverTx and initializing state from the genesis.
// Errors on ABCI steps that take no user input (Info, InitChain,
// BeginBlock, EndBlock and Commit) are handled as panics, there is no
// way to report them to tendermint.
//
// A single mutex serializes every ABCI call, so state is never read
// while another connection is writing it.
type StoreApp struct {
	mu *sync.Mutex

	logger log.Logger

	// name is what is returned from abci.Info
	name string

	// Database state (committed, check, deliver....)
	store *CommitStore

	// Code to initialize from a genesis file
	initializer vault.Initializer

	// How to handle queries
	queryRouter vault.QueryRouter

	// chainID is loaded from db in initialization
	// saved once in parseAppState
	chainID string

	// debug returns full error information in responses
	debug bool

	// baseContext contains context info that is valid for
	// lifetime of this app (eg. chainID)
	baseContext vault.Context

	// blockContext contains context info that is valid for the
	// current block (eg. height, header), reset on BeginBlock
	blockContext vault.Context
}

// NewStoreApp initializes this app into a ready state with some defaults
//
// panics if unable to properly load the state from the given store
func NewStoreApp(name string, store vault.CommitKVStore,
	queryRouter vault.QueryRouter, baseContext vault.Context) *StoreApp {
	cs, err := NewCommitStore(store)
	if err != nil {
		panic(err)
	}
	s := &StoreApp{
		mu:          &sync.Mutex{},
		name:        name,
		store:       cs,
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	// load the chainID from the db
	s.chainID = mustLoadChainID(s.DeliverStore())
	if s.chainID != "" {
		s.baseContext = vault.WithChainID(s.baseContext, s.chainID)
	}

	s.blockContext = vault.WithHeight(s.baseContext, s.store.Head().Version)
	return s
}

// GetChainID returns the current chainID
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit is used to set the init function we call
func (s *StoreApp) WithInit(init vault.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug sets whether errors returned in responses carry the full
// error information.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// LoadGenesis reads the chain id and the app_state from a genesis file
// and initializes the state with them. It is an alternative to
// InitChain when the chain is started without tendermint.
func (s *StoreApp) LoadGenesis(filePath string, init vault.Initializer) error {
	gen, err := loadGenesis(filePath)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parseAppState(gen.AppState, gen.ChainID, init)
}

// parseAppState is called from InitChain, the first time the chain
// starts, and not on restarts.
func (s *StoreApp) parseAppState(data []byte, chainID string, init vault.Initializer) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain: %s", s.chainID)
	}
	if len(data) == 0 {
		return errors.Wrap(errors.ErrState, "app_state not set in genesis.json, please initialize application before launching the blockchain")
	}
	if init == nil {
		return errors.Wrap(errors.ErrState, "no initializer")
	}

	var appState vault.Options
	if err := json.Unmarshal(data, &appState); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}
	if err := s.storeChainID(chainID); err != nil {
		return err
	}
	return init.FromGenesis(appState, s.DeliverStore())
}

// store chainID and update context
func (s *StoreApp) storeChainID(chainID string) error {
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = vault.WithChainID(s.baseContext, s.chainID)
	s.blockContext = vault.WithChainID(s.blockContext, s.chainID)
	return nil
}

// WithLogger sets the logger on the StoreApp and returns it,
// to make it easy to chain in initialization
//
// also sets the logger of the base and block contexts
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = vault.WithLogger(s.baseContext, logger)
	if s.blockContext != nil {
		s.blockContext = vault.WithLogger(s.blockContext, logger)
	}
	s.logger = logger
	return s
}

// Logger returns the application base logger
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the block context for public use
func (s *StoreApp) BlockContext() vault.Context {
	return s.blockContext
}

// DeliverStore returns the current DeliverTx cache for methods
func (s *StoreApp) DeliverStore() vault.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore returns the current CheckTx cache for methods
func (s *StoreApp) CheckStore() vault.CacheableKVStore {
	return s.store.CheckStore()
}

//----------------------- ABCI ---------------------

// Info implements abci.Application. It returns the height and hash,
// as well as the abci name and version.
//
// The height is the block that holds the transactions, not the apphash itself.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := s.store.Head()
	s.logger.Info("Info synced",
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))

	return abci.ResponseInfo{
		Data:             s.name,
		Version:          vault.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption - ABCI
func (s *StoreApp) SetOption(res abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

/*
Query gets data from the app store.
A query request has the following elements:
* Path - the type of query
* Data - what to query, interpretted based on Path

Path may be "/" or a path registered on the QueryRouter, like "/wallet".
It may be followed by "?prefix" to make a prefix query.

Queries always read the last committed state. Key and Value in
Results are always serialized ResultSet objects, able to support 0 to
N values. They must be the same size.
*/
func (s *StoreApp) Query(reqQuery abci.RequestQuery) abci.ResponseQuery {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, mod := splitPath(reqQuery.Path)
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		err := errors.Wrapf(errors.ErrNotFound, "query path: %s", reqQuery.Path)
		return vault.QueryError(err, s.debug)
	}

	db, info := s.store.Committed()
	models, err := qh.Query(db, mod, reqQuery.Data)
	if err != nil {
		return vault.QueryError(err, s.debug)
	}

	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return vault.QueryError(errors.Wrap(errors.ErrModel, err.Error()), s.debug)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return vault.QueryError(errors.Wrap(errors.ErrModel, err.Error()), s.debug)
	}
	return res
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}

// Commit implements abci.Application
func (s *StoreApp) Commit() abci.ResponseCommit {
	s.mu.Lock()
	defer s.mu.Unlock()

	commitID, err := s.store.Commit()
	if err != nil {
		panic(err)
	}

	s.logger.Debug("Commit synced",
		"height", commitID.Version,
		"hash", fmt.Sprintf("%X", commitID.Hash),
	)
	return abci.ResponseCommit{Data: commitID.Hash}
}

// InitChain implements ABCI. The app_state of the genesis file is
// passed to the initializer.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.parseAppState(req.AppStateBytes, req.ChainId, s.initializer); err != nil {
		// Read comment on type header
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock implements ABCI
// Sets up blockContext
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := vault.WithHeader(s.baseContext, req.Header)
	ctx = vault.WithHeight(ctx, req.Header.GetHeight())
	s.blockContext = ctx
	return abci.ResponseBeginBlock{}
}

// EndBlock - ABCI
// The validator set never changes.
func (s *StoreApp) EndBlock(_ abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
