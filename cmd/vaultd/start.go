package main

import (
	"path/filepath"

	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store/iavl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind         = "bind"
	flagDebug        = "debug"
	flagNativeTicker = "native_token"

	dbName = "vault"
)

func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		RunE:  runStart,
	}
	cmd.Flags().String(flagBind, "tcp://localhost:26658", "address server listens on")
	cmd.Flags().Bool(flagDebug, false, "call stack returned on error")
	cmd.Flags().String(flagNativeTicker, "", "ticker of the token moved by the value of wallet transactions")
	return cmd
}

func runStart(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	dataDir := filepath.Join(homeDir(), "data")
	store := iavl.NewCommitStore(dataDir, dbName)
	application := app.Application(store, app.Options{
		Name:         dbName,
		NativeTicker: viper.GetString(flagNativeTicker),
		Debug:        viper.GetBool(flagDebug),
		Logger:       logger,
	})

	addr := viper.GetString(flagBind)
	logger.Info("Starting ABCI app", "bind", addr, "data", dataDir)
	svr, err := serve(logger, addr, application)
	if err != nil {
		return err
	}

	// TrapSignal exits the process once the server is stopped.
	cmn.TrapSignal(logger, func() {
		if err := svr.Stop(); err != nil {
			logger.Error("Stopping ABCI server", "err", err)
		}
	})
	select {}
}

// serve starts an ABCI socket server for application on addr.
func serve(logger log.Logger, addr string, application abci.Application) (cmn.Service, error) {
	svr, err := server.NewServer(addr, "socket", application)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "cannot start server: %s", err)
	}
	return svr, nil
}
