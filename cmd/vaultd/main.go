/*
vaultd runs the vault ABCI application next to a tendermint node.

	vaultd init --owners 3 --required 2   write app_state into genesis.json
	vaultd start                          serve ABCI on --bind
	vaultd keys new NAME                  generate an owner key
	vaultd version                        print the version

Every flag can be set in $HOME/config/config.toml or with a VAULT_
prefixed environment variable.
*/
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tmlibs/cli"
)

const (
	flagLogLevel = "log_level"
)

func main() {
	root := rootCmd()
	exec := cli.PrepareBaseCmd(root, "VAULT", filepath.Join(os.ExpandEnv("$HOME"), ".vault"))
	if err := exec.Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "vaultd",
		Short:        "Multi owner custodial wallet node",
		SilenceUsage: true,
	}
	root.PersistentFlags().String(flagLogLevel, "info", "log level: debug, info, error or none")
	root.AddCommand(
		initCmd(),
		startCmd(),
		keysCmd(),
		versionCmd(),
	)
	return root
}

// newLogger returns a logger writing to stdout, filtered by the
// configured level.
func newLogger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "vault")
	lvl, err := log.AllowLevel(viper.GetString(flagLogLevel))
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, lvl), nil
}

func homeDir() string {
	return viper.GetString(cli.HomeFlag)
}
