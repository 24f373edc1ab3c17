package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/token"
	"github.com/iov-one/vault/x/wallet"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagName      = "name"
	flagOwners    = "owners"
	flagRequired  = "required"
	flagMaxOwners = "max_owners"
	flagGasTicker = "gas_token"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize app_state in the tendermint genesis file",
		Long: `Generates one key per owner and writes the wallet and token
sections of app_state into $HOME/config/genesis.json. The genesis file
must exist, create it with "tendermint init".`,
		RunE: runInit,
	}
	cmd.Flags().String(flagName, "vault", "name of the wallet, its address is derived from it")
	cmd.Flags().Int(flagOwners, 1, "number of owner keys to generate")
	cmd.Flags().Int32(flagRequired, 1, "confirmations required to execute a transaction")
	cmd.Flags().Int32(flagMaxOwners, wallet.DefaultMaxOwners, "upper bound of the owners list")
	cmd.Flags().String(flagGasTicker, "", "ticker of a token created in genesis and used as gas token")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	home := homeDir()
	n := viper.GetInt(flagOwners)
	if n < 1 {
		return errors.Wrapf(errors.ErrInput, "owners: %d", n)
	}

	owners := make([]vault.Address, n)
	for i := range owners {
		name := fmt.Sprintf("owner-%d", i)
		key, err := generateKey(home, name)
		if err != nil {
			return err
		}
		owners[i] = key.PublicKey().Address()
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, owners[i])
	}

	state, err := genAppState(
		viper.GetString(flagName),
		owners,
		int32(viper.GetInt(flagRequired)),
		int32(viper.GetInt(flagMaxOwners)),
		viper.GetString(flagGasTicker),
	)
	if err != nil {
		return err
	}
	genFile := filepath.Join(home, "config", "genesis.json")
	return addGenesisOptions(genFile, state)
}

// genAppState returns the app_state of a new chain. When gasTicker is
// set a token with that ticker is issued by the first owner and used as
// the gas token of the wallet.
func genAppState(name string, owners []vault.Address, required, maxOwners int32, gasTicker string) (json.RawMessage, error) {
	wgen := wallet.Genesis{
		Name:      name,
		Owners:    owners,
		Required:  required,
		MaxOwners: maxOwners,
	}
	if err := wgen.Quorum().Validate(); err != nil {
		return nil, err
	}

	var tgen token.Genesis
	if gasTicker != "" {
		tok := token.GenesisToken{Ticker: gasTicker, Name: gasTicker + " gas token", Issuer: owners[0]}
		tgen.Tokens = append(tgen.Tokens, tok)
		wgen.GasToken = token.Address(gasTicker)
	}

	raw, err := json.Marshal(map[string]interface{}{
		"tokens": tgen,
		"wallet": wgen,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(errors.ErrNotFound, "genesis file, run tendermint init first: %s", err)
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis file: %s", err)
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}
