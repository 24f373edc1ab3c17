package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/spf13/cobra"
)

const keysDir = "keys"

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage owner keys stored under $HOME/keys",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "new [name]",
			Short: "Generate a key and print its address",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := generateKey(homeDir(), args[0])
				if err != nil {
					return err
				}
				return printKey(cmd, args[0], key)
			},
		},
		&cobra.Command{
			Use:   "show [name]",
			Short: "Print the address of a stored key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := loadKey(homeDir(), args[0])
				if err != nil {
					return err
				}
				return printKey(cmd, args[0], key)
			},
		},
	)
	return cmd
}

func printKey(cmd *cobra.Command, name string, key *crypto.PrivateKey) error {
	addr := key.PublicKey().Address()
	bech, err := addr.Bech32()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", name, bech, addr)
	return nil
}

// keyFile is the on disk format of a private key.
type keyFile struct {
	Address    vault.Address `json:"address"`
	PrivateKey string        `json:"private_key"`
}

// generateKey creates a new key and stores it under home/keys/name.json.
// An existing key is never overwritten.
func generateKey(home, name string) (*crypto.PrivateKey, error) {
	dir := filepath.Join(home, keysDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	path := filepath.Join(dir, name+".json")
	if _, err := os.Stat(path); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "key %q", name)
	}

	key := crypto.GenPrivKeyEd25519()
	raw, err := json.MarshalIndent(keyFile{
		Address:    key.PublicKey().Address(),
		PrivateKey: hex.EncodeToString(key.Ed25519),
	}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(path, raw, 0600); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return key, nil
}

// loadKey reads a key written by generateKey.
func loadKey(home, name string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(filepath.Join(home, keysDir, name+".json"))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "key %q: %s", name, err)
	}
	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "key %q: %s", name, err)
	}
	bz, err := hex.DecodeString(kf.PrivateKey)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "key %q: %s", name, err)
	}
	return &crypto.PrivateKey{Ed25519: bz}, nil
}
