// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "registry-cli" implements the registry client operation interface.
package cmd

import (
	"context"
	"crypto/ecdsa"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

const requestTimeout = 30 * time.Second

var (
	privateKeyFile string
	uri            string
	verbose        bool

	rootCmd = &cobra.Command{
		Use:        "registry-cli",
		Short:      "Registry CLI",
		SuggestFor: []string{"registry-cli", "registrycli", "registryctl"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		createCmd,
		registerCmd,
		revokeCmd,
		publishCmd,
		removeCmd,
		depositCmd,
		withdrawCmd,
		proposeCmd,
		acceptCmd,
		keyCmd,
		dataCmd,
		cooldownCmd,
		infoCmd,
		activityCmd,
		pingCmd,
	)

	rootCmd.PersistentFlags().StringVar(
		&privateKeyFile,
		"private-key-file",
		".registry-cli-pk",
		"private key file path",
	)
	rootCmd.PersistentFlags().StringVar(
		&uri,
		"endpoint",
		"http://127.0.0.1:9760",
		"RPC endpoint for the registry service",
	)
	rootCmd.PersistentFlags().BoolVar(
		&verbose,
		"verbose",
		false,
		"Print verbose information about operations",
	)
}

func Execute() error {
	return rootCmd.Execute()
}

// requestContext bounds a single RPC call.
func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func loadKey() (*ecdsa.PrivateKey, common.Address, error) {
	priv, err := crypto.LoadECDSA(privateKeyFile)
	if err != nil {
		return nil, common.Address{}, err
	}
	return priv, crypto.PubkeyToAddress(priv.PublicKey), nil
}

// keyPoint splits an uncompressed secp256k1 public key into the two
// 32-byte coordinates the registry stores.
func keyPoint(priv *ecdsa.PrivateKey) (x common.Hash, y common.Hash) {
	pub := crypto.FromECDSAPub(&priv.PublicKey) // 0x04 || X || Y
	return common.BytesToHash(pub[1:33]), common.BytesToHash(pub[33:65])
}
