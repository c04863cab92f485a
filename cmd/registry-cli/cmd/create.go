// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create [options]",
	Short: "Creates a new signing key and saves it to the private key file",
	RunE:  createFunc,
}

func createFunc(cmd *cobra.Command, args []string) error {
	priv, err := crypto.GenerateKey()
	if err != nil {
		return err
	}
	if err := crypto.SaveECDSA(privateKeyFile, priv); err != nil {
		return err
	}
	color.Green("created address %s and saved key to %s",
		crypto.PubkeyToAddress(priv.PublicKey).Hex(), privateKeyFile)
	return nil
}
