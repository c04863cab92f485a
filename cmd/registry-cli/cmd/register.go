// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/curvepoint/keyregistry/client"
)

var registerCmd = &cobra.Command{
	Use:   "register [options]",
	Short: "Registers the public key of the loaded private key",
	Long: `
Registers the loaded key's public curve point under the caller's address.
The service accepts the point only if it binds to the address under the
configured key policy.

$ registry-cli register
<<COMMENT
success
COMMENT

`,
	RunE: registerFunc,
}

func registerFunc(cmd *cobra.Command, args []string) error {
	priv, addr, err := loadKey()
	if err != nil {
		return err
	}
	x, y := keyPoint(priv)

	cli := client.New(uri)
	ctx, cancel := requestContext()
	defer cancel()
	if err := cli.RegisterKey(ctx, addr, x, y); err != nil {
		return err
	}
	color.Green("registered key for %s", addr.Hex())
	if verbose {
		color.Yellow("x=%s y=%s", x.Hex(), y.Hex())
	}
	return nil
}

var revokeCmd = &cobra.Command{
	Use:   "revoke [options]",
	Short: "Removes the caller's registered public key",
	RunE:  revokeFunc,
}

func revokeFunc(cmd *cobra.Command, args []string) error {
	_, addr, err := loadKey()
	if err != nil {
		return err
	}
	cli := client.New(uri)
	ctx, cancel := requestContext()
	defer cancel()
	if err := cli.RemoveKey(ctx, addr); err != nil {
		return err
	}
	color.Green("removed key for %s", addr.Hex())
	return nil
}
