// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/curvepoint/keyregistry/client"
)

var proposeCmd = &cobra.Command{
	Use:   "propose [options] <candidate>",
	Short: "Proposes a new owner (owner only)",
	RunE:  proposeFunc,
}

func proposeFunc(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly 1 argument, got %d", len(args))
	}
	if !common.IsHexAddress(args[0]) {
		return fmt.Errorf("%q is not a valid address", args[0])
	}
	_, addr, err := loadKey()
	if err != nil {
		return err
	}
	candidate := common.HexToAddress(args[0])
	cli := client.New(uri)
	ctx, cancel := requestContext()
	defer cancel()
	if err := cli.ProposeOwner(ctx, addr, candidate); err != nil {
		return err
	}
	color.Green("proposed %s as owner", candidate.Hex())
	return nil
}

var acceptCmd = &cobra.Command{
	Use:   "accept [options]",
	Short: "Accepts a pending ownership proposal",
	RunE:  acceptFunc,
}

func acceptFunc(cmd *cobra.Command, args []string) error {
	_, addr, err := loadKey()
	if err != nil {
		return err
	}
	cli := client.New(uri)
	ctx, cancel := requestContext()
	defer cancel()
	if err := cli.AcceptOwnership(ctx, addr); err != nil {
		return err
	}
	color.Green("ownership transferred to %s", addr.Hex())
	return nil
}
