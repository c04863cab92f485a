// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/curvepoint/keyregistry/client"
)

var publishCmd = &cobra.Command{
	Use:   "publish [options] <receiver> <x> <y>",
	Short: "Publishes a data point to the receiver's sequence",
	Long: `
Publishes the (x, y) coordinate pair to the receiver. The pair must not
be live anywhere else, and the caller must be outside its cooldown
window.

$ registry-cli publish 0xf8E7... 0x10 0x20
<<COMMENT
success
COMMENT

`,
	RunE: publishFunc,
}

func publishFunc(cmd *cobra.Command, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("expected exactly 3 arguments, got %d", len(args))
	}
	_, addr, err := loadKey()
	if err != nil {
		return err
	}
	if !common.IsHexAddress(args[0]) {
		return fmt.Errorf("%q is not a valid address", args[0])
	}
	receiver := common.HexToAddress(args[0])
	x := common.HexToHash(args[1])
	y := common.HexToHash(args[2])

	cli := client.New(uri)
	ctx, cancel := requestContext()
	defer cancel()
	if err := cli.Publish(ctx, addr, receiver, x, y); err != nil {
		return err
	}
	color.Green("published data point to %s", receiver.Hex())

	if verbose {
		cd, err := cli.Cooldown(ctx, addr)
		if err != nil {
			return err
		}
		color.Yellow("next publish allowed at unix %d", cd)
	}
	return nil
}

var removeCmd = &cobra.Command{
	Use:   "remove [options] <publication index>",
	Short: "Tombstones the caller's index-th publication",
	RunE:  removeFunc,
}

func removeFunc(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly 1 argument, got %d", len(args))
	}
	index, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return err
	}
	_, addr, err := loadKey()
	if err != nil {
		return err
	}
	cli := client.New(uri)
	ctx, cancel := requestContext()
	defer cancel()
	if err := cli.RemoveData(ctx, addr, index); err != nil {
		return err
	}
	color.Green("removed publication %d", index)
	return nil
}
