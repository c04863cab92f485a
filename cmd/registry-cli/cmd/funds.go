// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/curvepoint/keyregistry/client"
)

var depositCmd = &cobra.Command{
	Use:   "deposit [options] <amount>",
	Short: "Credits the registry balance",
	RunE:  depositFunc,
}

func depositFunc(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly 1 argument, got %d", len(args))
	}
	amount, err := strconv.ParseUint(args[0], 10, 64)
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
	if err := cli.Deposit(ctx, addr, amount); err != nil {
		return err
	}
	color.Green("deposited %d", amount)
	return nil
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw [options]",
	Short: "Drains the registry balance to the owner",
	RunE:  withdrawFunc,
}

func withdrawFunc(cmd *cobra.Command, args []string) error {
	_, addr, err := loadKey()
	if err != nil {
		return err
	}
	cli := client.New(uri)
	ctx, cancel := requestContext()
	defer cancel()
	amount, err := cli.Withdraw(ctx, addr)
	if err != nil {
		return err
	}
	color.Green("withdrew %d to %s", amount, addr.Hex())
	return nil
}
