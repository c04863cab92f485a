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

// resolveTarget returns the queried address: the explicit argument when
// given, otherwise the loaded key's address.
func resolveTarget(args []string) (common.Address, error) {
	if len(args) > 1 {
		return common.Address{}, fmt.Errorf("expected at most 1 argument, got %d", len(args))
	}
	if len(args) == 1 {
		if !common.IsHexAddress(args[0]) {
			return common.Address{}, fmt.Errorf("%q is not a valid address", args[0])
		}
		return common.HexToAddress(args[0]), nil
	}
	_, addr, err := loadKey()
	return addr, err
}

var keyCmd = &cobra.Command{
	Use:   "key [options] [address]",
	Short: "Reads the registered public key for an address",
	RunE:  keyFunc,
}

func keyFunc(cmd *cobra.Command, args []string) error {
	addr, err := resolveTarget(args)
	if err != nil {
		return err
	}
	cli := client.New(uri)
	ctx, cancel := requestContext()
	defer cancel()
	key, exists, err := cli.Key(ctx, addr)
	if err != nil {
		return err
	}
	client.PPKey(key, exists)
	return nil
}

var dataCmd = &cobra.Command{
	Use:   "data [options] [address]",
	Short: "Reads the received data sequence for an address",
	RunE:  dataFunc,
}

func dataFunc(cmd *cobra.Command, args []string) error {
	addr, err := resolveTarget(args)
	if err != nil {
		return err
	}
	cli := client.New(uri)
	ctx, cancel := requestContext()
	defer cancel()
	entries, err := cli.Data(ctx, addr)
	if err != nil {
		return err
	}
	client.PPData(entries)
	return nil
}

var cooldownCmd = &cobra.Command{
	Use:   "cooldown [options] [address]",
	Short: "Reads the earliest next publish time for an address",
	RunE:  cooldownFunc,
}

func cooldownFunc(cmd *cobra.Command, args []string) error {
	addr, err := resolveTarget(args)
	if err != nil {
		return err
	}
	cli := client.New(uri)
	ctx, cancel := requestContext()
	defer cancel()
	cd, err := cli.Cooldown(ctx, addr)
	if err != nil {
		return err
	}
	if cd == 0 {
		color.Yellow("no cooldown set")
		return nil
	}
	color.Green("next publish allowed at unix %d", cd)
	return nil
}

var infoCmd = &cobra.Command{
	Use:   "info [options]",
	Short: "Reads the service owner, balance and genesis",
	RunE:  infoFunc,
}

func infoFunc(cmd *cobra.Command, args []string) error {
	cli := client.New(uri)
	ctx, cancel := requestContext()
	defer cancel()
	owner, pending, hasPending, err := cli.Owner(ctx)
	if err != nil {
		return err
	}
	bal, err := cli.Balance(ctx)
	if err != nil {
		return err
	}
	g, err := cli.Genesis(ctx)
	if err != nil {
		return err
	}
	color.Green("owner=%s balance=%d cooldown=%ds", owner.Hex(), bal, g.CooldownTime)
	if hasPending {
		color.Yellow("pending owner=%s", pending.Hex())
	}
	return nil
}

var activityCmd = &cobra.Command{
	Use:   "activity [options]",
	Short: "Reads recent registry activity",
	RunE:  activityFunc,
}

func activityFunc(cmd *cobra.Command, args []string) error {
	cli := client.New(uri)
	ctx, cancel := requestContext()
	defer cancel()
	activity, err := cli.Activity(ctx)
	if err != nil {
		return err
	}
	client.PPActivity(activity)
	return nil
}

var pingCmd = &cobra.Command{
	Use:   "ping [options]",
	Short: "Pings the registry service",
	RunE:  pingFunc,
}

func pingFunc(cmd *cobra.Command, args []string) error {
	cli := client.New(uri)
	ctx, cancel := requestContext()
	defer cancel()
	ok, err := cli.Ping(ctx)
	if err != nil {
		return err
	}
	color.Green("ping success: %v", ok)
	return nil
}
