// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "registryd" runs the registry service daemon.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ava-labs/avalanchego/database/leveldb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ethereum/go-ethereum/common"
	log "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/curvepoint/keyregistry/registry"
	"github.com/curvepoint/keyregistry/service"
	"github.com/curvepoint/keyregistry/version"
)

var rootCmd = &cobra.Command{
	Use:        "registryd",
	Short:      "Registry service daemon",
	SuggestFor: []string{"registryd", "registry-d", "registrydaemon"},
	RunE:       runFunc,
}

func init() {
	cobra.EnablePrefixMatching = true

	rootCmd.AddCommand(newVersionCommand())

	rootCmd.PersistentFlags().String("config", "", "config file path")
	rootCmd.PersistentFlags().String("http-addr", ":9760", "HTTP listen address")
	rootCmd.PersistentFlags().String("db-dir", ".registryd-db", "database directory")
	rootCmd.PersistentFlags().String("owner", "", "initial owner address (hex), required on first boot")
	rootCmd.PersistentFlags().Int64("cooldown", 600, "publish cooldown in seconds")
	rootCmd.PersistentFlags().Int("activity-cache-size", 128, "bound on the in-memory activity ring")
	rootCmd.PersistentFlags().Bool("allow-any-key", false, "disable the keccak key-binding policy")
	rootCmd.PersistentFlags().String("log-level", "info", "log15 level (debug|info|warn|error)")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("registryd")
	viper.AutomaticEnv()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints out the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%s@%s\n", service.Name, version.Version)
			return nil
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "registryd failed %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func runFunc(cmd *cobra.Command, args []string) error {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	}

	lvl, err := log.LvlFromString(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.LogfmtFormat())))

	ownerHex := viper.GetString("owner")
	if ownerHex != "" && !common.IsHexAddress(ownerHex) {
		return errors.New("invalid owner address")
	}

	dbDir := viper.GetString("db-dir")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return err
	}
	db, err := leveldb.New(filepath.Join(dbDir, "registry"), nil, logging.NoLog{})
	if err != nil {
		return err
	}

	g := registry.DefaultGenesis()
	g.CooldownTime = viper.GetInt64("cooldown")
	g.ActivityCacheSize = viper.GetInt("activity-cache-size")

	opts := []registry.Option{}
	if viper.GetBool("allow-any-key") {
		opts = append(opts, registry.WithKeyPolicy(registry.AllowAll))
	}
	reg, err := registry.New(g, db, common.HexToAddress(ownerHex), opts...)
	if err != nil {
		return err
	}

	cfg := &service.Config{}
	cfg.SetDefaults()
	cfg.HTTPAddr = viper.GetString("http-addr")
	srv, err := service.NewServer(cfg, reg)
	if err != nil {
		reg.Close()
		return err
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Run() }()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigc:
		log.Info("shutting down", "signal", sig.String())
		if err := srv.Shutdown(); err != nil {
			log.Warn("server shutdown failed", "error", err)
		}
		<-errc
	case err := <-errc:
		if err != nil {
			reg.Close()
			return err
		}
	}
	return reg.Close()
}
