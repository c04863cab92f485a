// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "registry-cli" implements the registry client operation interface.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/curvepoint/keyregistry/cmd/registry-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		color.Red("registry-cli failed: %v", err)
		os.Exit(1)
	}
	os.Exit(0)
}
