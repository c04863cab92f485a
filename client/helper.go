// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"time"

	"github.com/fatih/color"

	"github.com/curvepoint/keyregistry/registry"
)

// PPKey pretty-prints a registered key point.
func PPKey(key *registry.PublicKeyPoint, exists bool) {
	if !exists {
		color.Yellow("no key registered")
		return
	}
	color.Green("x=%s y=%s", key.X.Hex(), key.Y.Hex())
}

// PPData pretty-prints a received sequence, tombstones included.
func PPData(entries []*registry.PublishedDataEntry) {
	for i, e := range entries {
		if e.IsTombstone() {
			color.Yellow("[%d] (removed)", i)
			continue
		}
		color.Green("[%d] x=%s y=%s creator=%s", i, e.X.Hex(), e.Y.Hex(), e.Creator.Hex())
	}
}

// PPActivity pretty-prints activity records, oldest first.
func PPActivity(activity []*registry.Activity) {
	for _, a := range activity {
		t := time.Unix(a.Tmstmp, 0).UTC().Format(time.RFC3339)
		switch a.Typ {
		case registry.ActivityPublish:
			color.Green("%s %s %s -> %s", t, a.Typ, a.Sender.Hex(), a.To.Hex())
		case registry.ActivityDeposit, registry.ActivityWithdraw:
			color.Green("%s %s %s amount=%d", t, a.Typ, a.Sender.Hex(), a.Amount)
		case registry.ActivityPropose:
			color.Green("%s %s %s -> %s", t, a.Typ, a.Sender.Hex(), a.To.Hex())
		default:
			color.Green("%s %s %s", t, a.Typ, a.Sender.Hex())
		}
	}
}
