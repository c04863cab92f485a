// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"github.com/ethereum/go-ethereum/common"
)

const (
	ActivityRegister = "register"
	ActivityRevoke   = "revoke"
	ActivityPublish  = "publish"
	ActivityRemove   = "remove"
	ActivityDeposit  = "deposit"
	ActivityWithdraw = "withdraw"
	ActivityPropose  = "propose"
	ActivityTransfer = "transfer"
)

type Activity struct {
	Tmstmp int64          `serialize:"true" json:"timestamp"`
	Typ    string         `serialize:"true" json:"type"`
	Sender common.Address `serialize:"true" json:"sender"`
	To     common.Address `serialize:"true" json:"to,omitempty"`
	X      common.Hash    `serialize:"true" json:"x,omitempty"`
	Y      common.Hash    `serialize:"true" json:"y,omitempty"`
	Index  uint64         `serialize:"true" json:"index,omitempty"`
	Amount uint64         `serialize:"true" json:"amount,omitempty"`
}
