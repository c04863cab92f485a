// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// FundTransferrer moves withdrawn funds to the owner. The transfer is the
// one side effect that can fail after funds are logically allocated, so
// the registry treats a rejection as a failure of the whole withdrawal
// and rolls the balance back.
type FundTransferrer interface {
	Transfer(ctx context.Context, to common.Address, amount uint64) error
}

// NoopTransferrer accepts every transfer. Deployments wire a real payout
// collaborator here.
type NoopTransferrer struct{}

func (NoopTransferrer) Transfer(context.Context, common.Address, uint64) error { return nil }
