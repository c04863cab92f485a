// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"github.com/ethereum/go-ethereum/common"
)

// PublicKeyPoint is an elliptic-curve point registered by an account.
// A stored point always has both coordinates non-zero.
type PublicKeyPoint struct {
	X common.Hash `serialize:"true" json:"x"`
	Y common.Hash `serialize:"true" json:"y"`
}

func (p *PublicKeyPoint) IsZero() bool {
	return p.X == (common.Hash{}) && p.Y == (common.Hash{})
}

// PublishedDataEntry is one slot of a receiver's ordered sequence.
// A removed slot is kept as a zero entry so later indices stay stable.
type PublishedDataEntry struct {
	X       common.Hash    `serialize:"true" json:"x"`
	Y       common.Hash    `serialize:"true" json:"y"`
	Creator common.Address `serialize:"true" json:"creator"`
}

func (e *PublishedDataEntry) IsTombstone() bool {
	return e.X == (common.Hash{}) && e.Y == (common.Hash{}) && e.Creator == (common.Address{})
}

// PubRef points from a creator's publication log to the receiver slot the
// publication landed in. Refs are immutable; the receiver slot records
// whether the publication has since been removed.
type PubRef struct {
	Receiver common.Address `serialize:"true" json:"receiver"`
	Slot     uint64         `serialize:"true" json:"slot"`
}
