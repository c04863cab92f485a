// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeyPolicy decides whether a public key point may be registered by the
// given account. The binding scheme is deployment-specific, so the
// registry takes it as a collaborator instead of hard-coding one.
type KeyPolicy func(p *PublicKeyPoint, addr common.Address) bool

// KeccakBound is the default policy: the account address must equal the
// low-order 20 bytes of keccak256(x||y), the same derivation an Ethereum
// address uses for an uncompressed public key body.
func KeccakBound(p *PublicKeyPoint, addr common.Address) bool {
	h := crypto.Keccak256(p.X.Bytes(), p.Y.Bytes())
	return common.BytesToAddress(h[12:]) == addr
}

// AllowAll admits any key for any account. Useful for deployments that
// verify the binding out of band, and for tests.
func AllowAll(*PublicKeyPoint, common.Address) bool { return true }
