// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

type Genesis struct {
	// CooldownTime is the minimum number of seconds an account must wait
	// between successful publishes.
	CooldownTime int64 `serialize:"true" json:"cooldownTime"`

	// ActivityCacheSize bounds the in-memory activity ring.
	ActivityCacheSize int `serialize:"true" json:"activityCacheSize"`
}

func DefaultGenesis() *Genesis {
	return &Genesis{
		CooldownTime:      600, // 10 minutes
		ActivityCacheSize: 128,
	}
}
