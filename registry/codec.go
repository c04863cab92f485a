// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"github.com/ava-labs/avalanchego/codec"
	"github.com/ava-labs/avalanchego/codec/linearcodec"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

const codecVersion = 0

// valueCodec serializes the persisted registry records (key points,
// data entries, publication refs) into the byte values stored under
// the prefixed keys.
var valueCodec codec.Manager

func init() {
	c := linearcodec.NewDefault()
	valueCodec = codec.NewDefaultManager()

	errs := wrappers.Errs{}
	errs.Add(
		c.RegisterType(&PublicKeyPoint{}),
		c.RegisterType(&PublishedDataEntry{}),
		c.RegisterType(&PubRef{}),
		valueCodec.RegisterCodec(codecVersion, c),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}

func marshalValue(v interface{}) ([]byte, error) {
	return valueCodec.Marshal(codecVersion, v)
}

func unmarshalValue(b []byte, v interface{}) error {
	_, err := valueCodec.Unmarshal(b, v)
	return err
}
