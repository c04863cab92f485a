// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"encoding/binary"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ethereum/go-ethereum/common"
)

// 0x0/ (registered public keys)
//   -> [account address]
// 0x1/ (published data slots)
//   -> [receiver address]
//     -> [index]
// 0x2/ (published sequence lengths)
// 0x3/ (live coordinate pairs)
// 0x4/ (publish cooldowns)
// 0x5/ (owner, pending owner, balance singletons)
// 0x6/ (publication logs)
//   -> [creator address]
//     -> [index]
// 0x7/ (publication log lengths)

const (
	keyPrefix       = 0x0
	dataPrefix      = 0x1
	dataLenPrefix   = 0x2
	dedupPrefix     = 0x3
	cooldownPrefix  = 0x4
	statePrefix     = 0x5
	pubRefPrefix    = 0x6
	pubRefLenPrefix = 0x7

	ByteDelimiter byte = '/'
)

var (
	ownerKey        = []byte{statePrefix, ByteDelimiter, 'o'}
	pendingOwnerKey = []byte{statePrefix, ByteDelimiter, 'p'}
	balanceKey      = []byte{statePrefix, ByteDelimiter, 'b'}
)

func PublicKeyKey(addr common.Address) []byte {
	return append([]byte{keyPrefix, ByteDelimiter}, addr.Bytes()...)
}

func DataEntryKey(receiver common.Address, index uint64) []byte {
	b := append([]byte{dataPrefix, ByteDelimiter}, receiver.Bytes()...)
	b = append(b, ByteDelimiter)
	ib := make([]byte, 8)
	binary.BigEndian.PutUint64(ib, index)
	return append(b, ib...)
}

func DataLenKey(receiver common.Address) []byte {
	return append([]byte{dataLenPrefix, ByteDelimiter}, receiver.Bytes()...)
}

func DedupKey(x common.Hash, y common.Hash) []byte {
	b := append([]byte{dedupPrefix, ByteDelimiter}, x.Bytes()...)
	return append(b, y.Bytes()...)
}

func CooldownKey(addr common.Address) []byte {
	return append([]byte{cooldownPrefix, ByteDelimiter}, addr.Bytes()...)
}

func GetPublicKey(db database.Database, addr common.Address) (*PublicKeyPoint, bool, error) {
	k := PublicKeyKey(addr)
	has, err := db.Has(k)
	if err != nil {
		return nil, false, err
	}
	if !has {
		return nil, false, nil
	}
	v, err := db.Get(k)
	if err != nil {
		return nil, false, err
	}
	var p PublicKeyPoint
	if err := unmarshalValue(v, &p); err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

func HasPublicKey(db database.Database, addr common.Address) (bool, error) {
	return db.Has(PublicKeyKey(addr))
}

func PutPublicKey(db database.Database, addr common.Address, p *PublicKeyPoint) error {
	b, err := marshalValue(p)
	if err != nil {
		return err
	}
	return db.Put(PublicKeyKey(addr), b)
}

func DeletePublicKey(db database.Database, addr common.Address) error {
	return db.Delete(PublicKeyKey(addr))
}

func GetDataLen(db database.Database, receiver common.Address) (uint64, error) {
	k := DataLenKey(receiver)
	has, err := db.Has(k)
	if err != nil {
		return 0, err
	}
	if !has {
		return 0, nil
	}
	v, err := db.Get(k)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(v), nil
}

func PutDataLen(db database.Database, receiver common.Address, n uint64) error {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return db.Put(DataLenKey(receiver), b)
}

func GetDataEntry(db database.Database, receiver common.Address, index uint64) (*PublishedDataEntry, error) {
	v, err := db.Get(DataEntryKey(receiver, index))
	if err != nil {
		return nil, err
	}
	var e PublishedDataEntry
	if err := unmarshalValue(v, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func PutDataEntry(db database.Database, receiver common.Address, index uint64, e *PublishedDataEntry) error {
	b, err := marshalValue(e)
	if err != nil {
		return err
	}
	return db.Put(DataEntryKey(receiver, index), b)
}

// GetAllData returns the receiver's full sequence in insertion order,
// tombstones included.
func GetAllData(db database.Database, receiver common.Address) ([]*PublishedDataEntry, error) {
	n, err := GetDataLen(db, receiver)
	if err != nil {
		return nil, err
	}
	entries := make([]*PublishedDataEntry, 0, n)
	for i := uint64(0); i < n; i++ {
		e, err := GetDataEntry(db, receiver, i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func HasLiveData(db database.Database, x common.Hash, y common.Hash) (bool, error) {
	return db.Has(DedupKey(x, y))
}

func PutLiveData(db database.Database, x common.Hash, y common.Hash) error {
	return db.Put(DedupKey(x, y), nil)
}

func DeleteLiveData(db database.Database, x common.Hash, y common.Hash) error {
	return db.Delete(DedupKey(x, y))
}

func GetCooldown(db database.Database, addr common.Address) (int64, error) {
	k := CooldownKey(addr)
	has, err := db.Has(k)
	if err != nil {
		return 0, err
	}
	if !has {
		return 0, nil
	}
	v, err := db.Get(k)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(v)), nil
}

func PutCooldown(db database.Database, addr common.Address, until int64) error {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(until))
	return db.Put(CooldownKey(addr), b)
}

func GetOwner(db database.Database) (common.Address, error) {
	v, err := db.Get(ownerKey)
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(v), nil
}

func PutOwner(db database.Database, owner common.Address) error {
	return db.Put(ownerKey, owner.Bytes())
}

func GetPendingOwner(db database.Database) (common.Address, bool, error) {
	has, err := db.Has(pendingOwnerKey)
	if err != nil {
		return common.Address{}, false, err
	}
	if !has {
		return common.Address{}, false, nil
	}
	v, err := db.Get(pendingOwnerKey)
	if err != nil {
		return common.Address{}, false, err
	}
	return common.BytesToAddress(v), true, nil
}

func PutPendingOwner(db database.Database, pending common.Address) error {
	return db.Put(pendingOwnerKey, pending.Bytes())
}

func DeletePendingOwner(db database.Database) error {
	return db.Delete(pendingOwnerKey)
}

func GetBalance(db database.Database) (uint64, error) {
	has, err := db.Has(balanceKey)
	if err != nil {
		return 0, err
	}
	if !has {
		return 0, nil
	}
	v, err := db.Get(balanceKey)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(v), nil
}

func PutBalance(db database.Database, bal uint64) error {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, bal)
	return db.Put(balanceKey, b)
}

func HasOwner(db database.Database) (bool, error) {
	return db.Has(ownerKey)
}

func PubRefKey(creator common.Address, index uint64) []byte {
	b := append([]byte{pubRefPrefix, ByteDelimiter}, creator.Bytes()...)
	b = append(b, ByteDelimiter)
	ib := make([]byte, 8)
	binary.BigEndian.PutUint64(ib, index)
	return append(b, ib...)
}

func PubRefLenKey(creator common.Address) []byte {
	return append([]byte{pubRefLenPrefix, ByteDelimiter}, creator.Bytes()...)
}

func GetPubRefLen(db database.Database, creator common.Address) (uint64, error) {
	k := PubRefLenKey(creator)
	has, err := db.Has(k)
	if err != nil {
		return 0, err
	}
	if !has {
		return 0, nil
	}
	v, err := db.Get(k)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(v), nil
}

func PutPubRefLen(db database.Database, creator common.Address, n uint64) error {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return db.Put(PubRefLenKey(creator), b)
}

func GetPubRef(db database.Database, creator common.Address, index uint64) (*PubRef, error) {
	v, err := db.Get(PubRefKey(creator, index))
	if err != nil {
		return nil, err
	}
	var ref PubRef
	if err := unmarshalValue(v, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func PutPubRef(db database.Database, creator common.Address, index uint64, ref *PubRef) error {
	b, err := marshalValue(ref)
	if err != nil {
		return err
	}
	return db.Put(PubRefKey(creator, index), b)
}
