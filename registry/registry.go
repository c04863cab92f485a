// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry implements the curve-point key registry state machine.
package registry

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/versiondb"
	"github.com/ethereum/go-ethereum/common"
	log "github.com/inconshreveable/log15"
)

// Registry holds the key, publication, cooldown and ownership state.
//
// All mutations are serialized under one lock and applied against a
// versioned view of the backing database. A mutation either commits in
// full or aborts with no trace, which is what makes every typed error
// below a clean rejection of the whole call. Reads share the lock in
// read mode so they always observe a committed snapshot.
type Registry struct {
	genesis     *Genesis
	baseDB      database.Database
	db          *versiondb.Database
	policy      KeyPolicy
	transferrer FundTransferrer
	now         func() int64

	mu sync.RWMutex

	activity    []*Activity
	subscribers map[chan Activity]struct{}
}

type Option func(*Registry)

func WithKeyPolicy(p KeyPolicy) Option {
	return func(r *Registry) { r.policy = p }
}

func WithFundTransferrer(t FundTransferrer) Option {
	return func(r *Registry) { r.transferrer = t }
}

func WithClock(now func() int64) Option {
	return func(r *Registry) { r.now = now }
}

// New opens a registry over db. The initial owner is persisted on first
// boot only; a reopened database keeps whatever owner it last committed.
func New(g *Genesis, db database.Database, initialOwner common.Address, opts ...Option) (*Registry, error) {
	r := &Registry{
		genesis:     g,
		baseDB:      db,
		db:          versiondb.New(db),
		policy:      KeccakBound,
		transferrer: NoopTransferrer{},
		now:         func() int64 { return time.Now().Unix() },
		subscribers: make(map[chan Activity]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	has, err := HasOwner(r.db)
	if err != nil {
		return nil, err
	}
	if !has {
		if initialOwner == (common.Address{}) {
			return nil, ErrNoInitialOwner
		}
		if err := PutOwner(r.db, initialOwner); err != nil {
			r.db.Abort()
			return nil, err
		}
		if err := r.db.Commit(); err != nil {
			r.db.Abort()
			return nil, err
		}
		log.Info("initialized registry", "owner", initialOwner.Hex())
	} else {
		owner, err := GetOwner(r.db)
		if err != nil {
			return nil, err
		}
		log.Info("reopened registry", "owner", owner.Hex())
	}
	return r, nil
}

func (r *Registry) Genesis() *Genesis { return r.genesis }

// Close commits any straggling state and releases the backing database.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.db.Commit(); err != nil {
		return err
	}
	return r.baseDB.Close()
}

// commit finalizes the pending mutation and fans the activity record out.
// Must be called with the write lock held.
func (r *Registry) commit(a *Activity) error {
	if err := r.db.Commit(); err != nil {
		r.db.Abort()
		return err
	}
	r.record(a)
	return nil
}

func (r *Registry) record(a *Activity) {
	a.Tmstmp = r.now()
	r.activity = append(r.activity, a)
	if limit := r.genesis.ActivityCacheSize; limit > 0 && len(r.activity) > limit {
		r.activity = r.activity[len(r.activity)-limit:]
	}
	for ch := range r.subscribers {
		select {
		case ch <- *a:
		default:
			log.Debug("dropping activity notification", "type", a.Typ)
		}
	}
}

// RegisterPublicKey stores the caller's public key point. Each account
// holds at most one key, and the key must bind to the caller's identity
// under the configured policy.
func (r *Registry) RegisterPublicKey(caller common.Address, x common.Hash, y common.Hash) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := &PublicKeyPoint{X: x, Y: y}
	if x == (common.Hash{}) || y == (common.Hash{}) {
		return ErrInvalidKey
	}
	has, err := HasPublicKey(r.db, caller)
	if err != nil {
		r.db.Abort()
		return err
	}
	if has {
		return ErrAlreadyRegistered
	}
	if !r.policy(p, caller) {
		return ErrIdentityMismatch
	}
	if err := PutPublicKey(r.db, caller, p); err != nil {
		r.db.Abort()
		return err
	}
	return r.commit(&Activity{Typ: ActivityRegister, Sender: caller, X: x, Y: y})
}

// RemovePublicKey deletes the caller's registered key.
func (r *Registry) RemovePublicKey(caller common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	has, err := HasPublicKey(r.db, caller)
	if err != nil {
		r.db.Abort()
		return err
	}
	if !has {
		return ErrNotRegistered
	}
	if err := DeletePublicKey(r.db, caller); err != nil {
		r.db.Abort()
		return err
	}
	return r.commit(&Activity{Typ: ActivityRevoke, Sender: caller})
}

// PublishData appends {x, y, caller} to the receiver's sequence, marks
// the pair live and arms the caller's cooldown.
func (r *Registry) PublishData(caller common.Address, receiver common.Address, x common.Hash, y common.Hash) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	live, err := HasLiveData(r.db, x, y)
	if err != nil {
		r.db.Abort()
		return err
	}
	if live {
		return ErrDuplicateData
	}
	cooldown, err := GetCooldown(r.db, caller)
	if err != nil {
		r.db.Abort()
		return err
	}
	now := r.now()
	if cooldown > now {
		return ErrCooldownActive
	}

	slot, err := GetDataLen(r.db, receiver)
	if err != nil {
		r.db.Abort()
		return err
	}
	entry := &PublishedDataEntry{X: x, Y: y, Creator: caller}
	if err := PutDataEntry(r.db, receiver, slot, entry); err != nil {
		r.db.Abort()
		return err
	}
	if err := PutDataLen(r.db, receiver, slot+1); err != nil {
		r.db.Abort()
		return err
	}

	refIdx, err := GetPubRefLen(r.db, caller)
	if err != nil {
		r.db.Abort()
		return err
	}
	if err := PutPubRef(r.db, caller, refIdx, &PubRef{Receiver: receiver, Slot: slot}); err != nil {
		r.db.Abort()
		return err
	}
	if err := PutPubRefLen(r.db, caller, refIdx+1); err != nil {
		r.db.Abort()
		return err
	}

	if err := PutLiveData(r.db, x, y); err != nil {
		r.db.Abort()
		return err
	}
	if err := PutCooldown(r.db, caller, now+r.genesis.CooldownTime); err != nil {
		r.db.Abort()
		return err
	}
	return r.commit(&Activity{Typ: ActivityPublish, Sender: caller, To: receiver, X: x, Y: y, Index: refIdx})
}

// RemovePublishedData tombstones the caller's index-th publication. The
// receiver's slot is zeroed in place so later slots keep their indices,
// and the pair becomes publishable again.
func (r *Registry) RemovePublishedData(caller common.Address, index uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, err := GetPubRefLen(r.db, caller)
	if err != nil {
		r.db.Abort()
		return err
	}
	if index >= n {
		return ErrIndexOutOfRange
	}
	ref, err := GetPubRef(r.db, caller, index)
	if err != nil {
		r.db.Abort()
		return err
	}
	entry, err := GetDataEntry(r.db, ref.Receiver, ref.Slot)
	if err != nil {
		r.db.Abort()
		return err
	}
	if entry.IsTombstone() {
		return ErrAlreadyRemoved
	}
	if err := DeleteLiveData(r.db, entry.X, entry.Y); err != nil {
		r.db.Abort()
		return err
	}
	if err := PutDataEntry(r.db, ref.Receiver, ref.Slot, &PublishedDataEntry{}); err != nil {
		r.db.Abort()
		return err
	}
	return r.commit(&Activity{Typ: ActivityRemove, Sender: caller, To: ref.Receiver, Index: index})
}

// Deposit credits the registry balance.
func (r *Registry) Deposit(caller common.Address, amount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if amount == 0 {
		return ErrNothingToDeposit
	}
	bal, err := GetBalance(r.db)
	if err != nil {
		r.db.Abort()
		return err
	}
	if bal > math.MaxUint64-amount {
		return ErrBalanceOverflow
	}
	if err := PutBalance(r.db, bal+amount); err != nil {
		r.db.Abort()
		return err
	}
	return r.commit(&Activity{Typ: ActivityDeposit, Sender: caller, Amount: amount})
}

// WithdrawFunds drains the full balance to the owner. The external
// transfer is verified before the drain is committed; a rejected
// transfer aborts the whole withdrawal with the balance untouched.
func (r *Registry) WithdrawFunds(ctx context.Context, caller common.Address) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, err := GetOwner(r.db)
	if err != nil {
		r.db.Abort()
		return 0, err
	}
	if caller != owner {
		return 0, ErrNotOwner
	}
	bal, err := GetBalance(r.db)
	if err != nil {
		r.db.Abort()
		return 0, err
	}
	if bal == 0 {
		return 0, ErrNothingToWithdraw
	}
	if err := PutBalance(r.db, 0); err != nil {
		r.db.Abort()
		return 0, err
	}
	if err := r.transferrer.Transfer(ctx, owner, bal); err != nil {
		r.db.Abort()
		log.Warn("funds transfer rejected", "to", owner.Hex(), "amount", bal, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	if err := r.commit(&Activity{Typ: ActivityWithdraw, Sender: caller, Amount: bal}); err != nil {
		return 0, err
	}
	return bal, nil
}

// ProposeOwner stages candidate as the pending owner, overwriting any
// prior unaccepted proposal.
func (r *Registry) ProposeOwner(caller common.Address, candidate common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, err := GetOwner(r.db)
	if err != nil {
		r.db.Abort()
		return err
	}
	if caller != owner {
		return ErrNotOwner
	}
	if err := PutPendingOwner(r.db, candidate); err != nil {
		r.db.Abort()
		return err
	}
	return r.commit(&Activity{Typ: ActivityPropose, Sender: caller, To: candidate})
}

// AcceptOwnership completes the two-step handoff. Only the staged
// candidate may call it.
func (r *Registry) AcceptOwnership(caller common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending, has, err := GetPendingOwner(r.db)
	if err != nil {
		r.db.Abort()
		return err
	}
	if !has || pending != caller {
		return ErrNotPendingOwner
	}
	if err := PutOwner(r.db, caller); err != nil {
		r.db.Abort()
		return err
	}
	if err := DeletePendingOwner(r.db); err != nil {
		r.db.Abort()
		return err
	}
	return r.commit(&Activity{Typ: ActivityTransfer, Sender: caller})
}

// PublicKey returns the registered key for addr, if any.
func (r *Registry) PublicKey(addr common.Address) (*PublicKeyPoint, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return GetPublicKey(r.db, addr)
}

// PublishedData returns addr's received sequence, tombstones included.
func (r *Registry) PublishedData(addr common.Address) ([]*PublishedDataEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return GetAllData(r.db, addr)
}

// Cooldown returns the earliest unix second addr may publish again, or 0
// if addr never published.
func (r *Registry) Cooldown(addr common.Address) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return GetCooldown(r.db, addr)
}

func (r *Registry) Owner() (common.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return GetOwner(r.db)
}

func (r *Registry) PendingOwner() (common.Address, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return GetPendingOwner(r.db)
}

func (r *Registry) Balance() (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return GetBalance(r.db)
}

// Activity returns the recent activity records, oldest first.
func (r *Registry) Activity() []*Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make([]*Activity, len(r.activity))
	copy(cp, r.activity)
	return cp
}

// Subscribe registers a buffered activity feed. Records are dropped, not
// blocked on, when the subscriber falls behind.
func (r *Registry) Subscribe(buffer int) chan Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan Activity, buffer)
	r.subscribers[ch] = struct{}{}
	return ch
}

func (r *Registry) Unsubscribe(ch chan Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subscribers[ch]; ok {
		delete(r.subscribers, ch)
		close(ch)
	}
}
