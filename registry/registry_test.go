// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ethereum/go-ethereum/common"
)

var (
	addrA = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	addrB = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	addrC = common.HexToAddress("0xcccccccccccccccccccccccccccccccccccccccc")
	owner = common.HexToAddress("0x0000000000000000000000000000000000000001")
)

type testClock struct {
	now int64
}

func (c *testClock) Now() int64 { return c.now }

func newTestRegistry(t *testing.T, opts ...Option) (*Registry, *testClock) {
	t.Helper()
	clk := &testClock{now: 1000}
	all := append([]Option{
		WithKeyPolicy(AllowAll),
		WithClock(clk.Now),
	}, opts...)
	r, err := New(DefaultGenesis(), memdb.New(), owner, all...)
	if err != nil {
		t.Fatal(err)
	}
	return r, clk
}

func TestRegisterPublicKey(t *testing.T) {
	t.Parallel()

	r, _ := newTestRegistry(t)
	x, y := common.HexToHash("0x01"), common.HexToHash("0x02")

	tt := []struct {
		caller common.Address
		x, y   common.Hash
		err    error
	}{
		{addrA, common.Hash{}, y, ErrInvalidKey},
		{addrA, x, common.Hash{}, ErrInvalidKey},
		{addrA, x, y, nil},
		{addrA, x, y, ErrAlreadyRegistered},
		{addrB, x, y, nil}, // same point, different account is fine
	}
	for i, tv := range tt {
		if err := r.RegisterPublicKey(tv.caller, tv.x, tv.y); !errors.Is(err, tv.err) {
			t.Fatalf("#%d: err expected %v, got %v", i, tv.err, err)
		}
	}

	key, exists, err := r.PublicKey(addrA)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("expected registered key")
	}
	if key.X != x || key.Y != y {
		t.Fatalf("unexpected key %+v", key)
	}
}

func TestRegisterPublicKeyPolicy(t *testing.T) {
	t.Parallel()

	r, _ := newTestRegistry(t, WithKeyPolicy(func(p *PublicKeyPoint, addr common.Address) bool {
		return addr == addrA
	}))
	x, y := common.HexToHash("0x01"), common.HexToHash("0x02")

	if err := r.RegisterPublicKey(addrB, x, y); !errors.Is(err, ErrIdentityMismatch) {
		t.Fatalf("err expected %v, got %v", ErrIdentityMismatch, err)
	}
	if err := r.RegisterPublicKey(addrA, x, y); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestRemovePublicKey(t *testing.T) {
	t.Parallel()

	r, _ := newTestRegistry(t)
	if err := r.RemovePublicKey(addrA); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("err expected %v, got %v", ErrNotRegistered, err)
	}

	x, y := common.HexToHash("0x01"), common.HexToHash("0x02")
	if err := r.RegisterPublicKey(addrA, x, y); err != nil {
		t.Fatal(err)
	}
	if err := r.RemovePublicKey(addrA); err != nil {
		t.Fatal(err)
	}
	if _, exists, err := r.PublicKey(addrA); exists || err != nil {
		t.Fatalf("unexpected exists %v, err %v", exists, err)
	}

	// removal frees the account for a new registration
	if err := r.RegisterPublicKey(addrA, x, y); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestPublishDataDedup(t *testing.T) {
	t.Parallel()

	r, _ := newTestRegistry(t)
	x, y := common.HexToHash("0x10"), common.HexToHash("0x20")

	if err := r.PublishData(addrA, addrB, x, y); err != nil {
		t.Fatal(err)
	}
	// live pairs are rejected regardless of caller or receiver
	if err := r.PublishData(addrC, owner, x, y); !errors.Is(err, ErrDuplicateData) {
		t.Fatalf("err expected %v, got %v", ErrDuplicateData, err)
	}

	entries, err := r.PublishedData(addrB)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].X != x || entries[0].Y != y || entries[0].Creator != addrA {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
}

func TestPublishDataCooldown(t *testing.T) {
	t.Parallel()

	r, clk := newTestRegistry(t)
	if err := r.PublishData(addrA, addrB, common.HexToHash("0x10"), common.HexToHash("0x20")); err != nil {
		t.Fatal(err)
	}

	cd, err := r.Cooldown(addrA)
	if err != nil {
		t.Fatal(err)
	}
	if want := clk.now + 600; cd != want {
		t.Fatalf("cooldown expected %d, got %d", want, cd)
	}

	// any publish inside the window fails, even a fresh pair
	clk.now += 599
	if err := r.PublishData(addrA, addrB, common.HexToHash("0x11"), common.HexToHash("0x21")); !errors.Is(err, ErrCooldownActive) {
		t.Fatalf("err expected %v, got %v", ErrCooldownActive, err)
	}
	// an unrelated account is not throttled
	if err := r.PublishData(addrC, addrB, common.HexToHash("0x12"), common.HexToHash("0x22")); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	clk.now++
	if err := r.PublishData(addrA, addrB, common.HexToHash("0x11"), common.HexToHash("0x21")); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	// cooldown timestamps only move forward
	cd2, err := r.Cooldown(addrA)
	if err != nil {
		t.Fatal(err)
	}
	if cd2 <= cd {
		t.Fatalf("cooldown did not advance: %d -> %d", cd, cd2)
	}
}

func TestRemovePublishedData(t *testing.T) {
	t.Parallel()

	r, clk := newTestRegistry(t)
	x0, y0 := common.HexToHash("0x10"), common.HexToHash("0x20")
	x1, y1 := common.HexToHash("0x11"), common.HexToHash("0x21")

	if err := r.RemovePublishedData(addrA, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("err expected %v, got %v", ErrIndexOutOfRange, err)
	}

	if err := r.PublishData(addrA, addrB, x0, y0); err != nil {
		t.Fatal(err)
	}
	clk.now += 600
	if err := r.PublishData(addrA, addrB, x1, y1); err != nil {
		t.Fatal(err)
	}

	if err := r.RemovePublishedData(addrA, 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("err expected %v, got %v", ErrIndexOutOfRange, err)
	}
	if err := r.RemovePublishedData(addrA, 0); err != nil {
		t.Fatal(err)
	}
	if err := r.RemovePublishedData(addrA, 0); !errors.Is(err, ErrAlreadyRemoved) {
		t.Fatalf("err expected %v, got %v", ErrAlreadyRemoved, err)
	}

	// slot 0 is a tombstone, slot 1 keeps its index and contents
	entries, err := r.PublishedData(addrB)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !entries[0].IsTombstone() {
		t.Fatalf("expected tombstone, got %+v", entries[0])
	}
	if entries[1].X != x1 || entries[1].Y != y1 || entries[1].Creator != addrA {
		t.Fatalf("unexpected entry %+v", entries[1])
	}

	// the removed pair is publishable again, by anyone
	if err := r.PublishData(addrC, addrA, x0, y0); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

type fakeTransferrer struct {
	err    error
	to     common.Address
	amount uint64
	calls  int
}

func (f *fakeTransferrer) Transfer(_ context.Context, to common.Address, amount uint64) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.to = to
	f.amount = amount
	return nil
}

func TestWithdrawFunds(t *testing.T) {
	t.Parallel()

	ft := &fakeTransferrer{}
	r, _ := newTestRegistry(t, WithFundTransferrer(ft))
	ctx := context.Background()

	if _, err := r.WithdrawFunds(ctx, addrA); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err expected %v, got %v", ErrNotOwner, err)
	}
	if _, err := r.WithdrawFunds(ctx, owner); !errors.Is(err, ErrNothingToWithdraw) {
		t.Fatalf("err expected %v, got %v", ErrNothingToWithdraw, err)
	}

	if err := r.Deposit(addrA, 0); !errors.Is(err, ErrNothingToDeposit) {
		t.Fatalf("err expected %v, got %v", ErrNothingToDeposit, err)
	}
	if err := r.Deposit(addrA, 700); err != nil {
		t.Fatal(err)
	}
	if err := r.Deposit(addrB, 300); err != nil {
		t.Fatal(err)
	}

	amount, err := r.WithdrawFunds(ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	if amount != 1000 {
		t.Fatalf("amount expected 1000, got %d", amount)
	}
	if ft.to != owner || ft.amount != 1000 {
		t.Fatalf("unexpected transfer to %s amount %d", ft.to.Hex(), ft.amount)
	}
	if bal, err := r.Balance(); bal != 0 || err != nil {
		t.Fatalf("unexpected balance %d, err %v", bal, err)
	}
	if _, err := r.WithdrawFunds(ctx, owner); !errors.Is(err, ErrNothingToWithdraw) {
		t.Fatalf("err expected %v, got %v", ErrNothingToWithdraw, err)
	}
}

func TestWithdrawFundsRollback(t *testing.T) {
	t.Parallel()

	ft := &fakeTransferrer{err: errors.New("recipient rejected")}
	r, _ := newTestRegistry(t, WithFundTransferrer(ft))
	ctx := context.Background()

	if err := r.Deposit(addrA, 42); err != nil {
		t.Fatal(err)
	}
	if _, err := r.WithdrawFunds(ctx, owner); !errors.Is(err, ErrTransferFailed) {
		t.Fatalf("err expected %v, got %v", ErrTransferFailed, err)
	}
	// failed transfer leaves the balance untouched
	if bal, err := r.Balance(); bal != 42 || err != nil {
		t.Fatalf("unexpected balance %d, err %v", bal, err)
	}

	ft.err = nil
	amount, err := r.WithdrawFunds(ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	if amount != 42 {
		t.Fatalf("amount expected 42, got %d", amount)
	}
}

func TestOwnershipHandoff(t *testing.T) {
	t.Parallel()

	r, _ := newTestRegistry(t)

	if err := r.ProposeOwner(addrA, addrB); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err expected %v, got %v", ErrNotOwner, err)
	}
	if err := r.AcceptOwnership(addrA); !errors.Is(err, ErrNotPendingOwner) {
		t.Fatalf("err expected %v, got %v", ErrNotPendingOwner, err)
	}

	if err := r.ProposeOwner(owner, addrA); err != nil {
		t.Fatal(err)
	}
	// a later proposal overwrites the staged candidate
	if err := r.ProposeOwner(owner, addrB); err != nil {
		t.Fatal(err)
	}
	if err := r.AcceptOwnership(addrA); !errors.Is(err, ErrNotPendingOwner) {
		t.Fatalf("err expected %v, got %v", ErrNotPendingOwner, err)
	}
	if got, err := r.Owner(); got != owner || err != nil {
		t.Fatalf("owner changed before accept: %s, err %v", got.Hex(), err)
	}

	if err := r.AcceptOwnership(addrB); err != nil {
		t.Fatal(err)
	}
	if got, err := r.Owner(); got != addrB || err != nil {
		t.Fatalf("owner expected %s, got %s, err %v", addrB.Hex(), got.Hex(), err)
	}
	if _, has, err := r.PendingOwner(); has || err != nil {
		t.Fatalf("pending owner not cleared, err %v", err)
	}

	// old owner lost its privileges
	if err := r.ProposeOwner(owner, addrA); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err expected %v, got %v", ErrNotOwner, err)
	}
}

func TestScenario(t *testing.T) {
	t.Parallel()

	r, clk := newTestRegistry(t)
	kx, ky := common.HexToHash("0x01"), common.HexToHash("0x02")
	dx, dy := common.HexToHash("0x10"), common.HexToHash("0x20")

	if err := r.RegisterPublicKey(addrA, kx, ky); err != nil {
		t.Fatal(err)
	}
	key, exists, err := r.PublicKey(addrA)
	if err != nil || !exists {
		t.Fatalf("unexpected exists %v, err %v", exists, err)
	}
	if key.X != kx || key.Y != ky {
		t.Fatalf("unexpected key %+v", key)
	}

	if err := r.PublishData(addrA, addrB, dx, dy); err != nil {
		t.Fatal(err)
	}
	entries, err := r.PublishedData(addrB)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Creator != addrA {
		t.Fatalf("unexpected entries %+v", entries)
	}

	// immediate republish of anything is throttled
	if err := r.PublishData(addrA, addrB, common.HexToHash("0x30"), common.HexToHash("0x40")); !errors.Is(err, ErrCooldownActive) {
		t.Fatalf("err expected %v, got %v", ErrCooldownActive, err)
	}

	if err := r.RemovePublishedData(addrA, 0); err != nil {
		t.Fatal(err)
	}
	entries, err = r.PublishedData(addrB)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !entries[0].IsTombstone() {
		t.Fatalf("expected single tombstone, got %+v", entries)
	}

	// the freed pair is publishable again by another account
	clk.now += 600
	if err := r.PublishData(addrC, addrB, dx, dy); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestActivityFeed(t *testing.T) {
	t.Parallel()

	r, _ := newTestRegistry(t)
	sub := r.Subscribe(8)
	defer r.Unsubscribe(sub)

	if err := r.RegisterPublicKey(addrA, common.HexToHash("0x01"), common.HexToHash("0x02")); err != nil {
		t.Fatal(err)
	}
	if err := r.PublishData(addrA, addrB, common.HexToHash("0x10"), common.HexToHash("0x20")); err != nil {
		t.Fatal(err)
	}

	a := <-sub
	if a.Typ != ActivityRegister || a.Sender != addrA {
		t.Fatalf("unexpected activity %+v", a)
	}
	a = <-sub
	if a.Typ != ActivityPublish || a.To != addrB {
		t.Fatalf("unexpected activity %+v", a)
	}

	recent := r.Activity()
	if len(recent) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recent))
	}
	if recent[0].Typ != ActivityRegister || recent[1].Typ != ActivityPublish {
		t.Fatalf("unexpected order %+v", recent)
	}
}

func TestActivityRingBound(t *testing.T) {
	t.Parallel()

	g := DefaultGenesis()
	g.ActivityCacheSize = 2
	clk := &testClock{now: 1000}
	r, err := New(g, memdb.New(), owner, WithKeyPolicy(AllowAll), WithClock(clk.Now))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := r.Deposit(addrA, 1); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(r.Activity()); got != 2 {
		t.Fatalf("expected ring of 2, got %d", got)
	}
}

func TestReopen(t *testing.T) {
	t.Parallel()

	db := memdb.New()
	clk := &testClock{now: 1000}
	r, err := New(DefaultGenesis(), db, owner, WithKeyPolicy(AllowAll), WithClock(clk.Now))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterPublicKey(addrA, common.HexToHash("0x01"), common.HexToHash("0x02")); err != nil {
		t.Fatal(err)
	}
	if err := r.ProposeOwner(owner, addrB); err != nil {
		t.Fatal(err)
	}
	if err := r.AcceptOwnership(addrB); err != nil {
		t.Fatal(err)
	}

	// a reopened registry keeps committed state and ignores the initial owner
	r2, err := New(DefaultGenesis(), db, owner, WithKeyPolicy(AllowAll), WithClock(clk.Now))
	if err != nil {
		t.Fatal(err)
	}
	if got, err := r2.Owner(); got != addrB || err != nil {
		t.Fatalf("owner expected %s, got %s, err %v", addrB.Hex(), got.Hex(), err)
	}
	if _, exists, err := r2.PublicKey(addrA); !exists || err != nil {
		t.Fatalf("unexpected exists %v, err %v", exists, err)
	}
}
