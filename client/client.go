// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client implements the registry client SDK.
package client

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/rpc"
	"github.com/ethereum/go-ethereum/common"

	"github.com/curvepoint/keyregistry/registry"
	"github.com/curvepoint/keyregistry/service"
)

// Client defines registry client operations.
type Client interface {
	// Pings the service.
	Ping(ctx context.Context) (bool, error)
	// Returns the service genesis.
	Genesis(ctx context.Context) (*registry.Genesis, error)

	// RegisterKey registers the caller's public key point.
	RegisterKey(ctx context.Context, caller common.Address, x common.Hash, y common.Hash) error
	// RemoveKey deletes the caller's registered key.
	RemoveKey(ctx context.Context, caller common.Address) error
	// Publish appends a data point to the receiver's sequence.
	Publish(ctx context.Context, caller common.Address, receiver common.Address, x common.Hash, y common.Hash) error
	// RemoveData tombstones the caller's index-th publication.
	RemoveData(ctx context.Context, caller common.Address, index uint64) error

	// Deposit credits the registry balance.
	Deposit(ctx context.Context, caller common.Address, amount uint64) error
	// Withdraw drains the balance to the owner and returns the amount.
	Withdraw(ctx context.Context, caller common.Address) (uint64, error)
	// ProposeOwner stages a pending owner.
	ProposeOwner(ctx context.Context, caller common.Address, candidate common.Address) error
	// AcceptOwnership completes a staged handoff.
	AcceptOwnership(ctx context.Context, caller common.Address) error

	// Key returns the registered key for addr, if any.
	Key(ctx context.Context, addr common.Address) (*registry.PublicKeyPoint, bool, error)
	// Data returns addr's received sequence, tombstones included.
	Data(ctx context.Context, addr common.Address) ([]*registry.PublishedDataEntry, error)
	// Cooldown returns addr's earliest next publish time.
	Cooldown(ctx context.Context, addr common.Address) (int64, error)
	// Owner returns the owner and any pending owner.
	Owner(ctx context.Context) (owner common.Address, pending common.Address, hasPending bool, err error)
	// Balance returns the held balance.
	Balance(ctx context.Context) (uint64, error)
	// Activity returns recent activity, oldest first.
	Activity(ctx context.Context) ([]*registry.Activity, error)
}

// New creates a new client object.
func New(uri string) Client {
	req := rpc.NewEndpointRequester(
		uri,
		service.PublicEndpoint,
		service.Name,
	)
	return &client{req: req}
}

type client struct {
	req rpc.EndpointRequester
}

func (cli *client) Ping(ctx context.Context) (bool, error) {
	resp := new(service.PingReply)
	if err := cli.req.SendRequest(ctx, "ping", nil, resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (cli *client) Genesis(ctx context.Context) (*registry.Genesis, error) {
	resp := new(service.GenesisReply)
	err := cli.req.SendRequest(ctx, "genesis", nil, resp)
	return resp.Genesis, err
}

func (cli *client) RegisterKey(ctx context.Context, caller common.Address, x common.Hash, y common.Hash) error {
	resp := new(service.SuccessReply)
	return cli.req.SendRequest(
		ctx,
		"registerKey",
		&service.RegisterKeyArgs{Caller: caller.Hex(), X: x, Y: y},
		resp,
	)
}

func (cli *client) RemoveKey(ctx context.Context, caller common.Address) error {
	resp := new(service.SuccessReply)
	return cli.req.SendRequest(
		ctx,
		"removeKey",
		&service.RemoveKeyArgs{Caller: caller.Hex()},
		resp,
	)
}

func (cli *client) Publish(ctx context.Context, caller common.Address, receiver common.Address, x common.Hash, y common.Hash) error {
	resp := new(service.SuccessReply)
	return cli.req.SendRequest(
		ctx,
		"publish",
		&service.PublishArgs{Caller: caller.Hex(), Receiver: receiver.Hex(), X: x, Y: y},
		resp,
	)
}

func (cli *client) RemoveData(ctx context.Context, caller common.Address, index uint64) error {
	resp := new(service.SuccessReply)
	return cli.req.SendRequest(
		ctx,
		"removeData",
		&service.RemoveDataArgs{Caller: caller.Hex(), Index: index},
		resp,
	)
}

func (cli *client) Deposit(ctx context.Context, caller common.Address, amount uint64) error {
	resp := new(service.SuccessReply)
	return cli.req.SendRequest(
		ctx,
		"deposit",
		&service.DepositArgs{Caller: caller.Hex(), Amount: amount},
		resp,
	)
}

func (cli *client) Withdraw(ctx context.Context, caller common.Address) (uint64, error) {
	resp := new(service.WithdrawReply)
	if err := cli.req.SendRequest(
		ctx,
		"withdraw",
		&service.WithdrawArgs{Caller: caller.Hex()},
		resp,
	); err != nil {
		return 0, err
	}
	return resp.Amount, nil
}

func (cli *client) ProposeOwner(ctx context.Context, caller common.Address, candidate common.Address) error {
	resp := new(service.SuccessReply)
	return cli.req.SendRequest(
		ctx,
		"proposeOwner",
		&service.ProposeOwnerArgs{Caller: caller.Hex(), Candidate: candidate.Hex()},
		resp,
	)
}

func (cli *client) AcceptOwnership(ctx context.Context, caller common.Address) error {
	resp := new(service.SuccessReply)
	return cli.req.SendRequest(
		ctx,
		"acceptOwnership",
		&service.AcceptOwnershipArgs{Caller: caller.Hex()},
		resp,
	)
}

func (cli *client) Key(ctx context.Context, addr common.Address) (*registry.PublicKeyPoint, bool, error) {
	resp := new(service.KeyReply)
	if err := cli.req.SendRequest(
		ctx,
		"key",
		&service.KeyArgs{Address: addr.Hex()},
		resp,
	); err != nil {
		return nil, false, err
	}
	return resp.Key, resp.Exists, nil
}

func (cli *client) Data(ctx context.Context, addr common.Address) ([]*registry.PublishedDataEntry, error) {
	resp := new(service.DataReply)
	if err := cli.req.SendRequest(
		ctx,
		"data",
		&service.DataArgs{Address: addr.Hex()},
		resp,
	); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (cli *client) Cooldown(ctx context.Context, addr common.Address) (int64, error) {
	resp := new(service.CooldownReply)
	if err := cli.req.SendRequest(
		ctx,
		"cooldown",
		&service.CooldownArgs{Address: addr.Hex()},
		resp,
	); err != nil {
		return 0, err
	}
	return resp.Cooldown, nil
}

func (cli *client) Owner(ctx context.Context) (common.Address, common.Address, bool, error) {
	resp := new(service.OwnerReply)
	if err := cli.req.SendRequest(ctx, "owner", nil, resp); err != nil {
		return common.Address{}, common.Address{}, false, err
	}
	owner := common.HexToAddress(resp.Owner)
	pending := common.Address{}
	if resp.HasPending {
		pending = common.HexToAddress(resp.PendingOwner)
	}
	return owner, pending, resp.HasPending, nil
}

func (cli *client) Balance(ctx context.Context) (uint64, error) {
	resp := new(service.BalanceReply)
	if err := cli.req.SendRequest(ctx, "balance", nil, resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

func (cli *client) Activity(ctx context.Context) ([]*registry.Activity, error) {
	resp := new(service.ActivityReply)
	if err := cli.req.SendRequest(ctx, "activity", nil, resp); err != nil {
		return nil, err
	}
	return resp.Activity, nil
}
