// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package service exposes the registry over JSON-RPC.
package service

import (
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/inconshreveable/log15"

	"github.com/curvepoint/keyregistry/registry"
)

const (
	Name           = "keyregistry"
	PublicEndpoint = "/public"
)

var ErrInvalidAddress = errors.New("invalid address")

type PublicService struct {
	reg *registry.Registry
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, ErrInvalidAddress
	}
	return common.HexToAddress(s), nil
}

type PingReply struct {
	Success bool `serialize:"true" json:"success"`
}

func (svc *PublicService) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	log.Info("ping")
	reply.Success = true
	return nil
}

type GenesisReply struct {
	Genesis *registry.Genesis `serialize:"true" json:"genesis"`
}

func (svc *PublicService) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) (err error) {
	reply.Genesis = svc.reg.Genesis()
	return nil
}

type RegisterKeyArgs struct {
	Caller string      `serialize:"true" json:"caller"`
	X      common.Hash `serialize:"true" json:"x"`
	Y      common.Hash `serialize:"true" json:"y"`
}

type SuccessReply struct {
	Success bool `serialize:"true" json:"success"`
}

func (svc *PublicService) RegisterKey(_ *http.Request, args *RegisterKeyArgs, reply *SuccessReply) error {
	caller, err := parseAddress(args.Caller)
	if err != nil {
		return err
	}
	if err := svc.reg.RegisterPublicKey(caller, args.X, args.Y); err != nil {
		log.Warn("failed key registration", "caller", args.Caller, "error", err)
		return err
	}
	reply.Success = true
	return nil
}

type RemoveKeyArgs struct {
	Caller string `serialize:"true" json:"caller"`
}

func (svc *PublicService) RemoveKey(_ *http.Request, args *RemoveKeyArgs, reply *SuccessReply) error {
	caller, err := parseAddress(args.Caller)
	if err != nil {
		return err
	}
	if err := svc.reg.RemovePublicKey(caller); err != nil {
		log.Warn("failed key removal", "caller", args.Caller, "error", err)
		return err
	}
	reply.Success = true
	return nil
}

type PublishArgs struct {
	Caller   string      `serialize:"true" json:"caller"`
	Receiver string      `serialize:"true" json:"receiver"`
	X        common.Hash `serialize:"true" json:"x"`
	Y        common.Hash `serialize:"true" json:"y"`
}

func (svc *PublicService) Publish(_ *http.Request, args *PublishArgs, reply *SuccessReply) error {
	caller, err := parseAddress(args.Caller)
	if err != nil {
		return err
	}
	receiver, err := parseAddress(args.Receiver)
	if err != nil {
		return err
	}
	if err := svc.reg.PublishData(caller, receiver, args.X, args.Y); err != nil {
		log.Warn("failed publish", "caller", args.Caller, "receiver", args.Receiver, "error", err)
		return err
	}
	reply.Success = true
	return nil
}

type RemoveDataArgs struct {
	Caller string `serialize:"true" json:"caller"`
	Index  uint64 `serialize:"true" json:"index"`
}

func (svc *PublicService) RemoveData(_ *http.Request, args *RemoveDataArgs, reply *SuccessReply) error {
	caller, err := parseAddress(args.Caller)
	if err != nil {
		return err
	}
	if err := svc.reg.RemovePublishedData(caller, args.Index); err != nil {
		log.Warn("failed data removal", "caller", args.Caller, "index", args.Index, "error", err)
		return err
	}
	reply.Success = true
	return nil
}

type DepositArgs struct {
	Caller string `serialize:"true" json:"caller"`
	Amount uint64 `serialize:"true" json:"amount"`
}

func (svc *PublicService) Deposit(_ *http.Request, args *DepositArgs, reply *SuccessReply) error {
	caller, err := parseAddress(args.Caller)
	if err != nil {
		return err
	}
	if err := svc.reg.Deposit(caller, args.Amount); err != nil {
		log.Warn("failed deposit", "caller", args.Caller, "error", err)
		return err
	}
	reply.Success = true
	return nil
}

type WithdrawArgs struct {
	Caller string `serialize:"true" json:"caller"`
}

type WithdrawReply struct {
	Amount  uint64 `serialize:"true" json:"amount"`
	Success bool   `serialize:"true" json:"success"`
}

func (svc *PublicService) Withdraw(r *http.Request, args *WithdrawArgs, reply *WithdrawReply) error {
	caller, err := parseAddress(args.Caller)
	if err != nil {
		return err
	}
	amount, err := svc.reg.WithdrawFunds(r.Context(), caller)
	if err != nil {
		log.Warn("failed withdrawal", "caller", args.Caller, "error", err)
		return err
	}
	reply.Amount = amount
	reply.Success = true
	return nil
}

type ProposeOwnerArgs struct {
	Caller    string `serialize:"true" json:"caller"`
	Candidate string `serialize:"true" json:"candidate"`
}

func (svc *PublicService) ProposeOwner(_ *http.Request, args *ProposeOwnerArgs, reply *SuccessReply) error {
	caller, err := parseAddress(args.Caller)
	if err != nil {
		return err
	}
	candidate, err := parseAddress(args.Candidate)
	if err != nil {
		return err
	}
	if err := svc.reg.ProposeOwner(caller, candidate); err != nil {
		log.Warn("failed owner proposal", "caller", args.Caller, "error", err)
		return err
	}
	reply.Success = true
	return nil
}

type AcceptOwnershipArgs struct {
	Caller string `serialize:"true" json:"caller"`
}

func (svc *PublicService) AcceptOwnership(_ *http.Request, args *AcceptOwnershipArgs, reply *SuccessReply) error {
	caller, err := parseAddress(args.Caller)
	if err != nil {
		return err
	}
	if err := svc.reg.AcceptOwnership(caller); err != nil {
		log.Warn("failed ownership acceptance", "caller", args.Caller, "error", err)
		return err
	}
	reply.Success = true
	return nil
}

type KeyArgs struct {
	Address string `serialize:"true" json:"address"`
}

type KeyReply struct {
	Key    *registry.PublicKeyPoint `serialize:"true" json:"key,omitempty"`
	Exists bool                     `serialize:"true" json:"exists"`
}

func (svc *PublicService) Key(_ *http.Request, args *KeyArgs, reply *KeyReply) error {
	addr, err := parseAddress(args.Address)
	if err != nil {
		return err
	}
	key, exists, err := svc.reg.PublicKey(addr)
	if err != nil {
		return err
	}
	reply.Key = key
	reply.Exists = exists
	return nil
}

type DataArgs struct {
	Address string `serialize:"true" json:"address"`
}

type DataReply struct {
	Entries []*registry.PublishedDataEntry `serialize:"true" json:"entries"`
}

func (svc *PublicService) Data(_ *http.Request, args *DataArgs, reply *DataReply) error {
	addr, err := parseAddress(args.Address)
	if err != nil {
		return err
	}
	entries, err := svc.reg.PublishedData(addr)
	if err != nil {
		return err
	}
	reply.Entries = entries
	return nil
}

type CooldownArgs struct {
	Address string `serialize:"true" json:"address"`
}

type CooldownReply struct {
	Cooldown int64 `serialize:"true" json:"cooldown"`
}

func (svc *PublicService) Cooldown(_ *http.Request, args *CooldownArgs, reply *CooldownReply) error {
	addr, err := parseAddress(args.Address)
	if err != nil {
		return err
	}
	cd, err := svc.reg.Cooldown(addr)
	if err != nil {
		return err
	}
	reply.Cooldown = cd
	return nil
}

type OwnerReply struct {
	Owner        string `serialize:"true" json:"owner"`
	PendingOwner string `serialize:"true" json:"pendingOwner,omitempty"`
	HasPending   bool   `serialize:"true" json:"hasPending"`
}

func (svc *PublicService) Owner(_ *http.Request, _ *struct{}, reply *OwnerReply) error {
	owner, err := svc.reg.Owner()
	if err != nil {
		return err
	}
	reply.Owner = owner.Hex()
	pending, has, err := svc.reg.PendingOwner()
	if err != nil {
		return err
	}
	if has {
		reply.PendingOwner = pending.Hex()
	}
	reply.HasPending = has
	return nil
}

type BalanceReply struct {
	Balance uint64 `serialize:"true" json:"balance"`
}

func (svc *PublicService) Balance(_ *http.Request, _ *struct{}, reply *BalanceReply) error {
	bal, err := svc.reg.Balance()
	if err != nil {
		return err
	}
	reply.Balance = bal
	return nil
}

type ActivityReply struct {
	Activity []*registry.Activity `serialize:"true" json:"activity"`
}

func (svc *PublicService) Activity(_ *http.Request, _ *struct{}, reply *ActivityReply) error {
	reply.Activity = svc.reg.Activity()
	return nil
}
