// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"errors"
)

var (
	// Key Registration
	ErrAlreadyRegistered = errors.New("public key already registered")
	ErrNotRegistered     = errors.New("public key not registered")
	ErrIdentityMismatch  = errors.New("public key does not bind to caller identity")
	ErrInvalidKey        = errors.New("public key coordinates cannot be zero")

	// Data Publication
	ErrDuplicateData   = errors.New("data point already live")
	ErrCooldownActive  = errors.New("publish cooldown still active")
	ErrIndexOutOfRange = errors.New("index beyond published sequence")
	ErrAlreadyRemoved  = errors.New("slot already removed")

	// Funds
	ErrNothingToWithdraw = errors.New("no balance to withdraw")
	ErrNothingToDeposit  = errors.New("deposit amount cannot be zero")
	ErrTransferFailed    = errors.New("funds transfer rejected")
	ErrBalanceOverflow   = errors.New("balance overflow")

	// Ownership
	ErrNotOwner        = errors.New("caller is not the owner")
	ErrNotPendingOwner = errors.New("caller is not the pending owner")
	ErrNoInitialOwner  = errors.New("initial owner required on first boot")
)
