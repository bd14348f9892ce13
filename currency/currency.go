// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package currency - balances and balance locks
//
// all mutations take the caller's storage transaction so that a
// failed call leaves balances untouched
package currency

import (
	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/storage"
)

// LockIdentifierSize - bytes in a lock identifier
const LockIdentifierSize = 8

// LockIdentifier - names one lock of an account
type LockIdentifier [LockIdentifierSize]byte

// WithdrawReasons - bit set of withdrawals a lock applies to
type WithdrawReasons uint8

// withdraw reasons
const (
	Transfer WithdrawReasons = 1 << iota
	Reserve
	Fee

	All = Transfer | Reserve | Fee
)

// Currency - the balance ledger as seen by the kitties service
type Currency interface {
	FreeBalance(storage.Reader, *account.Account) uint64
	Transfer(storage.Transaction, *account.Account, *account.Account, uint64, bool) error
	SetLock(storage.Transaction, LockIdentifier, *account.Account, uint64, WithdrawReasons) error
	RemoveLock(storage.Transaction, LockIdentifier, *account.Account) error
}
