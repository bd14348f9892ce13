// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/storage"
)

// Ledger - storage backed balances
//
// an account whose balance falls below the existential deposit is
// reaped: its record is deleted and the dust is lost
type Ledger struct {
	log                *logger.L
	balances           *storage.PoolHandle
	locks              *storage.PoolHandle
	existentialDeposit uint64
}

// NewLedger - ledger over the balance and lock pools
func NewLedger(balances *storage.PoolHandle, locks *storage.PoolHandle, existentialDeposit uint64) *Ledger {
	return &Ledger{
		log:                logger.New("currency"),
		balances:           balances,
		locks:              locks,
		existentialDeposit: existentialDeposit,
	}
}

// ExistentialDeposit - minimum balance of a live account
func (l *Ledger) ExistentialDeposit() uint64 {
	return l.existentialDeposit
}

// FreeBalance - whole balance including any locked part
func (l *Ledger) FreeBalance(rd storage.Reader, a *account.Account) uint64 {
	buffer := rd.Get(l.balances, a.Bytes())
	if nil == buffer {
		return 0
	}
	value, n := decodeUvarint(buffer)
	if n <= 0 {
		logger.Panicf("currency: balance corrupt for: %s  data: %x", a, buffer)
	}
	return value
}

// Usable - balance available for transfers after locks
func (l *Ledger) Usable(rd storage.Reader, a *account.Account) uint64 {
	free := l.FreeBalance(rd, a)
	locked := frozen(l.Locks(rd, a), Transfer)
	if locked >= free {
		return 0
	}
	return free - locked
}

// Locks - every lock held on an account
func (l *Ledger) Locks(rd storage.Reader, a *account.Account) []Lock {
	buffer := rd.Get(l.locks, a.Bytes())
	locks, err := unpackLocks(buffer)
	if nil != err {
		logger.Panicf("currency: locks corrupt for: %s  data: %x", a, buffer)
	}
	return locks
}

// Endow - credit new funds, used for genesis balances
func (l *Ledger) Endow(trx storage.Transaction, a *account.Account, amount uint64) error {
	balance := l.FreeBalance(trx, a)
	total := balance + amount
	if total < balance {
		return fault.ErrBalanceOverflow
	}
	if total < l.existentialDeposit {
		return fault.ErrExistentialDeposit
	}
	l.putBalance(trx, a, total)
	l.log.Infof("endow: %s  amount: %d  balance: %d", a, amount, total)
	return nil
}

// Transfer - move amount between accounts
//
// with keepAlive the sender may not be reaped
func (l *Ledger) Transfer(trx storage.Transaction, from *account.Account, to *account.Account, amount uint64, keepAlive bool) error {
	fromBalance := l.FreeBalance(trx, from)
	if fromBalance < amount {
		return fault.ErrInsufficientBalance
	}
	remaining := fromBalance - amount

	if remaining < frozen(l.Locks(trx, from), Transfer) {
		return fault.ErrLiquidityRestrictions
	}
	if keepAlive && remaining < l.existentialDeposit {
		return fault.ErrKeepAlive
	}

	if 0 == amount || from.Equal(to) {
		return nil
	}

	toBalance := l.FreeBalance(trx, to)
	total := toBalance + amount
	if total < toBalance {
		return fault.ErrBalanceOverflow
	}
	if total < l.existentialDeposit {
		return fault.ErrExistentialDeposit
	}

	if remaining < l.existentialDeposit {
		l.log.Debugf("reap: %s  dust: %d", from, remaining)
		trx.Delete(l.balances, from.Bytes())
	} else {
		l.putBalance(trx, from, remaining)
	}
	l.putBalance(trx, to, total)

	l.log.Debugf("transfer: %d  from: %s  to: %s", amount, from, to)
	return nil
}

// SetLock - create or replace the lock with the given id
//
// a zero amount or no reasons leaves the locks unchanged
func (l *Ledger) SetLock(trx storage.Transaction, id LockIdentifier, a *account.Account, amount uint64, reasons WithdrawReasons) error {
	if 0 == amount || 0 == reasons {
		return nil
	}

	lock := Lock{
		Id:      id,
		Amount:  amount,
		Reasons: reasons,
	}

	locks := l.Locks(trx, a)
	replaced := false
	for i := range locks {
		if locks[i].Id == id {
			locks[i] = lock
			replaced = true
			break
		}
	}
	if !replaced {
		locks = append(locks, lock)
	}

	trx.Put(l.locks, a.Bytes(), packLocks(locks))
	return nil
}

// RemoveLock - remove a lock, absent locks are ignored
func (l *Ledger) RemoveLock(trx storage.Transaction, id LockIdentifier, a *account.Account) error {
	locks := l.Locks(trx, a)
	kept := make([]Lock, 0, len(locks))
	for _, lock := range locks {
		if lock.Id != id {
			kept = append(kept, lock)
		}
	}

	switch {
	case len(kept) == len(locks):
		// nothing to do
	case 0 == len(kept):
		trx.Delete(l.locks, a.Bytes())
	default:
		trx.Put(l.locks, a.Bytes(), packLocks(kept))
	}
	return nil
}

func (l *Ledger) putBalance(trx storage.Transaction, a *account.Account, balance uint64) {
	trx.Put(l.balances, a.Bytes(), appendUvarint(nil, balance))
}
