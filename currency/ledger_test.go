// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/currency"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/storage"
)

const (
	testingDirName     = "testing"
	existentialDeposit = 10
)

var (
	lockOne = currency.LockIdentifier{'l', 'o', 'c', 'k', 0, 0, 0, 1}
	lockTwo = currency.LockIdentifier{'l', 'o', 'c', 'k', 0, 0, 0, 2}
)

func setupLedger(t *testing.T) *currency.Ledger {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	err := storage.Initialise(filepath.Join(testingDirName, "currency"), storage.BackendLevelDB, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	return currency.NewLedger(storage.Pool.Balances, storage.Pool.Locks, existentialDeposit)
}

func teardownLedger() {
	storage.Finalise()
	removeFiles()
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func makeAccount(t *testing.T, n byte) *account.Account {
	seed := make([]byte, account.SeedSize)
	seed[0] = n
	key, err := account.PrivateKeyFromSeed(seed)
	if nil != err {
		t.Fatalf("private key error: %s", err)
	}
	return key.Account()
}

func inTransaction(t *testing.T, f func(trx storage.Transaction) error) error {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("new transaction error: %s", err)
	}
	err = f(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

func endow(t *testing.T, l *currency.Ledger, a *account.Account, amount uint64) {
	err := inTransaction(t, func(trx storage.Transaction) error {
		return l.Endow(trx, a, amount)
	})
	if nil != err {
		t.Fatalf("endow error: %s", err)
	}
}

func transfer(t *testing.T, l *currency.Ledger, from *account.Account, to *account.Account, amount uint64, keepAlive bool) error {
	return inTransaction(t, func(trx storage.Transaction) error {
		return l.Transfer(trx, from, to, amount, keepAlive)
	})
}

func TestEndow(t *testing.T) {
	l := setupLedger(t)
	defer teardownLedger()

	alice := makeAccount(t, 1)
	assert.Equal(t, uint64(0), l.FreeBalance(storage.View, alice), "initial balance")

	endow(t, l, alice, 100)
	endow(t, l, alice, 50)
	assert.Equal(t, uint64(150), l.FreeBalance(storage.View, alice), "endowed balance")

	err := inTransaction(t, func(trx storage.Transaction) error {
		return l.Endow(trx, makeAccount(t, 2), existentialDeposit-1)
	})
	assert.Equal(t, fault.ErrExistentialDeposit, err, "dust endowment")
}

func TestTransfer(t *testing.T) {
	l := setupLedger(t)
	defer teardownLedger()

	alice := makeAccount(t, 1)
	bob := makeAccount(t, 2)
	endow(t, l, alice, 100)

	assert.Nil(t, transfer(t, l, alice, bob, 40, true), "transfer")
	assert.Equal(t, uint64(60), l.FreeBalance(storage.View, alice), "sender balance")
	assert.Equal(t, uint64(40), l.FreeBalance(storage.View, bob), "receiver balance")

	assert.Equal(t, fault.ErrInsufficientBalance, transfer(t, l, alice, bob, 61, false), "overdraft")
	assert.Equal(t, fault.ErrKeepAlive, transfer(t, l, alice, bob, 55, true), "kill with keep alive")
	assert.Equal(t, fault.ErrExistentialDeposit, transfer(t, l, alice, makeAccount(t, 3), 5, false), "dust to new account")
	assert.Equal(t, uint64(60), l.FreeBalance(storage.View, alice), "failed transfers changed balance")
}

func TestTransferReapsDust(t *testing.T) {
	l := setupLedger(t)
	defer teardownLedger()

	alice := makeAccount(t, 1)
	bob := makeAccount(t, 2)
	endow(t, l, alice, 100)

	assert.Nil(t, transfer(t, l, alice, bob, 95, false), "transfer")
	assert.Equal(t, uint64(0), l.FreeBalance(storage.View, alice), "dust not reaped")
	assert.False(t, storage.Pool.Balances.Has(alice.Bytes()), "record not deleted")
	assert.Equal(t, uint64(95), l.FreeBalance(storage.View, bob), "receiver balance")
}

func TestLocksOverlay(t *testing.T) {
	l := setupLedger(t)
	defer teardownLedger()

	alice := makeAccount(t, 1)
	bob := makeAccount(t, 2)
	endow(t, l, alice, 100)

	err := inTransaction(t, func(trx storage.Transaction) error {
		if err := l.SetLock(trx, lockOne, alice, 30, currency.All); nil != err {
			return err
		}
		return l.SetLock(trx, lockTwo, alice, 50, currency.All)
	})
	assert.Nil(t, err, "set locks")
	assert.Equal(t, 2, len(l.Locks(storage.View, alice)), "lock count")
	assert.Equal(t, uint64(50), l.Usable(storage.View, alice), "largest lock applies")
	assert.Equal(t, uint64(100), l.FreeBalance(storage.View, alice), "free balance includes locked")

	assert.Equal(t, fault.ErrLiquidityRestrictions, transfer(t, l, alice, bob, 51, false), "spend locked funds")
	assert.Nil(t, transfer(t, l, alice, bob, 50, false), "spend unlocked funds")

	// replacing a lock keeps one entry
	err = inTransaction(t, func(trx storage.Transaction) error {
		return l.SetLock(trx, lockTwo, alice, 20, currency.All)
	})
	assert.Nil(t, err, "replace lock")
	assert.Equal(t, 2, len(l.Locks(storage.View, alice)), "lock count after replace")
	assert.Equal(t, uint64(20), l.Usable(storage.View, alice), "usable after replace")

	err = inTransaction(t, func(trx storage.Transaction) error {
		if err := l.RemoveLock(trx, lockOne, alice); nil != err {
			return err
		}
		if err := l.RemoveLock(trx, lockOne, bob); nil != err {
			return err
		}
		return l.RemoveLock(trx, lockTwo, alice)
	})
	assert.Nil(t, err, "remove locks")
	assert.Equal(t, 0, len(l.Locks(storage.View, alice)), "locks left")
	assert.False(t, storage.Pool.Locks.Has(alice.Bytes()), "lock record left")
}

func TestLockReasons(t *testing.T) {
	l := setupLedger(t)
	defer teardownLedger()

	alice := makeAccount(t, 1)
	bob := makeAccount(t, 2)
	endow(t, l, alice, 100)

	err := inTransaction(t, func(trx storage.Transaction) error {
		if err := l.SetLock(trx, lockOne, alice, 90, currency.Reserve); nil != err {
			return err
		}
		// ignored
		return l.SetLock(trx, lockTwo, alice, 0, currency.All)
	})
	assert.Nil(t, err, "set locks")
	assert.Equal(t, 1, len(l.Locks(storage.View, alice)), "zero lock stored")

	assert.Nil(t, transfer(t, l, alice, bob, 80, true), "reserve lock blocked transfer")
}

func TestAbortedTransferLeavesBalances(t *testing.T) {
	l := setupLedger(t)
	defer teardownLedger()

	alice := makeAccount(t, 1)
	bob := makeAccount(t, 2)
	endow(t, l, alice, 100)

	err := inTransaction(t, func(trx storage.Transaction) error {
		if err := l.Transfer(trx, alice, bob, 30, true); nil != err {
			return err
		}
		assert.Equal(t, uint64(30), l.FreeBalance(trx, bob), "pending balance")
		return fault.ErrNotForSale
	})
	assert.Equal(t, fault.ErrNotForSale, err, "forced failure")
	assert.Equal(t, uint64(100), l.FreeBalance(storage.View, alice), "sender debited")
	assert.Equal(t, uint64(0), l.FreeBalance(storage.View, bob), "receiver credited")
}
