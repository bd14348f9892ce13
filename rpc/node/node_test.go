// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittiesd/counter"
	"github.com/bitmark-inc/kittiesd/currency"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/kitty"
	"github.com/bitmark-inc/kittiesd/registry"
	"github.com/bitmark-inc/kittiesd/rpc/fixtures"
	"github.com/bitmark-inc/kittiesd/rpc/node"
	"github.com/bitmark-inc/kittiesd/storage"
)

func setup(t *testing.T) (*node.Node, *registry.Registry, *currency.Ledger) {
	if err := fixtures.SetupTestDatabase(); nil != err {
		t.Fatalf("database error: %s", err)
	}
	reg := registry.New(registry.PoolHandles())
	ledger := currency.NewLedger(storage.Pool.Balances, storage.Pool.Locks, 5)
	ctr := counter.Counter(3)

	n := node.New(logger.New(fixtures.LogCategory), reg, ledger, 100, time.Now(), "1.0", &ctr)
	return n, reg, ledger
}

func TestNodeInfo(t *testing.T) {
	n, reg, _ := setup(t)
	defer fixtures.TeardownTestDatabase()

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction")
	_, err = reg.Mint(trx, fixtures.Key(1).Account(), kitty.DNA{})
	assert.Nil(t, err, "mint")
	assert.Nil(t, trx.Commit(), "commit")

	var reply node.InfoReply
	err = n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "info")
	assert.Equal(t, "1.0", reply.Version, "version")
	assert.Equal(t, uint64(1), reply.Kitties, "kitties")
	assert.Equal(t, uint64(3), reply.RPCs, "rpcs")
	assert.Equal(t, uint64(100), reply.Stake, "stake")
	assert.Equal(t, uint64(5), reply.ExistentialDeposit, "existential deposit")
	assert.NotEqual(t, "", reply.Uptime, "uptime")
}

func TestNodeBalance(t *testing.T) {
	n, _, ledger := setup(t)
	defer fixtures.TeardownTestDatabase()

	owner := fixtures.Key(1).Account()
	lock := currency.LockIdentifier{'k', 'i', 't', 't', 0, 0, 0, 0}

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction")
	assert.Nil(t, ledger.Endow(trx, owner, 500), "endow")
	assert.Nil(t, ledger.SetLock(trx, lock, owner, 100, currency.All), "lock")
	assert.Nil(t, trx.Commit(), "commit")

	var reply node.BalanceReply
	err = n.Balance(&node.BalanceArguments{Owner: owner}, &reply)
	assert.Nil(t, err, "balance")
	assert.Equal(t, uint64(500), reply.Free, "free")
	assert.Equal(t, uint64(400), reply.Usable, "usable")
	assert.Equal(t, []currency.Lock{{Id: lock, Amount: 100, Reasons: currency.All}}, reply.Locks, "locks")

	err = n.Balance(&node.BalanceArguments{Owner: fixtures.Key(9).Account()}, &reply)
	assert.Nil(t, err, "empty balance")
	assert.Equal(t, uint64(0), reply.Free, "free")
	assert.Equal(t, []currency.Lock{}, reply.Locks, "no locks")

	err = n.Balance(&node.BalanceArguments{}, &reply)
	assert.Equal(t, fault.ErrInvalidAccount, err, "missing owner")
}
