// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/currency"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/genesis"
	"github.com/bitmark-inc/kittiesd/storage"
)

const testingDirName = "testing"

func setup(t *testing.T) (*logger.L, *currency.Ledger) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})

	err := storage.Initialise(filepath.Join(testingDirName, "genesis"), storage.BackendBolt, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	return logger.New("testing"), currency.NewLedger(storage.Pool.Balances, storage.Pool.Locks, 10)
}

func teardown() {
	storage.Finalise()
	_ = os.RemoveAll(testingDirName)
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

func TestApply(t *testing.T) {
	log, ledger := setup(t)
	defer teardown()

	alice := makeAccount(t, 1)
	bob := makeAccount(t, 2)
	allocation := genesis.Allocation{
		alice.String(): 1000,
		bob.String():   0,
	}

	applied, err := genesis.Apply(log, ledger, storage.Pool.Genesis, allocation)
	assert.Nil(t, err, "apply")
	assert.True(t, applied, "not applied")
	assert.True(t, genesis.Applied(storage.View, storage.Pool.Genesis), "marker missing")
	assert.Equal(t, uint64(1000), ledger.FreeBalance(storage.View, alice), "alice balance")
	assert.Equal(t, uint64(0), ledger.FreeBalance(storage.View, bob), "bob balance")

	applied, err = genesis.Apply(log, ledger, storage.Pool.Genesis, allocation)
	assert.Nil(t, err, "second apply")
	assert.False(t, applied, "applied twice")
	assert.Equal(t, uint64(1000), ledger.FreeBalance(storage.View, alice), "alice endowed twice")
}

func TestApplyRollsBack(t *testing.T) {
	log, ledger := setup(t)
	defer teardown()

	alice := makeAccount(t, 1)
	bob := makeAccount(t, 2)
	allocation := genesis.Allocation{
		alice.String(): 1000,
		bob.String():   5,
	}

	applied, err := genesis.Apply(log, ledger, storage.Pool.Genesis, allocation)
	assert.Equal(t, fault.ErrExistentialDeposit, err, "dust allocation")
	assert.False(t, applied, "applied")
	assert.False(t, genesis.Applied(storage.View, storage.Pool.Genesis), "marker written")
	assert.Equal(t, uint64(0), ledger.FreeBalance(storage.View, alice), "partial endowment")
}

func TestApplyInvalidAccount(t *testing.T) {
	log, ledger := setup(t)
	defer teardown()

	_, err := genesis.Apply(log, ledger, storage.Pool.Genesis, genesis.Allocation{"not-an-account": 100})
	assert.NotNil(t, err, "invalid account accepted")
	assert.False(t, genesis.Applied(storage.View, storage.Pool.Genesis), "marker written")
}
