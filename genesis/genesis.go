// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis - initial balances written once into a new database
package genesis

import (
	"sort"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/storage"
)

// marker record in the genesis pool
var appliedKey = []byte("applied")

// Endower - credit funds to an account
type Endower interface {
	Endow(storage.Transaction, *account.Account, uint64) error
}

// Allocation - base58 account to initial balance
type Allocation map[string]uint64

// Applied - true once the allocation has been committed
func Applied(rd storage.Reader, pool *storage.PoolHandle) bool {
	return rd.Has(pool, appliedKey)
}

// Apply - endow every account of the allocation in a single transaction
//
// a database that already carries the marker is left unchanged and
// false is returned
func Apply(log *logger.L, ledger Endower, pool *storage.PoolHandle, allocation Allocation) (bool, error) {
	if Applied(storage.View, pool) {
		log.Info("genesis already applied")
		return false, nil
	}

	// parse everything before touching the database
	names := make([]string, 0, len(allocation))
	for name := range allocation {
		names = append(names, name)
	}
	sort.Strings(names)

	accounts := make([]*account.Account, len(names))
	for i, name := range names {
		a, err := account.FromBase58(name)
		if nil != err {
			log.Errorf("genesis account: %q  error: %s", name, err)
			return false, err
		}
		accounts[i] = a
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return false, err
	}

	for i, a := range accounts {
		amount := allocation[names[i]]
		if 0 == amount {
			continue
		}
		if err := ledger.Endow(trx, a, amount); nil != err {
			log.Errorf("genesis endow: %s  amount: %d  error: %s", a, amount, err)
			trx.Abort()
			return false, err
		}
	}
	trx.Put(pool, appliedKey, []byte{1})

	if err := trx.Commit(); nil != err {
		return false, err
	}
	log.Infof("genesis applied to: %d accounts", len(accounts))
	return true, nil
}
