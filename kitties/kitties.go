// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package kitties - create, breed, transfer and trade kitties
//
// every call runs in one storage transaction: it commits only when
// all of its steps succeed and emits exactly one event afterwards
package kitties

import (
	"encoding/binary"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/currency"
	"github.com/bitmark-inc/kittiesd/kitty"
)

// Origin - the verified caller of one request
type Origin struct {
	Caller *account.Account // signer of the request
	Index  uint32           // per call sequence number
}

// Kitties - the public call surface
type Kitties interface {
	Create(origin *Origin) (kitty.Index, error)
	Breed(origin *Origin, parent1 kitty.Index, parent2 kitty.Index) (kitty.Index, error)
	Transfer(origin *Origin, to *account.Account, id kitty.Index) error
	Ask(origin *Origin, id kitty.Index, price *uint64) error
	Buy(origin *Origin, id kitty.Index, offered uint64) error
}

// stake locks apply to every withdraw reason
const stakeReasons = currency.All

// LockId - identifier of the stake lock held for a kitty
//
// the ledger scopes locks per account so the kitty index alone is
// enough to keep identifiers distinct
func LockId(id kitty.Index) currency.LockIdentifier {
	lock := currency.LockIdentifier{'k', 'i', 't', 't'}
	binary.BigEndian.PutUint32(lock[4:], uint32(id))
	return lock
}
