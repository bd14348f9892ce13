// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/kitty"
	"github.com/bitmark-inc/kittiesd/storage"
)

// Breed - mint a child of two kitties owned by requester
//
// the selector chooses, bit by bit, between the parents' dna
func (r *Registry) Breed(trx storage.Transaction, requester *account.Account, parent1 kitty.Index, parent2 kitty.Index, selector kitty.DNA) (kitty.Index, error) {
	kitty1, found1 := r.Kitty(trx, parent1)
	kitty2, found2 := r.Kitty(trx, parent2)
	if !found1 || !found2 {
		return 0, fault.ErrInvalidKittyId
	}

	if !r.Owns(trx, requester, parent1) || !r.Owns(trx, requester, parent2) {
		return 0, fault.ErrRequireOwner
	}

	if parent1 == parent2 {
		return 0, fault.ErrRequireDifferentParents
	}

	dna := kitty.Combine(selector, kitty1.DNA, kitty2.DNA)

	child, err := r.Mint(trx, requester, dna)
	if nil != err {
		return 0, err
	}

	parents := append(parent1.Bytes(), parent2.Bytes()...)
	trx.Put(r.pools.Parents, child.Bytes(), parents)

	r.appendIndex(trx, r.pools.Children, parent1, child)
	r.appendIndex(trx, r.pools.Children, parent2, child)
	r.appendIndex(trx, r.pools.Partners, parent1, parent2)
	r.appendIndex(trx, r.pools.Partners, parent2, parent1)

	return child, nil
}

// Parents - the two kitties a child was bred from
func (r *Registry) Parents(rd storage.Reader, id kitty.Index) (kitty.Index, kitty.Index, bool) {
	buffer := rd.Get(r.pools.Parents, id.Bytes())
	if nil == buffer {
		return 0, 0, false
	}
	if 2*kitty.IndexSize != len(buffer) {
		logger.Panicf("registry: kitty: %d parents corrupt: %x", id, buffer)
	}
	parent1, _ := kitty.IndexFromBytes(buffer[:kitty.IndexSize])
	parent2, _ := kitty.IndexFromBytes(buffer[kitty.IndexSize:])
	return parent1, parent2, true
}

// Children - every child in breeding order, repeats included
func (r *Registry) Children(rd storage.Reader, id kitty.Index) []kitty.Index {
	return r.readIndexes(rd, r.pools.Children, id)
}

// Partners - every breeding partner in breeding order, repeats included
func (r *Registry) Partners(rd storage.Reader, id kitty.Index) []kitty.Index {
	return r.readIndexes(rd, r.pools.Partners, id)
}

func (r *Registry) readIndexes(rd storage.Reader, pool *storage.PoolHandle, id kitty.Index) []kitty.Index {
	buffer := rd.Get(pool, id.Bytes())
	indexes, err := unpackIndexes(buffer)
	if nil != err {
		logger.Panicf("registry: kitty: %d lineage corrupt: %x", id, buffer)
	}
	return indexes
}

func (r *Registry) appendIndex(trx storage.Transaction, pool *storage.PoolHandle, id kitty.Index, item kitty.Index) {
	indexes := r.readIndexes(trx, pool, id)
	trx.Put(pool, id.Bytes(), packIndexes(append(indexes, item)))
}
