// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the kitty tables, their ownership index and lineage
package registry

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/kitty"
	"github.com/bitmark-inc/kittiesd/linkedlist"
	"github.com/bitmark-inc/kittiesd/storage"
)

// fixed key of the counter record
var countKey = []byte("count")

// Handles - pools used by the registry
type Handles struct {
	Kitties      *storage.PoolHandle
	KittiesCount *storage.PoolHandle
	KittyOwners  *storage.PoolHandle
	KittyPrices  *storage.PoolHandle
	OwnedKitties *storage.PoolHandle
	Parents      *storage.PoolHandle
	Children     *storage.PoolHandle
	Partners     *storage.PoolHandle
}

// PoolHandles - registry handles from the open database
func PoolHandles() Handles {
	return Handles{
		Kitties:      storage.Pool.Kitties,
		KittiesCount: storage.Pool.KittiesCount,
		KittyOwners:  storage.Pool.KittyOwners,
		KittyPrices:  storage.Pool.KittyPrices,
		OwnedKitties: storage.Pool.OwnedKitties,
		Parents:      storage.Pool.Parents,
		Children:     storage.Pool.Children,
		Partners:     storage.Pool.Partners,
	}
}

// OwnedList - kitties owned by each account
type OwnedList = linkedlist.List[*account.Account, kitty.Index]

// OwnedIterator - traversal of one owner's kitties
type OwnedIterator = linkedlist.Iterator[*account.Account, kitty.Index]

// Registry - all kitty state
type Registry struct {
	log   *logger.L
	pools Handles
	owned *OwnedList
}

// New - registry over the given pools
func New(pools Handles) *Registry {
	return &Registry{
		log:   logger.New("registry"),
		pools: pools,
		owned: linkedlist.New[*account.Account, kitty.Index](pools.OwnedKitties, accountCodec{}, indexCodec{}),
	}
}

// Count - number of kitties minted
func (r *Registry) Count(rd storage.Reader) kitty.Index {
	buffer := rd.Get(r.pools.KittiesCount, countKey)
	if nil == buffer {
		return 0
	}
	if 8 != len(buffer) {
		logger.Panicf("registry: kitties count corrupt: %x", buffer)
	}
	return kitty.Index(binary.BigEndian.Uint64(buffer))
}

// Kitty - fetch a kitty
func (r *Registry) Kitty(rd storage.Reader, id kitty.Index) (*kitty.Kitty, bool) {
	buffer := rd.Get(r.pools.Kitties, id.Bytes())
	if nil == buffer {
		return nil, false
	}
	dna, err := kitty.DNAFromBytes(buffer)
	if nil != err {
		logger.Panicf("registry: kitty: %d dna corrupt: %x", id, buffer)
	}
	return &kitty.Kitty{
		Id:  id,
		DNA: dna,
	}, true
}

// OwnerOf - current owner of a kitty
func (r *Registry) OwnerOf(rd storage.Reader, id kitty.Index) (*account.Account, bool) {
	buffer := rd.Get(r.pools.KittyOwners, id.Bytes())
	if nil == buffer {
		return nil, false
	}
	owner, err := account.FromBytes(buffer)
	if nil != err {
		logger.Panicf("registry: kitty: %d owner corrupt: %x", id, buffer)
	}
	return owner, true
}

// Owns - the ownership authorisation check
func (r *Registry) Owns(rd storage.Reader, owner *account.Account, id kitty.Index) bool {
	return r.owned.Contains(rd, owner, id)
}

// Owned - lazy traversal of an owner's kitties in acquisition order
func (r *Registry) Owned(rd storage.Reader, owner *account.Account) *OwnedIterator {
	return r.owned.Enumerate(rd, owner)
}

// Price - listed price, false if not for sale
func (r *Registry) Price(rd storage.Reader, id kitty.Index) (uint64, bool) {
	buffer := rd.Get(r.pools.KittyPrices, id.Bytes())
	if nil == buffer {
		return 0, false
	}
	if 8 != len(buffer) {
		logger.Panicf("registry: kitty: %d price corrupt: %x", id, buffer)
	}
	return binary.BigEndian.Uint64(buffer), true
}

// SetPrice - list for sale, or clear the listing with nil
func (r *Registry) SetPrice(trx storage.Transaction, id kitty.Index, price *uint64) {
	if nil == price {
		trx.Delete(r.pools.KittyPrices, id.Bytes())
		return
	}
	trx.PutN(r.pools.KittyPrices, id.Bytes(), *price)
}

// Mint - store a new kitty for owner
func (r *Registry) Mint(trx storage.Transaction, owner *account.Account, dna kitty.DNA) (kitty.Index, error) {
	id := r.Count(trx)
	if id >= kitty.MaxIndex {
		return 0, fault.ErrCounterOverflow
	}

	trx.Put(r.pools.Kitties, id.Bytes(), dna[:])
	trx.PutN(r.pools.KittiesCount, countKey, uint64(id)+1)

	err := r.owned.Append(trx, owner, id)
	if nil != err {
		r.log.Criticalf("mint: kitty: %d append to owner: %s error: %s", id, owner, err)
		return 0, err
	}
	trx.Put(r.pools.KittyOwners, id.Bytes(), owner.Bytes())

	r.log.Debugf("minted kitty: %d  owner: %s  dna: %s", id, owner, dna)
	return id, nil
}

// TransferOwnership - move a kitty between owner lists
//
// caller must have checked that from owns id
func (r *Registry) TransferOwnership(trx storage.Transaction, from *account.Account, to *account.Account, id kitty.Index) error {
	err := r.owned.Remove(trx, from, id)
	if nil != err {
		r.log.Errorf("transfer: kitty: %d remove from: %s error: %s", id, from, err)
		return err
	}
	err = r.owned.Append(trx, to, id)
	if nil != err {
		r.log.Criticalf("transfer: kitty: %d append to: %s error: %s", id, to, err)
		return err
	}
	trx.Put(r.pools.KittyOwners, id.Bytes(), to.Bytes())

	r.log.Debugf("transferred kitty: %d  from: %s  to: %s", id, from, to)
	return nil
}
