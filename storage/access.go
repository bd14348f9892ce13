// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/kittiesd/fault"
)

// Access - one database backend with a single pending batch
//
// Get and Has see the pending batch; GetDB and HasDB only see
// committed data; Snapshot pins the committed data of one moment
type Access interface {
	Abort()
	Begin() error
	Close() error
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	GetDB([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	HasDB([]byte) (bool, error)
	InUse() bool
	Put([]byte, []byte)
	Snapshot() (accessSnapshot, error)
}

// LevelDBAccess - leveldb backend
type LevelDBAccess struct {
	sync.Mutex
	inUse bool
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func newLevelDBAccess(db *leveldb.DB, cache Cache) *LevelDBAccess {
	return &LevelDBAccess{
		inUse: false,
		db:    db,
		batch: new(leveldb.Batch),
		cache: cache,
	}
}

func (d *LevelDBAccess) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.ErrTransactionAlreadyOpen
	}

	d.inUse = true
	return nil
}

func (d *LevelDBAccess) Put(key []byte, value []byte) {
	d.cache.Set(dbPut, string(key), value)
	d.batch.Put(key, value)
}

func (d *LevelDBAccess) Delete(key []byte) {
	d.cache.Set(dbDelete, string(key), nil)
	d.batch.Delete(key)
}

func (d *LevelDBAccess) Commit() error {
	d.Lock()
	defer d.Unlock()

	if !d.inUse {
		return fault.ErrTransactionNotOpen
	}

	err := d.db.Write(d.batch, nil)
	d.reset()
	if nil != err {
		return errors.Wrap(err, "leveldb write batch")
	}
	return nil
}

func (d *LevelDBAccess) Abort() {
	d.Lock()
	defer d.Unlock()

	d.reset()
}

func (d *LevelDBAccess) reset() {
	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
}

func (d *LevelDBAccess) Get(key []byte) ([]byte, error) {
	value, state := d.cache.Get(string(key))
	switch state {
	case CachePut:
		return value, nil
	case CacheDeleted:
		return nil, nil
	}
	return d.GetDB(key)
}

// GetDB - nil, nil if the key does not exist
func (d *LevelDBAccess) GetDB(key []byte) ([]byte, error) {
	value, err := d.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, errors.Wrapf(err, "leveldb get: %x", key)
	}
	return value, nil
}

func (d *LevelDBAccess) Has(key []byte) (bool, error) {
	_, state := d.cache.Get(string(key))
	switch state {
	case CachePut:
		return true, nil
	case CacheDeleted:
		return false, nil
	}
	return d.HasDB(key)
}

func (d *LevelDBAccess) HasDB(key []byte) (bool, error) {
	found, err := d.db.Has(key, nil)
	if nil != err {
		return false, errors.Wrapf(err, "leveldb has: %x", key)
	}
	return found, nil
}

func (d *LevelDBAccess) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}

func (d *LevelDBAccess) Close() error {
	return d.db.Close()
}
